package dto

import (
	"time"

	"github.com/nvourlidas/CtGym-sub002/internals/features/members/members/model"
)

type CreateMemberRequest struct {
	MemberUserID   string  `json:"user_id" validate:"required,uuid"`
	MemberFullName string  `json:"full_name" validate:"required,min=2,max=255"`
	MemberEmail    *string `json:"email,omitempty" validate:"omitempty,email"`
	MemberPhone    *string `json:"phone,omitempty" validate:"omitempty,max=32"`
}

type UpdateMemberRequest struct {
	MemberFullName *string `json:"full_name,omitempty" validate:"omitempty,min=2,max=255"`
	MemberEmail    *string `json:"email,omitempty" validate:"omitempty,email"`
	MemberPhone    *string `json:"phone,omitempty" validate:"omitempty,max=32"`
	MemberActive   *bool   `json:"active,omitempty"`
}

type MemberDTO struct {
	MemberID        string    `json:"member_id"`
	MemberStudioID  string    `json:"member_studio_id"`
	MemberUserID    string    `json:"member_user_id"`
	MemberFullName  string    `json:"member_full_name"`
	MemberEmail     *string   `json:"member_email,omitempty"`
	MemberPhone     *string   `json:"member_phone,omitempty"`
	MemberActive    bool      `json:"member_active"`
	MemberCreatedAt time.Time `json:"member_created_at"`
}

func ToMemberDTO(m model.MemberModel) MemberDTO {
	return MemberDTO{
		MemberID:        m.MemberID.String(),
		MemberStudioID:  m.MemberStudioID.String(),
		MemberUserID:    m.MemberUserID.String(),
		MemberFullName:  m.MemberFullName,
		MemberEmail:     m.MemberEmail,
		MemberPhone:     m.MemberPhone,
		MemberActive:    m.MemberActive,
		MemberCreatedAt: m.MemberCreatedAt,
	}
}

func ToMemberDTOs(ms []model.MemberModel) []MemberDTO {
	out := make([]MemberDTO, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToMemberDTO(m))
	}
	return out
}
