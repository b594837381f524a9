package dto

import (
	"time"

	"github.com/nvourlidas/CtGym-sub002/internals/features/memberships/memberships/model"
)

// =========================
// Request DTOs
// =========================

type CreateMembershipRequest struct {
	MembershipUserID   string  `json:"user_id" validate:"required,uuid"`
	MembershipPlanID   string  `json:"plan_id" validate:"required,uuid"`
	MembershipStartsAt *string `json:"starts_at,omitempty"` // RFC3339; defaults to now
}

type UpdateMembershipStatusRequest struct {
	MembershipStatus string `json:"status" validate:"required,oneof=active frozen expired cancelled"`
}

// =========================
// Response DTOs
// =========================

type MembershipDTO struct {
	MembershipID                string    `json:"membership_id"`
	MembershipStudioID          string    `json:"membership_studio_id"`
	MembershipUserID            string    `json:"membership_user_id"`
	MembershipPlanID            string    `json:"membership_plan_id"`
	MembershipStatus            string    `json:"membership_status"`
	MembershipStartsAt          time.Time `json:"membership_starts_at"`
	MembershipEndsAt            time.Time `json:"membership_ends_at"`
	MembershipRemainingSessions *int      `json:"membership_remaining_sessions,omitempty"`
	MembershipPlanName          string    `json:"membership_plan_name"`
	MembershipPlanPrice         float64   `json:"membership_plan_price"`
	MembershipCreatedAt         time.Time `json:"membership_created_at"`
}

func ToMembershipDTO(m model.MembershipModel) MembershipDTO {
	return MembershipDTO{
		MembershipID:                m.MembershipID.String(),
		MembershipStudioID:          m.MembershipStudioID.String(),
		MembershipUserID:            m.MembershipUserID.String(),
		MembershipPlanID:            m.MembershipPlanID.String(),
		MembershipStatus:            m.MembershipStatus,
		MembershipStartsAt:          m.MembershipStartsAt,
		MembershipEndsAt:            m.MembershipEndsAt,
		MembershipRemainingSessions: m.MembershipRemainingSessions,
		MembershipPlanName:          m.MembershipPlanName,
		MembershipPlanPrice:         m.MembershipPlanPrice,
		MembershipCreatedAt:         m.MembershipCreatedAt,
	}
}

func ToMembershipDTOs(ms []model.MembershipModel) []MembershipDTO {
	out := make([]MembershipDTO, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToMembershipDTO(m))
	}
	return out
}
