package dto

import (
	"time"

	"github.com/nvourlidas/CtGym-sub002/internals/features/memberships/plans/model"
)

type CreateMembershipPlanRequest struct {
	MembershipPlanName           string   `json:"name" validate:"required,min=2,max=255"`
	MembershipPlanKind           string   `json:"kind" validate:"required,oneof=sessions time"`
	MembershipPlanDurationDays   int      `json:"duration_days" validate:"required,gt=0"`
	MembershipPlanSessionCredits *int     `json:"session_credits,omitempty" validate:"omitempty,gte=0"`
	MembershipPlanPrice          float64  `json:"price" validate:"gte=0"`
	MembershipPlanCategoryID     *string  `json:"category_id,omitempty" validate:"omitempty,uuid"`
}

type UpdateMembershipPlanRequest struct {
	MembershipPlanName           *string  `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	MembershipPlanDurationDays   *int     `json:"duration_days,omitempty" validate:"omitempty,gt=0"`
	MembershipPlanSessionCredits *int     `json:"session_credits,omitempty" validate:"omitempty,gte=0"`
	MembershipPlanPrice          *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	MembershipPlanCategoryID     *string  `json:"category_id,omitempty" validate:"omitempty,uuid"`
}

type MembershipPlanDTO struct {
	MembershipPlanID             string    `json:"membership_plan_id"`
	MembershipPlanStudioID       string    `json:"membership_plan_studio_id"`
	MembershipPlanName           string    `json:"membership_plan_name"`
	MembershipPlanKind           string    `json:"membership_plan_kind"`
	MembershipPlanDurationDays   int       `json:"membership_plan_duration_days"`
	MembershipPlanSessionCredits *int      `json:"membership_plan_session_credits,omitempty"`
	MembershipPlanPrice          float64   `json:"membership_plan_price"`
	MembershipPlanCategoryID     *string   `json:"membership_plan_category_id,omitempty"`
	MembershipPlanCreatedAt      time.Time `json:"membership_plan_created_at"`
}

func ToMembershipPlanDTO(m model.MembershipPlanModel) MembershipPlanDTO {
	d := MembershipPlanDTO{
		MembershipPlanID:             m.MembershipPlanID.String(),
		MembershipPlanStudioID:       m.MembershipPlanStudioID.String(),
		MembershipPlanName:           m.MembershipPlanName,
		MembershipPlanKind:           m.MembershipPlanKind,
		MembershipPlanDurationDays:   m.MembershipPlanDurationDays,
		MembershipPlanSessionCredits: m.MembershipPlanSessionCredits,
		MembershipPlanPrice:          m.MembershipPlanPrice,
		MembershipPlanCreatedAt:      m.MembershipPlanCreatedAt,
	}
	if m.MembershipPlanCategoryID != nil {
		s := m.MembershipPlanCategoryID.String()
		d.MembershipPlanCategoryID = &s
	}
	return d
}

func ToMembershipPlanDTOs(ms []model.MembershipPlanModel) []MembershipPlanDTO {
	out := make([]MembershipPlanDTO, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToMembershipPlanDTO(m))
	}
	return out
}
