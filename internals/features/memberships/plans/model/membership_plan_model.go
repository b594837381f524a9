package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Plan kinds. "sessions" plans meter usage by a credit count; anything else is
// a calendar (time-based) plan.
const (
	PlanKindSessions = "sessions"
	PlanKindTime     = "time"
)

type MembershipPlanModel struct {
	MembershipPlanID       uuid.UUID `gorm:"column:membership_plan_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"membership_plan_id"`
	MembershipPlanStudioID uuid.UUID `gorm:"column:membership_plan_studio_id;type:uuid;not null;index" json:"membership_plan_studio_id"`
	MembershipPlanName     string    `gorm:"column:membership_plan_name;type:varchar(255);not null" json:"membership_plan_name"`

	MembershipPlanKind           string  `gorm:"column:membership_plan_kind;type:varchar(20);not null;default:'time'" json:"membership_plan_kind"`
	MembershipPlanDurationDays   int     `gorm:"column:membership_plan_duration_days;not null" json:"membership_plan_duration_days"`
	MembershipPlanSessionCredits *int    `gorm:"column:membership_plan_session_credits" json:"membership_plan_session_credits"`
	MembershipPlanPrice          float64 `gorm:"column:membership_plan_price;type:numeric(10,2);not null" json:"membership_plan_price"`

	// Optional category restriction matched against class_category_id.
	MembershipPlanCategoryID *uuid.UUID `gorm:"column:membership_plan_category_id;type:uuid" json:"membership_plan_category_id"`

	MembershipPlanCreatedAt time.Time      `gorm:"column:membership_plan_created_at;autoCreateTime" json:"membership_plan_created_at"`
	MembershipPlanUpdatedAt *time.Time     `gorm:"column:membership_plan_updated_at;autoUpdateTime" json:"membership_plan_updated_at"`
	MembershipPlanDeletedAt gorm.DeletedAt `gorm:"column:membership_plan_deleted_at" json:"membership_plan_deleted_at"`
}

func (MembershipPlanModel) TableName() string {
	return "membership_plans"
}

func (m *MembershipPlanModel) BeforeCreate(tx *gorm.DB) error {
	if m.MembershipPlanID == uuid.Nil {
		m.MembershipPlanID = uuid.New()
	}
	return nil
}

// IsCreditBased reports whether usage is metered by session credits.
func (m *MembershipPlanModel) IsCreditBased() bool {
	return m.MembershipPlanKind == PlanKindSessions
}
