package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	planModel "github.com/nvourlidas/CtGym-sub002/internals/features/memberships/plans/model"
)

const (
	MembershipStatusActive    = "active"
	MembershipStatusFrozen    = "frozen"
	MembershipStatusExpired   = "expired"
	MembershipStatusCancelled = "cancelled"
)

type MembershipModel struct {
	MembershipID       uuid.UUID `gorm:"column:membership_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"membership_id"`
	MembershipStudioID uuid.UUID `gorm:"column:membership_studio_id;type:uuid;not null;index" json:"membership_studio_id"`
	MembershipUserID   uuid.UUID `gorm:"column:membership_user_id;type:uuid;not null;index" json:"membership_user_id"`
	MembershipPlanID   uuid.UUID `gorm:"column:membership_plan_id;type:uuid;not null" json:"membership_plan_id"`

	MembershipStatus   string    `gorm:"column:membership_status;type:varchar(20);not null;default:'active'" json:"membership_status"`
	MembershipStartsAt time.Time `gorm:"column:membership_starts_at;not null" json:"membership_starts_at"`
	MembershipEndsAt   time.Time `gorm:"column:membership_ends_at;not null" json:"membership_ends_at"`

	// Meaningful only for credit-based plans. Never written outside the
	// session-credit ledger. DDL carries CHECK (membership_remaining_sessions >= 0).
	MembershipRemainingSessions *int `gorm:"column:membership_remaining_sessions" json:"membership_remaining_sessions"`

	// Snapshot of the plan at assignment time, kept for historical accuracy even
	// if the plan is later edited or deleted.
	MembershipPlanName  string  `gorm:"column:membership_plan_name;type:varchar(255);not null" json:"membership_plan_name"`
	MembershipPlanPrice float64 `gorm:"column:membership_plan_price;type:numeric(10,2);not null" json:"membership_plan_price"`

	MembershipCreatedAt time.Time      `gorm:"column:membership_created_at;autoCreateTime" json:"membership_created_at"`
	MembershipUpdatedAt *time.Time     `gorm:"column:membership_updated_at;autoUpdateTime" json:"membership_updated_at"`
	MembershipDeletedAt gorm.DeletedAt `gorm:"column:membership_deleted_at" json:"membership_deleted_at"`

	Plan *planModel.MembershipPlanModel `gorm:"foreignKey:MembershipPlanID;references:MembershipPlanID" json:"plan,omitempty"`
}

func (MembershipModel) TableName() string {
	return "memberships"
}

func (m *MembershipModel) BeforeCreate(tx *gorm.DB) error {
	if m.MembershipID == uuid.Nil {
		m.MembershipID = uuid.New()
	}
	return nil
}

// TimeOK reports whether now falls inside the validity window.
func (m *MembershipModel) TimeOK(now time.Time) bool {
	return !now.Before(m.MembershipStartsAt) && !now.After(m.MembershipEndsAt)
}
