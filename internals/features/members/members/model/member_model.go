package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MemberModel struct {
	MemberID       uuid.UUID `gorm:"column:member_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"member_id"`
	MemberStudioID uuid.UUID `gorm:"column:member_studio_id;type:uuid;not null;index" json:"member_studio_id"`

	// Identity reference. Auth is external; the member row holds the profile the
	// studio sees.
	MemberUserID   uuid.UUID `gorm:"column:member_user_id;type:uuid;not null;index" json:"member_user_id"`
	MemberFullName string    `gorm:"column:member_full_name;type:varchar(255);not null" json:"member_full_name"`
	MemberEmail    *string   `gorm:"column:member_email;type:varchar(255)" json:"member_email"`
	MemberPhone    *string   `gorm:"column:member_phone;type:varchar(40)" json:"member_phone"`
	MemberActive   bool      `gorm:"column:member_active;default:true" json:"member_active"`

	MemberCreatedAt time.Time      `gorm:"column:member_created_at;autoCreateTime" json:"member_created_at"`
	MemberUpdatedAt *time.Time     `gorm:"column:member_updated_at;autoUpdateTime" json:"member_updated_at"`
	MemberDeletedAt gorm.DeletedAt `gorm:"column:member_deleted_at" json:"member_deleted_at"`
}

func (MemberModel) TableName() string {
	return "members"
}

func (m *MemberModel) BeforeCreate(tx *gorm.DB) error {
	if m.MemberID == uuid.Nil {
		m.MemberID = uuid.New()
	}
	return nil
}
