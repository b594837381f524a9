package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CheckinModel records physical attendance. Informational only; billing follows
// the booking, not this row.
type CheckinModel struct {
	CheckinID        uuid.UUID `gorm:"column:checkin_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"checkin_id"`
	CheckinStudioID  uuid.UUID `gorm:"column:checkin_studio_id;type:uuid;not null;index" json:"checkin_studio_id"`
	CheckinSessionID uuid.UUID `gorm:"column:checkin_session_id;type:uuid;not null;uniqueIndex:uq_checkin_session_user" json:"checkin_session_id"`
	CheckinUserID    uuid.UUID `gorm:"column:checkin_user_id;type:uuid;not null;uniqueIndex:uq_checkin_session_user" json:"checkin_user_id"`
	CheckinAt        time.Time `gorm:"column:checkin_at;autoCreateTime" json:"checkin_at"`
}

func (CheckinModel) TableName() string {
	return "checkins"
}

func (m *CheckinModel) BeforeCreate(tx *gorm.DB) error {
	if m.CheckinID == uuid.Nil {
		m.CheckinID = uuid.New()
	}
	return nil
}
