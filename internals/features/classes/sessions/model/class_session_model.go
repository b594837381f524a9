package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClassSessionModel struct {
	ClassSessionID        uuid.UUID  `gorm:"column:class_session_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"class_session_id"`
	ClassSessionStudioID  uuid.UUID  `gorm:"column:class_session_studio_id;type:uuid;not null;index" json:"class_session_studio_id"`
	ClassSessionClassID   uuid.UUID  `gorm:"column:class_session_class_id;type:uuid;not null;index" json:"class_session_class_id"`

	// Set when the session was generated from a recurring schedule rule.
	ClassSessionScheduleID *uuid.UUID `gorm:"column:class_session_schedule_id;type:uuid" json:"class_session_schedule_id"`

	ClassSessionStartsAt time.Time  `gorm:"column:class_session_starts_at;not null;index" json:"class_session_starts_at"`
	ClassSessionEndsAt   *time.Time `gorm:"column:class_session_ends_at" json:"class_session_ends_at"`

	// nil or <= 0 means unbounded.
	ClassSessionCapacity *int `gorm:"column:class_session_capacity" json:"class_session_capacity"`

	ClassSessionCreatedAt time.Time      `gorm:"column:class_session_created_at;autoCreateTime" json:"class_session_created_at"`
	ClassSessionUpdatedAt *time.Time     `gorm:"column:class_session_updated_at;autoUpdateTime" json:"class_session_updated_at"`
	ClassSessionDeletedAt gorm.DeletedAt `gorm:"column:class_session_deleted_at" json:"class_session_deleted_at"`
}

func (ClassSessionModel) TableName() string {
	return "class_sessions"
}

func (m *ClassSessionModel) BeforeCreate(tx *gorm.DB) error {
	if m.ClassSessionID == uuid.Nil {
		m.ClassSessionID = uuid.New()
	}
	return nil
}

// HasCapacityLimit reports whether the session enforces a seat count.
func (m *ClassSessionModel) HasCapacityLimit() bool {
	return m.ClassSessionCapacity != nil && *m.ClassSessionCapacity > 0
}

// CheckinWindow returns the accepted check-in interval. Sessions without an end
// time fall back to a fixed window after start.
func (m *ClassSessionModel) CheckinWindow(earlyMargin, lateMargin, fallback time.Duration) (time.Time, time.Time) {
	from := m.ClassSessionStartsAt.Add(-earlyMargin)
	if m.ClassSessionEndsAt != nil {
		return from, m.ClassSessionEndsAt.Add(lateMargin)
	}
	return from, m.ClassSessionStartsAt.Add(fallback)
}
