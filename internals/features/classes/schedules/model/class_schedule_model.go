package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ClassScheduleModel stores recurring schedule rules. Expanding rules into
// concrete class_sessions rows is done by a separate job, not by this service.
type ClassScheduleModel struct {
	ClassScheduleID       uuid.UUID `gorm:"column:class_schedule_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"class_schedule_id"`
	ClassScheduleStudioID uuid.UUID `gorm:"column:class_schedule_studio_id;type:uuid;not null;index" json:"class_schedule_studio_id"`
	ClassScheduleClassID  uuid.UUID `gorm:"column:class_schedule_class_id;type:uuid;not null;index" json:"class_schedule_class_id"`

	// JSON array of ISO weekday numbers (1 = Monday .. 7 = Sunday).
	ClassScheduleWeekdays    datatypes.JSON `gorm:"column:class_schedule_weekdays;type:jsonb" json:"class_schedule_weekdays"`
	ClassScheduleStartTime   string         `gorm:"column:class_schedule_start_time;type:varchar(5);not null" json:"class_schedule_start_time"` // "HH:MM"
	ClassScheduleDurationMin int            `gorm:"column:class_schedule_duration_min;not null" json:"class_schedule_duration_min"`
	ClassScheduleCapacity    *int           `gorm:"column:class_schedule_capacity" json:"class_schedule_capacity"`

	ClassScheduleActive     bool       `gorm:"column:class_schedule_active;default:true" json:"class_schedule_active"`
	ClassScheduleValidFrom  *time.Time `gorm:"column:class_schedule_valid_from" json:"class_schedule_valid_from"`
	ClassScheduleValidUntil *time.Time `gorm:"column:class_schedule_valid_until" json:"class_schedule_valid_until"`

	ClassScheduleCreatedAt time.Time      `gorm:"column:class_schedule_created_at;autoCreateTime" json:"class_schedule_created_at"`
	ClassScheduleUpdatedAt *time.Time     `gorm:"column:class_schedule_updated_at;autoUpdateTime" json:"class_schedule_updated_at"`
	ClassScheduleDeletedAt gorm.DeletedAt `gorm:"column:class_schedule_deleted_at" json:"class_schedule_deleted_at"`
}

func (ClassScheduleModel) TableName() string {
	return "class_schedules"
}

func (m *ClassScheduleModel) BeforeCreate(tx *gorm.DB) error {
	if m.ClassScheduleID == uuid.Nil {
		m.ClassScheduleID = uuid.New()
	}
	return nil
}
