package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StudioModel struct {
	StudioID       uuid.UUID      `gorm:"column:studio_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"studio_id"`
	StudioName     string         `gorm:"column:studio_name;type:varchar(255);not null" json:"studio_name"`
	StudioSlug     string         `gorm:"column:studio_slug;type:varchar(120);uniqueIndex;not null" json:"studio_slug"`
	StudioTimezone string         `gorm:"column:studio_timezone;type:varchar(64);default:'UTC'" json:"studio_timezone"`
	StudioCreatedAt time.Time     `gorm:"column:studio_created_at;autoCreateTime" json:"studio_created_at"`
	StudioUpdatedAt *time.Time    `gorm:"column:studio_updated_at;autoUpdateTime" json:"studio_updated_at"`
	StudioDeletedAt gorm.DeletedAt `gorm:"column:studio_deleted_at" json:"studio_deleted_at"`
}

func (StudioModel) TableName() string {
	return "studios"
}

func (m *StudioModel) BeforeCreate(tx *gorm.DB) error {
	if m.StudioID == uuid.Nil {
		m.StudioID = uuid.New()
	}
	return nil
}
