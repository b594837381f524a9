package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type ClassModel struct {
	ClassID       uuid.UUID `gorm:"column:class_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"class_id"`
	ClassStudioID uuid.UUID `gorm:"column:class_studio_id;type:uuid;not null;index" json:"class_studio_id"`
	ClassName     string    `gorm:"column:class_name;type:varchar(255);not null" json:"class_name"`

	// Category gates membership-plan eligibility: a plan restricted to a category
	// only covers classes of that category.
	ClassCategoryID *uuid.UUID `gorm:"column:class_category_id;type:uuid" json:"class_category_id"`

	// Drop-in snapshot pricing. The booking copies the price at admission time.
	ClassDropInEnabled bool     `gorm:"column:class_drop_in_enabled;default:false" json:"class_drop_in_enabled"`
	ClassDropInPrice   *float64 `gorm:"column:class_drop_in_price;type:numeric(10,2)" json:"class_drop_in_price"`

	ClassTags pq.StringArray `gorm:"column:class_tags;type:text[]" json:"class_tags"`

	ClassCreatedAt time.Time      `gorm:"column:class_created_at;autoCreateTime" json:"class_created_at"`
	ClassUpdatedAt *time.Time     `gorm:"column:class_updated_at;autoUpdateTime" json:"class_updated_at"`
	ClassDeletedAt gorm.DeletedAt `gorm:"column:class_deleted_at" json:"class_deleted_at"`
}

func (ClassModel) TableName() string {
	return "classes"
}

func (m *ClassModel) BeforeCreate(tx *gorm.DB) error {
	if m.ClassID == uuid.Nil {
		m.ClassID = uuid.New()
	}
	return nil
}
