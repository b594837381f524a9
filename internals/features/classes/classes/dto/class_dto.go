package dto

import (
	"time"

	"github.com/nvourlidas/CtGym-sub002/internals/features/classes/classes/model"
)

type CreateClassRequest struct {
	ClassName          string   `json:"name" validate:"required,min=2,max=255"`
	ClassCategoryID    *string  `json:"category_id,omitempty" validate:"omitempty,uuid"`
	ClassDropInEnabled bool     `json:"drop_in_enabled"`
	ClassDropInPrice   *float64 `json:"drop_in_price,omitempty" validate:"omitempty,gte=0"`
	ClassTags          []string `json:"tags,omitempty"`
}

type UpdateClassRequest struct {
	ClassName          *string  `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	ClassCategoryID    *string  `json:"category_id,omitempty" validate:"omitempty,uuid"`
	ClassDropInEnabled *bool    `json:"drop_in_enabled,omitempty"`
	ClassDropInPrice   *float64 `json:"drop_in_price,omitempty" validate:"omitempty,gte=0"`
	ClassTags          []string `json:"tags,omitempty"`
}

type ClassDTO struct {
	ClassID            string    `json:"class_id"`
	ClassStudioID      string    `json:"class_studio_id"`
	ClassName          string    `json:"class_name"`
	ClassCategoryID    *string   `json:"class_category_id,omitempty"`
	ClassDropInEnabled bool      `json:"class_drop_in_enabled"`
	ClassDropInPrice   *float64  `json:"class_drop_in_price,omitempty"`
	ClassTags          []string  `json:"class_tags,omitempty"`
	ClassCreatedAt     time.Time `json:"class_created_at"`
}

func ToClassDTO(m model.ClassModel) ClassDTO {
	d := ClassDTO{
		ClassID:            m.ClassID.String(),
		ClassStudioID:      m.ClassStudioID.String(),
		ClassName:          m.ClassName,
		ClassDropInEnabled: m.ClassDropInEnabled,
		ClassDropInPrice:   m.ClassDropInPrice,
		ClassTags:          []string(m.ClassTags),
		ClassCreatedAt:     m.ClassCreatedAt,
	}
	if m.ClassCategoryID != nil {
		s := m.ClassCategoryID.String()
		d.ClassCategoryID = &s
	}
	return d
}

func ToClassDTOs(ms []model.ClassModel) []ClassDTO {
	out := make([]ClassDTO, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToClassDTO(m))
	}
	return out
}
