package dto

import (
	"time"

	"gorm.io/datatypes"

	"github.com/nvourlidas/CtGym-sub002/internals/features/classes/schedules/model"
)

type CreateClassScheduleRequest struct {
	ClassScheduleClassID     string  `json:"class_id" validate:"required,uuid"`
	ClassScheduleWeekdays    []int   `json:"weekdays" validate:"required,min=1,max=7,dive,min=1,max=7"`
	ClassScheduleStartTime   string  `json:"start_time" validate:"required,len=5"` // "HH:MM"
	ClassScheduleDurationMin int     `json:"duration_min" validate:"required,gt=0"`
	ClassScheduleCapacity    *int    `json:"capacity,omitempty"`
	ClassScheduleValidFrom   *string `json:"valid_from,omitempty"`
	ClassScheduleValidUntil  *string `json:"valid_until,omitempty"`
}

type UpdateClassScheduleRequest struct {
	ClassScheduleWeekdays    []int   `json:"weekdays,omitempty" validate:"omitempty,min=1,max=7,dive,min=1,max=7"`
	ClassScheduleStartTime   *string `json:"start_time,omitempty" validate:"omitempty,len=5"`
	ClassScheduleDurationMin *int    `json:"duration_min,omitempty" validate:"omitempty,gt=0"`
	ClassScheduleCapacity    *int    `json:"capacity,omitempty"`
	ClassScheduleActive      *bool   `json:"active,omitempty"`
}

type ClassScheduleDTO struct {
	ClassScheduleID          string         `json:"class_schedule_id"`
	ClassScheduleStudioID    string         `json:"class_schedule_studio_id"`
	ClassScheduleClassID     string         `json:"class_schedule_class_id"`
	ClassScheduleWeekdays    datatypes.JSON `json:"class_schedule_weekdays"`
	ClassScheduleStartTime   string         `json:"class_schedule_start_time"`
	ClassScheduleDurationMin int            `json:"class_schedule_duration_min"`
	ClassScheduleCapacity    *int           `json:"class_schedule_capacity,omitempty"`
	ClassScheduleActive      bool           `json:"class_schedule_active"`
	ClassScheduleValidFrom   *time.Time     `json:"class_schedule_valid_from,omitempty"`
	ClassScheduleValidUntil  *time.Time     `json:"class_schedule_valid_until,omitempty"`
	ClassScheduleCreatedAt   time.Time      `json:"class_schedule_created_at"`
}

func ToClassScheduleDTO(m model.ClassScheduleModel) ClassScheduleDTO {
	return ClassScheduleDTO{
		ClassScheduleID:          m.ClassScheduleID.String(),
		ClassScheduleStudioID:    m.ClassScheduleStudioID.String(),
		ClassScheduleClassID:     m.ClassScheduleClassID.String(),
		ClassScheduleWeekdays:    m.ClassScheduleWeekdays,
		ClassScheduleStartTime:   m.ClassScheduleStartTime,
		ClassScheduleDurationMin: m.ClassScheduleDurationMin,
		ClassScheduleCapacity:    m.ClassScheduleCapacity,
		ClassScheduleActive:      m.ClassScheduleActive,
		ClassScheduleValidFrom:   m.ClassScheduleValidFrom,
		ClassScheduleValidUntil:  m.ClassScheduleValidUntil,
		ClassScheduleCreatedAt:   m.ClassScheduleCreatedAt,
	}
}

func ToClassScheduleDTOs(ms []model.ClassScheduleModel) []ClassScheduleDTO {
	out := make([]ClassScheduleDTO, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToClassScheduleDTO(m))
	}
	return out
}
