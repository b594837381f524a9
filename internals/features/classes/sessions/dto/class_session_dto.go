package dto

import (
	"time"

	"github.com/nvourlidas/CtGym-sub002/internals/features/classes/sessions/model"
)

type CreateClassSessionRequest struct {
	ClassSessionClassID  string  `json:"class_id" validate:"required,uuid"`
	ClassSessionStartsAt string  `json:"starts_at" validate:"required"` // RFC3339
	ClassSessionEndsAt   *string `json:"ends_at,omitempty"`
	ClassSessionCapacity *int    `json:"capacity,omitempty"`
}

type UpdateClassSessionRequest struct {
	ClassSessionStartsAt *string `json:"starts_at,omitempty"`
	ClassSessionEndsAt   *string `json:"ends_at,omitempty"`
	ClassSessionCapacity *int    `json:"capacity,omitempty"`
}

type ClassSessionDTO struct {
	ClassSessionID         string     `json:"class_session_id"`
	ClassSessionStudioID   string     `json:"class_session_studio_id"`
	ClassSessionClassID    string     `json:"class_session_class_id"`
	ClassSessionScheduleID *string    `json:"class_session_schedule_id,omitempty"`
	ClassSessionStartsAt   time.Time  `json:"class_session_starts_at"`
	ClassSessionEndsAt     *time.Time `json:"class_session_ends_at,omitempty"`
	ClassSessionCapacity   *int       `json:"class_session_capacity,omitempty"`
	ClassSessionCreatedAt  time.Time  `json:"class_session_created_at"`
}

func ToClassSessionDTO(m model.ClassSessionModel) ClassSessionDTO {
	d := ClassSessionDTO{
		ClassSessionID:        m.ClassSessionID.String(),
		ClassSessionStudioID:  m.ClassSessionStudioID.String(),
		ClassSessionClassID:   m.ClassSessionClassID.String(),
		ClassSessionStartsAt:  m.ClassSessionStartsAt,
		ClassSessionEndsAt:    m.ClassSessionEndsAt,
		ClassSessionCapacity:  m.ClassSessionCapacity,
		ClassSessionCreatedAt: m.ClassSessionCreatedAt,
	}
	if m.ClassSessionScheduleID != nil {
		s := m.ClassSessionScheduleID.String()
		d.ClassSessionScheduleID = &s
	}
	return d
}

func ToClassSessionDTOs(ms []model.ClassSessionModel) []ClassSessionDTO {
	out := make([]ClassSessionDTO, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToClassSessionDTO(m))
	}
	return out
}
