package dto

import (
	"time"

	"github.com/nvourlidas/CtGym-sub002/internals/features/bookings/bookings/model"
)

// =========================
// Request DTOs
// =========================

type CreateBookingRequest struct {
	BookingSessionID string  `json:"session_id" validate:"required,uuid"`
	BookingUserID    *string `json:"user_id,omitempty" validate:"omitempty,uuid"`
	BookingType      *string `json:"booking_type,omitempty" validate:"omitempty,oneof=membership drop_in"`
}

type CheckinRequest struct {
	CheckinSessionID string `json:"session_id" validate:"required,uuid"`
	CheckinUserID    string `json:"user_id" validate:"required,uuid"`
}

// UpdateBookingRequest drives the lifecycle endpoint: either a target status
// (cancelled, no_show) or a target session (reassign), not both.
type UpdateBookingRequest struct {
	TargetStatus    *string `json:"target_status,omitempty" validate:"omitempty,oneof=cancelled no_show"`
	TargetSessionID *string `json:"target_session_id,omitempty" validate:"omitempty,uuid"`
}

// =========================
// Response DTOs
// =========================

type BookingDTO struct {
	BookingID           string     `json:"booking_id"`
	BookingStudioID     string     `json:"booking_studio_id"`
	BookingSessionID    string     `json:"booking_session_id"`
	BookingUserID       string     `json:"booking_user_id"`
	BookingStatus       string     `json:"booking_status"`
	BookingType         string     `json:"booking_type"`
	BookingMembershipID *string    `json:"booking_membership_id,omitempty"`
	BookingDropInPrice  *float64   `json:"booking_drop_in_price,omitempty"`
	BookingDropInPaid   bool       `json:"booking_drop_in_paid"`
	BookingCreatedAt    time.Time  `json:"booking_created_at"`
	BookingUpdatedAt    *time.Time `json:"booking_updated_at,omitempty"`
}

func ToBookingDTO(m model.BookingModel) BookingDTO {
	d := BookingDTO{
		BookingID:          m.BookingID.String(),
		BookingStudioID:    m.BookingStudioID.String(),
		BookingSessionID:   m.BookingSessionID.String(),
		BookingUserID:      m.BookingUserID.String(),
		BookingStatus:      string(m.BookingStatus),
		BookingType:        string(m.BookingType),
		BookingDropInPrice: m.BookingDropInPrice,
		BookingDropInPaid:  m.BookingDropInPaid,
		BookingCreatedAt:   m.BookingCreatedAt,
		BookingUpdatedAt:   m.BookingUpdatedAt,
	}
	if m.BookingMembershipID != nil {
		s := m.BookingMembershipID.String()
		d.BookingMembershipID = &s
	}
	return d
}

func ToBookingDTOs(ms []model.BookingModel) []BookingDTO {
	out := make([]BookingDTO, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToBookingDTO(m))
	}
	return out
}
