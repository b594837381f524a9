package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================================================
   Closed enumerations. Unknown values are rejected at the
   boundary instead of being passed through to the store.
========================================================= */

type BookingStatus string

const (
	BookingStatusBooked    BookingStatus = "booked"
	BookingStatusCheckedIn BookingStatus = "checked_in"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusNoShow    BookingStatus = "no_show"
)

func ParseBookingStatus(s string) (BookingStatus, error) {
	switch BookingStatus(s) {
	case BookingStatusBooked, BookingStatusCheckedIn, BookingStatusCancelled, BookingStatusNoShow:
		return BookingStatus(s), nil
	}
	return "", fmt.Errorf("unknown booking status %q", s)
}

// IsLive reports whether the booking still occupies a capacity slot.
func (s BookingStatus) IsLive() bool {
	return s == BookingStatusBooked || s == BookingStatusCheckedIn
}

// LiveStatuses is the SQL-side counterpart of IsLive.
var LiveStatuses = []string{string(BookingStatusBooked), string(BookingStatusCheckedIn)}

type BookingType string

const (
	BookingTypeMembership BookingType = "membership"
	BookingTypeDropIn     BookingType = "drop_in"
)

func ParseBookingType(s string) (BookingType, error) {
	switch BookingType(s) {
	case BookingTypeMembership, BookingTypeDropIn:
		return BookingType(s), nil
	}
	return "", fmt.Errorf("unknown booking type %q", s)
}

/* ================== Model ================== */

type BookingModel struct {
	BookingID        uuid.UUID `gorm:"column:booking_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"booking_id"`
	BookingStudioID  uuid.UUID `gorm:"column:booking_studio_id;type:uuid;not null;index" json:"booking_studio_id"`
	BookingSessionID uuid.UUID `gorm:"column:booking_session_id;type:uuid;not null;index" json:"booking_session_id"`
	BookingUserID    uuid.UUID `gorm:"column:booking_user_id;type:uuid;not null;index" json:"booking_user_id"`

	BookingStatus BookingStatus `gorm:"column:booking_status;type:varchar(20);not null;default:'booked'" json:"booking_status"`
	BookingType   BookingType   `gorm:"column:booking_type;type:varchar(20);not null" json:"booking_type"`

	// Set if and only if a credit-based membership funded this booking; stamped by
	// the ledger consume, never by handlers.
	BookingMembershipID *uuid.UUID `gorm:"column:booking_membership_id;type:uuid" json:"booking_membership_id"`

	// Drop-in snapshot; set iff booking_type = drop_in.
	BookingDropInPrice *float64 `gorm:"column:booking_drop_in_price;type:numeric(10,2)" json:"booking_drop_in_price"`
	BookingDropInPaid  bool     `gorm:"column:booking_drop_in_paid;default:false" json:"booking_drop_in_paid"`

	BookingCreatedAt time.Time  `gorm:"column:booking_created_at;autoCreateTime" json:"booking_created_at"`
	BookingUpdatedAt *time.Time `gorm:"column:booking_updated_at;autoUpdateTime" json:"booking_updated_at"`
}

func (BookingModel) TableName() string {
	return "bookings"
}

func (m *BookingModel) BeforeCreate(tx *gorm.DB) error {
	if m.BookingID == uuid.Nil {
		m.BookingID = uuid.New()
	}
	return nil
}
