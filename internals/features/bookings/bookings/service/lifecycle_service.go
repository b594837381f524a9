package service

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nvourlidas/CtGym-sub002/internals/configs"
	"github.com/nvourlidas/CtGym-sub002/internals/constants"
	"github.com/nvourlidas/CtGym-sub002/internals/features/bookings/bookings/model"
	sessionModel "github.com/nvourlidas/CtGym-sub002/internals/features/classes/sessions/model"
	membershipService "github.com/nvourlidas/CtGym-sub002/internals/features/memberships/memberships/service"
)

/* =========================================================
   Lifecycle mutator: cancel, no-show, delete-and-restore,
   reassign. A booking is never resurrected after
   cancellation or deletion; members rebook instead.
========================================================= */

type LifecycleService struct {
	Ledger *membershipService.LedgerService
}

func NewLifecycleService() *LifecycleService {
	return &LifecycleService{Ledger: membershipService.NewLedgerService()}
}

// Cancel flips a booked booking to cancelled, enforcing the cutoff deadline.
// Cancellation alone restores no credit: before the deadline it is a free
// rebooking opportunity, not a refund. Pair with Delete for refunds.
func (s *LifecycleService) Cancel(db *gorm.DB, now time.Time, studioID, bookingID, callerUserID uuid.UUID, asAdmin bool) (*model.BookingModel, error) {
	var booking *model.BookingModel

	err := db.Transaction(func(tx *gorm.DB) error {
		b, err := s.loadBooking(tx, studioID, bookingID)
		if err != nil {
			return err
		}
		if !asAdmin && b.BookingUserID != callerUserID {
			return fiber.NewError(fiber.StatusForbidden, constants.ErrForbidden)
		}

		switch b.BookingStatus {
		case model.BookingStatusBooked:
			// cancellable
		case model.BookingStatusCheckedIn, model.BookingStatusCancelled, model.BookingStatusNoShow:
			return fiber.NewError(fiber.StatusConflict, constants.ErrBookingNotCancellable)
		default:
			return fiber.NewError(fiber.StatusConflict, constants.ErrInvalidStatus)
		}

		var session sessionModel.ClassSessionModel
		if err := tx.Where("class_session_id = ?", b.BookingSessionID).First(&session).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, constants.ErrSessionNotFound)
			}
			return err
		}
		if now.After(session.ClassSessionStartsAt.Add(-configs.CancelCutoff)) {
			return fiber.NewError(fiber.StatusConflict, constants.ErrCancelDeadlinePassed)
		}

		if err := tx.Model(b).
			UpdateColumn("booking_status", model.BookingStatusCancelled).Error; err != nil {
			return err
		}
		b.BookingStatus = model.BookingStatusCancelled
		booking = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// MarkNoShow is an admin-only transition for live bookings.
func (s *LifecycleService) MarkNoShow(db *gorm.DB, studioID, bookingID uuid.UUID) (*model.BookingModel, error) {
	var booking *model.BookingModel

	err := db.Transaction(func(tx *gorm.DB) error {
		b, err := s.loadBooking(tx, studioID, bookingID)
		if err != nil {
			return err
		}
		if !b.BookingStatus.IsLive() {
			return fiber.NewError(fiber.StatusConflict, constants.ErrInvalidStatus)
		}
		if err := tx.Model(b).
			UpdateColumn("booking_status", model.BookingStatusNoShow).Error; err != nil {
			return err
		}
		b.BookingStatus = model.BookingStatusNoShow
		booking = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// Delete hard-deletes a booking through the ledger so the row and its funding
// credit always move together.
func (s *LifecycleService) Delete(db *gorm.DB, studioID, bookingID uuid.UUID) (*model.BookingModel, error) {
	var booking *model.BookingModel

	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.loadBooking(tx, studioID, bookingID); err != nil {
			return err
		}
		b, err := s.Ledger.Restore(tx, bookingID)
		if err != nil {
			return err
		}
		booking = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// Reassign moves a live booking to another session of the same studio,
// re-running the duplicate and capacity checks against the destination under
// its row lock. The booking's own row is excluded from the counts so moving a
// booking onto its current session is a no-op, not a self-collision.
func (s *LifecycleService) Reassign(db *gorm.DB, studioID, bookingID, targetSessionID uuid.UUID) (*model.BookingModel, error) {
	var booking *model.BookingModel

	err := db.Transaction(func(tx *gorm.DB) error {
		b, err := s.loadBooking(tx, studioID, bookingID)
		if err != nil {
			return err
		}
		if !b.BookingStatus.IsLive() {
			return fiber.NewError(fiber.StatusConflict, constants.ErrInvalidStatus)
		}

		var target sessionModel.ClassSessionModel
		if err := tx.Where("class_session_id = ?", targetSessionID).First(&target).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, constants.ErrSessionNotFound)
			}
			return err
		}
		if target.ClassSessionStudioID != studioID {
			return fiber.NewError(fiber.StatusNotFound, constants.ErrSessionWrongTenant)
		}
		if err := LockSessionRow(tx, target.ClassSessionID); err != nil {
			return err
		}

		var dupCount int64
		if err := tx.Model(&model.BookingModel{}).
			Where("booking_studio_id = ? AND booking_session_id = ? AND booking_user_id = ? AND booking_status IN ? AND booking_id <> ?",
				studioID, target.ClassSessionID, b.BookingUserID, model.LiveStatuses, b.BookingID).
			Count(&dupCount).Error; err != nil {
			return err
		}
		if dupCount > 0 {
			return fiber.NewError(fiber.StatusConflict, constants.ErrAlreadyBooked)
		}

		if target.HasCapacityLimit() {
			count, err := CountLiveBookings(tx, target.ClassSessionID, b.BookingID)
			if err != nil {
				return err
			}
			if count >= int64(*target.ClassSessionCapacity) {
				return fiber.NewError(fiber.StatusConflict, constants.ErrSessionFull)
			}
		}

		if err := tx.Model(b).
			UpdateColumn("booking_session_id", target.ClassSessionID).Error; err != nil {
			return err
		}
		b.BookingSessionID = target.ClassSessionID
		booking = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *LifecycleService) loadBooking(tx *gorm.DB, studioID, bookingID uuid.UUID) (*model.BookingModel, error) {
	var b model.BookingModel
	if err := tx.Where("booking_id = ?", bookingID).First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, constants.ErrBookingNotFound)
		}
		return nil, err
	}
	if b.BookingStudioID != studioID {
		return nil, fiber.NewError(fiber.StatusNotFound, constants.ErrTenantMismatch)
	}
	return &b, nil
}
