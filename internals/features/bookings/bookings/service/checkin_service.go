package service

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nvourlidas/CtGym-sub002/internals/configs"
	"github.com/nvourlidas/CtGym-sub002/internals/constants"
	"github.com/nvourlidas/CtGym-sub002/internals/features/bookings/bookings/model"
	checkinModel "github.com/nvourlidas/CtGym-sub002/internals/features/bookings/checkins/model"
	sessionModel "github.com/nvourlidas/CtGym-sub002/internals/features/classes/sessions/model"
	membershipService "github.com/nvourlidas/CtGym-sub002/internals/features/memberships/memberships/service"
)

/* =========================================================
   Check-in gate: booked -> checked_in inside the session's
   time window. Walk-ins get a booking created on the spot.
========================================================= */

type CheckinService struct {
	Ledger *membershipService.LedgerService
}

func NewCheckinService() *CheckinService {
	return &CheckinService{Ledger: membershipService.NewLedgerService()}
}

func (s *CheckinService) Checkin(db *gorm.DB, now time.Time, studioID, sessionID, userID uuid.UUID) (*model.BookingModel, error) {
	var booking *model.BookingModel

	err := db.Transaction(func(tx *gorm.DB) error {
		var session sessionModel.ClassSessionModel
		if err := tx.Where("class_session_id = ?", sessionID).First(&session).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, constants.ErrSessionNotFound)
			}
			return err
		}
		if session.ClassSessionStudioID != studioID {
			return fiber.NewError(fiber.StatusNotFound, constants.ErrSessionWrongTenant)
		}

		from, until := session.CheckinWindow(
			configs.CheckinEarlyMargin,
			configs.CheckinLateMargin,
			configs.CheckinFallbackWindow,
		)
		if now.Before(from) || now.After(until) {
			return fiber.NewError(fiber.StatusConflict, constants.ErrOutsideCheckinWindow)
		}

		var b model.BookingModel
		err := tx.Where("booking_studio_id = ? AND booking_session_id = ? AND booking_user_id = ? AND booking_status IN ?",
			studioID, sessionID, userID, model.LiveStatuses).
			First(&b).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			// Walk-in: create the booking on the spot, then promote it. The front
			// desk admits the member, so capacity is not re-checked here.
			b = model.BookingModel{
				BookingStudioID:  studioID,
				BookingSessionID: sessionID,
				BookingUserID:    userID,
				BookingStatus:    model.BookingStatusBooked,
				BookingType:      model.BookingTypeMembership,
			}
			if err := tx.Create(&b).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		case b.BookingStatus == model.BookingStatusCheckedIn:
			// Idempotent: re-checking an already checked-in booking is a no-op.
			booking = &b
			return nil
		}

		// Membership bookings that have not yet consumed a credit do so now.
		// Members without a credit system (time-based plan or none at all) pass
		// through; an exhausted counter aborts the transition.
		if b.BookingType == model.BookingTypeMembership && b.BookingMembershipID == nil {
			membershipID, cerr := s.Ledger.Consume(tx, now, studioID, userID, b.BookingID)
			switch {
			case cerr == nil:
				b.BookingMembershipID = &membershipID
			case errors.Is(cerr, membershipService.ErrNotCreditBased),
				errors.Is(cerr, membershipService.ErrNoCreditMembership):
				// tolerated
			case errors.Is(cerr, membershipService.ErrNoSessionCredit):
				return fiber.NewError(fiber.StatusConflict, constants.ErrNoSessionCredit)
			default:
				return cerr
			}
		}

		if err := tx.Model(&b).
			UpdateColumn("booking_status", model.BookingStatusCheckedIn).Error; err != nil {
			return err
		}
		b.BookingStatus = model.BookingStatusCheckedIn

		// Attendance record; duplicates are ignored, absence never aborts a
		// completed check-in.
		checkin := checkinModel.CheckinModel{
			CheckinStudioID:  studioID,
			CheckinSessionID: sessionID,
			CheckinUserID:    userID,
			CheckinAt:        now,
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&checkin).Error; err != nil {
			return err
		}

		booking = &b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}
