package service

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/nvourlidas/CtGym-sub002/internals/constants"
	"github.com/nvourlidas/CtGym-sub002/internals/features/bookings/bookings/model"
	classModel "github.com/nvourlidas/CtGym-sub002/internals/features/classes/classes/model"
	sessionModel "github.com/nvourlidas/CtGym-sub002/internals/features/classes/sessions/model"
	membershipService "github.com/nvourlidas/CtGym-sub002/internals/features/memberships/memberships/service"
)

/* =========================================================
   Admission controller: turns a validated booking request
   into a persisted booking, or fails with a stable token.

   Everything runs inside one transaction. The session row is
   locked first (self-assign UPDATE), which serializes racing
   admissions for the same session, so the duplicate and
   capacity checks that follow cannot be out-run by a
   concurrent insert.
========================================================= */

type AdmissionService struct {
	Eligibility *membershipService.EligibilityService
	Ledger      *membershipService.LedgerService
}

func NewAdmissionService() *AdmissionService {
	return &AdmissionService{
		Eligibility: membershipService.NewEligibilityService(),
		Ledger:      membershipService.NewLedgerService(),
	}
}

type AdmitInput struct {
	StudioID  uuid.UUID
	SessionID uuid.UUID
	UserID    uuid.UUID

	// RequestedType forces the payment mode. nil lets the evaluator decide
	// (members) or defaults to membership with no eligibility check (admins).
	RequestedType *model.BookingType
	AsAdmin       bool
}

func (s *AdmissionService) Admit(db *gorm.DB, now time.Time, in AdmitInput) (*model.BookingModel, error) {
	var booking *model.BookingModel

	err := db.Transaction(func(tx *gorm.DB) error {
		session, class, err := s.loadSessionAndClass(tx, in.StudioID, in.SessionID)
		if err != nil {
			return err
		}
		if err := LockSessionRow(tx, session.ClassSessionID); err != nil {
			return err
		}

		dup, err := s.hasLiveBooking(tx, in.StudioID, in.SessionID, in.UserID, uuid.Nil)
		if err != nil {
			return err
		}
		if dup {
			return fiber.NewError(fiber.StatusConflict, constants.ErrAlreadyBooked)
		}

		if session.HasCapacityLimit() {
			count, err := CountLiveBookings(tx, session.ClassSessionID, uuid.Nil)
			if err != nil {
				return err
			}
			if count >= int64(*session.ClassSessionCapacity) {
				return fiber.NewError(fiber.StatusConflict, constants.ErrSessionFull)
			}
		}

		bookingType, consumeCredit, err := s.selectMode(tx, now, in, class)
		if err != nil {
			return err
		}

		b := &model.BookingModel{
			BookingStudioID:  in.StudioID,
			BookingSessionID: in.SessionID,
			BookingUserID:    in.UserID,
			BookingStatus:    model.BookingStatusBooked,
			BookingType:      bookingType,
		}
		if bookingType == model.BookingTypeDropIn {
			b.BookingDropInPrice = class.ClassDropInPrice
			b.BookingDropInPaid = false
		}
		if err := tx.Create(b).Error; err != nil {
			if isUniqueViolation(err) {
				return fiber.NewError(fiber.StatusConflict, constants.ErrAlreadyBooked)
			}
			return err
		}

		if consumeCredit {
			membershipID, cerr := s.Ledger.Consume(tx, now, in.StudioID, in.UserID, b.BookingID)
			if cerr != nil {
				// Rolling back removes the just-inserted booking: the booking and
				// its funding credit always move together. Admin overrides
				// tolerate members who simply carry no credit membership.
				if merr := mapConsumeError(cerr, in.AsAdmin); merr != nil {
					return merr
				}
			} else if membershipID != uuid.Nil {
				b.BookingMembershipID = &membershipID
			}
		}

		booking = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// selectMode resolves the payment mode for the booking and whether a session
// credit must be consumed.
func (s *AdmissionService) selectMode(tx *gorm.DB, now time.Time, in AdmitInput, class *classModel.ClassModel) (model.BookingType, bool, error) {
	if in.RequestedType != nil && *in.RequestedType == model.BookingTypeDropIn {
		// Explicit drop-in short-circuits the membership path for everyone,
		// admins included.
		if elig := s.Eligibility.EvaluateDropIn(class); elig.Outcome != membershipService.OutcomeUseDropIn {
			return "", false, fiber.NewError(fiber.StatusBadRequest, constants.ErrDropInNotAllowed)
		}
		return model.BookingTypeDropIn, false, nil
	}

	if in.AsAdmin {
		// Trusted operator override: membership mode without an eligibility
		// check. Consume stamps a credit when one exists and tolerates members
		// who carry none.
		return model.BookingTypeMembership, true, nil
	}

	elig, err := s.Eligibility.Evaluate(tx, now, in.StudioID, in.UserID, class)
	if err != nil {
		return "", false, err
	}

	if in.RequestedType != nil && *in.RequestedType == model.BookingTypeMembership {
		if elig.Outcome != membershipService.OutcomeUseMembership {
			return "", false, fiber.NewError(fiber.StatusBadRequest, constants.ErrNoActiveMembership)
		}
		return model.BookingTypeMembership, elig.CreditBased, nil
	}

	switch elig.Outcome {
	case membershipService.OutcomeUseMembership:
		return model.BookingTypeMembership, elig.CreditBased, nil
	case membershipService.OutcomeUseDropIn:
		return model.BookingTypeDropIn, false, nil
	case membershipService.OutcomeIneligible:
		return "", false, fiber.NewError(fiber.StatusBadRequest, constants.ErrNoActiveMembership)
	}
	return "", false, fiber.NewError(fiber.StatusBadRequest, constants.ErrNoActiveMembership)
}

func (s *AdmissionService) loadSessionAndClass(tx *gorm.DB, studioID, sessionID uuid.UUID) (*sessionModel.ClassSessionModel, *classModel.ClassModel, error) {
	var session sessionModel.ClassSessionModel
	if err := tx.Where("class_session_id = ?", sessionID).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fiber.NewError(fiber.StatusNotFound, constants.ErrSessionNotFound)
		}
		return nil, nil, err
	}
	if session.ClassSessionStudioID != studioID {
		return nil, nil, fiber.NewError(fiber.StatusNotFound, constants.ErrSessionWrongTenant)
	}

	var class classModel.ClassModel
	if err := tx.Where("class_id = ?", session.ClassSessionClassID).First(&class).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fiber.NewError(fiber.StatusNotFound, constants.ErrClassNotFound)
		}
		return nil, nil, err
	}
	if class.ClassStudioID != studioID {
		return nil, nil, fiber.NewError(fiber.StatusNotFound, constants.ErrClassNotFound)
	}
	return &session, &class, nil
}

func (s *AdmissionService) hasLiveBooking(tx *gorm.DB, studioID, sessionID, userID, excludeID uuid.UUID) (bool, error) {
	q := tx.Model(&model.BookingModel{}).
		Where("booking_studio_id = ? AND booking_session_id = ? AND booking_user_id = ? AND booking_status IN ?",
			studioID, sessionID, userID, model.LiveStatuses)
	if excludeID != uuid.Nil {
		q = q.Where("booking_id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// LockSessionRow takes a row-level write lock on the session for the duration
// of the surrounding transaction. A self-assign UPDATE is used instead of
// SELECT ... FOR UPDATE so the same code path works on engines without FOR
// UPDATE support.
func LockSessionRow(tx *gorm.DB, sessionID uuid.UUID) error {
	return tx.Exec(
		"UPDATE class_sessions SET class_session_id = class_session_id WHERE class_session_id = ?",
		sessionID,
	).Error
}

// CountLiveBookings counts bookings still occupying a capacity slot, optionally
// excluding one booking (used when reassigning a booking onto its own session).
func CountLiveBookings(tx *gorm.DB, sessionID, excludeBookingID uuid.UUID) (int64, error) {
	q := tx.Model(&model.BookingModel{}).
		Where("booking_session_id = ? AND booking_status IN ?", sessionID, model.LiveStatuses)
	if excludeBookingID != uuid.Nil {
		q = q.Where("booking_id <> ?", excludeBookingID)
	}
	var count int64
	err := q.Count(&count).Error
	return count, err
}

func mapConsumeError(err error, asAdmin bool) error {
	switch {
	case errors.Is(err, membershipService.ErrNoSessionCredit):
		return fiber.NewError(fiber.StatusConflict, constants.ErrNoSessionCredit)
	case errors.Is(err, membershipService.ErrNotCreditBased),
		errors.Is(err, membershipService.ErrNoCreditMembership):
		if asAdmin {
			// Operator override: time-based members and walk-ins without a
			// membership book unfunded.
			return nil
		}
		return fiber.NewError(fiber.StatusBadRequest, constants.ErrNoActiveMembership)
	default:
		return err
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
