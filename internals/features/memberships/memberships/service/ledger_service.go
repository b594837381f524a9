package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	bookingModel "github.com/nvourlidas/CtGym-sub002/internals/features/bookings/bookings/model"
	"github.com/nvourlidas/CtGym-sub002/internals/features/memberships/memberships/model"
	planModel "github.com/nvourlidas/CtGym-sub002/internals/features/memberships/plans/model"
)

/* =========================================================
   Session-credit ledger.

   The ONLY code allowed to change membership_remaining_sessions.
   Consume and Restore must be called inside a transaction; the
   guarded single UPDATE is what keeps the counter from going
   negative under concurrent bookings.
========================================================= */

var (
	// ErrNoCreditMembership: the member has no active membership at all.
	ErrNoCreditMembership = errors.New("no active membership")
	// ErrNotCreditBased: the member's current membership is time-based; there is
	// no credit to consume.
	ErrNotCreditBased = errors.New("membership is not credit-based")
	// ErrNoSessionCredit: a credit-based membership exists but its counter is
	// exhausted. Terminal; callers must not retry.
	ErrNoSessionCredit = errors.New("no session credit remaining")
)

type LedgerService struct{}

func NewLedgerService() *LedgerService {
	return &LedgerService{}
}

// Consume re-validates the member's membership under the transaction, decrements
// its remaining sessions by one, and stamps the booking with the funding
// membership id. The decrement is a single conditional UPDATE guarded by
// remaining > 0: two racing transactions both reading remaining = 1 cannot both
// pass the guard, the loser sees zero rows affected and gets ErrNoSessionCredit.
func (s *LedgerService) Consume(tx *gorm.DB, now time.Time, studioID, userID, bookingID uuid.UUID) (uuid.UUID, error) {
	type candidate struct {
		MembershipID       uuid.UUID
		MembershipPlanKind string
	}

	var cand candidate
	err := tx.Table("memberships").
		Select("memberships.membership_id, membership_plans.membership_plan_kind").
		Joins("JOIN membership_plans ON membership_plans.membership_plan_id = memberships.membership_plan_id").
		Where(`
			memberships.membership_studio_id = ?
			AND memberships.membership_user_id = ?
			AND memberships.membership_status = ?
			AND memberships.membership_starts_at <= ?
			AND memberships.membership_ends_at >= ?
			AND memberships.membership_deleted_at IS NULL
		`, studioID, userID, model.MembershipStatusActive, now, now).
		Order("memberships.membership_starts_at DESC").
		Limit(1).
		Scan(&cand).Error
	if err != nil {
		return uuid.Nil, err
	}
	if cand.MembershipID == uuid.Nil {
		return uuid.Nil, ErrNoCreditMembership
	}
	if cand.MembershipPlanKind != planModel.PlanKindSessions {
		return uuid.Nil, ErrNotCreditBased
	}

	res := tx.Model(&model.MembershipModel{}).
		Where("membership_id = ? AND membership_remaining_sessions > 0", cand.MembershipID).
		UpdateColumn("membership_remaining_sessions", gorm.Expr("membership_remaining_sessions - 1"))
	if res.Error != nil {
		return uuid.Nil, res.Error
	}
	if res.RowsAffected == 0 {
		return uuid.Nil, ErrNoSessionCredit
	}

	if err := tx.Model(&bookingModel.BookingModel{}).
		Where("booking_id = ?", bookingID).
		UpdateColumn("booking_membership_id", cand.MembershipID).Error; err != nil {
		return uuid.Nil, err
	}
	return cand.MembershipID, nil
}

// Restore gives one credit back to the membership that funded the booking and
// hard-deletes the booking row, as one unit. Bookings that consumed no credit
// are just deleted.
func (s *LedgerService) Restore(tx *gorm.DB, bookingID uuid.UUID) (*bookingModel.BookingModel, error) {
	var booking bookingModel.BookingModel
	if err := tx.Where("booking_id = ?", bookingID).First(&booking).Error; err != nil {
		return nil, err
	}

	if booking.BookingMembershipID != nil {
		if err := tx.Model(&model.MembershipModel{}).
			Where("membership_id = ? AND membership_remaining_sessions IS NOT NULL", *booking.BookingMembershipID).
			UpdateColumn("membership_remaining_sessions", gorm.Expr("membership_remaining_sessions + 1")).Error; err != nil {
			return nil, err
		}
	}

	if err := tx.Where("booking_id = ?", bookingID).
		Delete(&bookingModel.BookingModel{}).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}
