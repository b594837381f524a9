package service

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	bookingModel "github.com/nvourlidas/CtGym-sub002/internals/features/bookings/bookings/model"
	"github.com/nvourlidas/CtGym-sub002/internals/features/memberships/memberships/model"
	planModel "github.com/nvourlidas/CtGym-sub002/internals/features/memberships/plans/model"
	"github.com/nvourlidas/CtGym-sub002/internals/testutil"
)

func TestConsumeDecrementsAndStampsBooking(t *testing.T) {
	db := testutil.OpenDB(t)
	now := time.Now().UTC()

	studio := testutil.NewStudio(t, db)
	userID := uuid.New()
	plan := testutil.NewPlan(t, db, studio.StudioID, planModel.PlanKindSessions, testutil.IntPtr(10))
	membership := testutil.NewMembership(t, db, studio.StudioID, userID, plan.MembershipPlanID, now, testutil.IntPtr(10))

	class := testutil.NewClass(t, db, studio.StudioID, false, nil)
	session := testutil.NewSession(t, db, studio.StudioID, class.ClassID, now.Add(time.Hour), nil, nil)
	booking := testutil.NewBooking(t, db, studio.StudioID, session.ClassSessionID, userID,
		bookingModel.BookingStatusBooked, bookingModel.BookingTypeMembership)

	ledger := NewLedgerService()
	err := db.Transaction(func(tx *gorm.DB) error {
		id, err := ledger.Consume(tx, now, studio.StudioID, userID, booking.BookingID)
		require.NoError(t, err)
		assert.Equal(t, membership.MembershipID, id)
		return nil
	})
	require.NoError(t, err)

	var m model.MembershipModel
	require.NoError(t, db.First(&m, "membership_id = ?", membership.MembershipID).Error)
	require.NotNil(t, m.MembershipRemainingSessions)
	assert.Equal(t, 9, *m.MembershipRemainingSessions)

	var b bookingModel.BookingModel
	require.NoError(t, db.First(&b, "booking_id = ?", booking.BookingID).Error)
	require.NotNil(t, b.BookingMembershipID)
	assert.Equal(t, membership.MembershipID, *b.BookingMembershipID)
}

func TestConsumeWithoutMembership(t *testing.T) {
	db := testutil.OpenDB(t)
	now := time.Now().UTC()

	studio := testutil.NewStudio(t, db)

	ledger := NewLedgerService()
	err := db.Transaction(func(tx *gorm.DB) error {
		_, err := ledger.Consume(tx, now, studio.StudioID, uuid.New(), uuid.New())
		return err
	})
	assert.ErrorIs(t, err, ErrNoCreditMembership)
}

func TestConsumeTimeBasedPlan(t *testing.T) {
	db := testutil.OpenDB(t)
	now := time.Now().UTC()

	studio := testutil.NewStudio(t, db)
	userID := uuid.New()
	plan := testutil.NewPlan(t, db, studio.StudioID, planModel.PlanKindTime, nil)
	testutil.NewMembership(t, db, studio.StudioID, userID, plan.MembershipPlanID, now, nil)

	ledger := NewLedgerService()
	err := db.Transaction(func(tx *gorm.DB) error {
		_, err := ledger.Consume(tx, now, studio.StudioID, userID, uuid.New())
		return err
	})
	assert.ErrorIs(t, err, ErrNotCreditBased)
}

func TestConsumeExhaustedCounter(t *testing.T) {
	db := testutil.OpenDB(t)
	now := time.Now().UTC()

	studio := testutil.NewStudio(t, db)
	userID := uuid.New()
	plan := testutil.NewPlan(t, db, studio.StudioID, planModel.PlanKindSessions, testutil.IntPtr(10))
	membership := testutil.NewMembership(t, db, studio.StudioID, userID, plan.MembershipPlanID, now, testutil.IntPtr(0))

	ledger := NewLedgerService()
	err := db.Transaction(func(tx *gorm.DB) error {
		_, err := ledger.Consume(tx, now, studio.StudioID, userID, uuid.New())
		return err
	})
	assert.ErrorIs(t, err, ErrNoSessionCredit)

	// The counter never moved.
	var m model.MembershipModel
	require.NoError(t, db.First(&m, "membership_id = ?", membership.MembershipID).Error)
	assert.Equal(t, 0, *m.MembershipRemainingSessions)
}

// One credit, many racing consumers: exactly one wins, the counter lands on
// zero and never goes below it.
func TestConcurrentConsumeSingleCredit(t *testing.T) {
	db := testutil.OpenDB(t)
	now := time.Now().UTC()

	studio := testutil.NewStudio(t, db)
	userID := uuid.New()
	plan := testutil.NewPlan(t, db, studio.StudioID, planModel.PlanKindSessions, testutil.IntPtr(1))
	membership := testutil.NewMembership(t, db, studio.StudioID, userID, plan.MembershipPlanID, now, testutil.IntPtr(1))

	class := testutil.NewClass(t, db, studio.StudioID, false, nil)

	const workers = 8
	ledger := NewLedgerService()
	results := make(chan error, workers)

	bookingIDs := make([]uuid.UUID, 0, workers)
	for i := 0; i < workers; i++ {
		session := testutil.NewSession(t, db, studio.StudioID, class.ClassID,
			now.Add(time.Duration(i+1)*time.Hour), nil, nil)
		booking := testutil.NewBooking(t, db, studio.StudioID, session.ClassSessionID, userID,
			bookingModel.BookingStatusBooked, bookingModel.BookingTypeMembership)
		bookingIDs = append(bookingIDs, booking.BookingID)
	}

	var wg sync.WaitGroup
	for _, id := range bookingIDs {
		wg.Add(1)
		go func(bookingID uuid.UUID) {
			defer wg.Done()
			results <- db.Transaction(func(tx *gorm.DB) error {
				_, err := ledger.Consume(tx, now, studio.StudioID, userID, bookingID)
				return err
			})
		}(id)
	}
	wg.Wait()
	close(results)

	wins, losses := 0, 0
	for err := range results {
		switch {
		case err == nil:
			wins++
		default:
			require.ErrorIs(t, err, ErrNoSessionCredit)
			losses++
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, workers-1, losses)

	var m model.MembershipModel
	require.NoError(t, db.First(&m, "membership_id = ?", membership.MembershipID).Error)
	assert.Equal(t, 0, *m.MembershipRemainingSessions)
}

func TestRestoreReturnsCreditAndDeletesBooking(t *testing.T) {
	db := testutil.OpenDB(t)
	now := time.Now().UTC()

	studio := testutil.NewStudio(t, db)
	userID := uuid.New()
	plan := testutil.NewPlan(t, db, studio.StudioID, planModel.PlanKindSessions, testutil.IntPtr(10))
	membership := testutil.NewMembership(t, db, studio.StudioID, userID, plan.MembershipPlanID, now, testutil.IntPtr(10))

	class := testutil.NewClass(t, db, studio.StudioID, false, nil)
	session := testutil.NewSession(t, db, studio.StudioID, class.ClassID, now.Add(time.Hour), nil, nil)
	booking := testutil.NewBooking(t, db, studio.StudioID, session.ClassSessionID, userID,
		bookingModel.BookingStatusBooked, bookingModel.BookingTypeMembership)

	ledger := NewLedgerService()
	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		_, err := ledger.Consume(tx, now, studio.StudioID, userID, booking.BookingID)
		return err
	}))

	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		deleted, err := ledger.Restore(tx, booking.BookingID)
		require.NoError(t, err)
		assert.Equal(t, booking.BookingID, deleted.BookingID)
		return nil
	}))

	var m model.MembershipModel
	require.NoError(t, db.First(&m, "membership_id = ?", membership.MembershipID).Error)
	assert.Equal(t, 10, *m.MembershipRemainingSessions)

	var count int64
	require.NoError(t, db.Model(&bookingModel.BookingModel{}).
		Where("booking_id = ?", booking.BookingID).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestRestoreDropInOnlyDeletes(t *testing.T) {
	db := testutil.OpenDB(t)
	now := time.Now().UTC()

	studio := testutil.NewStudio(t, db)
	class := testutil.NewClass(t, db, studio.StudioID, true, testutil.Float64Ptr(10))
	session := testutil.NewSession(t, db, studio.StudioID, class.ClassID, now.Add(time.Hour), nil, nil)
	booking := testutil.NewBooking(t, db, studio.StudioID, session.ClassSessionID, uuid.New(),
		bookingModel.BookingStatusBooked, bookingModel.BookingTypeDropIn)

	ledger := NewLedgerService()
	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		_, err := ledger.Restore(tx, booking.BookingID)
		return err
	}))

	var count int64
	require.NoError(t, db.Model(&bookingModel.BookingModel{}).
		Where("booking_id = ?", booking.BookingID).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}
