package service

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvourlidas/CtGym-sub002/internals/constants"
	"github.com/nvourlidas/CtGym-sub002/internals/features/bookings/bookings/model"
	checkinModel "github.com/nvourlidas/CtGym-sub002/internals/features/bookings/checkins/model"
	membershipModel "github.com/nvourlidas/CtGym-sub002/internals/features/memberships/memberships/model"
	planModel "github.com/nvourlidas/CtGym-sub002/internals/features/memberships/plans/model"
	"github.com/nvourlidas/CtGym-sub002/internals/testutil"
)

func TestCheckinPromotesBooking(t *testing.T) {
	db := testutil.OpenDB(t)
	now := time.Now().UTC()

	studio := testutil.NewStudio(t, db)
	userID := uuid.New()
	class := testutil.NewClass(t, db, studio.StudioID, true, testutil.Float64Ptr(10))

	starts := now.Add(10 * time.Minute)
	ends := starts.Add(time.Hour)
	session := testutil.NewSession(t, db, studio.StudioID, class.ClassID, starts, testutil.TimePtr(ends), nil)
	testutil.NewBooking(t, db, studio.StudioID, session.ClassSessionID, userID,
		model.BookingStatusBooked, model.BookingTypeDropIn)

	svc := NewCheckinService()
	booking, err := svc.Checkin(db, now, studio.StudioID, session.ClassSessionID, userID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusCheckedIn, booking.BookingStatus)

	var count int64
	require.NoError(t, db.Model(&checkinModel.CheckinModel{}).
		Where("checkin_session_id = ? AND checkin_user_id = ?", session.ClassSessionID, userID).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCheckinIdempotent(t *testing.T) {
	db := testutil.OpenDB(t)
	now := time.Now().UTC()

	studio := testutil.NewStudio(t, db)
	userID := uuid.New()
	class := testutil.NewClass(t, db, studio.StudioID, true, testutil.Float64Ptr(10))

	starts := now.Add(10 * time.Minute)
	ends := starts.Add(time.Hour)
	session := testutil.NewSession(t, db, studio.StudioID, class.ClassID, starts, testutil.TimePtr(ends), nil)
	testutil.NewBooking(t, db, studio.StudioID, session.ClassSessionID, userID,
		model.BookingStatusBooked, model.BookingTypeDropIn)

	svc := NewCheckinService()
	_, err := svc.Checkin(db, now, studio.StudioID, session.ClassSessionID, userID)
	require.NoError(t, err)

	booking, err := svc.Checkin(db, now, studio.StudioID, session.ClassSessionID, userID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusCheckedIn, booking.BookingStatus)
}

func TestCheckinWindowEdges(t *testing.T) {
	db := testutil.OpenDB(t)
	now := time.Now().UTC()

	studio := testutil.NewStudio(t, db)
	class := testutil.NewClass(t, db, studio.StudioID, true, testutil.Float64Ptr(10))

	// Session starts in 2h with a 30m early margin: still closed.
	starts := now.Add(2 * time.Hour)
	ends := starts.Add(time.Hour)
	session := testutil.NewSession(t, db, studio.StudioID, class.ClassID, starts, testutil.TimePtr(ends), nil)
	userID := uuid.New()
	testutil.NewBooking(t, db, studio.StudioID, session.ClassSessionID, userID,
		model.BookingStatusBooked, model.BookingTypeDropIn)

	svc := NewCheckinService()
	_, err := svc.Checkin(db, now, studio.StudioID, session.ClassSessionID, userID)
	requireToken(t, err, fiber.StatusConflict, constants.ErrOutsideCheckinWindow)

	// Long after the end plus the late margin: closed again.
	_, err = svc.Checkin(db, ends.Add(2*time.Hour), studio.StudioID, session.ClassSessionID, userID)
	requireToken(t, err, fiber.StatusConflict, constants.ErrOutsideCheckinWindow)

	// Exactly at the early-margin boundary: open.
	_, err = svc.Checkin(db, starts.Add(-30*time.Minute), studio.StudioID, session.ClassSessionID, userID)
	require.NoError(t, err)
}

func TestCheckinFallbackWindowWithoutEnd(t *testing.T) {
	db := testutil.OpenDB(t)
	now := time.Now().UTC()

	studio := testutil.NewStudio(t, db)
	class := testutil.NewClass(t, db, studio.StudioID, true, testutil.Float64Ptr(10))

	starts := now.Add(-90 * time.Minute) // inside the 2h fallback window
	session := testutil.NewSession(t, db, studio.StudioID, class.ClassID, starts, nil, nil)
	userID := uuid.New()
	testutil.NewBooking(t, db, studio.StudioID, session.ClassSessionID, userID,
		model.BookingStatusBooked, model.BookingTypeDropIn)

	svc := NewCheckinService()
	_, err := svc.Checkin(db, now, studio.StudioID, session.ClassSessionID, userID)
	require.NoError(t, err)

	// A second session already past its fallback window rejects.
	lateStarts := now.Add(-3 * time.Hour)
	lateSession := testutil.NewSession(t, db, studio.StudioID, class.ClassID, lateStarts, nil, nil)
	otherUser := uuid.New()
	testutil.NewBooking(t, db, studio.StudioID, lateSession.ClassSessionID, otherUser,
		model.BookingStatusBooked, model.BookingTypeDropIn)
	_, err = svc.Checkin(db, now, studio.StudioID, lateSession.ClassSessionID, otherUser)
	requireToken(t, err, fiber.StatusConflict, constants.ErrOutsideCheckinWindow)
}

// Walk-in: no booking exists, the gate creates one and promotes it, consuming a
// credit when the member carries a credit membership.
func TestCheckinWalkInConsumesCredit(t *testing.T) {
	db := testutil.OpenDB(t)
	now := time.Now().UTC()

	studio := testutil.NewStudio(t, db)
	userID := uuid.New()
	plan := testutil.NewPlan(t, db, studio.StudioID, planModel.PlanKindSessions, testutil.IntPtr(5))
	membership := testutil.NewMembership(t, db, studio.StudioID, userID, plan.MembershipPlanID, now, testutil.IntPtr(5))

	class := testutil.NewClass(t, db, studio.StudioID, false, nil)
	starts := now.Add(10 * time.Minute)
	ends := starts.Add(time.Hour)
	session := testutil.NewSession(t, db, studio.StudioID, class.ClassID, starts, testutil.TimePtr(ends), nil)

	svc := NewCheckinService()
	booking, err := svc.Checkin(db, now, studio.StudioID, session.ClassSessionID, userID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusCheckedIn, booking.BookingStatus)
	assert.Equal(t, model.BookingTypeMembership, booking.BookingType)
	require.NotNil(t, booking.BookingMembershipID)
	assert.Equal(t, membership.MembershipID, *booking.BookingMembershipID)

	var m membershipModel.MembershipModel
	require.NoError(t, db.First(&m, "membership_id = ?", membership.MembershipID).Error)
	assert.Equal(t, 4, *m.MembershipRemainingSessions)
}

// Walk-in without any membership is tolerated; the booking stays unfunded.
func TestCheckinWalkInWithoutMembership(t *testing.T) {
	db := testutil.OpenDB(t)
	now := time.Now().UTC()

	studio := testutil.NewStudio(t, db)
	class := testutil.NewClass(t, db, studio.StudioID, false, nil)
	starts := now.Add(10 * time.Minute)
	ends := starts.Add(time.Hour)
	session := testutil.NewSession(t, db, studio.StudioID, class.ClassID, starts, testutil.TimePtr(ends), nil)

	svc := NewCheckinService()
	booking, err := svc.Checkin(db, now, studio.StudioID, session.ClassSessionID, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusCheckedIn, booking.BookingStatus)
	assert.Nil(t, booking.BookingMembershipID)
}

// Deferred consume at the gate aborts when the counter is exhausted; the
// booking stays booked.
func TestCheckinExhaustedCreditAborts(t *testing.T) {
	db := testutil.OpenDB(t)
	now := time.Now().UTC()

	studio := testutil.NewStudio(t, db)
	userID := uuid.New()
	plan := testutil.NewPlan(t, db, studio.StudioID, planModel.PlanKindSessions, testutil.IntPtr(5))
	testutil.NewMembership(t, db, studio.StudioID, userID, plan.MembershipPlanID, now, testutil.IntPtr(0))

	class := testutil.NewClass(t, db, studio.StudioID, false, nil)
	starts := now.Add(10 * time.Minute)
	ends := starts.Add(time.Hour)
	session := testutil.NewSession(t, db, studio.StudioID, class.ClassID, starts, testutil.TimePtr(ends), nil)
	booking := testutil.NewBooking(t, db, studio.StudioID, session.ClassSessionID, userID,
		model.BookingStatusBooked, model.BookingTypeMembership)

	svc := NewCheckinService()
	_, err := svc.Checkin(db, now, studio.StudioID, session.ClassSessionID, userID)
	requireToken(t, err, fiber.StatusConflict, constants.ErrNoSessionCredit)

	var b model.BookingModel
	require.NoError(t, db.First(&b, "booking_id = ?", booking.BookingID).Error)
	assert.Equal(t, model.BookingStatusBooked, b.BookingStatus)
}

func TestCheckinUnknownSession(t *testing.T) {
	db := testutil.OpenDB(t)
	studio := testutil.NewStudio(t, db)

	svc := NewCheckinService()
	_, err := svc.Checkin(db, time.Now().UTC(), studio.StudioID, uuid.New(), uuid.New())
	requireToken(t, err, fiber.StatusNotFound, constants.ErrSessionNotFound)
}
