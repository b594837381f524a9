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
	membershipModel "github.com/nvourlidas/CtGym-sub002/internals/features/memberships/memberships/model"
	planModel "github.com/nvourlidas/CtGym-sub002/internals/features/memberships/plans/model"
	"github.com/nvourlidas/CtGym-sub002/internals/testutil"
)

func TestCancelBeforeCutoff(t *testing.T) {
	db := testutil.OpenDB(t)
	now := time.Now().UTC()

	studio := testutil.NewStudio(t, db)
	userID := uuid.New()
	class := testutil.NewClass(t, db, studio.StudioID, true, testutil.Float64Ptr(10))
	session := testutil.NewSession(t, db, studio.StudioID, class.ClassID, now.Add(3*time.Hour), nil, nil)
	booking := testutil.NewBooking(t, db, studio.StudioID, session.ClassSessionID, userID,
		model.BookingStatusBooked, model.BookingTypeDropIn)

	svc := NewLifecycleService()
	cancelled, err := svc.Cancel(db, now, studio.StudioID, booking.BookingID, userID, false)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusCancelled, cancelled.BookingStatus)
}

func TestCancelCutoffEdges(t *testing.T) {
	db := testutil.OpenDB(t)
	now := time.Now().UTC()

	studio := testutil.NewStudio(t, db)
	userID := uuid.New()
	class := testutil.NewClass(t, db, studio.StudioID, true, testutil.Float64Ptr(10))
	svc := NewLifecycleService()

	// Exactly on the 2h cutoff: still allowed.
	onEdge := testutil.NewSession(t, db, studio.StudioID, class.ClassID, now.Add(2*time.Hour), nil, nil)
	edgeBooking := testutil.NewBooking(t, db, studio.StudioID, onEdge.ClassSessionID, userID,
		model.BookingStatusBooked, model.BookingTypeDropIn)
	_, err := svc.Cancel(db, now, studio.StudioID, edgeBooking.BookingID, userID, false)
	require.NoError(t, err)

	// One minute inside the cutoff: rejected.
	inside := testutil.NewSession(t, db, studio.StudioID, class.ClassID, now.Add(119*time.Minute), nil, nil)
	insideBooking := testutil.NewBooking(t, db, studio.StudioID, inside.ClassSessionID, userID,
		model.BookingStatusBooked, model.BookingTypeDropIn)
	_, err = svc.Cancel(db, now, studio.StudioID, insideBooking.BookingID, userID, false)
	requireToken(t, err, fiber.StatusConflict, constants.ErrCancelDeadlinePassed)
}

func TestCancelRestoresNoCredit(t *testing.T) {
	db := testutil.OpenDB(t)
	now := time.Now().UTC()

	studio := testutil.NewStudio(t, db)
	userID := uuid.New()
	plan := testutil.NewPlan(t, db, studio.StudioID, planModel.PlanKindSessions, testutil.IntPtr(10))
	membership := testutil.NewMembership(t, db, studio.StudioID, userID, plan.MembershipPlanID, now, testutil.IntPtr(10))

	class := testutil.NewClass(t, db, studio.StudioID, false, nil)
	session := testutil.NewSession(t, db, studio.StudioID, class.ClassID, now.Add(5*time.Hour), nil, nil)

	admission := NewAdmissionService()
	booking, err := admission.Admit(db, now, AdmitInput{
		StudioID: studio.StudioID, SessionID: session.ClassSessionID, UserID: userID,
	})
	require.NoError(t, err)

	svc := NewLifecycleService()
	_, err = svc.Cancel(db, now, studio.StudioID, booking.BookingID, userID, false)
	require.NoError(t, err)

	// Cancellation keeps the spent credit spent.
	var m membershipModel.MembershipModel
	require.NoError(t, db.First(&m, "membership_id = ?", membership.MembershipID).Error)
	assert.Equal(t, 9, *m.MembershipRemainingSessions)
}

func TestCancelNonBookedStates(t *testing.T) {
	db := testutil.OpenDB(t)
	now := time.Now().UTC()

	studio := testutil.NewStudio(t, db)
	class := testutil.NewClass(t, db, studio.StudioID, true, testutil.Float64Ptr(10))
	session := testutil.NewSession(t, db, studio.StudioID, class.ClassID, now.Add(5*time.Hour), nil, nil)

	svc := NewLifecycleService()
	for _, status := range []model.BookingStatus{
		model.BookingStatusCheckedIn, model.BookingStatusCancelled, model.BookingStatusNoShow,
	} {
		user := uuid.New()
		b := testutil.NewBooking(t, db, studio.StudioID, session.ClassSessionID, user,
			status, model.BookingTypeDropIn)
		_, err := svc.Cancel(db, now, studio.StudioID, b.BookingID, user, false)
		requireToken(t, err, fiber.StatusConflict, constants.ErrBookingNotCancellable)
	}
}

func TestCancelForeignBookingForbidden(t *testing.T) {
	db := testutil.OpenDB(t)
	now := time.Now().UTC()

	studio := testutil.NewStudio(t, db)
	owner := uuid.New()
	class := testutil.NewClass(t, db, studio.StudioID, true, testutil.Float64Ptr(10))
	session := testutil.NewSession(t, db, studio.StudioID, class.ClassID, now.Add(5*time.Hour), nil, nil)
	booking := testutil.NewBooking(t, db, studio.StudioID, session.ClassSessionID, owner,
		model.BookingStatusBooked, model.BookingTypeDropIn)

	svc := NewLifecycleService()
	_, err := svc.Cancel(db, now, studio.StudioID, booking.BookingID, uuid.New(), false)
	requireToken(t, err, fiber.StatusForbidden, constants.ErrForbidden)

	// An admin may cancel anyone's booking.
	_, err = svc.Cancel(db, now, studio.StudioID, booking.BookingID, uuid.New(), true)
	require.NoError(t, err)
}

func TestDeleteRestoresCreditWithBooking(t *testing.T) {
	db := testutil.OpenDB(t)
	now := time.Now().UTC()

	studio := testutil.NewStudio(t, db)
	userID := uuid.New()
	plan := testutil.NewPlan(t, db, studio.StudioID, planModel.PlanKindSessions, testutil.IntPtr(10))
	membership := testutil.NewMembership(t, db, studio.StudioID, userID, plan.MembershipPlanID, now, testutil.IntPtr(10))

	class := testutil.NewClass(t, db, studio.StudioID, false, nil)
	session := testutil.NewSession(t, db, studio.StudioID, class.ClassID, now.Add(5*time.Hour), nil, nil)

	admission := NewAdmissionService()
	booking, err := admission.Admit(db, now, AdmitInput{
		StudioID: studio.StudioID, SessionID: session.ClassSessionID, UserID: userID,
	})
	require.NoError(t, err)

	svc := NewLifecycleService()
	_, err = svc.Delete(db, studio.StudioID, booking.BookingID)
	require.NoError(t, err)

	var m membershipModel.MembershipModel
	require.NoError(t, db.First(&m, "membership_id = ?", membership.MembershipID).Error)
	assert.Equal(t, 10, *m.MembershipRemainingSessions)

	var count int64
	require.NoError(t, db.Model(&model.BookingModel{}).
		Where("booking_id = ?", booking.BookingID).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestDeleteUnknownBooking(t *testing.T) {
	db := testutil.OpenDB(t)
	studio := testutil.NewStudio(t, db)

	svc := NewLifecycleService()
	_, err := svc.Delete(db, studio.StudioID, uuid.New())
	requireToken(t, err, fiber.StatusNotFound, constants.ErrBookingNotFound)
}

func TestMarkNoShowLiveOnly(t *testing.T) {
	db := testutil.OpenDB(t)
	now := time.Now().UTC()

	studio := testutil.NewStudio(t, db)
	class := testutil.NewClass(t, db, studio.StudioID, true, testutil.Float64Ptr(10))
	session := testutil.NewSession(t, db, studio.StudioID, class.ClassID, now.Add(time.Hour), nil, nil)

	live := testutil.NewBooking(t, db, studio.StudioID, session.ClassSessionID, uuid.New(),
		model.BookingStatusBooked, model.BookingTypeDropIn)
	cancelled := testutil.NewBooking(t, db, studio.StudioID, session.ClassSessionID, uuid.New(),
		model.BookingStatusCancelled, model.BookingTypeDropIn)

	svc := NewLifecycleService()
	b, err := svc.MarkNoShow(db, studio.StudioID, live.BookingID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusNoShow, b.BookingStatus)

	_, err = svc.MarkNoShow(db, studio.StudioID, cancelled.BookingID)
	requireToken(t, err, fiber.StatusConflict, constants.ErrInvalidStatus)
}

func TestReassignMovesBooking(t *testing.T) {
	db := testutil.OpenDB(t)
	now := time.Now().UTC()

	studio := testutil.NewStudio(t, db)
	userID := uuid.New()
	class := testutil.NewClass(t, db, studio.StudioID, true, testutil.Float64Ptr(10))
	src := testutil.NewSession(t, db, studio.StudioID, class.ClassID, now.Add(3*time.Hour), nil, nil)
	dst := testutil.NewSession(t, db, studio.StudioID, class.ClassID, now.Add(4*time.Hour), nil, testutil.IntPtr(10))
	booking := testutil.NewBooking(t, db, studio.StudioID, src.ClassSessionID, userID,
		model.BookingStatusBooked, model.BookingTypeDropIn)

	svc := NewLifecycleService()
	moved, err := svc.Reassign(db, studio.StudioID, booking.BookingID, dst.ClassSessionID)
	require.NoError(t, err)
	assert.Equal(t, dst.ClassSessionID, moved.BookingSessionID)
}

func TestReassignToFullSession(t *testing.T) {
	db := testutil.OpenDB(t)
	now := time.Now().UTC()

	studio := testutil.NewStudio(t, db)
	class := testutil.NewClass(t, db, studio.StudioID, true, testutil.Float64Ptr(10))
	src := testutil.NewSession(t, db, studio.StudioID, class.ClassID, now.Add(3*time.Hour), nil, nil)
	dst := testutil.NewSession(t, db, studio.StudioID, class.ClassID, now.Add(4*time.Hour), nil, testutil.IntPtr(1))

	testutil.NewBooking(t, db, studio.StudioID, dst.ClassSessionID, uuid.New(),
		model.BookingStatusBooked, model.BookingTypeDropIn)
	booking := testutil.NewBooking(t, db, studio.StudioID, src.ClassSessionID, uuid.New(),
		model.BookingStatusBooked, model.BookingTypeDropIn)

	svc := NewLifecycleService()
	_, err := svc.Reassign(db, studio.StudioID, booking.BookingID, dst.ClassSessionID)
	requireToken(t, err, fiber.StatusConflict, constants.ErrSessionFull)
}

// Reassigning a booking onto its own full session must not collide with itself.
func TestReassignOntoOwnSession(t *testing.T) {
	db := testutil.OpenDB(t)
	now := time.Now().UTC()

	studio := testutil.NewStudio(t, db)
	userID := uuid.New()
	class := testutil.NewClass(t, db, studio.StudioID, true, testutil.Float64Ptr(10))
	session := testutil.NewSession(t, db, studio.StudioID, class.ClassID, now.Add(3*time.Hour), nil, testutil.IntPtr(1))
	booking := testutil.NewBooking(t, db, studio.StudioID, session.ClassSessionID, userID,
		model.BookingStatusBooked, model.BookingTypeDropIn)

	svc := NewLifecycleService()
	moved, err := svc.Reassign(db, studio.StudioID, booking.BookingID, session.ClassSessionID)
	require.NoError(t, err)
	assert.Equal(t, session.ClassSessionID, moved.BookingSessionID)
}

func TestReassignDuplicateAtDestination(t *testing.T) {
	db := testutil.OpenDB(t)
	now := time.Now().UTC()

	studio := testutil.NewStudio(t, db)
	userID := uuid.New()
	class := testutil.NewClass(t, db, studio.StudioID, true, testutil.Float64Ptr(10))
	src := testutil.NewSession(t, db, studio.StudioID, class.ClassID, now.Add(3*time.Hour), nil, nil)
	dst := testutil.NewSession(t, db, studio.StudioID, class.ClassID, now.Add(4*time.Hour), nil, nil)

	testutil.NewBooking(t, db, studio.StudioID, dst.ClassSessionID, userID,
		model.BookingStatusBooked, model.BookingTypeDropIn)
	booking := testutil.NewBooking(t, db, studio.StudioID, src.ClassSessionID, userID,
		model.BookingStatusBooked, model.BookingTypeDropIn)

	svc := NewLifecycleService()
	_, err := svc.Reassign(db, studio.StudioID, booking.BookingID, dst.ClassSessionID)
	requireToken(t, err, fiber.StatusConflict, constants.ErrAlreadyBooked)
}

func TestReassignAcrossStudios(t *testing.T) {
	db := testutil.OpenDB(t)
	now := time.Now().UTC()

	studioA := testutil.NewStudio(t, db)
	studioB := testutil.NewStudio(t, db)
	classA := testutil.NewClass(t, db, studioA.StudioID, true, testutil.Float64Ptr(10))
	classB := testutil.NewClass(t, db, studioB.StudioID, true, testutil.Float64Ptr(10))
	src := testutil.NewSession(t, db, studioA.StudioID, classA.ClassID, now.Add(3*time.Hour), nil, nil)
	foreign := testutil.NewSession(t, db, studioB.StudioID, classB.ClassID, now.Add(4*time.Hour), nil, nil)
	booking := testutil.NewBooking(t, db, studioA.StudioID, src.ClassSessionID, uuid.New(),
		model.BookingStatusBooked, model.BookingTypeDropIn)

	svc := NewLifecycleService()
	_, err := svc.Reassign(db, studioA.StudioID, booking.BookingID, foreign.ClassSessionID)
	requireToken(t, err, fiber.StatusNotFound, constants.ErrSessionWrongTenant)
}
