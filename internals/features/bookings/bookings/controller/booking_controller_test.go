package controller_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nvourlidas/CtGym-sub002/internals/configs"
	"github.com/nvourlidas/CtGym-sub002/internals/constants"
	"github.com/nvourlidas/CtGym-sub002/internals/features/bookings/bookings/model"
	"github.com/nvourlidas/CtGym-sub002/internals/features/bookings/bookings/route"
	planModel "github.com/nvourlidas/CtGym-sub002/internals/features/memberships/plans/model"
	helper "github.com/nvourlidas/CtGym-sub002/internals/helpers"
	authMiddleware "github.com/nvourlidas/CtGym-sub002/internals/middlewares/auth"
	"github.com/nvourlidas/CtGym-sub002/internals/testutil"
)

const testSecret = "test-secret"

func newTestApp(db *gorm.DB) *fiber.App {
	configs.JWTSecret = testSecret

	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	member := app.Group("/api/m", authMiddleware.AuthMiddleware())
	admin := app.Group("/api/a", authMiddleware.AuthMiddleware(), authMiddleware.OnlyAdminMiddleware())
	route.BookingMemberRoutes(member, db)
	route.BookingAdminRoutes(admin, db)
	return app
}

func signToken(t *testing.T, userID, studioID uuid.UUID, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":   userID.String(),
		"studio_id": studioID.String(),
		"role":      role,
		"exp":       time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var envelope map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return resp, envelope
}

func TestCreateBookingEndpoint(t *testing.T) {
	db := testutil.OpenDB(t)
	app := newTestApp(db)
	now := time.Now().UTC()

	studio := testutil.NewStudio(t, db)
	userID := uuid.New()
	plan := testutil.NewPlan(t, db, studio.StudioID, planModel.PlanKindSessions, testutil.IntPtr(10))
	testutil.NewMembership(t, db, studio.StudioID, userID, plan.MembershipPlanID, now, testutil.IntPtr(10))
	class := testutil.NewClass(t, db, studio.StudioID, false, nil)
	session := testutil.NewSession(t, db, studio.StudioID, class.ClassID, now.Add(3*time.Hour), nil, testutil.IntPtr(10))

	token := signToken(t, userID, studio.StudioID, constants.RoleMember)
	resp, envelope := doJSON(t, app, http.MethodPost, "/api/m/bookings", token, fiber.Map{
		"session_id": session.ClassSessionID.String(),
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "success", envelope["status"])

	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, string(model.BookingStatusBooked), data["booking_status"])
	assert.Equal(t, string(model.BookingTypeMembership), data["booking_type"])
}

func TestCreateBookingRequiresAuth(t *testing.T) {
	db := testutil.OpenDB(t)
	app := newTestApp(db)

	resp, envelope := doJSON(t, app, http.MethodPost, "/api/m/bookings", "", fiber.Map{
		"session_id": uuid.NewString(),
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, constants.ErrUnauthorized, envelope["message"])
}

func TestCreateBookingDuplicateToken(t *testing.T) {
	db := testutil.OpenDB(t)
	app := newTestApp(db)
	now := time.Now().UTC()

	studio := testutil.NewStudio(t, db)
	userID := uuid.New()
	plan := testutil.NewPlan(t, db, studio.StudioID, planModel.PlanKindSessions, testutil.IntPtr(10))
	testutil.NewMembership(t, db, studio.StudioID, userID, plan.MembershipPlanID, now, testutil.IntPtr(10))
	class := testutil.NewClass(t, db, studio.StudioID, false, nil)
	session := testutil.NewSession(t, db, studio.StudioID, class.ClassID, now.Add(3*time.Hour), nil, nil)

	token := signToken(t, userID, studio.StudioID, constants.RoleMember)
	body := fiber.Map{"session_id": session.ClassSessionID.String()}

	resp, _ := doJSON(t, app, http.MethodPost, "/api/m/bookings", token, body)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, envelope := doJSON(t, app, http.MethodPost, "/api/m/bookings", token, body)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, constants.ErrAlreadyBooked, envelope["message"])
}

func TestMemberCannotBookOnBehalf(t *testing.T) {
	db := testutil.OpenDB(t)
	app := newTestApp(db)
	now := time.Now().UTC()

	studio := testutil.NewStudio(t, db)
	class := testutil.NewClass(t, db, studio.StudioID, true, testutil.Float64Ptr(10))
	session := testutil.NewSession(t, db, studio.StudioID, class.ClassID, now.Add(3*time.Hour), nil, nil)

	token := signToken(t, uuid.New(), studio.StudioID, constants.RoleMember)
	resp, envelope := doJSON(t, app, http.MethodPost, "/api/m/bookings", token, fiber.Map{
		"session_id": session.ClassSessionID.String(),
		"user_id":    uuid.NewString(),
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, constants.ErrForbidden, envelope["message"])
}

func TestAdminCheckinEndpoint(t *testing.T) {
	db := testutil.OpenDB(t)
	app := newTestApp(db)
	now := time.Now().UTC()

	studio := testutil.NewStudio(t, db)
	memberID := uuid.New()
	class := testutil.NewClass(t, db, studio.StudioID, true, testutil.Float64Ptr(10))
	starts := now.Add(10 * time.Minute)
	ends := starts.Add(time.Hour)
	session := testutil.NewSession(t, db, studio.StudioID, class.ClassID, starts, testutil.TimePtr(ends), nil)
	testutil.NewBooking(t, db, studio.StudioID, session.ClassSessionID, memberID,
		model.BookingStatusBooked, model.BookingTypeDropIn)

	adminToken := signToken(t, uuid.New(), studio.StudioID, constants.RoleAdmin)
	resp, envelope := doJSON(t, app, http.MethodPost, "/api/a/checkins", adminToken, fiber.Map{
		"session_id": session.ClassSessionID.String(),
		"user_id":    memberID.String(),
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, string(model.BookingStatusCheckedIn), data["booking_status"])

	// A member token cannot reach the admin group at all.
	memberToken := signToken(t, memberID, studio.StudioID, constants.RoleMember)
	resp, envelope = doJSON(t, app, http.MethodPost, "/api/a/checkins", memberToken, fiber.Map{
		"session_id": session.ClassSessionID.String(),
		"user_id":    memberID.String(),
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, constants.ErrForbidden, envelope["message"])
}

func TestCancelEndpoint(t *testing.T) {
	db := testutil.OpenDB(t)
	app := newTestApp(db)
	now := time.Now().UTC()

	studio := testutil.NewStudio(t, db)
	userID := uuid.New()
	class := testutil.NewClass(t, db, studio.StudioID, true, testutil.Float64Ptr(10))
	session := testutil.NewSession(t, db, studio.StudioID, class.ClassID, now.Add(5*time.Hour), nil, nil)
	booking := testutil.NewBooking(t, db, studio.StudioID, session.ClassSessionID, userID,
		model.BookingStatusBooked, model.BookingTypeDropIn)

	token := signToken(t, userID, studio.StudioID, constants.RoleMember)
	resp, envelope := doJSON(t, app, http.MethodPatch,
		fmt.Sprintf("/api/m/bookings/%s", booking.BookingID), token,
		fiber.Map{"target_status": "cancelled"})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, string(model.BookingStatusCancelled), data["booking_status"])
}

func TestUpdateBookingRejectsUnknownStatus(t *testing.T) {
	db := testutil.OpenDB(t)
	app := newTestApp(db)
	now := time.Now().UTC()

	studio := testutil.NewStudio(t, db)
	userID := uuid.New()
	class := testutil.NewClass(t, db, studio.StudioID, true, testutil.Float64Ptr(10))
	session := testutil.NewSession(t, db, studio.StudioID, class.ClassID, now.Add(5*time.Hour), nil, nil)
	booking := testutil.NewBooking(t, db, studio.StudioID, session.ClassSessionID, userID,
		model.BookingStatusBooked, model.BookingTypeDropIn)

	token := signToken(t, userID, studio.StudioID, constants.RoleMember)
	resp, envelope := doJSON(t, app, http.MethodPatch,
		fmt.Sprintf("/api/m/bookings/%s", booking.BookingID), token,
		fiber.Map{"target_status": "checked_in"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, constants.ErrMissingFields, envelope["message"])
}

func TestListMyBookingsScopedToCaller(t *testing.T) {
	db := testutil.OpenDB(t)
	app := newTestApp(db)
	now := time.Now().UTC()

	studio := testutil.NewStudio(t, db)
	mine := uuid.New()
	other := uuid.New()
	class := testutil.NewClass(t, db, studio.StudioID, true, testutil.Float64Ptr(10))
	session := testutil.NewSession(t, db, studio.StudioID, class.ClassID, now.Add(3*time.Hour), nil, nil)
	testutil.NewBooking(t, db, studio.StudioID, session.ClassSessionID, mine,
		model.BookingStatusBooked, model.BookingTypeDropIn)
	testutil.NewBooking(t, db, studio.StudioID, session.ClassSessionID, other,
		model.BookingStatusBooked, model.BookingTypeDropIn)

	token := signToken(t, mine, studio.StudioID, constants.RoleMember)
	resp, envelope := doJSON(t, app, http.MethodGet, "/api/m/bookings/me", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	items := envelope["data"].([]interface{})
	require.Len(t, items, 1)
	first := items[0].(map[string]interface{})
	assert.Equal(t, mine.String(), first["booking_user_id"])
}
