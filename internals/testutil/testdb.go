// Package testutil wires an in-memory SQLite database for package tests. The
// schema mirrors the SQL migrations with engine-neutral column types; the pool
// is pinned to a single connection so concurrent test transactions serialize
// instead of tripping SQLITE_BUSY.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	bookingModel "github.com/nvourlidas/CtGym-sub002/internals/features/bookings/bookings/model"
	classModel "github.com/nvourlidas/CtGym-sub002/internals/features/classes/classes/model"
	sessionModel "github.com/nvourlidas/CtGym-sub002/internals/features/classes/sessions/model"
	membershipModel "github.com/nvourlidas/CtGym-sub002/internals/features/memberships/memberships/model"
	planModel "github.com/nvourlidas/CtGym-sub002/internals/features/memberships/plans/model"
	studioModel "github.com/nvourlidas/CtGym-sub002/internals/features/studios/studios/model"
)

var dbSeq atomic.Int64

const schemaDDL = `
CREATE TABLE studios (
    studio_id         TEXT PRIMARY KEY,
    studio_name       TEXT NOT NULL,
    studio_slug       TEXT NOT NULL UNIQUE,
    studio_timezone   TEXT NOT NULL DEFAULT 'UTC',
    studio_created_at DATETIME,
    studio_updated_at DATETIME,
    studio_deleted_at DATETIME
);

CREATE TABLE members (
    member_id         TEXT PRIMARY KEY,
    member_studio_id  TEXT NOT NULL,
    member_user_id    TEXT NOT NULL,
    member_full_name  TEXT NOT NULL,
    member_email      TEXT,
    member_phone      TEXT,
    member_active     BOOLEAN NOT NULL DEFAULT TRUE,
    member_created_at DATETIME,
    member_updated_at DATETIME,
    member_deleted_at DATETIME,
    UNIQUE (member_studio_id, member_user_id)
);

CREATE TABLE classes (
    class_id              TEXT PRIMARY KEY,
    class_studio_id       TEXT NOT NULL,
    class_name            TEXT NOT NULL,
    class_category_id     TEXT,
    class_drop_in_enabled BOOLEAN NOT NULL DEFAULT FALSE,
    class_drop_in_price   NUMERIC,
    class_tags            TEXT,
    class_created_at      DATETIME,
    class_updated_at      DATETIME,
    class_deleted_at      DATETIME
);

CREATE TABLE class_schedules (
    class_schedule_id           TEXT PRIMARY KEY,
    class_schedule_studio_id    TEXT NOT NULL,
    class_schedule_class_id     TEXT NOT NULL,
    class_schedule_weekdays     TEXT NOT NULL,
    class_schedule_start_time   TEXT NOT NULL,
    class_schedule_duration_min INTEGER NOT NULL,
    class_schedule_capacity     INTEGER,
    class_schedule_active       BOOLEAN NOT NULL DEFAULT TRUE,
    class_schedule_valid_from   DATETIME,
    class_schedule_valid_until  DATETIME,
    class_schedule_created_at   DATETIME,
    class_schedule_updated_at   DATETIME,
    class_schedule_deleted_at   DATETIME
);

CREATE TABLE class_sessions (
    class_session_id          TEXT PRIMARY KEY,
    class_session_studio_id   TEXT NOT NULL,
    class_session_class_id    TEXT NOT NULL,
    class_session_schedule_id TEXT,
    class_session_starts_at   DATETIME NOT NULL,
    class_session_ends_at     DATETIME,
    class_session_capacity    INTEGER,
    class_session_created_at  DATETIME,
    class_session_updated_at  DATETIME,
    class_session_deleted_at  DATETIME
);

CREATE TABLE membership_plans (
    membership_plan_id              TEXT PRIMARY KEY,
    membership_plan_studio_id       TEXT NOT NULL,
    membership_plan_name            TEXT NOT NULL,
    membership_plan_kind            TEXT NOT NULL DEFAULT 'time',
    membership_plan_duration_days   INTEGER NOT NULL,
    membership_plan_session_credits INTEGER,
    membership_plan_price           NUMERIC NOT NULL DEFAULT 0,
    membership_plan_category_id     TEXT,
    membership_plan_created_at      DATETIME,
    membership_plan_updated_at      DATETIME,
    membership_plan_deleted_at      DATETIME
);

CREATE TABLE memberships (
    membership_id                 TEXT PRIMARY KEY,
    membership_studio_id          TEXT NOT NULL,
    membership_user_id            TEXT NOT NULL,
    membership_plan_id            TEXT NOT NULL,
    membership_status             TEXT NOT NULL DEFAULT 'active',
    membership_starts_at          DATETIME NOT NULL,
    membership_ends_at            DATETIME NOT NULL,
    membership_remaining_sessions INTEGER,
    membership_plan_name          TEXT NOT NULL,
    membership_plan_price         NUMERIC NOT NULL DEFAULT 0,
    membership_created_at         DATETIME,
    membership_updated_at         DATETIME,
    membership_deleted_at         DATETIME,
    CHECK (membership_remaining_sessions IS NULL OR membership_remaining_sessions >= 0)
);

CREATE TABLE bookings (
    booking_id            TEXT PRIMARY KEY,
    booking_studio_id     TEXT NOT NULL,
    booking_session_id    TEXT NOT NULL,
    booking_user_id       TEXT NOT NULL,
    booking_status        TEXT NOT NULL DEFAULT 'booked',
    booking_type          TEXT NOT NULL,
    booking_membership_id TEXT,
    booking_drop_in_price NUMERIC,
    booking_drop_in_paid  BOOLEAN NOT NULL DEFAULT FALSE,
    booking_created_at    DATETIME,
    booking_updated_at    DATETIME
);
CREATE UNIQUE INDEX uq_booking_live_per_user
    ON bookings (booking_studio_id, booking_session_id, booking_user_id)
    WHERE booking_status IN ('booked', 'checked_in');

CREATE TABLE checkins (
    checkin_id         TEXT PRIMARY KEY,
    checkin_studio_id  TEXT NOT NULL,
    checkin_session_id TEXT NOT NULL,
    checkin_user_id    TEXT NOT NULL,
    checkin_at         DATETIME NOT NULL,
    UNIQUE (checkin_session_id, checkin_user_id)
);
`

// OpenDB returns a fresh in-memory database loaded with the schema.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Exec(schemaDDL).Error)

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

/* ================== Fixtures ================== */

func NewStudio(t *testing.T, db *gorm.DB) studioModel.StudioModel {
	t.Helper()
	s := studioModel.StudioModel{
		StudioName:     "Test Studio",
		StudioSlug:     "test-studio-" + uuid.NewString()[:8],
		StudioTimezone: "UTC",
	}
	require.NoError(t, db.Create(&s).Error)
	return s
}

func NewClass(t *testing.T, db *gorm.DB, studioID uuid.UUID, dropInEnabled bool, dropInPrice *float64) classModel.ClassModel {
	t.Helper()
	c := classModel.ClassModel{
		ClassStudioID:      studioID,
		ClassName:          "Test Class",
		ClassDropInEnabled: dropInEnabled,
		ClassDropInPrice:   dropInPrice,
	}
	require.NoError(t, db.Create(&c).Error)
	return c
}

func NewSession(t *testing.T, db *gorm.DB, studioID, classID uuid.UUID, startsAt time.Time, endsAt *time.Time, capacity *int) sessionModel.ClassSessionModel {
	t.Helper()
	s := sessionModel.ClassSessionModel{
		ClassSessionStudioID: studioID,
		ClassSessionClassID:  classID,
		ClassSessionStartsAt: startsAt,
		ClassSessionEndsAt:   endsAt,
		ClassSessionCapacity: capacity,
	}
	require.NoError(t, db.Create(&s).Error)
	return s
}

func NewPlan(t *testing.T, db *gorm.DB, studioID uuid.UUID, kind string, credits *int) planModel.MembershipPlanModel {
	t.Helper()
	p := planModel.MembershipPlanModel{
		MembershipPlanStudioID:       studioID,
		MembershipPlanName:           "Test Plan",
		MembershipPlanKind:           kind,
		MembershipPlanDurationDays:   30,
		MembershipPlanSessionCredits: credits,
		MembershipPlanPrice:          49.90,
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

// NewMembership creates an active membership valid for the month around now.
func NewMembership(t *testing.T, db *gorm.DB, studioID, userID, planID uuid.UUID, now time.Time, remaining *int) membershipModel.MembershipModel {
	t.Helper()
	m := membershipModel.MembershipModel{
		MembershipStudioID:          studioID,
		MembershipUserID:            userID,
		MembershipPlanID:            planID,
		MembershipStatus:            membershipModel.MembershipStatusActive,
		MembershipStartsAt:          now.Add(-7 * 24 * time.Hour),
		MembershipEndsAt:            now.Add(23 * 24 * time.Hour),
		MembershipRemainingSessions: remaining,
		MembershipPlanName:          "Test Plan",
		MembershipPlanPrice:         49.90,
	}
	require.NoError(t, db.Create(&m).Error)
	return m
}

func NewBooking(t *testing.T, db *gorm.DB, studioID, sessionID, userID uuid.UUID, status bookingModel.BookingStatus, btype bookingModel.BookingType) bookingModel.BookingModel {
	t.Helper()
	b := bookingModel.BookingModel{
		BookingStudioID:  studioID,
		BookingSessionID: sessionID,
		BookingUserID:    userID,
		BookingStatus:    status,
		BookingType:      btype,
	}
	require.NoError(t, db.Create(&b).Error)
	return b
}

func IntPtr(v int) *int             { return &v }
func Float64Ptr(v float64) *float64 { return &v }
func TimePtr(v time.Time) *time.Time { return &v }
