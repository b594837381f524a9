package configs

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

var (
	JWTSecret string

	// Booking tunables. Loaded once at boot; tests override directly.
	CheckinEarlyMargin    = 30 * time.Minute // how early a member may be checked in before session start
	CheckinLateMargin     = 30 * time.Minute // grace period after session end
	CheckinFallbackWindow = 2 * time.Hour    // window after start when the session has no end time
	CancelCutoff          = 2 * time.Hour    // cancellations rejected inside this margin before start
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("[BOOT] no .env file, using system ENV")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	if JWTSecret == "" {
		log.Println("[BOOT] WARNING: JWT_SECRET is not set")
	}

	CheckinEarlyMargin = envMinutes("CHECKIN_EARLY_MARGIN_MIN", CheckinEarlyMargin)
	CheckinLateMargin = envMinutes("CHECKIN_LATE_MARGIN_MIN", CheckinLateMargin)
	CheckinFallbackWindow = envMinutes("CHECKIN_FALLBACK_WINDOW_MIN", CheckinFallbackWindow)
	CancelCutoff = envMinutes("BOOKING_CANCEL_CUTOFF_MIN", CancelCutoff)
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func envMinutes(key string, def time.Duration) time.Duration {
	raw := GetEnv(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		log.Printf("[BOOT] invalid %s=%q, keeping default %s", key, raw, def)
		return def
	}
	return time.Duration(n) * time.Minute
}

// =======================
// GORM LOGGER CUSTOM
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger() gormLogger.Interface {
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      gormLogger.Warn,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	l.LogLevel = level
	return l
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	log.Printf("[INFO] "+msg, data...)
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	log.Printf("[WARN] "+msg, data...)
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	log.Printf("[ERROR] "+msg, data...)
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()
	file := utils.FileWithLineNum()

	if err != nil {
		log.Printf("[ERROR] %s | %v | %s | %d rows | %s", file, err, elapsed, rows, sql)
	} else if elapsed > l.SlowThreshold {
		log.Printf("[SLOW SQL] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	}
}
