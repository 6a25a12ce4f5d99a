package record

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no record exists under the requested key, or
// when a lookup inside a stored collection misses.
var ErrNotFound = errors.New("record not found")

// Store persists one JSON blob per (profile, key). Every logical record is
// read and written whole; callers own the read-modify-write cycle.
type Store interface {
	Get(ctx context.Context, profileID, key string) ([]byte, error)
	Put(ctx context.Context, profileID, key string, value []byte) error
	Delete(ctx context.Context, profileID, key string) error
}

// Logical keys for the records a profile owns.
const (
	KeyUserGoals           = "user_goals"
	KeyDailyGoal           = "daily_goal"
	KeyCompletedDailyGoals = "completed_daily_goals"
	KeyBadgeWatermark      = "badge_watermark"
	KeyDailyMeals          = "daily_meals"
	KeyDailyWorkouts       = "daily_workouts"
	KeyCalorieTarget       = "calorie_target"
	KeyDeviceToken         = "device_token"
)
