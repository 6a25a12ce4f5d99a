package services

import (
	"time"

	"calPalAPI/internal/record"
)

const testProfile = "profile_test_1"

// fixedClock returns a clock pinned to the given day.
func fixedClock(day string) func() time.Time {
	t, err := time.Parse("2006-01-02", day)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return t }
}

// firstPick always draws index 0 from any catalog.
func firstPick(n int) int { return 0 }

func newTestGoalService(store record.Store, day string) *GoalService {
	return NewGoalService(store, fixedClock(day), firstPick)
}

func newTestDailyGoalService(store record.Store, day string) *DailyGoalService {
	return NewDailyGoalService(store, fixedClock(day), firstPick)
}

func floatPtr(f float64) *float64 { return &f }
