package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calPalAPI/internal/dailygoal"
	"calPalAPI/internal/record"
	"calPalAPI/internal/validation"
)

func TestGetOrCreateTodayIsIdempotentWithinADay(t *testing.T) {
	svc := newTestDailyGoalService(record.NewMemoryStore(), "2026-08-30")
	ctx := context.Background()

	first, err := svc.GetOrCreateToday(ctx, testProfile)
	require.NoError(t, err)
	assert.Equal(t, "2026-08-30", first.Date)
	assert.Equal(t, dailygoal.Catalog[0], first.Goal)
	assert.False(t, first.Completed)

	second, err := svc.GetOrCreateToday(ctx, testProfile)
	require.NoError(t, err)
	assert.Equal(t, first.Goal, second.Goal)
	assert.Equal(t, first.Date, second.Date)
}

func TestDailyGoalRotatesOnNewDay(t *testing.T) {
	store := record.NewMemoryStore()
	ctx := context.Background()

	day1 := newTestDailyGoalService(store, "2026-08-30")
	slot, err := day1.GetOrCreateToday(ctx, testProfile)
	require.NoError(t, err)
	_, _, err = day1.EditProgress(ctx, testProfile, &dailygoal.EditProgressRequest{Percent: floatPtr(60)})
	require.NoError(t, err)

	day2 := newTestDailyGoalService(store, "2026-08-31")
	fresh, err := day2.GetOrCreateToday(ctx, testProfile)
	require.NoError(t, err)
	assert.Equal(t, "2026-08-31", fresh.Date)
	assert.False(t, fresh.Completed)
	assert.Equal(t, 0.0, fresh.Progress, "yesterday's progress does not carry over")
	assert.Equal(t, slot.Goal, fresh.Goal, "deterministic picker draws the same catalog entry")
}

func TestRefreshDiscardsProgress(t *testing.T) {
	svc := newTestDailyGoalService(record.NewMemoryStore(), "2026-08-30")
	ctx := context.Background()

	_, err := svc.GetOrCreateToday(ctx, testProfile)
	require.NoError(t, err)
	_, _, err = svc.EditProgress(ctx, testProfile, &dailygoal.EditProgressRequest{Percent: floatPtr(80)})
	require.NoError(t, err)

	slot, err := svc.Refresh(ctx, testProfile)
	require.NoError(t, err)
	assert.Equal(t, 0.0, slot.Progress)
	assert.False(t, slot.Completed)
}

func TestEditProgressAtHundredCompletesSlot(t *testing.T) {
	svc := newTestDailyGoalService(record.NewMemoryStore(), "2026-08-30")
	ctx := context.Background()

	slot, message, err := svc.EditProgress(ctx, testProfile, &dailygoal.EditProgressRequest{Percent: floatPtr(100)})
	require.NoError(t, err)
	require.NotNil(t, message)
	assert.True(t, slot.Completed)
	assert.Equal(t, 100.0, slot.Progress)

	history, err := svc.History(ctx, testProfile)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, slot.Goal, history[0].Goal)
	assert.Equal(t, "2026-08-30", history[0].CompletedDate)
}

func TestEditProgressValidation(t *testing.T) {
	svc := newTestDailyGoalService(record.NewMemoryStore(), "2026-08-30")
	ctx := context.Background()

	for _, percent := range []*float64{nil, floatPtr(-1), floatPtr(101)} {
		_, _, err := svc.EditProgress(ctx, testProfile, &dailygoal.EditProgressRequest{Percent: percent})
		require.Error(t, err)
		assert.True(t, validation.IsValidation(err))
	}
}

func TestCompletedSlotRejectsFurtherUpdates(t *testing.T) {
	svc := newTestDailyGoalService(record.NewMemoryStore(), "2026-08-30")
	ctx := context.Background()

	slot, message, err := svc.Complete(ctx, testProfile)
	require.NoError(t, err)
	require.NotNil(t, message)
	assert.True(t, slot.Completed)

	_, _, err = svc.Complete(ctx, testProfile)
	require.Error(t, err)
	assert.True(t, validation.IsValidation(err))

	_, _, err = svc.EditProgress(ctx, testProfile, &dailygoal.EditProgressRequest{Percent: floatPtr(50)})
	require.Error(t, err)
	assert.True(t, validation.IsValidation(err))

	// History is not double-counted
	history, err := svc.History(ctx, testProfile)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestHistoryNewestFirst(t *testing.T) {
	store := record.NewMemoryStore()
	ctx := context.Background()

	for _, day := range []string{"2026-08-28", "2026-08-29", "2026-08-30"} {
		svc := newTestDailyGoalService(store, day)
		_, _, err := svc.Complete(ctx, testProfile)
		require.NoError(t, err)
	}

	svc := newTestDailyGoalService(store, "2026-08-30")
	history, err := svc.History(ctx, testProfile)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "2026-08-30", history[0].CompletedDate)
	assert.Equal(t, "2026-08-29", history[1].CompletedDate)
	assert.Equal(t, "2026-08-28", history[2].CompletedDate)
}

func TestDeleteRecordRemovesExactlyOne(t *testing.T) {
	store := record.NewMemoryStore()
	ctx := context.Background()

	day1 := newTestDailyGoalService(store, "2026-08-29")
	_, _, err := day1.Complete(ctx, testProfile)
	require.NoError(t, err)

	day2 := newTestDailyGoalService(store, "2026-08-30")
	_, _, err = day2.Complete(ctx, testProfile)
	require.NoError(t, err)

	history, err := day2.History(ctx, testProfile)
	require.NoError(t, err)
	require.Len(t, history, 2)

	resp, err := day2.DeleteRecord(ctx, testProfile, history[0].ID)
	require.NoError(t, err)
	assert.True(t, resp.Deleted)
	assert.Equal(t, dailygoal.Reward, resp.RefundedReward)

	remaining, err := day2.History(ctx, testProfile)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "2026-08-29", remaining[0].CompletedDate)

	_, err = day2.DeleteRecord(ctx, testProfile, history[0].ID)
	assert.ErrorIs(t, err, record.ErrNotFound)
}
