package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"calPalAPI/internal/dailygoal"
	"calPalAPI/internal/goal"
	"calPalAPI/internal/record"
	"calPalAPI/internal/validation"
)

// DailyGoalService is the date-keyed single-slot rotator: one system-issued
// goal per calendar day, drawn from the fixed catalog, plus the append-only
// history of completed daily goals.
type DailyGoalService struct {
	store record.Store
	now   func() time.Time
	pick  func(n int) int
}

func NewDailyGoalService(store record.Store, now func() time.Time, pick func(n int) int) *DailyGoalService {
	return &DailyGoalService{store: store, now: now, pick: pick}
}

// GetOrCreateToday returns the active slot, drawing a fresh goal when none
// exists or the stored date is no longer today. An in-progress, non-expired
// slot is returned untouched, completed or not.
func (s *DailyGoalService) GetOrCreateToday(ctx context.Context, profileID string) (*dailygoal.DailyGoal, error) {
	today := s.now().Format(dateLayout)

	slot, err := s.loadSlot(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if slot != nil && slot.Date == today {
		return slot, nil
	}
	return s.draw(ctx, profileID, today)
}

// Refresh unconditionally replaces today's slot with a new draw, discarding
// any progress.
func (s *DailyGoalService) Refresh(ctx context.Context, profileID string) (*dailygoal.DailyGoal, error) {
	return s.draw(ctx, profileID, s.now().Format(dateLayout))
}

// EditProgress sets the slot's progress percentage; 100 completes it.
func (s *DailyGoalService) EditProgress(ctx context.Context, profileID string, req *dailygoal.EditProgressRequest) (*dailygoal.DailyGoal, *goal.CompletionMessage, error) {
	if req.Percent == nil || math.IsNaN(*req.Percent) || *req.Percent < 0 || *req.Percent > 100 {
		return nil, nil, validation.Errorf("percent", "must be between 0 and 100")
	}

	slot, err := s.activeSlot(ctx, profileID)
	if err != nil {
		return nil, nil, err
	}

	slot.Progress = *req.Percent
	var message *goal.CompletionMessage
	if *req.Percent >= 100 {
		m, err := s.completeSlot(ctx, profileID, slot)
		if err != nil {
			return nil, nil, err
		}
		message = m
	}

	if err := s.saveSlot(ctx, profileID, slot); err != nil {
		return nil, nil, err
	}
	return slot, message, nil
}

// Complete marks the active slot done regardless of progress.
func (s *DailyGoalService) Complete(ctx context.Context, profileID string) (*dailygoal.DailyGoal, *goal.CompletionMessage, error) {
	slot, err := s.activeSlot(ctx, profileID)
	if err != nil {
		return nil, nil, err
	}

	message, err := s.completeSlot(ctx, profileID, slot)
	if err != nil {
		return nil, nil, err
	}
	if err := s.saveSlot(ctx, profileID, slot); err != nil {
		return nil, nil, err
	}
	return slot, message, nil
}

// History returns completed daily-goal records, newest first.
func (s *DailyGoalService) History(ctx context.Context, profileID string) ([]*dailygoal.CompletedRecord, error) {
	history, err := loadHistory(ctx, s.store, profileID)
	if err != nil {
		return nil, err
	}
	out := make([]*dailygoal.CompletedRecord, 0, len(history))
	for i := len(history) - 1; i >= 0; i-- {
		out = append(out, history[i])
	}
	return out, nil
}

// DeleteRecord removes one history entry by id. The record's fixed reward is
// implicitly refunded: point totals are recomputed from what remains.
func (s *DailyGoalService) DeleteRecord(ctx context.Context, profileID string, recordID int64) (*dailygoal.DeleteRecordResponse, error) {
	history, err := loadHistory(ctx, s.store, profileID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, rec := range history {
		if rec.ID == recordID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, record.ErrNotFound
	}

	history = append(history[:idx], history[idx+1:]...)
	if err := saveHistory(ctx, s.store, profileID, history); err != nil {
		return nil, err
	}
	return &dailygoal.DeleteRecordResponse{Deleted: true, RefundedReward: dailygoal.Reward}, nil
}

func (s *DailyGoalService) draw(ctx context.Context, profileID, today string) (*dailygoal.DailyGoal, error) {
	slot := &dailygoal.DailyGoal{
		Date: today,
		Goal: dailygoal.Catalog[s.pick(len(dailygoal.Catalog))],
	}
	if err := s.saveSlot(ctx, profileID, slot); err != nil {
		return nil, err
	}
	return slot, nil
}

// activeSlot resolves today's slot and rejects updates to a completed one.
func (s *DailyGoalService) activeSlot(ctx context.Context, profileID string) (*dailygoal.DailyGoal, error) {
	slot, err := s.GetOrCreateToday(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if slot.Completed {
		return nil, validation.Errorf("status", "daily goal is already completed")
	}
	return slot, nil
}

// completeSlot flips the slot and appends the history record. The slot stays
// completed until the next day's rotation supersedes it.
func (s *DailyGoalService) completeSlot(ctx context.Context, profileID string, slot *dailygoal.DailyGoal) (*goal.CompletionMessage, error) {
	slot.Completed = true
	slot.Progress = 100

	now := s.now()
	history, err := loadHistory(ctx, s.store, profileID)
	if err != nil {
		return nil, err
	}
	history = append(history, &dailygoal.CompletedRecord{
		ID:            now.UnixMilli(),
		Goal:          slot.Goal,
		CompletedDate: now.Format(dateLayout),
		Timestamp:     now.UnixMilli(),
	})
	if err := saveHistory(ctx, s.store, profileID, history); err != nil {
		return nil, err
	}

	m := goal.PickCompletionMessage(s.pick)
	return &m, nil
}

func (s *DailyGoalService) loadSlot(ctx context.Context, profileID string) (*dailygoal.DailyGoal, error) {
	data, err := s.store.Get(ctx, profileID, record.KeyDailyGoal)
	if err != nil {
		if err == record.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	var slot dailygoal.DailyGoal
	if err := json.Unmarshal(data, &slot); err != nil {
		return nil, fmt.Errorf("failed to decode daily goal slot: %w", err)
	}
	return &slot, nil
}

func (s *DailyGoalService) saveSlot(ctx context.Context, profileID string, slot *dailygoal.DailyGoal) error {
	data, err := json.Marshal(slot)
	if err != nil {
		return fmt.Errorf("failed to encode daily goal slot: %w", err)
	}
	return s.store.Put(ctx, profileID, record.KeyDailyGoal, data)
}

func loadHistory(ctx context.Context, store record.Store, profileID string) ([]*dailygoal.CompletedRecord, error) {
	data, err := store.Get(ctx, profileID, record.KeyCompletedDailyGoals)
	if err != nil {
		if err == record.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	var history []*dailygoal.CompletedRecord
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("failed to decode completed daily goals: %w", err)
	}
	return history, nil
}

func saveHistory(ctx context.Context, store record.Store, profileID string, history []*dailygoal.CompletedRecord) error {
	if history == nil {
		history = []*dailygoal.CompletedRecord{}
	}
	data, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("failed to encode completed daily goals: %w", err)
	}
	return store.Put(ctx, profileID, record.KeyCompletedDailyGoals, data)
}
