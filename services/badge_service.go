package services

import (
	"context"
	"fmt"
	"strconv"

	"calPalAPI/internal/badge"
	"calPalAPI/internal/dailygoal"
	"calPalAPI/internal/record"
)

// BadgeService recomputes point totals from source records and maps them onto
// the badge ladder. The stored watermark is only a change detector between
// renders, never authoritative state.
type BadgeService struct {
	store        record.Store
	goalService  *GoalService
	notifService *NotificationService
}

func NewBadgeService(store record.Store, goalService *GoalService, notifService *NotificationService) *BadgeService {
	return &BadgeService{
		store:        store,
		goalService:  goalService,
		notifService: notifService,
	}
}

// TotalPoints is always a full recomputation: completed user-goal rewards
// plus the fixed daily reward per history record. Deleting any contributing
// record lowers the next total by exactly its reward.
func (s *BadgeService) TotalPoints(ctx context.Context, profileID string) (int, error) {
	completed, err := s.goalService.CompletedGoals(ctx, profileID)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, g := range completed {
		if g.Reward != nil {
			total += *g.Reward
		}
	}

	history, err := loadHistory(ctx, s.store, profileID)
	if err != nil {
		return 0, err
	}
	total += dailygoal.Reward * len(history)

	return total, nil
}

// Board computes the badge view, detects newly crossed thresholds against the
// watermark, and updates the watermark unconditionally. A positive delta
// additionally triggers a best-effort push.
func (s *BadgeService) Board(ctx context.Context, profileID string) (*badge.Board, error) {
	total, err := s.TotalPoints(ctx, profileID)
	if err != nil {
		return nil, err
	}

	unlocked := badge.UnlockedCount(total)
	previous, hasPrevious, err := s.loadWatermark(ctx, profileID)
	if err != nil {
		return nil, err
	}

	newly := 0
	if hasPrevious && unlocked > previous {
		newly = unlocked - previous
	}

	if err := s.saveWatermark(ctx, profileID, unlocked); err != nil {
		return nil, err
	}

	if newly > 0 && s.notifService != nil {
		s.notifService.NotifyBadgesUnlocked(ctx, profileID, newly, unlocked)
	}

	return &badge.Board{
		TotalPoints:   total,
		Badges:        badge.Ladder(total),
		UnlockedCount: unlocked,
		NewlyUnlocked: newly,
	}, nil
}

func (s *BadgeService) loadWatermark(ctx context.Context, profileID string) (int, bool, error) {
	data, err := s.store.Get(ctx, profileID, record.KeyBadgeWatermark)
	if err != nil {
		if err == record.ErrNotFound {
			return 0, false, nil
		}
		return 0, false, err
	}
	count, err := strconv.Atoi(string(data))
	if err != nil {
		return 0, false, fmt.Errorf("failed to decode badge watermark: %w", err)
	}
	return count, true, nil
}

func (s *BadgeService) saveWatermark(ctx context.Context, profileID string, count int) error {
	return s.store.Put(ctx, profileID, record.KeyBadgeWatermark, []byte(strconv.Itoa(count)))
}
