package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"calPalAPI/internal/dailygoal"
	"calPalAPI/internal/goal"
	"calPalAPI/internal/record"
	"calPalAPI/internal/validation"
)

const dateLayout = "2006-01-02"

// GoalService owns the user-goal lifecycle: creation, progress logging,
// completion, deletion, and the full clear. Rewards are fixed exactly once at
// the transition into Completed; totals elsewhere are always recomputed from
// the stored collection, so deletion needs no balance bookkeeping.
type GoalService struct {
	store record.Store
	now   func() time.Time
	pick  func(n int) int
}

func NewGoalService(store record.Store, now func() time.Time, pick func(n int) int) *GoalService {
	return &GoalService{store: store, now: now, pick: pick}
}

func (s *GoalService) Create(ctx context.Context, profileID string, req *goal.CreateGoalRequest) (*goal.Goal, error) {
	if req.Title == "" {
		return nil, validation.Errorf("title", "is required")
	}

	switch req.Type {
	case goal.TypeExercise, goal.TypeWeightLoss:
		if req.Target == nil || *req.Target <= 0 || math.IsNaN(*req.Target) {
			return nil, validation.Errorf("target", "must be a positive number")
		}
	case goal.TypeCustom:
		if req.InitialProgress != nil && (math.IsNaN(*req.InitialProgress) || *req.InitialProgress < 0 || *req.InitialProgress > 100) {
			return nil, validation.Errorf("initialProgress", "must be between 0 and 100")
		}
	default:
		return nil, validation.Errorf("type", "must be Exercise, Weight Loss or Custom")
	}

	g := &goal.Goal{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Status:      goal.StatusInProgress,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		DateCreated: s.now().Format(dateLayout),
	}
	if req.Type == goal.TypeCustom {
		if req.InitialProgress != nil {
			g.Progress = *req.InitialProgress
		}
	} else {
		target := *req.Target
		g.Target = &target
	}

	goals, err := s.loadGoals(ctx, profileID)
	if err != nil {
		return nil, err
	}
	goals = append(goals, g)

	if err := s.saveGoals(ctx, profileID, goals); err != nil {
		return nil, err
	}
	return g, nil
}

// LogProgress adds a positive delta to an Exercise or Weight Loss goal. This
// is the only auto-completion path: reaching the target clamps progress to it
// and completes the goal.
func (s *GoalService) LogProgress(ctx context.Context, profileID string, goalID uuid.UUID, req *goal.LogProgressRequest) (*goal.Goal, *goal.CompletionMessage, error) {
	if req.Delta == nil || math.IsNaN(*req.Delta) || *req.Delta <= 0 {
		return nil, nil, validation.Errorf("delta", "must be a positive number")
	}

	goals, err := s.loadGoals(ctx, profileID)
	if err != nil {
		return nil, nil, err
	}
	g, err := findGoal(goals, goalID)
	if err != nil {
		return nil, nil, err
	}
	if g.IsCompleted() {
		return nil, nil, validation.Errorf("status", "goal is already completed")
	}
	if g.Type == goal.TypeCustom {
		return nil, nil, validation.Errorf("type", "logging is only available for Exercise and Weight Loss goals")
	}

	g.Progress += *req.Delta

	var message *goal.CompletionMessage
	if g.Target != nil && *g.Target > 0 && g.Progress / *g.Target*100 >= 100 {
		g.Progress = *g.Target
		s.complete(g)
		m := goal.PickCompletionMessage(s.pick)
		message = &m
	}

	if err := s.saveGoals(ctx, profileID, goals); err != nil {
		return nil, nil, err
	}
	return g, message, nil
}

// EditProgress sets the progress percentage of a Custom goal; 100 completes it.
func (s *GoalService) EditProgress(ctx context.Context, profileID string, goalID uuid.UUID, req *goal.EditProgressRequest) (*goal.Goal, *goal.CompletionMessage, error) {
	if req.Percent == nil || math.IsNaN(*req.Percent) || *req.Percent < 0 || *req.Percent > 100 {
		return nil, nil, validation.Errorf("percent", "must be between 0 and 100")
	}

	goals, err := s.loadGoals(ctx, profileID)
	if err != nil {
		return nil, nil, err
	}
	g, err := findGoal(goals, goalID)
	if err != nil {
		return nil, nil, err
	}
	if g.IsCompleted() {
		return nil, nil, validation.Errorf("status", "goal is already completed")
	}
	if g.Type != goal.TypeCustom {
		return nil, nil, validation.Errorf("type", "progress editing is only available for Custom goals")
	}

	g.Progress = *req.Percent

	var message *goal.CompletionMessage
	if *req.Percent >= 100 {
		s.complete(g)
		m := goal.PickCompletionMessage(s.pick)
		message = &m
	}

	if err := s.saveGoals(ctx, profileID, goals); err != nil {
		return nil, nil, err
	}
	return g, message, nil
}

// CompleteNow marks a goal completed regardless of its progress value.
func (s *GoalService) CompleteNow(ctx context.Context, profileID string, goalID uuid.UUID) (*goal.Goal, *goal.CompletionMessage, error) {
	goals, err := s.loadGoals(ctx, profileID)
	if err != nil {
		return nil, nil, err
	}
	g, err := findGoal(goals, goalID)
	if err != nil {
		return nil, nil, err
	}
	if g.IsCompleted() {
		return nil, nil, validation.Errorf("status", "goal is already completed")
	}

	if g.Type == goal.TypeCustom {
		g.Progress = 100
	} else if g.Target != nil {
		g.Progress = *g.Target
	}
	s.complete(g)

	if err := s.saveGoals(ctx, profileID, goals); err != nil {
		return nil, nil, err
	}
	m := goal.PickCompletionMessage(s.pick)
	return g, &m, nil
}

func (s *GoalService) Delete(ctx context.Context, profileID string, goalID uuid.UUID) (*goal.DeleteGoalResponse, error) {
	goals, err := s.loadGoals(ctx, profileID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, g := range goals {
		if g.ID == goalID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, record.ErrNotFound
	}

	resp := &goal.DeleteGoalResponse{Deleted: true}
	if g := goals[idx]; g.IsCompleted() && g.Reward != nil {
		resp.RefundedReward = *g.Reward
	}

	goals = append(goals[:idx], goals[idx+1:]...)
	if err := s.saveGoals(ctx, profileID, goals); err != nil {
		return nil, err
	}
	return resp, nil
}

// ClearAll empties the user-goal collection and additionally resets the daily
// goal slot and its completed history, reporting the total points refunded.
func (s *GoalService) ClearAll(ctx context.Context, profileID string) (*goal.ClearAllResponse, error) {
	goals, err := s.loadGoals(ctx, profileID)
	if err != nil {
		return nil, err
	}

	refunded := 0
	for _, g := range goals {
		if g.IsCompleted() && g.Reward != nil {
			refunded += *g.Reward
		}
	}

	history, err := loadHistory(ctx, s.store, profileID)
	if err != nil {
		return nil, err
	}
	refunded += dailygoal.Reward * len(history)

	if err := s.saveGoals(ctx, profileID, nil); err != nil {
		return nil, err
	}
	if err := s.store.Delete(ctx, profileID, record.KeyDailyGoal); err != nil {
		return nil, err
	}
	if err := saveHistory(ctx, s.store, profileID, nil); err != nil {
		return nil, err
	}

	return &goal.ClearAllResponse{Cleared: true, RefundedPoints: refunded}, nil
}

// List returns the goal board split into current and completed, decorated
// with display fields.
func (s *GoalService) List(ctx context.Context, profileID string) (*goal.GoalBoard, error) {
	goals, err := s.loadGoals(ctx, profileID)
	if err != nil {
		return nil, err
	}

	board := &goal.GoalBoard{
		Current:   []*goal.GoalView{},
		Completed: []*goal.GoalView{},
	}
	for _, g := range goals {
		view := s.buildView(g)
		if g.IsCompleted() {
			board.Completed = append(board.Completed, view)
		} else {
			board.Current = append(board.Current, view)
		}
	}
	return board, nil
}

// CompletedGoals returns only completed user goals; the badge aggregator sums
// their rewards.
func (s *GoalService) CompletedGoals(ctx context.Context, profileID string) ([]*goal.Goal, error) {
	goals, err := s.loadGoals(ctx, profileID)
	if err != nil {
		return nil, err
	}
	var completed []*goal.Goal
	for _, g := range goals {
		if g.IsCompleted() {
			completed = append(completed, g)
		}
	}
	return completed, nil
}

func (s *GoalService) complete(g *goal.Goal) {
	g.Status = goal.StatusCompleted
	g.CompletedDate = s.now().Format(dateLayout)
	r := goal.Reward(g)
	g.Reward = &r
}

func (s *GoalService) buildView(g *goal.Goal) *goal.GoalView {
	percent := g.ProgressPercent()
	var text string
	switch g.Type {
	case goal.TypeExercise:
		text = fmt.Sprintf("%s/%s workouts (%d%%)", trimFloat(g.Progress), trimFloat(targetOrZero(g)), percent)
	case goal.TypeWeightLoss:
		text = fmt.Sprintf("%s/%s lbs (%d%%)", trimFloat(g.Progress), trimFloat(targetOrZero(g)), percent)
	default:
		text = fmt.Sprintf("%d%%", percent)
	}
	return &goal.GoalView{
		Goal:            *g,
		ProgressPercent: percent,
		ProgressText:    text,
		PotentialReward: goal.PotentialReward(g),
	}
}

// loadGoals reads the collection and applies the one-time repair for legacy
// completed goals persisted without a reward.
func (s *GoalService) loadGoals(ctx context.Context, profileID string) ([]*goal.Goal, error) {
	data, err := s.store.Get(ctx, profileID, record.KeyUserGoals)
	if err != nil {
		if err == record.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}

	var goals []*goal.Goal
	if err := json.Unmarshal(data, &goals); err != nil {
		return nil, fmt.Errorf("failed to decode goal collection: %w", err)
	}

	repaired := false
	for _, g := range goals {
		if g.IsCompleted() && g.Reward == nil {
			r := goal.Reward(g)
			g.Reward = &r
			repaired = true
		}
	}
	if repaired {
		if err := s.saveGoals(ctx, profileID, goals); err != nil {
			return nil, err
		}
	}
	return goals, nil
}

func (s *GoalService) saveGoals(ctx context.Context, profileID string, goals []*goal.Goal) error {
	if goals == nil {
		goals = []*goal.Goal{}
	}
	data, err := json.Marshal(goals)
	if err != nil {
		return fmt.Errorf("failed to encode goal collection: %w", err)
	}
	return s.store.Put(ctx, profileID, record.KeyUserGoals, data)
}

func findGoal(goals []*goal.Goal, goalID uuid.UUID) (*goal.Goal, error) {
	for _, g := range goals {
		if g.ID == goalID {
			return g, nil
		}
	}
	return nil, record.ErrNotFound
}

func targetOrZero(g *goal.Goal) float64 {
	if g.Target == nil {
		return 0
	}
	return *g.Target
}

// trimFloat renders 5.0 as "5" and 1.5 as "1.5".
func trimFloat(f float64) string {
	if f == math.Trunc(f) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}
