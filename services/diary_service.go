package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"calPalAPI/internal/diary"
	"calPalAPI/internal/record"
	"calPalAPI/internal/validation"
)

// DiaryService logs meals and workouts and computes the dashboard's calories
// overview against the calculator-set target.
type DiaryService struct {
	store record.Store
	now   func() time.Time
}

func NewDiaryService(store record.Store, now func() time.Time) *DiaryService {
	return &DiaryService{store: store, now: now}
}

func (s *DiaryService) AddMeal(ctx context.Context, profileID string, req *diary.AddMealRequest) (*diary.Meal, error) {
	if req.Name == "" {
		return nil, validation.Errorf("name", "is required")
	}
	if req.Calories == nil || math.IsNaN(*req.Calories) || *req.Calories < 0 {
		return nil, validation.Errorf("calories", "must be a non-negative number")
	}

	meal := &diary.Meal{
		ID:       uuid.New(),
		Meal:     req.Meal,
		Name:     req.Name,
		Calories: *req.Calories,
		Protein:  req.Protein,
		Carbs:    req.Carbs,
		Fat:      req.Fat,
		Date:     s.now().Format(dateLayout),
	}
	if meal.Meal == "" {
		meal.Meal = "Snack"
	}

	meals, err := s.loadMeals(ctx, profileID)
	if err != nil {
		return nil, err
	}
	meals = append(meals, meal)
	if err := s.saveMeals(ctx, profileID, meals); err != nil {
		return nil, err
	}
	return meal, nil
}

// AddWorkout logs a workout. When the name matches an exercise preset and no
// explicit calorie figure is given, the burn is derived from the preset's
// per-30-minute rate.
func (s *DiaryService) AddWorkout(ctx context.Context, profileID string, req *diary.AddWorkoutRequest) (*diary.Workout, error) {
	if req.Name == "" {
		return nil, validation.Errorf("name", "is required")
	}
	if req.Minutes == nil || math.IsNaN(*req.Minutes) || *req.Minutes <= 0 {
		return nil, validation.Errorf("minutes", "must be a positive number")
	}

	workout := &diary.Workout{
		ID:      uuid.New(),
		Name:    req.Name,
		Minutes: *req.Minutes,
		Date:    s.now().Format(dateLayout),
	}

	preset := diary.FindExercisePreset(req.Name)
	switch {
	case req.Calories != nil:
		if math.IsNaN(*req.Calories) || *req.Calories < 0 {
			return nil, validation.Errorf("calories", "must be a non-negative number")
		}
		workout.Calories = *req.Calories
	case preset != nil:
		workout.Calories = math.Round(preset.CaloriesPer30Min * *req.Minutes / 30)
	default:
		return nil, validation.Errorf("calories", "is required for non-preset exercises")
	}
	if preset != nil {
		workout.Intensity = preset.Intensity
	}

	workouts, err := s.loadWorkouts(ctx, profileID)
	if err != nil {
		return nil, err
	}
	workouts = append(workouts, workout)
	if err := s.saveWorkouts(ctx, profileID, workouts); err != nil {
		return nil, err
	}
	return workout, nil
}

func (s *DiaryService) DeleteMeal(ctx context.Context, profileID string, mealID uuid.UUID) error {
	meals, err := s.loadMeals(ctx, profileID)
	if err != nil {
		return err
	}
	idx := -1
	for i, m := range meals {
		if m.ID == mealID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return record.ErrNotFound
	}
	return s.saveMeals(ctx, profileID, append(meals[:idx], meals[idx+1:]...))
}

func (s *DiaryService) DeleteWorkout(ctx context.Context, profileID string, workoutID uuid.UUID) error {
	workouts, err := s.loadWorkouts(ctx, profileID)
	if err != nil {
		return err
	}
	idx := -1
	for i, w := range workouts {
		if w.ID == workoutID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return record.ErrNotFound
	}
	return s.saveWorkouts(ctx, profileID, append(workouts[:idx], workouts[idx+1:]...))
}

// Day assembles today's meals and workouts with totals and the calories
// overview line.
func (s *DiaryService) Day(ctx context.Context, profileID string) (*diary.DayView, error) {
	today := s.now().Format(dateLayout)

	meals, err := s.loadMeals(ctx, profileID)
	if err != nil {
		return nil, err
	}
	workouts, err := s.loadWorkouts(ctx, profileID)
	if err != nil {
		return nil, err
	}

	view := &diary.DayView{
		Meals:    []*diary.Meal{},
		Workouts: []*diary.Workout{},
	}
	for _, m := range meals {
		if m.Date != today {
			continue
		}
		view.Meals = append(view.Meals, m)
		view.MealTotals.Calories += m.Calories
		view.MealTotals.Protein += m.Protein
		view.MealTotals.Carbs += m.Carbs
		view.MealTotals.Fat += m.Fat
	}
	caloriesOut := 0.0
	for _, w := range workouts {
		if w.Date != today {
			continue
		}
		view.Workouts = append(view.Workouts, w)
		caloriesOut += w.Calories
	}

	target, err := s.CalorieTarget(ctx, profileID)
	if err != nil {
		return nil, err
	}
	view.Overview = buildOverview(view.MealTotals.Calories, caloriesOut, target)
	return view, nil
}

// SetCalorieTarget persists the calculator result as the profile's daily goal.
func (s *DiaryService) SetCalorieTarget(ctx context.Context, profileID string, target int) error {
	if target <= 0 {
		return validation.Errorf("targetCalories", "must be a positive number")
	}
	data, err := json.Marshal(target)
	if err != nil {
		return fmt.Errorf("failed to encode calorie target: %w", err)
	}
	return s.store.Put(ctx, profileID, record.KeyCalorieTarget, data)
}

func (s *DiaryService) CalorieTarget(ctx context.Context, profileID string) (*int, error) {
	data, err := s.store.Get(ctx, profileID, record.KeyCalorieTarget)
	if err != nil {
		if err == record.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	var target int
	if err := json.Unmarshal(data, &target); err != nil {
		return nil, fmt.Errorf("failed to decode calorie target: %w", err)
	}
	return &target, nil
}

func buildOverview(caloriesIn, caloriesOut float64, target *int) diary.Overview {
	net := caloriesIn - caloriesOut
	overview := diary.Overview{
		CaloriesIn:     caloriesIn,
		CaloriesOut:    caloriesOut,
		NetCalories:    net,
		TargetCalories: target,
	}

	if target != nil {
		difference := net - float64(*target)
		switch {
		case math.Abs(difference) <= 50:
			overview.Message = fmt.Sprintf("Perfect! Right on target (%d kcal goal).", *target)
		case difference > 0:
			overview.Message = fmt.Sprintf("%.0f kcal over your %d kcal goal.", difference, *target)
		default:
			overview.Message = fmt.Sprintf("%.0f kcal under your %d kcal goal.", -difference, *target)
		}
		return overview
	}

	switch {
	case net > 0:
		overview.Message = fmt.Sprintf("Net: %.0f kcal consumed today. Set a goal in the Calculator!", net)
	case net < 0:
		overview.Message = fmt.Sprintf("Net: %.0f kcal deficit today. Set a goal in the Calculator!", -net)
	default:
		overview.Message = "No calories logged yet. Set a goal in the Calculator!"
	}
	return overview
}

func (s *DiaryService) loadMeals(ctx context.Context, profileID string) ([]*diary.Meal, error) {
	data, err := s.store.Get(ctx, profileID, record.KeyDailyMeals)
	if err != nil {
		if err == record.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	var meals []*diary.Meal
	if err := json.Unmarshal(data, &meals); err != nil {
		return nil, fmt.Errorf("failed to decode meal log: %w", err)
	}
	return meals, nil
}

func (s *DiaryService) saveMeals(ctx context.Context, profileID string, meals []*diary.Meal) error {
	if meals == nil {
		meals = []*diary.Meal{}
	}
	data, err := json.Marshal(meals)
	if err != nil {
		return fmt.Errorf("failed to encode meal log: %w", err)
	}
	return s.store.Put(ctx, profileID, record.KeyDailyMeals, data)
}

func (s *DiaryService) loadWorkouts(ctx context.Context, profileID string) ([]*diary.Workout, error) {
	data, err := s.store.Get(ctx, profileID, record.KeyDailyWorkouts)
	if err != nil {
		if err == record.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	var workouts []*diary.Workout
	if err := json.Unmarshal(data, &workouts); err != nil {
		return nil, fmt.Errorf("failed to decode workout log: %w", err)
	}
	return workouts, nil
}

func (s *DiaryService) saveWorkouts(ctx context.Context, profileID string, workouts []*diary.Workout) error {
	if workouts == nil {
		workouts = []*diary.Workout{}
	}
	data, err := json.Marshal(workouts)
	if err != nil {
		return fmt.Errorf("failed to encode workout log: %w", err)
	}
	return s.store.Put(ctx, profileID, record.KeyDailyWorkouts, data)
}
