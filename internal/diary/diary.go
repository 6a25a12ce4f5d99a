package diary

import "github.com/google/uuid"

type Meal struct {
	ID       uuid.UUID `json:"id"`
	Meal     string    `json:"meal"` // Breakfast, Lunch, Dinner, Snack
	Name     string    `json:"name"`
	Calories float64   `json:"calories"`
	Protein  float64   `json:"protein"`
	Carbs    float64   `json:"carbs"`
	Fat      float64   `json:"fat"`
	Date     string    `json:"date"`
}

type Workout struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Intensity string    `json:"intensity"`
	Minutes   float64   `json:"minutes"`
	Calories  float64   `json:"calories"`
	Date      string    `json:"date"`
}

type AddMealRequest struct {
	Meal     string   `json:"meal"`
	Name     string   `json:"name"`
	Calories *float64 `json:"calories"`
	Protein  float64  `json:"protein"`
	Carbs    float64  `json:"carbs"`
	Fat      float64  `json:"fat"`
}

// AddWorkoutRequest logs a workout either from a preset (calories derived
// from the preset's per-30-minute figure) or with explicit calories.
type AddWorkoutRequest struct {
	Name     string   `json:"name"`
	Minutes  *float64 `json:"minutes"`
	Calories *float64 `json:"calories"`
}

type Totals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// Overview is the dashboard's calories line: intake vs burn against the
// optional calculator-set target.
type Overview struct {
	CaloriesIn     float64 `json:"caloriesIn"`
	CaloriesOut    float64 `json:"caloriesOut"`
	NetCalories    float64 `json:"netCalories"`
	TargetCalories *int    `json:"targetCalories"`
	Message        string  `json:"message"`
}

type DayView struct {
	Meals      []*Meal    `json:"meals"`
	Workouts   []*Workout `json:"workouts"`
	MealTotals Totals     `json:"mealTotals"`
	Overview   Overview   `json:"overview"`
}

type FoodPreset struct {
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

type ExercisePreset struct {
	Name             string  `json:"name"`
	Intensity        string  `json:"intensity"`
	CaloriesPer30Min float64 `json:"caloriesPer30Min"`
}

var FoodPresets = []FoodPreset{
	{Name: "Oatmeal with berries", Calories: 320, Protein: 12, Carbs: 58, Fat: 6},
	{Name: "Grilled chicken breast", Calories: 165, Protein: 31, Carbs: 0, Fat: 3.6},
	{Name: "Brown rice (1 cup)", Calories: 216, Protein: 5, Carbs: 45, Fat: 1.8},
	{Name: "Greek yogurt", Calories: 100, Protein: 17, Carbs: 6, Fat: 0.7},
	{Name: "Banana", Calories: 105, Protein: 1.3, Carbs: 27, Fat: 0.4},
	{Name: "Salmon fillet", Calories: 280, Protein: 40, Carbs: 0, Fat: 13},
	{Name: "Avocado toast", Calories: 290, Protein: 8, Carbs: 28, Fat: 18},
	{Name: "Protein shake", Calories: 220, Protein: 30, Carbs: 15, Fat: 5},
	{Name: "Mixed green salad", Calories: 150, Protein: 6, Carbs: 12, Fat: 9},
	{Name: "Whole wheat pasta", Calories: 310, Protein: 11, Carbs: 62, Fat: 2},
	{Name: "Scrambled eggs (2)", Calories: 180, Protein: 12, Carbs: 2, Fat: 14},
}

var ExercisePresets = []ExercisePreset{
	{Name: "Walking", Intensity: "Light", CaloriesPer30Min: 120},
	{Name: "Jogging", Intensity: "Moderate", CaloriesPer30Min: 240},
	{Name: "Running", Intensity: "Vigorous", CaloriesPer30Min: 360},
	{Name: "Cycling", Intensity: "Moderate", CaloriesPer30Min: 270},
	{Name: "Swimming", Intensity: "Vigorous", CaloriesPer30Min: 300},
	{Name: "Strength training", Intensity: "Moderate", CaloriesPer30Min: 180},
	{Name: "Yoga", Intensity: "Light", CaloriesPer30Min: 90},
	{Name: "HIIT workout", Intensity: "Vigorous", CaloriesPer30Min: 330},
}

// FindExercisePreset returns the preset matching name, or nil.
func FindExercisePreset(name string) *ExercisePreset {
	for i := range ExercisePresets {
		if ExercisePresets[i].Name == name {
			return &ExercisePresets[i]
		}
	}
	return nil
}
