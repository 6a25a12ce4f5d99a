package goal

import (
	"github.com/google/uuid"
)

type GoalType string
type GoalStatus string

const (
	TypeExercise   GoalType = "Exercise"
	TypeWeightLoss GoalType = "Weight Loss"
	TypeCustom     GoalType = "Custom"

	StatusInProgress GoalStatus = "In Progress"
	StatusCompleted  GoalStatus = "Completed"
)

// Goal is a user-created target with progress tracking and a one-time reward
// fixed at completion.
//
// Progress carries two meanings: for Exercise and Weight Loss it is a
// cumulative quantity measured against Target (workouts done, pounds lost);
// for Custom it is a percentage in [0,100] and Target is always nil.
type Goal struct {
	ID            uuid.UUID  `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Type          GoalType   `json:"type"`
	Target        *float64   `json:"target"`
	Progress      float64    `json:"progress"`
	Status        GoalStatus `json:"status"`
	StartDate     string     `json:"startDate,omitempty"`
	EndDate       string     `json:"endDate,omitempty"`
	DateCreated   string     `json:"dateCreated"`
	CompletedDate string     `json:"completedDate,omitempty"`
	// Reward stays nil while the goal is in progress and is assigned exactly
	// once at the transition into Completed. It is never recomputed afterward.
	Reward *int `json:"reward"`
}

func (g *Goal) IsCompleted() bool {
	return g.Status == StatusCompleted
}

// ProgressPercent normalizes the two progress meanings into a 0-100 value for
// display bars.
func (g *Goal) ProgressPercent() int {
	if g.Type == TypeCustom {
		p := int(g.Progress + 0.5)
		if p < 0 {
			return 0
		}
		if p > 100 {
			return 100
		}
		return p
	}
	if g.Target == nil || *g.Target <= 0 {
		return 0
	}
	percent := int(g.Progress / *g.Target * 100.0 + 0.5)
	if percent > 100 {
		return 100
	}
	return percent
}

type CreateGoalRequest struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Type            GoalType `json:"type"`
	Target          *float64 `json:"target"`
	StartDate       string   `json:"startDate"`
	EndDate         string   `json:"endDate"`
	InitialProgress *float64 `json:"initialProgress"`
}

// Pointer fields so a missing or non-numeric value is distinguishable from zero.
type LogProgressRequest struct {
	Delta *float64 `json:"delta"`
}

type EditProgressRequest struct {
	Percent *float64 `json:"percent"`
}

// GoalView decorates a goal with the derived display fields the dashboard
// renders.
type GoalView struct {
	Goal
	ProgressPercent int    `json:"progressPercent"`
	ProgressText    string `json:"progressText"`
	PotentialReward int    `json:"potentialReward"`
}

type GoalBoard struct {
	Current   []*GoalView `json:"current"`
	Completed []*GoalView `json:"completed"`
}

// DeleteGoalResponse surfaces the refunded reward for display. No running
// balance exists to adjust; totals are recomputed from the remaining records.
type DeleteGoalResponse struct {
	Deleted        bool `json:"deleted"`
	RefundedReward int  `json:"refundedReward"`
}

type ClearAllResponse struct {
	Cleared        bool `json:"cleared"`
	RefundedPoints int  `json:"refundedPoints"`
}
