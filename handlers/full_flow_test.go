package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calPalAPI/internal/record"
	"calPalAPI/middleware"
	"calPalAPI/services"
)

// newTestRouter wires the full API surface against an in-memory store with a
// clock pinned to the given day.
func newTestRouter(day string) *mux.Router {
	parsed, err := time.Parse("2006-01-02", day)
	if err != nil {
		panic(err)
	}
	now := func() time.Time { return parsed }
	pick := func(n int) int { return 0 }

	store := record.NewMemoryStore()
	notificationService := services.NewNotificationService(store)
	goalService := services.NewGoalService(store, now, pick)
	dailyGoalService := services.NewDailyGoalService(store, now, pick)
	badgeService := services.NewBadgeService(store, goalService, notificationService)
	diaryService := services.NewDiaryService(store, now)

	goalHandler := NewGoalHandler(goalService)
	dailyGoalHandler := NewDailyGoalHandler(dailyGoalService)
	badgeHandler := NewBadgeHandler(badgeService)
	diaryHandler := NewDiaryHandler(diaryService)

	r := mux.NewRouter()
	protected := r.PathPrefix("/api/v1").Subrouter()
	protected.Use(middleware.ProfileAuthMiddleware)

	protected.HandleFunc("/goals", goalHandler.GetGoals).Methods("GET")
	protected.HandleFunc("/goals", goalHandler.CreateGoal).Methods("POST")
	protected.HandleFunc("/goals", goalHandler.ClearAllGoals).Methods("DELETE")
	protected.HandleFunc("/goals/{id}", goalHandler.DeleteGoal).Methods("DELETE")
	protected.HandleFunc("/goals/{id}/progress", goalHandler.LogProgress).Methods("POST")
	protected.HandleFunc("/goals/{id}/progress", goalHandler.EditProgress).Methods("PUT")
	protected.HandleFunc("/goals/{id}/complete", goalHandler.CompleteGoal).Methods("POST")

	protected.HandleFunc("/daily-goal", dailyGoalHandler.GetToday).Methods("GET")
	protected.HandleFunc("/daily-goal/refresh", dailyGoalHandler.Refresh).Methods("POST")
	protected.HandleFunc("/daily-goal/progress", dailyGoalHandler.EditProgress).Methods("PUT")
	protected.HandleFunc("/daily-goal/complete", dailyGoalHandler.Complete).Methods("POST")
	protected.HandleFunc("/daily-goal/completed", dailyGoalHandler.GetCompleted).Methods("GET")
	protected.HandleFunc("/daily-goal/completed/{id}", dailyGoalHandler.DeleteCompleted).Methods("DELETE")

	protected.HandleFunc("/badges", badgeHandler.GetBadges).Methods("GET")

	protected.HandleFunc("/diary", diaryHandler.GetDay).Methods("GET")
	protected.HandleFunc("/diary/meals", diaryHandler.AddMeal).Methods("POST")
	protected.HandleFunc("/calculator", diaryHandler.Calculate).Methods("POST")

	return r
}

func doRequest(t *testing.T, router *mux.Router, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Profile-ID", "profile_flow_test")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func TestRoutesRequireProfileHeader(t *testing.T) {
	router := newTestRouter("2026-08-30")

	req := httptest.NewRequest("GET", "/api/v1/goals", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGoalLifecycleOverHTTP(t *testing.T) {
	router := newTestRouter("2026-08-30")

	rec := doRequest(t, router, "POST", "/api/v1/goals", map[string]interface{}{
		"title":  "Complete 5 workouts",
		"type":   "Exercise",
		"target": 5,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	decodeBody(t, rec, &created)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "In Progress", created.Status)

	rec = doRequest(t, router, "POST", fmt.Sprintf("/api/v1/goals/%s/progress", created.ID), map[string]interface{}{
		"delta": 5,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var mutation struct {
		Goal struct {
			Status   string  `json:"status"`
			Progress float64 `json:"progress"`
			Reward   *int    `json:"reward"`
		} `json:"goal"`
		CompletionMessage *struct {
			Emoji string `json:"emoji"`
			Text  string `json:"text"`
		} `json:"completionMessage"`
	}
	decodeBody(t, rec, &mutation)
	assert.Equal(t, "Completed", mutation.Goal.Status)
	assert.Equal(t, 5.0, mutation.Goal.Progress)
	require.NotNil(t, mutation.Goal.Reward)
	assert.Equal(t, 25, *mutation.Goal.Reward)
	require.NotNil(t, mutation.CompletionMessage)
	assert.NotEmpty(t, mutation.CompletionMessage.Text)

	rec = doRequest(t, router, "GET", "/api/v1/goals", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var board struct {
		Current   []json.RawMessage `json:"current"`
		Completed []json.RawMessage `json:"completed"`
	}
	decodeBody(t, rec, &board)
	assert.Empty(t, board.Current)
	assert.Len(t, board.Completed, 1)

	rec = doRequest(t, router, "DELETE", fmt.Sprintf("/api/v1/goals/%s", created.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var deleted struct {
		Deleted        bool `json:"deleted"`
		RefundedReward int  `json:"refundedReward"`
	}
	decodeBody(t, rec, &deleted)
	assert.True(t, deleted.Deleted)
	assert.Equal(t, 25, deleted.RefundedReward)
}

func TestGoalErrorStatusCodes(t *testing.T) {
	router := newTestRouter("2026-08-30")

	// Validation rejection
	rec := doRequest(t, router, "POST", "/api/v1/goals", map[string]interface{}{
		"title": "",
		"type":  "Exercise",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body map[string]string
	decodeBody(t, rec, &body)
	assert.NotEmpty(t, body["field"])

	// Malformed id
	rec = doRequest(t, router, "DELETE", "/api/v1/goals/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Unknown id
	rec = doRequest(t, router, "DELETE", "/api/v1/goals/0b9f7a51-3f3e-4f7e-8e9b-1a2b3c4d5e6f", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDailyGoalAndBadgesOverHTTP(t *testing.T) {
	router := newTestRouter("2026-08-30")

	rec := doRequest(t, router, "GET", "/api/v1/daily-goal", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var slot struct {
		Date      string `json:"date"`
		Goal      string `json:"goal"`
		Completed bool   `json:"completed"`
	}
	decodeBody(t, rec, &slot)
	assert.Equal(t, "2026-08-30", slot.Date)
	assert.NotEmpty(t, slot.Goal)
	assert.False(t, slot.Completed)

	rec = doRequest(t, router, "POST", "/api/v1/daily-goal/complete", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Completing twice in one day is rejected
	rec = doRequest(t, router, "POST", "/api/v1/daily-goal/complete", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, router, "GET", "/api/v1/daily-goal/completed", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var history []struct {
		ID            int64  `json:"id"`
		CompletedDate string `json:"completedDate"`
	}
	decodeBody(t, rec, &history)
	require.Len(t, history, 1)
	assert.Equal(t, "2026-08-30", history[0].CompletedDate)

	rec = doRequest(t, router, "GET", "/api/v1/badges", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var badges struct {
		TotalPoints   int `json:"totalPoints"`
		UnlockedCount int `json:"unlockedCount"`
	}
	decodeBody(t, rec, &badges)
	assert.Equal(t, 20, badges.TotalPoints)
	assert.Equal(t, 0, badges.UnlockedCount)

	rec = doRequest(t, router, "DELETE", fmt.Sprintf("/api/v1/daily-goal/completed/%d", history[0].ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestCalculatorPersistsTarget(t *testing.T) {
	router := newTestRouter("2026-08-30")

	rec := doRequest(t, router, "POST", "/api/v1/calculator", map[string]interface{}{
		"sex":           "male",
		"age":           30,
		"heightFeet":    5,
		"heightInches":  10,
		"weightLbs":     180,
		"activityLevel": 3,
		"goalLevel":     1,
		"saveTarget":    true,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var result struct {
		TargetCalories int `json:"targetCalories"`
	}
	decodeBody(t, rec, &result)
	require.Positive(t, result.TargetCalories)

	rec = doRequest(t, router, "GET", "/api/v1/diary", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var day struct {
		Overview struct {
			TargetCalories *int `json:"targetCalories"`
		} `json:"overview"`
	}
	decodeBody(t, rec, &day)
	require.NotNil(t, day.Overview.TargetCalories)
	assert.Equal(t, result.TargetCalories, *day.Overview.TargetCalories)
}
