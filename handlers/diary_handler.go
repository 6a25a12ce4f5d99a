package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"calPalAPI/internal/calorie"
	"calPalAPI/internal/diary"
	"calPalAPI/middleware"
	"calPalAPI/services"
)

type DiaryHandler struct {
	diaryService *services.DiaryService
}

func NewDiaryHandler(diaryService *services.DiaryService) *DiaryHandler {
	return &DiaryHandler{
		diaryService: diaryService,
	}
}

func (h *DiaryHandler) GetDay(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	profileID, ok := middleware.GetProfileID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Profile not identified")
		return
	}

	day, err := h.diaryService.Day(ctx, profileID)
	if err != nil {
		respondWithServiceError(w, err, "Could not load diary")
		return
	}

	respondWithJSON(w, http.StatusOK, day)
}

func (h *DiaryHandler) AddMeal(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	profileID, ok := middleware.GetProfileID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Profile not identified")
		return
	}

	var req diary.AddMealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	meal, err := h.diaryService.AddMeal(ctx, profileID, &req)
	if err != nil {
		respondWithServiceError(w, err, "Could not add meal")
		return
	}

	respondWithJSON(w, http.StatusCreated, meal)
}

func (h *DiaryHandler) AddWorkout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	profileID, ok := middleware.GetProfileID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Profile not identified")
		return
	}

	var req diary.AddWorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	workout, err := h.diaryService.AddWorkout(ctx, profileID, &req)
	if err != nil {
		respondWithServiceError(w, err, "Could not add workout")
		return
	}

	respondWithJSON(w, http.StatusCreated, workout)
}

func (h *DiaryHandler) DeleteMeal(w http.ResponseWriter, r *http.Request) {
	h.deleteEntry(w, r, h.diaryService.DeleteMeal, "Could not delete meal")
}

func (h *DiaryHandler) DeleteWorkout(w http.ResponseWriter, r *http.Request) {
	h.deleteEntry(w, r, h.diaryService.DeleteWorkout, "Could not delete workout")
}

func (h *DiaryHandler) deleteEntry(w http.ResponseWriter, r *http.Request, del func(context.Context, string, uuid.UUID) error, fallback string) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	profileID, ok := middleware.GetProfileID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Profile not identified")
		return
	}

	entryID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid entry id")
		return
	}

	if err := del(ctx, profileID, entryID); err != nil {
		respondWithServiceError(w, err, fallback)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (h *DiaryHandler) GetFoodPresets(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, diary.FoodPresets)
}

func (h *DiaryHandler) GetExercisePresets(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, diary.ExercisePresets)
}

type calculateRequest struct {
	calorie.Input
	SaveTarget bool `json:"saveTarget"`
}

// Calculate runs the calorie calculator and optionally persists the target
// as the profile's daily goal.
func (h *DiaryHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	profileID, ok := middleware.GetProfileID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Profile not identified")
		return
	}

	var req calculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := calorie.Calculate(req.Input)
	if err != nil {
		respondWithServiceError(w, err, "Could not calculate calories")
		return
	}

	if req.SaveTarget {
		if err := h.diaryService.SetCalorieTarget(ctx, profileID, result.TargetCalories); err != nil {
			respondWithServiceError(w, err, "Could not save calorie target")
			return
		}
	}

	respondWithJSON(w, http.StatusOK, result)
}
