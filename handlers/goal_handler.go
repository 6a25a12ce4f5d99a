package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"calPalAPI/internal/goal"
	"calPalAPI/middleware"
	"calPalAPI/services"
)

type GoalHandler struct {
	goalService *services.GoalService
}

func NewGoalHandler(goalService *services.GoalService) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
	}
}

func (h *GoalHandler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	profileID, ok := middleware.GetProfileID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Profile not identified")
		return
	}

	var req goal.CreateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.goalService.Create(ctx, profileID, &req)
	if err != nil {
		respondWithServiceError(w, err, "Could not create goal")
		return
	}

	respondWithJSON(w, http.StatusCreated, created)
}

func (h *GoalHandler) GetGoals(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	profileID, ok := middleware.GetProfileID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Profile not identified")
		return
	}

	board, err := h.goalService.List(ctx, profileID)
	if err != nil {
		respondWithServiceError(w, err, "Could not load goals")
		return
	}

	respondWithJSON(w, http.StatusOK, board)
}

func (h *GoalHandler) LogProgress(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	profileID, ok := middleware.GetProfileID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Profile not identified")
		return
	}

	goalID, ok := goalIDFromPath(w, r)
	if !ok {
		return
	}

	var req goal.LogProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, message, err := h.goalService.LogProgress(ctx, profileID, goalID, &req)
	if err != nil {
		respondWithServiceError(w, err, "Could not log progress")
		return
	}

	if message != nil {
		middleware.GoalCompletions.WithLabelValues(string(updated.Type)).Inc()
	}
	respondWithJSON(w, http.StatusOK, goalMutationResponse(updated, message))
}

func (h *GoalHandler) EditProgress(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	profileID, ok := middleware.GetProfileID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Profile not identified")
		return
	}

	goalID, ok := goalIDFromPath(w, r)
	if !ok {
		return
	}

	var req goal.EditProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, message, err := h.goalService.EditProgress(ctx, profileID, goalID, &req)
	if err != nil {
		respondWithServiceError(w, err, "Could not edit progress")
		return
	}

	if message != nil {
		middleware.GoalCompletions.WithLabelValues(string(updated.Type)).Inc()
	}
	respondWithJSON(w, http.StatusOK, goalMutationResponse(updated, message))
}

func (h *GoalHandler) CompleteGoal(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	profileID, ok := middleware.GetProfileID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Profile not identified")
		return
	}

	goalID, ok := goalIDFromPath(w, r)
	if !ok {
		return
	}

	updated, message, err := h.goalService.CompleteNow(ctx, profileID, goalID)
	if err != nil {
		respondWithServiceError(w, err, "Could not complete goal")
		return
	}

	middleware.GoalCompletions.WithLabelValues(string(updated.Type)).Inc()
	respondWithJSON(w, http.StatusOK, goalMutationResponse(updated, message))
}

func (h *GoalHandler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	profileID, ok := middleware.GetProfileID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Profile not identified")
		return
	}

	goalID, ok := goalIDFromPath(w, r)
	if !ok {
		return
	}

	resp, err := h.goalService.Delete(ctx, profileID, goalID)
	if err != nil {
		respondWithServiceError(w, err, "Could not delete goal")
		return
	}

	respondWithJSON(w, http.StatusOK, resp)
}

func (h *GoalHandler) ClearAllGoals(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	profileID, ok := middleware.GetProfileID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Profile not identified")
		return
	}

	resp, err := h.goalService.ClearAll(ctx, profileID)
	if err != nil {
		respondWithServiceError(w, err, "Could not clear goals")
		return
	}

	respondWithJSON(w, http.StatusOK, resp)
}

func goalIDFromPath(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	goalID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid goal id")
		return uuid.Nil, false
	}
	return goalID, true
}

func goalMutationResponse(g *goal.Goal, message *goal.CompletionMessage) map[string]interface{} {
	resp := map[string]interface{}{"goal": g}
	if message != nil {
		resp["completionMessage"] = message
	}
	return resp
}
