package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"calPalAPI/internal/dailygoal"
	"calPalAPI/internal/goal"
	"calPalAPI/middleware"
	"calPalAPI/services"
)

type DailyGoalHandler struct {
	dailyGoalService *services.DailyGoalService
}

func NewDailyGoalHandler(dailyGoalService *services.DailyGoalService) *DailyGoalHandler {
	return &DailyGoalHandler{
		dailyGoalService: dailyGoalService,
	}
}

func (h *DailyGoalHandler) GetToday(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	profileID, ok := middleware.GetProfileID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Profile not identified")
		return
	}

	slot, err := h.dailyGoalService.GetOrCreateToday(ctx, profileID)
	if err != nil {
		respondWithServiceError(w, err, "Could not load daily goal")
		return
	}

	respondWithJSON(w, http.StatusOK, slot)
}

func (h *DailyGoalHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	profileID, ok := middleware.GetProfileID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Profile not identified")
		return
	}

	slot, err := h.dailyGoalService.Refresh(ctx, profileID)
	if err != nil {
		respondWithServiceError(w, err, "Could not refresh daily goal")
		return
	}

	respondWithJSON(w, http.StatusOK, slot)
}

func (h *DailyGoalHandler) EditProgress(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	profileID, ok := middleware.GetProfileID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Profile not identified")
		return
	}

	var req dailygoal.EditProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	slot, message, err := h.dailyGoalService.EditProgress(ctx, profileID, &req)
	if err != nil {
		respondWithServiceError(w, err, "Could not edit daily goal progress")
		return
	}

	if message != nil {
		middleware.GoalCompletions.WithLabelValues("daily").Inc()
	}
	respondWithJSON(w, http.StatusOK, dailyGoalMutationResponse(slot, message))
}

func (h *DailyGoalHandler) Complete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	profileID, ok := middleware.GetProfileID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Profile not identified")
		return
	}

	slot, message, err := h.dailyGoalService.Complete(ctx, profileID)
	if err != nil {
		respondWithServiceError(w, err, "Could not complete daily goal")
		return
	}

	middleware.GoalCompletions.WithLabelValues("daily").Inc()
	respondWithJSON(w, http.StatusOK, dailyGoalMutationResponse(slot, message))
}

func (h *DailyGoalHandler) GetCompleted(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	profileID, ok := middleware.GetProfileID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Profile not identified")
		return
	}

	history, err := h.dailyGoalService.History(ctx, profileID)
	if err != nil {
		respondWithServiceError(w, err, "Could not load completed daily goals")
		return
	}

	respondWithJSON(w, http.StatusOK, history)
}

func (h *DailyGoalHandler) DeleteCompleted(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	profileID, ok := middleware.GetProfileID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Profile not identified")
		return
	}

	recordID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid record id")
		return
	}

	resp, err := h.dailyGoalService.DeleteRecord(ctx, profileID, recordID)
	if err != nil {
		respondWithServiceError(w, err, "Could not delete completed daily goal")
		return
	}

	respondWithJSON(w, http.StatusOK, resp)
}

func dailyGoalMutationResponse(slot *dailygoal.DailyGoal, message *goal.CompletionMessage) map[string]interface{} {
	resp := map[string]interface{}{"dailyGoal": slot}
	if message != nil {
		resp["completionMessage"] = message
	}
	return resp
}
