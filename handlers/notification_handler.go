package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"calPalAPI/middleware"
	"calPalAPI/services"
)

type NotificationHandler struct {
	notificationService *services.NotificationService
}

func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
	}
}

type registerDeviceRequest struct {
	Token string `json:"token"`
}

func (h *NotificationHandler) RegisterDevice(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	profileID, ok := middleware.GetProfileID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Profile not identified")
		return
	}

	var req registerDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.notificationService.RegisterDevice(ctx, profileID, req.Token); err != nil {
		respondWithServiceError(w, err, "Could not register device")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Device registered successfully"})
}
