package handlers

import (
	"context"
	"net/http"
	"time"

	"calPalAPI/middleware"
	"calPalAPI/services"
)

type BadgeHandler struct {
	badgeService *services.BadgeService
}

func NewBadgeHandler(badgeService *services.BadgeService) *BadgeHandler {
	return &BadgeHandler{
		badgeService: badgeService,
	}
}

func (h *BadgeHandler) GetBadges(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	profileID, ok := middleware.GetProfileID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Profile not identified")
		return
	}

	board, err := h.badgeService.Board(ctx, profileID)
	if err != nil {
		respondWithServiceError(w, err, "Could not load badges")
		return
	}

	respondWithJSON(w, http.StatusOK, board)
}
