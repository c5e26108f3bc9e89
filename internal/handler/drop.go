package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/osse101/AdventureBot_Go/internal/logger"
	"github.com/osse101/AdventureBot_Go/internal/player"
)

type DropRequest struct {
	PlayerID string `json:"player_id" validate:"required,uuid4"`
}

type DropResponse struct {
	Message string `json:"message"`
}

// HandleDrop awards one random item over the lottery channel
// @Summary Random drop
// @Description Award one random item by rarity-weighted draw
// @Tags drop
// @Accept json
// @Produce json
// @Param request body DropRequest true "Drop details"
// @Success 200 {object} DropResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /player/drop [post]
func HandleDrop(svc player.Service) http.HandlerFunc {
	return dropHandler("drop", svc.Drop)
}

// HandleFish awards one item over the fishing channel
// @Summary Fishing drop
// @Description Award one item by fishing-weighted draw
// @Tags drop
// @Accept json
// @Produce json
// @Param request body DropRequest true "Drop details"
// @Success 200 {object} DropResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /player/fish [post]
func HandleFish(svc player.Service) http.HandlerFunc {
	return dropHandler("fish", svc.Fish)
}

func dropHandler(name string, award func(ctx context.Context, playerID string) (string, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req DropRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode drop request", "error", err, "channel", name)
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid request", "error", err)
			http.Error(w, fmt.Sprintf("Invalid request: %v", err), http.StatusBadRequest)
			return
		}

		message, err := award(r.Context(), req.PlayerID)
		if err != nil {
			log.Error("Drop failed", "error", err, "player", req.PlayerID, "channel", name)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		log.Info("Drop awarded", "player", req.PlayerID, "channel", name)

		respondJSON(w, http.StatusOK, DropResponse{Message: message})
	}
}
