package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/osse101/AdventureBot_Go/internal/logger"
	"github.com/osse101/AdventureBot_Go/internal/player"
)

type AdjustItemRequest struct {
	PlayerID string `json:"player_id" validate:"required,uuid4"`
	ItemName string `json:"item_name" validate:"required,max=100"`
	Quantity int    `json:"quantity" validate:"min=1,max=10000"`
}

type AdjustItemResponse struct {
	Message string `json:"message"`
}

// HandleGainItem grants items from a non-trade source
// @Summary Grant item
// @Description Add items to a player's warehouse (system/admin action)
// @Tags inventory
// @Accept json
// @Produce json
// @Param request body AdjustItemRequest true "Item details"
// @Success 200 {object} AdjustItemResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /player/item/gain [post]
func HandleGainItem(svc player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req AdjustItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode gain item request", "error", err)
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid request", "error", err)
			http.Error(w, fmt.Sprintf("Invalid request: %v", err), http.StatusBadRequest)
			return
		}

		log.Debug("Gain item request", "player", req.PlayerID, "item", req.ItemName, "quantity", req.Quantity)

		message, err := svc.GainItem(r.Context(), req.PlayerID, req.ItemName, req.Quantity)
		if err != nil {
			log.Error("Failed to gain item", "error", err, "player", req.PlayerID, "item", req.ItemName)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		log.Info("Item granted", "player", req.PlayerID, "item", req.ItemName, "quantity", req.Quantity)

		respondJSON(w, http.StatusOK, AdjustItemResponse{Message: message})
	}
}

// HandleLoseItem removes items from a non-trade source
// @Summary Remove item
// @Description Remove items from a player's warehouse, clamping at zero
// @Tags inventory
// @Accept json
// @Produce json
// @Param request body AdjustItemRequest true "Item details"
// @Success 200 {object} AdjustItemResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /player/item/lose [post]
func HandleLoseItem(svc player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req AdjustItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode lose item request", "error", err)
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid request", "error", err)
			http.Error(w, fmt.Sprintf("Invalid request: %v", err), http.StatusBadRequest)
			return
		}

		log.Debug("Lose item request", "player", req.PlayerID, "item", req.ItemName, "quantity", req.Quantity)

		message, err := svc.LoseItem(r.Context(), req.PlayerID, req.ItemName, req.Quantity)
		if err != nil {
			log.Error("Failed to lose item", "error", err, "player", req.PlayerID, "item", req.ItemName)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		log.Info("Item removed", "player", req.PlayerID, "item", req.ItemName, "quantity", req.Quantity)

		respondJSON(w, http.StatusOK, AdjustItemResponse{Message: message})
	}
}
