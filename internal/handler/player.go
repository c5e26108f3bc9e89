package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/osse101/AdventureBot_Go/internal/logger"
	"github.com/osse101/AdventureBot_Go/internal/player"
)

type RegisterPlayerRequest struct {
	Username string `json:"username" validate:"required,max=100,excludesall=\x00\n\r\t"`
}

type RegisterPlayerResponse struct {
	PlayerID string `json:"player_id"`
	Username string `json:"username"`
}

// HandleRegisterPlayer creates a new player record
// @Summary Register player
// @Description Create a new player record
// @Tags player
// @Accept json
// @Produce json
// @Param request body RegisterPlayerRequest true "Player details"
// @Success 200 {object} RegisterPlayerResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /player/register [post]
func HandleRegisterPlayer(svc player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req RegisterPlayerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode register request", "error", err)
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid request", "error", err)
			http.Error(w, fmt.Sprintf("Invalid request: %v", err), http.StatusBadRequest)
			return
		}

		created, err := svc.Register(r.Context(), req.Username)
		if err != nil {
			log.Error("Failed to register player", "error", err, "username", req.Username)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		log.Info("Player registered", "player", created.ID, "username", created.Username)

		respondJSON(w, http.StatusOK, RegisterPlayerResponse{
			PlayerID: created.ID,
			Username: created.Username,
		})
	}
}

// HandleGetPlayerByUsername looks up an existing player record by username
// @Summary Find player
// @Description Look up an existing player record by username
// @Tags player
// @Produce json
// @Param username query string true "Username"
// @Success 200 {object} RegisterPlayerResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /player/by-username [get]
func HandleGetPlayerByUsername(svc player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		username := r.URL.Query().Get("username")
		if username == "" {
			log.Warn("Missing username query parameter")
			http.Error(w, "Missing username query parameter", http.StatusBadRequest)
			return
		}

		found, err := svc.GetByUsername(r.Context(), username)
		if err != nil {
			log.Warn("Player lookup failed", "error", err, "username", username)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, RegisterPlayerResponse{
			PlayerID: found.ID,
			Username: found.Username,
		})
	}
}

type OverviewResponse struct {
	Message string `json:"message"`
}

// HandleOverview returns the player's per-rarity collection overview
// @Summary Collection overview
// @Description Get the player's obtained-item overview grouped by rarity
// @Tags player
// @Produce json
// @Param player_id query string true "Player ID"
// @Success 200 {object} OverviewResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /player/overview [get]
func HandleOverview(svc player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		playerID := r.URL.Query().Get("player_id")
		if playerID == "" {
			log.Warn("Missing player_id query parameter")
			http.Error(w, "Missing player_id query parameter", http.StatusBadRequest)
			return
		}

		message, err := svc.Overview(r.Context(), playerID)
		if err != nil {
			log.Error("Failed to build overview", "error", err, "player", playerID)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, OverviewResponse{Message: message})
	}
}

// HandleItemDetail returns detail text for one catalog item
// @Summary Item detail
// @Description Get detail text for one item, scoped to the player's own history
// @Tags player
// @Produce json
// @Param player_id query string true "Player ID"
// @Param item query string true "Item name"
// @Success 200 {object} OverviewResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /player/item [get]
func HandleItemDetail(svc player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		playerID := r.URL.Query().Get("player_id")
		itemName := r.URL.Query().Get("item")
		if playerID == "" || itemName == "" {
			log.Warn("Missing query parameters", "player_id", playerID, "item", itemName)
			http.Error(w, "Missing player_id or item query parameter", http.StatusBadRequest)
			return
		}

		message, err := svc.ItemDetail(r.Context(), playerID, itemName)
		if err != nil {
			log.Error("Failed to build item detail", "error", err, "player", playerID, "item", itemName)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, OverviewResponse{Message: message})
	}
}
