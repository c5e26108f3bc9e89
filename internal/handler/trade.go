package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/osse101/AdventureBot_Go/internal/logger"
	"github.com/osse101/AdventureBot_Go/internal/trade"
)

type TradeRequest struct {
	PlayerID string   `json:"player_id" validate:"required,uuid4"`
	Args     []string `json:"args" validate:"max=50,dive,tradetoken"`
}

type TradeResponse struct {
	Outcome    string         `json:"outcome"`
	Message    string         `json:"message"`
	Items      map[string]int `json:"items,omitempty"`
	MoneyDelta int            `json:"money_delta"`
	Discarded  bool           `json:"discarded,omitempty"`
}

func outcomeString(o trade.Outcome) string {
	switch o {
	case trade.OutcomeCommitted:
		return "committed"
	case trade.OutcomeRejected:
		return "rejected"
	case trade.OutcomeHandedOff:
		return "handed_off"
	case trade.OutcomeListed:
		return "listed"
	}
	return "unknown"
}

func tradeResponse(result *trade.Result) TradeResponse {
	return TradeResponse{
		Outcome:    outcomeString(result.Outcome),
		Message:    result.Message,
		Items:      result.Items,
		MoneyDelta: result.MoneyDelta,
		Discarded:  result.Discarded,
	}
}

// HandleBuy handles multi-item purchases
// @Summary Buy items
// @Description Buy a batch of items; an empty argument list returns the price listing
// @Tags trade
// @Accept json
// @Produce json
// @Param request body TradeRequest true "Buy details"
// @Success 200 {object} TradeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /player/buy [post]
func HandleBuy(engine *trade.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req TradeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode buy request", "error", err)
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid request", "error", err)
			http.Error(w, fmt.Sprintf("Invalid request: %v", err), http.StatusBadRequest)
			return
		}

		log.Debug("Buy request", "player", req.PlayerID, "args", req.Args)

		result, err := engine.Buy(r.Context(), req.PlayerID, req.Args)
		if err != nil {
			log.Error("Buy failed", "error", err, "player", req.PlayerID)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		log.Info("Buy completed",
			"player", req.PlayerID,
			"outcome", outcomeString(result.Outcome),
			"money_delta", result.MoneyDelta)

		respondJSON(w, http.StatusOK, tradeResponse(result))
	}
}

// HandleSell handles multi-item sales
// @Summary Sell items
// @Description Sell a batch of items; an empty argument list returns the price listing
// @Tags trade
// @Accept json
// @Produce json
// @Param request body TradeRequest true "Sell details"
// @Success 200 {object} TradeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /player/sell [post]
func HandleSell(engine *trade.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req TradeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode sell request", "error", err)
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid request", "error", err)
			http.Error(w, fmt.Sprintf("Invalid request: %v", err), http.StatusBadRequest)
			return
		}

		log.Debug("Sell request", "player", req.PlayerID, "args", req.Args)

		result, err := engine.Sell(r.Context(), req.PlayerID, req.Args)
		if err != nil {
			log.Error("Sell failed", "error", err, "player", req.PlayerID)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		log.Info("Sell completed",
			"player", req.PlayerID,
			"outcome", outcomeString(result.Outcome),
			"money_delta", result.MoneyDelta)

		respondJSON(w, http.StatusOK, tradeResponse(result))
	}
}
