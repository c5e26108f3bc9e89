package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/osse101/AdventureBot_Go/internal/domain"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := getBuffer()
	defer putBuffer(buf)

	// Encode to the buffer first; headers are already sent if this fails.
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgInvalidRequestError = "Invalid request. Please check your inputs."

	ErrMsgPlayerNotFoundError   = "Player not found"
	ErrMsgItemNotFoundError     = "Item not found"
	ErrMsgNotEnoughMoneyError   = "Not enough money"
	ErrMsgNotEnoughItemsError   = "Not enough items"
	ErrMsgOverCapacityError     = "Quantity exceeds the holding limit"
	ErrMsgNotSellableError      = "Item is not sellable"
	ErrMsgNotBuyableError       = "Item is not buyable"
	ErrMsgInvalidQuantityError  = "Invalid quantity"
	ErrMsgNoEligibleItemsError  = "No eligible items"
	ErrMsgDuplicatePlayerError  = "Player already exists"
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP
// status codes and messages.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrPlayerNotFound):
		return http.StatusBadRequest, ErrMsgPlayerNotFoundError
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusBadRequest, ErrMsgItemNotFoundError
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusBadRequest, ErrMsgNotEnoughMoneyError
	case errors.Is(err, domain.ErrInsufficientStock):
		return http.StatusBadRequest, ErrMsgNotEnoughItemsError
	case errors.Is(err, domain.ErrOverCapacity):
		return http.StatusBadRequest, ErrMsgOverCapacityError
	case errors.Is(err, domain.ErrNotSellable):
		return http.StatusBadRequest, ErrMsgNotSellableError
	case errors.Is(err, domain.ErrNotBuyable):
		return http.StatusBadRequest, ErrMsgNotBuyableError
	case errors.Is(err, domain.ErrInvalidQuantity):
		return http.StatusBadRequest, ErrMsgInvalidQuantityError
	case errors.Is(err, domain.ErrNoEligibleItems):
		return http.StatusBadRequest, ErrMsgNoEligibleItemsError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidRequestError
	case errors.Is(err, domain.ErrCommitFailed):
		return http.StatusInternalServerError, ErrMsgGenericServerError
	}

	// For wrapped errors with domain errors as the base, try unwrapping
	unwrapped := errors.Unwrap(err)
	if unwrapped != nil && unwrapped != err {
		return mapServiceErrorToUserMessage(unwrapped)
	}

	errMsg := err.Error()
	if errMsg != "" && len(errMsg) < 200 {
		return http.StatusInternalServerError, errMsg
	}
	return http.StatusInternalServerError, ErrMsgGenericServerError
}
