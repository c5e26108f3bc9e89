package domain

import "errors"

// Error message string constants - single source of truth for error messages.
// Use these in assert.Contains() checks when testing error messages.
const (
	// Player errors
	ErrMsgPlayerNotFound = "player not found"

	// Catalog errors
	ErrMsgItemNotFound  = "item not found"
	ErrMsgDuplicateItem = "duplicate item name"

	// Loot errors
	ErrMsgNoEligibleItems = "no eligible items"

	// Trade errors
	ErrMsgInsufficientFunds = "insufficient funds"
	ErrMsgInsufficientStock = "insufficient stock"
	ErrMsgNotBuyable        = "cannot be purchased"
	ErrMsgNotSellable       = "cannot be sold"
	ErrMsgInvalidQuantity   = "invalid quantity"
	ErrMsgOverCapacity      = "exceeds the holding limit"

	// Persistence errors
	ErrMsgCommitFailed = "failed to persist player state"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors.
// Wrap these with fmt.Errorf("%w: %s", domain.ErrXxx, details) for context.
//
// Trade validation errors (funds, stock, quantity, capacity) are expected and
// frequent; they surface as rejection messages. Catalog errors indicate a
// misconfigured deployment and abort startup.
var (
	ErrPlayerNotFound = errors.New(ErrMsgPlayerNotFound)

	ErrItemNotFound  = errors.New(ErrMsgItemNotFound)
	ErrDuplicateItem = errors.New(ErrMsgDuplicateItem)

	ErrNoEligibleItems = errors.New(ErrMsgNoEligibleItems)

	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)
	ErrInsufficientStock = errors.New(ErrMsgInsufficientStock)
	ErrNotBuyable        = errors.New(ErrMsgNotBuyable)
	ErrNotSellable       = errors.New(ErrMsgNotSellable)
	ErrInvalidQuantity   = errors.New(ErrMsgInvalidQuantity)
	ErrOverCapacity      = errors.New(ErrMsgOverCapacity)

	ErrCommitFailed = errors.New(ErrMsgCommitFailed)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
