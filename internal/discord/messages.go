package discord

// Friendly messages shown when the API reports a known failure.
const (
	MsgInsufficientFunds = "💸 You don't have enough money for that."
	MsgItemNotFound      = "🔍 That item doesn't exist. Check the spelling?"
	MsgOverCapacity      = "📦 You can't hold that many of those."
	MsgNotEnoughItems    = "📉 You don't have that many to sell."
	MsgPlayerNotFound    = "👤 You aren't registered yet. Try any command once to register."
	MsgServerError       = "Error connecting to game server."
)
