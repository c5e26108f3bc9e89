package narrative

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/AdventureBot_Go/internal/domain"
)

func TestSaleTriggerRegistration(t *testing.T) {
	r := NewRegistry()
	assert.False(t, r.IsSaleTrigger("music box"))

	r.RegisterSaleTrigger("music box", SaleTrigger{Sequence: "1-1", Opening: "A melody plays."})
	assert.True(t, r.IsSaleTrigger("music box"))
}

func TestBeginSequence(t *testing.T) {
	r := NewRegistry()
	r.RegisterSaleTrigger("music box", SaleTrigger{Sequence: "1-1", Opening: "A melody plays."})

	player := domain.NewPlayer("p1", "alice")
	opening, err := r.BeginSequence(context.Background(), player, "music box")
	require.NoError(t, err)
	assert.Equal(t, "A melody plays.", opening)
	assert.Equal(t, "1-1", player.Progress)
}

func TestBeginSequenceUnknownTrigger(t *testing.T) {
	r := NewRegistry()
	player := domain.NewPlayer("p1", "alice")

	_, err := r.BeginSequence(context.Background(), player, "apple")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, player.Progress)
}

func TestPendingSequence(t *testing.T) {
	r := NewRegistry()
	player := domain.NewPlayer("p1", "alice")

	assert.Empty(t, r.PendingSequence(context.Background(), player))

	r.SetPending(player.ID, "Answer the stranger first.")
	assert.Equal(t, "Answer the stranger first.", r.PendingSequence(context.Background(), player))

	r.SetPending(player.ID, "")
	assert.Empty(t, r.PendingSequence(context.Background(), player), "empty message clears")
}
