package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/AdventureBot_Go/internal/domain"
)

func TestBuildResolvesHooksAndConditions(t *testing.T) {
	loader := NewLoader()
	loader.RegisterHook("sparkle", domain.HookFunc(func(_ *domain.Player) string {
		return "sparkle"
	}))
	loader.RegisterCondition("always", func(_ *domain.Player, _ bool) bool { return true })

	zero := 0
	c, err := loader.Build(&Config{Items: []Def{
		{Name: "apple", Rarity: "N", OnGain: "sparkle", Condition: "always"},
		{Name: "relic", Rarity: "SP", Plot: true, Lottery: &zero},
	}})
	require.NoError(t, err)

	apple, ok := c.Lookup("apple")
	require.True(t, ok)
	require.NotNil(t, apple.OnGain)
	assert.Equal(t, "sparkle", apple.OnGain.Apply(nil))
	require.NotNil(t, apple.Condition)
	assert.True(t, apple.Condition(nil, false))

	relic, ok := c.Lookup("relic")
	require.True(t, ok)
	assert.True(t, relic.Plot)
	assert.Zero(t, relic.LotteryWeight())
}

func TestBuildRejectsBadDefinitions(t *testing.T) {
	loader := NewLoader()

	tests := []struct {
		name string
		def  Def
	}{
		{"unknown rarity", Def{Name: "x", Rarity: "legendary"}},
		{"unknown hook", Def{Name: "x", Rarity: "N", OnGain: "missing"}},
		{"unknown lose hook", Def{Name: "x", Rarity: "N", OnLose: "missing"}},
		{"unknown condition", Def{Name: "x", Rarity: "N", Condition: "missing"}},
		{"negative value", Def{Name: "x", Rarity: "N", Value: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loader.Build(&Config{Items: []Def{tt.def}})
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestBuildRejectsEmptyConfig(t *testing.T) {
	loader := NewLoader()
	_, err := loader.Build(&Config{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = loader.Build(nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
