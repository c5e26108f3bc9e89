package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/AdventureBot_Go/internal/domain"
)

func TestRegisterFillsDefaultMaxCount(t *testing.T) {
	c := New()
	require.NoError(t, c.Register(&domain.Item{Name: "apple", Rarity: domain.RarityN}))

	item, ok := c.Lookup("apple")
	require.True(t, ok)
	assert.Equal(t, domain.DefaultMaxCount, item.MaxCount)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	c := New()
	require.NoError(t, c.Register(&domain.Item{Name: "apple", Rarity: domain.RarityN}))

	err := c.Register(&domain.Item{Name: "apple", Rarity: domain.RarityR})
	assert.ErrorIs(t, err, domain.ErrDuplicateItem)
}

func TestRegisterRejectsInvalid(t *testing.T) {
	c := New()
	assert.ErrorIs(t, c.Register(&domain.Item{Rarity: domain.RarityN}), domain.ErrInvalidInput)
	assert.ErrorIs(t, c.Register(&domain.Item{Name: "x", MaxCount: -1}), domain.ErrInvalidInput)
}

func TestBucketsPartitionByRarity(t *testing.T) {
	c := New()
	require.NoError(t, c.Register(&domain.Item{Name: "apple", Rarity: domain.RarityN}))
	require.NoError(t, c.Register(&domain.Item{Name: "pearl", Rarity: domain.RarityR}))
	require.NoError(t, c.Register(&domain.Item{Name: "bread", Rarity: domain.RarityN}))

	assert.Len(t, c.Bucket(domain.RarityN), 2)
	assert.Len(t, c.Bucket(domain.RarityR), 1)
	assert.Empty(t, c.Bucket(domain.RaritySP))
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, []string{"apple", "pearl", "bread"}, c.Names())
}
