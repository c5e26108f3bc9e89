package domain

// Rarity is one of six ordered tiers determining base drop weight and
// display grouping. The order N < R < SR < SSR < EX < SP is load-bearing:
// price listings break ties by ascending tier.
type Rarity int

const (
	RarityN Rarity = iota
	RarityR
	RaritySR
	RaritySSR
	RarityEX
	RaritySP
)

var rarityNames = [...]string{"N", "R", "SR", "SSR", "EX", "SP"}

// Rarities lists all tiers in ascending order.
var Rarities = []Rarity{RarityN, RarityR, RaritySR, RaritySSR, RarityEX, RaritySP}

// DropWeights holds the fixed per-tier drop probability in basis points.
// The weights sum to 1000 excluding SP, which is never dropped randomly.
var DropWeights = map[Rarity]int{
	RarityN:   500,
	RarityR:   300,
	RaritySR:  150,
	RaritySSR: 49,
	RarityEX:  1,
	RaritySP:  0,
}

func (r Rarity) String() string {
	if r < 0 || int(r) >= len(rarityNames) {
		return "unknown"
	}
	return rarityNames[r]
}

// ParseRarity converts a tier name ("N", "R", ...) to a Rarity.
func ParseRarity(s string) (Rarity, bool) {
	for i, name := range rarityNames {
		if name == s {
			return Rarity(i), true
		}
	}
	return 0, false
}

// DefaultMaxCount is the per-player holding capacity used when an item
// definition does not specify one.
const DefaultMaxCount = 10

// ItemHook is invoked when a player's held quantity of an item changes.
// The returned string, if non-empty, is appended to the user-facing response.
type ItemHook interface {
	Apply(player *Player) string
}

// HookFunc adapts a plain function to the ItemHook interface.
type HookFunc func(player *Player) string

// Apply implements ItemHook.
func (f HookFunc) Apply(player *Player) string { return f(player) }

// Condition gates an item's eligibility for random selection. isLast reports
// whether the current draw is the final one in a batch.
type Condition func(player *Player, isLast bool) bool

// Item is an immutable item definition, registered once at startup.
type Item struct {
	Name        string
	Description string
	Rarity      Rarity

	// MaxCount is the per-player holding capacity. Filled with
	// DefaultMaxCount at registration when zero.
	MaxCount int

	// Value is the base sell price; zero means the item cannot be sold.
	Value int

	// Bid is the base buy price; zero means the item cannot be bought,
	// unless a pricing source computes a dynamic price for it.
	Bid int

	// Lottery is the weight for random selection. nil defaults to 1;
	// an explicit zero excludes the item from all random drops.
	Lottery *int

	// Fishing marks the item as obtainable via the fishing drop channel
	// when positive, with the given weight.
	Fishing int

	// Plot marks the item as narrative-only. Affects the displayed
	// acquisition source, not mechanics.
	Plot bool

	Condition Condition
	OnGain    ItemHook
	OnLose    ItemHook
}

// LotteryWeight returns the effective weight for random selection.
func (i *Item) LotteryWeight() int {
	if i.Lottery == nil {
		return 1
	}
	return *i.Lottery
}

// Sellable reports whether the item has a base sell value.
func (i *Item) Sellable() bool { return i.Value > 0 }
