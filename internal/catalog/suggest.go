package catalog

import (
	"sort"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Suggestion defaults. A candidate qualifies when its edit distance is within
// maxDistance and no more than half the input length, so short names don't
// match everything.
const (
	suggestLimit    = 3
	suggestMaxDist  = 2
	suggestCacheCap = 256
	suggestCacheTTL = 10 * time.Minute
)

// Suggester proposes close item-name matches for unknown input. Results are
// cached per input string; the catalog is immutable so entries never go stale,
// the TTL just bounds memory held for one-off typos.
type Suggester struct {
	catalog *Catalog
	cache   *expirable.LRU[string, []string]
}

// NewSuggester creates a Suggester over an immutable catalog.
func NewSuggester(c *Catalog) *Suggester {
	return &Suggester{
		catalog: c,
		cache:   expirable.NewLRU[string, []string](suggestCacheCap, nil, suggestCacheTTL),
	}
}

// Suggest returns up to three registered names closest to the input,
// nearest first. An empty result means nothing was plausibly close.
func (s *Suggester) Suggest(input string) []string {
	if input == "" {
		return nil
	}
	if cached, ok := s.cache.Get(input); ok {
		return cached
	}

	type scored struct {
		name string
		dist int
	}
	var candidates []scored
	for _, name := range s.catalog.Names() {
		dist := editDistance(input, name)
		if dist <= suggestMaxDist && dist*2 <= len([]rune(input)) {
			candidates = append(candidates, scored{name, dist})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].dist < candidates[j].dist
	})

	names := make([]string, 0, suggestLimit)
	for _, c := range candidates {
		if len(names) == suggestLimit {
			break
		}
		names = append(names, c.name)
	}
	s.cache.Add(input, names)
	return names
}

// Hint formats a suggestion sentence for an unknown-item error, or an empty
// string when there is nothing to suggest.
func (s *Suggester) Hint(input string) string {
	names := s.Suggest(input)
	if len(names) == 0 {
		return ""
	}
	return "Did you mean: " + strings.Join(names, ", ") + "?"
}

// editDistance computes the Levenshtein distance between two strings,
// rune-wise.
func editDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
