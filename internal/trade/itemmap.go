package trade

import (
	"fmt"
	"math"
	"strconv"

	"github.com/osse101/AdventureBot_Go/internal/domain"
)

// itemMap is a parsed quantity request: item name to tagged quantity, with
// insertion order preserved. Order matters because validation accumulates a
// running cost and rejects at the first constraint violation.
type itemMap struct {
	order      []string
	quantities map[string]domain.Quantity
}

func (m *itemMap) set(name string, q domain.Quantity) {
	if _, ok := m.quantities[name]; !ok {
		m.order = append(m.order, name)
	}
	m.quantities[name] = q
}

// parseItemMap parses (item, quantity-token) pairs. Grammar per item: an
// optional trailing token that is "*" (fill to capacity), "?" (only if not
// already acted upon), or a number; a missing token means 1. Repeated
// mentions of an item accumulate.
//
// An unknown item name aborts the whole operation; the returned string is
// the user-facing rejection message (with suggestions), empty on success.
// Non-integer numeric tokens are rejected here so they never reach
// quantity arithmetic.
func (e *Engine) parseItemMap(args []string) (*itemMap, string) {
	m := &itemMap{quantities: make(map[string]domain.Quantity)}

	for i := 0; i < len(args); i++ {
		name := args[i]
		if _, ok := e.catalog.Lookup(name); !ok {
			msg := fmt.Sprintf("Unknown item %q (argument %d).", name, i+1)
			if hint := e.suggester.Hint(name); hint != "" {
				msg += " " + hint
			}
			return nil, msg
		}

		existing, seen := m.quantities[name]

		count := 1
		if i+1 < len(args) {
			switch token := args[i+1]; token {
			case "*":
				m.set(name, domain.Fill())
				i++
				continue
			case "?":
				if !seen {
					m.set(name, domain.IfUntouched())
				}
				i++
				continue
			default:
				if f, err := strconv.ParseFloat(token, 64); err == nil {
					if f != math.Trunc(f) {
						return nil, MsgInvalidQuantity
					}
					count = int(f)
					i++
				}
			}
		}

		if seen {
			m.set(name, existing.Add(count))
		} else {
			m.set(name, domain.Exact(count))
		}
	}

	return m, ""
}
