package domain

import "fmt"

// QuantityKind discriminates the variants of a requested trade quantity.
type QuantityKind int

const (
	// QuantityExact is a literal positive integer request.
	QuantityExact QuantityKind = iota

	// QuantityFill is the "*" sentinel: buy up to capacity, or sell the
	// entire held stock.
	QuantityFill

	// QuantityIfUntouched is the "?" sentinel: buy one only if holding
	// none, or sell down toward capacity only if overflowing.
	QuantityIfUntouched
)

// Quantity is a tagged trade quantity. Sentinels are resolved to concrete
// counts during validation, never carried through arithmetic.
type Quantity struct {
	Kind  QuantityKind
	Count int
}

// Exact returns a literal quantity request.
func Exact(n int) Quantity { return Quantity{Kind: QuantityExact, Count: n} }

// Fill returns the "*" sentinel quantity.
func Fill() Quantity { return Quantity{Kind: QuantityFill} }

// IfUntouched returns the "?" sentinel quantity.
func IfUntouched() Quantity { return Quantity{Kind: QuantityIfUntouched} }

// Add accumulates a literal count onto an existing request, mirroring
// repeated mentions of the same item in one command. Fill absorbs further
// literals; IfUntouched is replaced by the first literal.
func (q Quantity) Add(n int) Quantity {
	switch q.Kind {
	case QuantityFill:
		return q
	case QuantityIfUntouched:
		return Exact(n)
	default:
		return Exact(q.Count + n)
	}
}

func (q Quantity) String() string {
	switch q.Kind {
	case QuantityFill:
		return "*"
	case QuantityIfUntouched:
		return "?"
	default:
		return fmt.Sprintf("%d", q.Count)
	}
}
