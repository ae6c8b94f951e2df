// Package cart holds the shopping cart state and the transitions allowed on it.
//
// State changes only through Reduce, which is pure: it never mutates the state it is given.
// Aggregates are always derived from the line list.
package cart

import (
	"github.com/shopspring/decimal"

	"teslo/internal/models"
)

// Quantity bounds for a single line.
const (
	MinQuantity = 1
	MaxQuantity = 10
)

// Line is a product in a given size with a quantity. (ID, Size) identifies a line.
type Line struct {
	ID       string          `json:"id" validate:"required"`
	Slug     string          `json:"slug"`
	Title    string          `json:"title"`
	Image    string          `json:"image"`
	Price    decimal.Decimal `json:"price"`
	Size     string          `json:"size" validate:"required"`
	Quantity int             `json:"quantity" validate:"min=1,max=10"`
}

func (l Line) matches(id, size string) bool {
	return l.ID == id && l.Size == size
}

// State is the full cart state for one shopper.
type State struct {
	IsLoaded        bool                    `json:"isLoaded"`
	Cart            []Line                  `json:"cart"`
	ShippingAddress *models.ShippingAddress `json:"shippingAddress,omitempty"`
	Summary
}

// NewState returns the initial state: an empty, not yet loaded cart.
func NewState() State {
	return State{Cart: []Line{}}
}

// Snapshot is the persisted part of a State. Aggregates are never persisted.
func (s State) Snapshot() Snapshot {
	snap := Snapshot{Lines: cloneLines(s.Cart)}
	if s.ShippingAddress != nil {
		addr := *s.ShippingAddress
		snap.ShippingAddress = &addr
	}
	return snap
}

// Snapshot is what gets written to cart storage.
type Snapshot struct {
	Lines           []Line                  `json:"cart"`
	ShippingAddress *models.ShippingAddress `json:"shippingAddress,omitempty"`
}

// MergeLine adds line to lines the way add-to-cart does: quantities of an existing (ID, Size)
// line are summed and capped at MaxQuantity, otherwise the line is appended.
func MergeLine(lines []Line, line Line) []Line {
	out := cloneLines(lines)
	for i := range out {
		if !out[i].matches(line.ID, line.Size) {
			continue
		}
		out[i].Quantity += line.Quantity
		if out[i].Quantity > MaxQuantity {
			out[i].Quantity = MaxQuantity
		}
		return out
	}
	if line.Quantity > MaxQuantity {
		line.Quantity = MaxQuantity
	}
	return append(out, line)
}

func cloneLines(lines []Line) []Line {
	out := make([]Line, len(lines))
	copy(out, lines)
	return out
}
