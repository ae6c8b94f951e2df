package cart

// Reduce applies action to state and returns the new state. The input state is left untouched.
// Unknown or malformed actions return an equivalent copy of state.
func Reduce(state State, action Action) State {
	next := state
	next.Cart = cloneLines(state.Cart)
	if state.ShippingAddress != nil {
		addr := *state.ShippingAddress
		next.ShippingAddress = &addr
	}

	switch a := action.(type) {
	case LoadCart:
		next.IsLoaded = true
		next.Cart = cloneLines(a.Lines)
	case UpdateCart:
		next.Cart = cloneLines(a.Lines)
	case ChangeQuantity:
		if a.Line.Quantity < MinQuantity || a.Line.Quantity > MaxQuantity {
			return next
		}
		for i := range next.Cart {
			if next.Cart[i].matches(a.Line.ID, a.Line.Size) {
				next.Cart[i] = a.Line
			}
		}
	case RemoveLine:
		kept := next.Cart[:0]
		for _, l := range next.Cart {
			if !l.matches(a.ID, a.Size) {
				kept = append(kept, l)
			}
		}
		next.Cart = kept
	case UpdateOrderSummary:
		// aggregates are recomputed below
	case LoadShippingAddress:
		addr := a.Address
		next.ShippingAddress = &addr
	case UpdateShippingAddress:
		addr := a.Address
		next.ShippingAddress = &addr
	case OrderComplete:
		next.Cart = []Line{}
	default:
		return next
	}

	next.Summary = Summarize(next.Cart)
	return next
}
