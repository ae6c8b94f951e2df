package cart

import "teslo/internal/models"

// Action is a cart transition. The set of actions is closed.
type Action interface {
	isAction()
}

// LoadCart replaces the cart with lines read from storage and marks the state loaded.
type LoadCart struct{ Lines []Line }

// UpdateCart replaces the cart wholesale, after add/merge logic computed with MergeLine.
type UpdateCart struct{ Lines []Line }

// ChangeQuantity replaces the line matching Line.ID and Line.Size with Line.
type ChangeQuantity struct{ Line Line }

// RemoveLine drops the line identified by ID and Size.
type RemoveLine struct {
	ID   string
	Size string
}

// UpdateOrderSummary recomputes the aggregates from the current lines.
type UpdateOrderSummary struct{}

// LoadShippingAddress sets the address read from storage.
type LoadShippingAddress struct{ Address models.ShippingAddress }

// UpdateShippingAddress sets the address entered by the shopper.
type UpdateShippingAddress struct{ Address models.ShippingAddress }

// OrderComplete empties the cart after checkout.
type OrderComplete struct{}

func (LoadCart) isAction()              {}
func (UpdateCart) isAction()            {}
func (ChangeQuantity) isAction()        {}
func (RemoveLine) isAction()            {}
func (UpdateOrderSummary) isAction()    {}
func (LoadShippingAddress) isAction()   {}
func (UpdateShippingAddress) isAction() {}
func (OrderComplete) isAction()         {}
