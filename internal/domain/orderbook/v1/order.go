package orderbookv1

import (
	"fmt"

	coreerrors "github.com/kavehhm/Multi-Type-Order-Book-Engine/pkg/errors"
)

// Order is a client's order and its mutable fill state. Immutable fields
// (ID, Side, Lifecycle, InitialQuantity) are set once at construction;
// Price, RemainingQuantity and EffectiveLifecycle mutate as the order is
// admitted and matched.
type Order struct {
	id              OrderID
	side            Side
	lifecycle       Lifecycle
	effective       Lifecycle
	price           Price
	initialQuantity Quantity
	remaining       Quantity
}

// NewOrder constructs a resting limit order. Market orders are constructed
// with NewMarketOrder, since they carry no client-supplied price.
func NewOrder(id OrderID, side Side, lifecycle Lifecycle, price Price, quantity Quantity) *Order {
	return &Order{
		id:              id,
		side:            side,
		lifecycle:       lifecycle,
		effective:       lifecycle,
		price:           price,
		initialQuantity: quantity,
		remaining:       quantity,
	}
}

// NewMarketOrder constructs a Market order. Its price is imputed by
// Admission (SPEC_FULL.md §4.4) before it ever reaches the ladder.
func NewMarketOrder(id OrderID, side Side, quantity Quantity) *Order {
	return NewOrder(id, side, Market, 0, quantity)
}

// ID returns the order's id.
func (o *Order) ID() OrderID { return o.id }

// Side returns the order's side.
func (o *Order) Side() Side { return o.side }

// Lifecycle returns the order's original, client-supplied lifecycle.
func (o *Order) Lifecycle() Lifecycle { return o.lifecycle }

// EffectiveLifecycle returns the lifecycle Admission is actually honouring,
// which for a Market order is GoodTillCancel after price imputation.
func (o *Order) EffectiveLifecycle() Lifecycle { return o.effective }

// Price returns the order's current resting price.
func (o *Order) Price() Price { return o.price }

// InitialQuantity returns the quantity the order was submitted with.
func (o *Order) InitialQuantity() Quantity { return o.initialQuantity }

// RemainingQuantity returns the quantity still unfilled.
func (o *Order) RemainingQuantity() Quantity { return o.remaining }

// FilledQuantity returns the quantity already filled.
func (o *Order) FilledQuantity() Quantity { return o.initialQuantity - o.remaining }

// IsFilled reports whether the order has no remaining quantity.
func (o *Order) IsFilled() bool { return o.remaining == 0 }

// Fill decrements the remaining quantity by qty. Filling more than what
// remains is a caller bug - it can never happen via the Matcher's own call
// sites, which always clamp to min(remaining_a, remaining_b) - so it is
// surfaced as a Validation error rather than silently clamped.
func (o *Order) Fill(qty Quantity) error {
	if qty > o.remaining {
		return coreerrors.NewValidation(
			coreerrors.CodeInvalidQuantity,
			"quantity",
			fmt.Sprintf("cannot fill %d, only %d remaining for order %d", qty, o.remaining, o.id),
		)
	}
	o.remaining -= qty
	return nil
}

// ImputePrice sets a Market order's price to the resting price it swept to
// and promotes its effective lifecycle to GoodTillCancel, so any unfilled
// remainder rests using the ordinary limit-order code path. See
// SPEC_FULL.md §4.4.
func (o *Order) ImputePrice(price Price) {
	o.price = price
	o.effective = GoodTillCancel
}

// SetPrice overwrites the order's resting price. Amend does not call it: it
// replaces the order with a newly constructed one.
func (o *Order) SetPrice(price Price) { o.price = price }
