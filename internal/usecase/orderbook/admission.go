package orderbook

import (
	orderbookv1 "github.com/kavehhm/Multi-Type-Order-Book-Engine/internal/domain/orderbook/v1"
	coreerrors "github.com/kavehhm/Multi-Type-Order-Book-Engine/pkg/errors"
)

// admit classifies order per its lifecycle, applies the lifecycle-specific
// pre-check, and either inserts-and-matches or rejects with no side
// effects. Caller holds b.mu. SPEC_FULL.md §4.4.
func (b *Book) admit(order *orderbookv1.Order) ([]orderbookv1.Trade, error) {
	if b.index.Has(order.ID()) {
		return nil, coreerrors.NewRejection(coreerrors.CodeDuplicateOrder, "order id already resting in the book")
	}

	switch order.Lifecycle() {
	case orderbookv1.Market:
		opposite := order.Side().Opposite()
		worst, ok := b.ladder.WorstPrice(opposite)
		if !ok {
			return nil, coreerrors.NewRejection(coreerrors.CodeEmptyOppositeBook, "market order submitted with no resting liquidity on the opposite side")
		}
		order.ImputePrice(worst)

	case orderbookv1.ImmediateOrCancel:
		if !b.canMatch(order.Side(), order.Price()) {
			return nil, coreerrors.NewRejection(coreerrors.CodeUnmatchable, "immediate-or-cancel order cannot match immediately")
		}

	case orderbookv1.AllOrNone:
		opposite := b.aggFor(order.Side().Opposite())
		if !opposite.CanFullyFill(order.Side(), order.Price(), order.InitialQuantity()) {
			return nil, coreerrors.NewRejection(coreerrors.CodeInfeasibleFill, "all-or-none order cannot be fully filled")
		}

	case orderbookv1.GoodTillCancel, orderbookv1.GoodForDay:
		// No pre-check: insert and let the Matcher take whatever is crossable.
	}

	b.insert(order)
	trades := b.books().Run()
	return trades, nil
}

// canMatch reports whether an order at price on side would immediately
// cross the opposite side's best price.
func (b *Book) canMatch(side orderbookv1.Side, price orderbookv1.Price) bool {
	bestOpposite, ok := b.ladder.BestPrice(side.Opposite())
	if !ok {
		return false
	}
	if side == orderbookv1.Buy {
		return price >= bestOpposite
	}
	return price <= bestOpposite
}
