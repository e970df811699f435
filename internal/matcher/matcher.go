// Package matcher implements the Matcher (SPEC_FULL.md §4.3): drains
// crossable liquidity from a Ladder, producing trades and keeping the
// Ladder, Order Index and Level Aggregates consistent in a single pass.
package matcher

import (
	"fmt"

	"github.com/kavehhm/Multi-Type-Order-Book-Engine/internal/aggregate"
	orderbookv1 "github.com/kavehhm/Multi-Type-Order-Book-Engine/internal/domain/orderbook/v1"
	"github.com/kavehhm/Multi-Type-Order-Book-Engine/internal/ladder"
	"github.com/kavehhm/Multi-Type-Order-Book-Engine/internal/orderindex"
	coreerrors "github.com/kavehhm/Multi-Type-Order-Book-Engine/pkg/errors"
)

// Books is the set of structures the Matcher mutates atomically. It is the
// single chokepoint for ladder removal during matching, so the aggregate
// hooks are never missed on a fill path (SPEC_FULL.md §9).
type Books struct {
	Ladder     *ladder.Ladder
	Index      *orderindex.Index
	BidAgg     *aggregate.Aggregate
	AskAgg     *aggregate.Aggregate
}

func (b *Books) aggFor(side orderbookv1.Side) *aggregate.Aggregate {
	if side == orderbookv1.Buy {
		return b.BidAgg
	}
	return b.AskAgg
}

// Run drains crossable liquidity, given the ladder already holds any
// newly-inserted aggressor, and returns the trades produced in generation
// order. After the crossing loop it cancels any ImmediateOrCancel order
// left resting at the head of either book (SPEC_FULL.md §4.3 step 5 and the
// IOC/FAK housekeeping pass).
func (b *Books) Run() []orderbookv1.Trade {
	var trades []orderbookv1.Trade

	for {
		bidPrice, bidOK := b.Ladder.BestPrice(orderbookv1.Buy)
		askPrice, askOK := b.Ladder.BestPrice(orderbookv1.Sell)
		if !bidOK || !askOK || bidPrice < askPrice {
			break
		}

		bidNode, _ := b.Ladder.Front(orderbookv1.Buy)
		askNode, _ := b.Ladder.Front(orderbookv1.Sell)
		bidOrder, askOrder := bidNode.Order(), askNode.Order()

		qty := min(bidOrder.RemainingQuantity(), askOrder.RemainingQuantity())
		_ = bidOrder.Fill(qty)
		_ = askOrder.Fill(qty)

		trades = append(trades, orderbookv1.Trade{
			Bid: orderbookv1.TradeLeg{OrderID: bidOrder.ID(), Price: bidOrder.Price(), Quantity: qty},
			Ask: orderbookv1.TradeLeg{OrderID: askOrder.ID(), Price: askOrder.Price(), Quantity: qty},
		})

		b.settle(orderbookv1.Buy, bidNode, bidOrder, qty)
		b.settle(orderbookv1.Sell, askNode, askOrder, qty)
	}

	b.cancelHeadIfImmediate(orderbookv1.Buy)
	b.cancelHeadIfImmediate(orderbookv1.Sell)

	b.checkNotCrossed()

	return trades
}

// checkNotCrossed enforces I1: a book the crossing loop has just drained must
// never leave the best bid at or through the best ask. A violation here means
// the loop above exited while liquidity was still crossable, which is a bug
// in the Matcher itself rather than anything a caller did - so it panics
// rather than returning an error the Book Facade could otherwise swallow.
func (b *Books) checkNotCrossed() {
	bidPrice, bidOK := b.Ladder.BestPrice(orderbookv1.Buy)
	askPrice, askOK := b.Ladder.BestPrice(orderbookv1.Sell)
	if bidOK && askOK && bidPrice >= askPrice {
		panic(coreerrors.NewInvariantBreach("I1-no-cross-at-rest",
			fmt.Sprintf("book remained crossed after matching: bid=%d ask=%d", bidPrice, askPrice)))
	}
}

// settle removes a fully-filled order from the ladder and index, or simply
// reports the partial fill to the aggregate otherwise.
func (b *Books) settle(side orderbookv1.Side, n *ladder.Node, order *orderbookv1.Order, qty orderbookv1.Quantity) {
	fullyFilled := order.IsFilled()
	b.aggFor(side).OnMatched(order.Price(), qty, fullyFilled)

	if fullyFilled {
		b.Ladder.Remove(side, n)
		b.Index.Delete(order.ID())
	}
}

// cancelHeadIfImmediate cancels the head-of-book order on side if its
// effective lifecycle mandates immediate execution only and it is still
// resting after the crossing loop exits.
func (b *Books) cancelHeadIfImmediate(side orderbookv1.Side) {
	n, ok := b.Ladder.Front(side)
	if !ok {
		return
	}
	order := n.Order()
	if order.EffectiveLifecycle() != orderbookv1.ImmediateOrCancel {
		return
	}

	price := order.Price()
	b.Ladder.Remove(side, n)
	b.Index.Delete(order.ID())
	b.aggFor(side).OnCancelled(price, order.RemainingQuantity())
}

func min(a, b orderbookv1.Quantity) orderbookv1.Quantity {
	if a < b {
		return a
	}
	return b
}
