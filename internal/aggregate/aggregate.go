// Package aggregate implements the Level Aggregate (SPEC_FULL.md §3, §4.2):
// a per-price (count, quantity) summary kept eventually consistent with the
// ladder through three event hooks, used exclusively to answer CanFullyFill
// in time proportional to price levels rather than resting orders.
//
// Bid and ask aggregates are kept as two disjoint instances rather than one
// map shared across sides - SPEC_FULL.md §9's open question on same-level
// aggregate directionality is resolved by construction: a side's
// aggregate only ever holds that side's prices, so CanFullyFill's
// threshold comparison never has to disambiguate which side a price
// belongs to.
package aggregate

import (
	"fmt"

	orderbookv1 "github.com/kavehhm/Multi-Type-Order-Book-Engine/internal/domain/orderbook/v1"
	"github.com/kavehhm/Multi-Type-Order-Book-Engine/internal/pricequeue"
	coreerrors "github.com/kavehhm/Multi-Type-Order-Book-Engine/pkg/errors"
)

type entry struct {
	count    int
	quantity orderbookv1.Quantity
}

type bestHeap interface {
	Push(orderbookv1.Price)
	Pop() orderbookv1.Price
	Peek() (orderbookv1.Price, bool)
	Len() int
}

// Aggregate is one side's price -> (count, quantity) summary.
type Aggregate struct {
	side    orderbookv1.Side
	entries map[orderbookv1.Price]*entry
	best    bestHeap
}

// NewBid constructs the bid-side aggregate (best-first = highest price).
func NewBid() *Aggregate {
	return &Aggregate{side: orderbookv1.Buy, entries: make(map[orderbookv1.Price]*entry), best: &pricequeue.MaxHeap{}}
}

// NewAsk constructs the ask-side aggregate (best-first = lowest price).
func NewAsk() *Aggregate {
	return &Aggregate{side: orderbookv1.Sell, entries: make(map[orderbookv1.Price]*entry), best: &pricequeue.MinHeap{}}
}

// OnAdded records a newly-resting order: count += 1, quantity += initial_qty.
func (a *Aggregate) OnAdded(price orderbookv1.Price, initialQty orderbookv1.Quantity) {
	e, ok := a.entries[price]
	if !ok {
		e = &entry{}
		a.entries[price] = e
		a.best.Push(price)
	}
	e.count++
	e.quantity += initialQty
	a.evictIfEmpty(price, e)
}

// OnCancelled records a cancellation: count -= 1, quantity -= remaining_qty. A
// cancellation the entry cannot absorb means the ladder and the aggregate have
// drifted apart - an I2 (aggregate/ladder consistency) violation - so it is
// never tolerated silently.
func (a *Aggregate) OnCancelled(price orderbookv1.Price, remainingQty orderbookv1.Quantity) {
	e, ok := a.entries[price]
	if !ok {
		panic(coreerrors.NewInvariantBreach("I2-aggregate-consistency",
			fmt.Sprintf("cancel of %d at price %d against an aggregate with no resting entry", remainingQty, price)))
	}
	if remainingQty > e.quantity || e.count == 0 {
		panic(coreerrors.NewInvariantBreach("I2-aggregate-consistency",
			fmt.Sprintf("cancel of %d at price %d exceeds resting aggregate (quantity=%d, count=%d)", remainingQty, price, e.quantity, e.count)))
	}
	e.count--
	e.quantity -= remainingQty
	a.evictIfEmpty(price, e)
}

// OnMatched records a fill: quantity -= filled_qty; if fullyFilled, count -= 1.
// Same I2 reasoning as OnCancelled - a fill the entry cannot absorb means the
// Matcher filled more than the aggregate believed was resting.
func (a *Aggregate) OnMatched(price orderbookv1.Price, filledQty orderbookv1.Quantity, fullyFilled bool) {
	e, ok := a.entries[price]
	if !ok {
		panic(coreerrors.NewInvariantBreach("I2-aggregate-consistency",
			fmt.Sprintf("fill of %d at price %d against an aggregate with no resting entry", filledQty, price)))
	}
	if filledQty > e.quantity || (fullyFilled && e.count == 0) {
		panic(coreerrors.NewInvariantBreach("I2-aggregate-consistency",
			fmt.Sprintf("fill of %d at price %d exceeds resting aggregate (quantity=%d, count=%d)", filledQty, price, e.quantity, e.count)))
	}
	e.quantity -= filledQty
	if fullyFilled {
		e.count--
	}
	a.evictIfEmpty(price, e)
}

func (a *Aggregate) evictIfEmpty(price orderbookv1.Price, e *entry) {
	if e.count == 0 {
		delete(a.entries, price)
	}
}

// Quantity returns the resting quantity at price, or 0 if absent.
func (a *Aggregate) Quantity(price orderbookv1.Price) orderbookv1.Quantity {
	e, ok := a.entries[price]
	if !ok {
		return 0
	}
	return e.quantity
}

// Count returns the resting order count at price, or 0 if absent.
func (a *Aggregate) Count(price orderbookv1.Price) int {
	e, ok := a.entries[price]
	if !ok {
		return 0
	}
	return e.count
}

// bestPrice returns the current best live price, discarding stale heap
// entries along the way.
func (a *Aggregate) bestPrice() (orderbookv1.Price, bool) {
	for {
		p, ok := a.best.Peek()
		if !ok {
			return 0, false
		}
		if _, live := a.entries[p]; live {
			return p, true
		}
		a.best.Pop()
	}
}

// CanFullyFill answers whether quantity lots can be fully satisfied by
// resting liquidity on this aggregate's side at prices crossing limitPrice,
// where crossingSide is the side of the incoming order being tested (the
// aggregate itself always belongs to the opposite side). Algorithm:
// SPEC_FULL.md §4.2.
func (a *Aggregate) CanFullyFill(crossingSide orderbookv1.Side, limitPrice orderbookv1.Price, quantity orderbookv1.Quantity) bool {
	best, ok := a.bestPrice()
	if !ok {
		return false
	}
	if crossingSide == orderbookv1.Buy && best > limitPrice {
		return false
	}
	if crossingSide == orderbookv1.Sell && best < limitPrice {
		return false
	}

	remaining := quantity
	for _, price := range a.pricesBestFirst() {
		if crossingSide == orderbookv1.Buy && price > limitPrice {
			continue
		}
		if crossingSide == orderbookv1.Sell && price < limitPrice {
			continue
		}
		levelQty := a.entries[price].quantity
		if remaining <= levelQty {
			return true
		}
		remaining -= levelQty
	}
	return false
}

// pricesBestFirst returns every live price, best first. O(levels^2) worst
// case (insertion sort).
func (a *Aggregate) pricesBestFirst() []orderbookv1.Price {
	prices := make([]orderbookv1.Price, 0, len(a.entries))
	for p := range a.entries {
		prices = append(prices, p)
	}
	less := func(i, j orderbookv1.Price) bool {
		if a.side == orderbookv1.Buy {
			return i > j
		}
		return i < j
	}
	for i := 1; i < len(prices); i++ {
		for j := i; j > 0 && less(prices[j], prices[j-1]); j-- {
			prices[j], prices[j-1] = prices[j-1], prices[j]
		}
	}
	return prices
}
