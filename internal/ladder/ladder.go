// Package ladder implements the dual-sided price ladder (SPEC_FULL.md
// §3, §4.1): two maps from price to a FIFO queue of resting orders, one per
// side, each paired with a lazily-cleaned binary heap so the best price can
// be recovered in O(log n) without maintaining a fully sorted structure on
// every insert.
package ladder

import (
	orderbookv1 "github.com/kavehhm/Multi-Type-Order-Book-Engine/internal/domain/orderbook/v1"
	"github.com/kavehhm/Multi-Type-Order-Book-Engine/internal/pricequeue"
)

// bestHeap is implemented by both pricequeue.MinHeap (asks) and
// pricequeue.MaxHeap (bids), letting ladderSide stay side-agnostic.
type bestHeap interface {
	Push(orderbookv1.Price)
	Pop() orderbookv1.Price
	Peek() (orderbookv1.Price, bool)
	Len() int
}

type ladderSide struct {
	levels map[orderbookv1.Price]*level
	best   bestHeap
}

func newLadderSide(best bestHeap) *ladderSide {
	return &ladderSide{levels: make(map[orderbookv1.Price]*level), best: best}
}

// bestPrice returns the current best live price on this side, discarding
// any stale heap entries (prices whose level has since emptied out) along
// the way.
func (s *ladderSide) bestPrice() (orderbookv1.Price, bool) {
	for {
		p, ok := s.best.Peek()
		if !ok {
			return 0, false
		}
		if _, live := s.levels[p]; live {
			return p, true
		}
		s.best.Pop()
	}
}

func (s *ladderSide) levelAt(price orderbookv1.Price) (*level, bool) {
	lvl, ok := s.levels[price]
	return lvl, ok
}

// Ladder holds both sides of the book.
type Ladder struct {
	bids *ladderSide
	asks *ladderSide
}

// New constructs an empty Ladder.
func New() *Ladder {
	return &Ladder{
		bids: newLadderSide(&pricequeue.MaxHeap{}),
		asks: newLadderSide(&pricequeue.MinHeap{}),
	}
}

func (b *Ladder) sideOf(side orderbookv1.Side) *ladderSide {
	if side == orderbookv1.Buy {
		return b.bids
	}
	return b.asks
}

// Insert appends order to the end of its price's FIFO queue on its side,
// creating the level (and pushing the price onto the side's heap) if it did
// not already exist. Returns the handle used for O(1) removal.
func (b *Ladder) Insert(order *orderbookv1.Order) *Node {
	s := b.sideOf(order.Side())
	price := order.Price()

	lvl, ok := s.levelAt(price)
	if !ok {
		lvl = newLevel(price)
		s.levels[price] = lvl
		s.best.Push(price)
	}
	return lvl.pushBack(order)
}

// Remove erases the order addressed by n in O(1). If its level empties out,
// the price key is removed from the level map (the heap entry is left for
// lazy discard on the next bestPrice call).
func (b *Ladder) Remove(side orderbookv1.Side, n *Node) {
	s := b.sideOf(side)
	lvl := n.lvl
	lvl.remove(n)
	if lvl.empty() {
		delete(s.levels, lvl.price)
	}
}

// BestPrice returns the best live price on side, or false if the side is
// empty.
func (b *Ladder) BestPrice(side orderbookv1.Side) (orderbookv1.Price, bool) {
	return b.sideOf(side).bestPrice()
}

// Front returns the head-of-queue node at the best price on side, or false
// if the side is empty.
func (b *Ladder) Front(side orderbookv1.Side) (*Node, bool) {
	s := b.sideOf(side)
	price, ok := s.bestPrice()
	if !ok {
		return nil, false
	}
	lvl := s.levels[price]
	return lvl.head, true
}

// Empty reports whether side has no resting orders.
func (b *Ladder) Empty(side orderbookv1.Side) bool {
	_, ok := b.sideOf(side).bestPrice()
	return !ok
}

// PricesBestFirst returns every live price on side, best first. Used by
// snapshot and by WorstPrice. O(levels^2) worst case (insertion sort).
func (b *Ladder) PricesBestFirst(side orderbookv1.Side) []orderbookv1.Price {
	s := b.sideOf(side)
	prices := make([]orderbookv1.Price, 0, len(s.levels))
	for p := range s.levels {
		prices = append(prices, p)
	}
	sortBestFirst(prices, side)
	return prices
}

// WorstPrice returns the worst (furthest from best) live price on side -
// used by Admission to impute a Market order's price (SPEC_FULL.md §4.4).
func (b *Ladder) WorstPrice(side orderbookv1.Side) (orderbookv1.Price, bool) {
	prices := b.PricesBestFirst(side)
	if len(prices) == 0 {
		return 0, false
	}
	return prices[len(prices)-1], true
}

// OrdersAt returns the resting orders at price on side, in FIFO arrival
// order. Nothing in the book calls it: day expiry enumerates orders through
// the order index, and snapshot reads per-level totals from the aggregate.
func (b *Ladder) OrdersAt(side orderbookv1.Side, price orderbookv1.Price) []*orderbookv1.Order {
	lvl, ok := b.sideOf(side).levelAt(price)
	if !ok {
		return nil
	}
	orders := make([]*orderbookv1.Order, 0, lvl.size)
	for n := lvl.head; n != nil; n = n.next {
		orders = append(orders, n.order)
	}
	return orders
}

func sortBestFirst(prices []orderbookv1.Price, side orderbookv1.Side) {
	// Insertion sort: level counts are small relative to order counts, and
	// this keeps the comparator symmetric for both sides without pulling in
	// sort.Slice's reflection-free but still generic closure overhead on a
	// hot snapshot path.
	less := func(a, b orderbookv1.Price) bool {
		if side == orderbookv1.Buy {
			return a > b
		}
		return a < b
	}
	for i := 1; i < len(prices); i++ {
		for j := i; j > 0 && less(prices[j], prices[j-1]); j-- {
			prices[j], prices[j-1] = prices[j-1], prices[j]
		}
	}
}
