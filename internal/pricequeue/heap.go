// Package pricequeue provides lazily-cleaned binary heaps of price ticks,
// used by both the ladder and the level aggregate to recover the current
// best price in O(log n) without having to keep a fully sorted structure in
// sync on every insert. Grounded on the min/max price heap pair used for
// best-price recovery in this codebase's other order-book implementations;
// adapted here to operate on the tick-typed Price rather than a raw int64,
// and to expose Peek so callers can lazily discard stale entries themselves
// (a price popped from the ladder's level map but not yet popped from the
// heap is simply skipped on the next Peek/Pop).
package pricequeue

import (
	"container/heap"

	orderbookv1 "github.com/kavehhm/Multi-Type-Order-Book-Engine/internal/domain/orderbook/v1"
)

// MinHeap is a binary min-heap of prices - ascending best-first order, used
// for the ask side (lowest price first).
type MinHeap struct{ data minHeapData }

type minHeapData []orderbookv1.Price

func (d minHeapData) Len() int            { return len(d) }
func (d minHeapData) Less(i, j int) bool  { return d[i] < d[j] }
func (d minHeapData) Swap(i, j int)       { d[i], d[j] = d[j], d[i] }
func (d *minHeapData) Push(x any)         { *d = append(*d, x.(orderbookv1.Price)) }
func (d *minHeapData) Pop() any {
	old := *d
	n := len(old)
	x := old[n-1]
	*d = old[:n-1]
	return x
}

// Push adds a price to the heap.
func (h *MinHeap) Push(p orderbookv1.Price) { heap.Push(&h.data, p) }

// Pop removes and returns the best (lowest) price in the heap.
func (h *MinHeap) Pop() orderbookv1.Price { return heap.Pop(&h.data).(orderbookv1.Price) }

// Peek returns the best (lowest) price without removing it.
func (h *MinHeap) Peek() (orderbookv1.Price, bool) {
	if len(h.data) == 0 {
		return 0, false
	}
	return h.data[0], true
}

// Len returns the number of (possibly stale) entries in the heap.
func (h *MinHeap) Len() int { return len(h.data) }

// MaxHeap is a binary max-heap of prices - descending best-first order, used
// for the bid side (highest price first).
type MaxHeap struct{ data maxHeapData }

type maxHeapData []orderbookv1.Price

func (d maxHeapData) Len() int            { return len(d) }
func (d maxHeapData) Less(i, j int) bool  { return d[i] > d[j] }
func (d maxHeapData) Swap(i, j int)       { d[i], d[j] = d[j], d[i] }
func (d *maxHeapData) Push(x any)         { *d = append(*d, x.(orderbookv1.Price)) }
func (d *maxHeapData) Pop() any {
	old := *d
	n := len(old)
	x := old[n-1]
	*d = old[:n-1]
	return x
}

// Push adds a price to the heap.
func (h *MaxHeap) Push(p orderbookv1.Price) { heap.Push(&h.data, p) }

// Pop removes and returns the best (highest) price in the heap.
func (h *MaxHeap) Pop() orderbookv1.Price { return heap.Pop(&h.data).(orderbookv1.Price) }

// Peek returns the best (highest) price without removing it.
func (h *MaxHeap) Peek() (orderbookv1.Price, bool) {
	if len(h.data) == 0 {
		return 0, false
	}
	return h.data[0], true
}

// Len returns the number of (possibly stale) entries in the heap.
func (h *MaxHeap) Len() int { return len(h.data) }
