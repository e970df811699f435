// Package orderindex implements the Order Index (SPEC_FULL.md §3, §4.1): a
// hash map from OrderID to the ladder handle and side needed to erase that
// order from its ladder queue in O(1).
package orderindex

import (
	orderbookv1 "github.com/kavehhm/Multi-Type-Order-Book-Engine/internal/domain/orderbook/v1"
	"github.com/kavehhm/Multi-Type-Order-Book-Engine/internal/ladder"
)

// Entry is what the index stores per order: enough to locate and erase it
// from the ladder without a linear scan.
type Entry struct {
	Node  *ladder.Node
	Side  orderbookv1.Side
	Price orderbookv1.Price
}

// Index is a hash map from OrderID to Entry.
type Index struct {
	byID map[orderbookv1.OrderID]Entry
}

// New constructs an empty Index.
func New() *Index {
	return &Index{byID: make(map[orderbookv1.OrderID]Entry)}
}

// Put records the location of an order just inserted into the ladder.
func (idx *Index) Put(id orderbookv1.OrderID, entry Entry) {
	idx.byID[id] = entry
}

// Get returns the entry for id, if present.
func (idx *Index) Get(id orderbookv1.OrderID) (Entry, bool) {
	e, ok := idx.byID[id]
	return e, ok
}

// Delete removes id from the index. A no-op if id is absent.
func (idx *Index) Delete(id orderbookv1.OrderID) {
	delete(idx.byID, id)
}

// Has reports whether id is currently indexed.
func (idx *Index) Has(id orderbookv1.OrderID) bool {
	_, ok := idx.byID[id]
	return ok
}

// Len returns the number of indexed orders - the Book Facade's Size().
func (idx *Index) Len() int {
	return len(idx.byID)
}

// Ids returns every currently-indexed order id. Used by the day-expiry
// scheduler's enumeration step; order is unspecified.
func (idx *Index) Ids() []orderbookv1.OrderID {
	ids := make([]orderbookv1.OrderID, 0, len(idx.byID))
	for id := range idx.byID {
		ids = append(ids, id)
	}
	return ids
}
