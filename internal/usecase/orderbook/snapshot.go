package orderbook

import orderbookv1 "github.com/kavehhm/Multi-Type-Order-Book-Engine/internal/domain/orderbook/v1"

// LevelSnapshot is one price's aggregated resting quantity.
type LevelSnapshot struct {
	Price    orderbookv1.Price
	Quantity orderbookv1.Quantity
}

// Snapshot is a consistent, point-in-time view of the book's depth:
// bids best-first (descending price), asks best-first (ascending price).
type Snapshot struct {
	Bids []LevelSnapshot
	Asks []LevelSnapshot
}
