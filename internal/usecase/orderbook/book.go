// Package orderbook implements the Book Facade (SPEC_FULL.md §4.6): the
// synchronised entry point tying the Ladder, Order Index and Level
// Aggregates together behind a single mutex, plus Admission (§4.4), the
// chokepoint used by the Matcher and Admission so every ladder mutation
// updates the aggregate exactly once (SPEC_FULL.md §9).
package orderbook

import (
	"sync"

	"github.com/kavehhm/Multi-Type-Order-Book-Engine/internal/aggregate"
	orderbookv1 "github.com/kavehhm/Multi-Type-Order-Book-Engine/internal/domain/orderbook/v1"
	"github.com/kavehhm/Multi-Type-Order-Book-Engine/internal/ladder"
	"github.com/kavehhm/Multi-Type-Order-Book-Engine/internal/matcher"
	"github.com/kavehhm/Multi-Type-Order-Book-Engine/internal/orderindex"
	"github.com/kavehhm/Multi-Type-Order-Book-Engine/pkg/logger"
)

// Book is the single-instrument limit order book. All mutation is
// serialised by mu; the day-expiry scheduler acquires the same mutex to
// enumerate and cancel GoodForDay orders (SPEC_FULL.md §5).
type Book struct {
	mu sync.Mutex

	ladder *ladder.Ladder
	index  *orderindex.Index
	bidAgg *aggregate.Aggregate
	askAgg *aggregate.Aggregate

	log *logger.Logger
}

// New constructs an empty Book. log may be nil, in which case the facade
// stays silent - useful for tests that don't care about log output.
func New(log *logger.Logger) *Book {
	return &Book{
		ladder: ladder.New(),
		index:  orderindex.New(),
		bidAgg: aggregate.NewBid(),
		askAgg: aggregate.NewAsk(),
		log:    log,
	}
}

func (b *Book) aggFor(side orderbookv1.Side) *aggregate.Aggregate {
	if side == orderbookv1.Buy {
		return b.bidAgg
	}
	return b.askAgg
}

// insert is the single chokepoint for ladder insertion: every accepted
// order passes through here exactly once, so on_added is never missed or
// double-counted.
func (b *Book) insert(order *orderbookv1.Order) {
	n := b.ladder.Insert(order)
	b.index.Put(order.ID(), orderindex.Entry{Node: n, Side: order.Side(), Price: order.Price()})
	b.aggFor(order.Side()).OnAdded(order.Price(), order.InitialQuantity())
}

// books bundles the structures the Matcher needs, built fresh per call so
// the Matcher never has to know about Book's mutex.
func (b *Book) books() *matcher.Books {
	return &matcher.Books{
		Ladder: b.ladder,
		Index:  b.index,
		BidAgg: b.bidAgg,
		AskAgg: b.askAgg,
	}
}

// Add admits order per its lifecycle's rules (see admission.go) and returns
// the trades produced. A rejected order produces no trades and leaves the
// book unchanged; the returned error identifies why when the caller cares
// (SPEC_FULL.md §4.4, §7).
func (b *Book) Add(order *orderbookv1.Order) ([]orderbookv1.Trade, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	trades, err := b.admit(order)
	if err != nil {
		b.logReject(order, err)
		return nil, err
	}

	b.logAccept(order, trades)
	return trades, nil
}

// Cancel removes order id from the book. A no-op if id is unknown
// (SPEC_FULL.md §7 - clients are race-tolerant).
func (b *Book) Cancel(id orderbookv1.OrderID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cancelLocked(id)
}

func (b *Book) cancelLocked(id orderbookv1.OrderID) {
	entry, ok := b.index.Get(id)
	if !ok {
		return
	}
	order := entry.Node.Order()
	remaining := order.RemainingQuantity()

	b.ladder.Remove(entry.Side, entry.Node)
	b.index.Delete(id)
	b.aggFor(entry.Side).OnCancelled(entry.Price, remaining)

	if b.log != nil {
		b.log.Info("order cancelled", logger.NewField("order_id", id), logger.NewField("side", entry.Side.String()))
	}
}

// Amend cancels id and re-admits a replacement carrying the original
// order's lifecycle, the new (side, price, quantity), and no priority: the
// replacement goes to the tail of its new price queue even if it lands back
// on the same price as the order it replaced. A no-op if id is unknown.
func (b *Book) Amend(id orderbookv1.OrderID, side orderbookv1.Side, price orderbookv1.Price, quantity orderbookv1.Quantity) ([]orderbookv1.Trade, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	entry, ok := b.index.Get(id)
	if !ok {
		return nil, nil
	}
	lifecycle := entry.Node.Order().Lifecycle()

	b.cancelLocked(id)

	replacement := orderbookv1.NewOrder(id, side, lifecycle, price, quantity)
	trades, err := b.admit(replacement)
	if err != nil {
		b.logReject(replacement, err)
		return nil, err
	}
	b.logAccept(replacement, trades)
	return trades, nil
}

// Size returns the number of resting orders.
func (b *Book) Size() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.index.Len()
}

// Snapshot returns a consistent, point-in-time view of book depth: bids
// best-first, asks best-first, each entry an aggregated (price, quantity)
// pair sourced from the Level Aggregate.
func (b *Book) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	return Snapshot{
		Bids: b.levelsFor(orderbookv1.Buy, b.bidAgg),
		Asks: b.levelsFor(orderbookv1.Sell, b.askAgg),
	}
}

func (b *Book) levelsFor(side orderbookv1.Side, agg *aggregate.Aggregate) []LevelSnapshot {
	prices := b.ladder.PricesBestFirst(side)
	levels := make([]LevelSnapshot, 0, len(prices))
	for _, p := range prices {
		levels = append(levels, LevelSnapshot{Price: p, Quantity: agg.Quantity(p)})
	}
	return levels
}

// ExpireGoodForDay cancels every resting GoodForDay order in one batched
// critical section. Called by the day-expiry scheduler under its own
// timer, never by client-facing code.
func (b *Book) ExpireGoodForDay() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	var toCancel []orderbookv1.OrderID
	for _, id := range b.index.Ids() {
		entry, ok := b.index.Get(id)
		if !ok {
			continue
		}
		if entry.Node.Order().EffectiveLifecycle() == orderbookv1.GoodForDay {
			toCancel = append(toCancel, id)
		}
	}
	for _, id := range toCancel {
		b.cancelLocked(id)
	}
	return len(toCancel)
}

func (b *Book) logAccept(order *orderbookv1.Order, trades []orderbookv1.Trade) {
	if b.log == nil {
		return
	}
	b.log.Info("order admitted",
		logger.NewField("order_id", order.ID()),
		logger.NewField("side", order.Side().String()),
		logger.NewField("lifecycle", order.Lifecycle().String()),
		logger.NewField("trade_count", len(trades)),
	)
}

func (b *Book) logReject(order *orderbookv1.Order, err error) {
	if b.log == nil {
		return
	}
	b.log.Warn("order rejected",
		logger.NewField("order_id", order.ID()),
		logger.NewField("side", order.Side().String()),
		logger.NewField("lifecycle", order.Lifecycle().String()),
		logger.NewField("reason", err.Error()),
	)
}
