// Package rpc implements the Boundary Adapter (SPEC_FULL.md §4.7, §6): the
// translation layer between the loosely-typed shape an RPC handler would
// hand the core and the Book Facade's typed API. It carries no transport
// code - generating the wire schema itself is out of scope (SPEC_FULL.md
// §1) - but gives the core's public surface the exact shape described in
// §6, so boundary validation is testable without a network stack.
package rpc

import (
	"fmt"
	"strings"

	orderbookv1 "github.com/kavehhm/Multi-Type-Order-Book-Engine/internal/domain/orderbook/v1"
	"github.com/kavehhm/Multi-Type-Order-Book-Engine/internal/usecase/orderbook"
	coreerrors "github.com/kavehhm/Multi-Type-Order-Book-Engine/pkg/errors"
)

var lifecycleByName = map[string]orderbookv1.Lifecycle{
	"GoodTillCancel": orderbookv1.GoodTillCancel,
	"FillAndKill":    orderbookv1.ImmediateOrCancel,
	"FillOrKill":     orderbookv1.AllOrNone,
	"GoodForDay":     orderbookv1.GoodForDay,
	"Market":         orderbookv1.Market,
}

// Adapter exposes the core's external contract (SPEC_FULL.md §6) in front
// of a Book Facade.
type Adapter struct {
	book *orderbook.Book
}

// New constructs an Adapter over book.
func New(book *orderbook.Book) *Adapter {
	return &Adapter{book: book}
}

// AddOrderResult is the outcome of a boundary AddOrder call.
type AddOrderResult struct {
	Success bool
	Message string
	Trades  []orderbookv1.Trade
}

// AddOrder parses lifecycleName and sideName, builds an Order from the
// remaining raw fields, and hands it to the Book Facade. An unrecognised
// lifecycle or side is a validation error at the boundary - it never
// reaches Admission (SPEC_FULL.md §7).
func (a *Adapter) AddOrder(lifecycleName string, id orderbookv1.OrderID, sideName string, priceTicks int32, quantity uint32) (AddOrderResult, error) {
	lifecycle, ok := lifecycleByName[lifecycleName]
	if !ok {
		return AddOrderResult{}, coreerrors.NewValidation(coreerrors.CodeInvalidLifecycle, "lifecycle_name", fmt.Sprintf("unrecognised lifecycle %q", lifecycleName))
	}

	side, ok := parseSide(sideName)
	if !ok {
		return AddOrderResult{}, coreerrors.NewValidation(coreerrors.CodeInvalidSide, "side_name", fmt.Sprintf("unrecognised side %q", sideName))
	}

	if quantity == 0 {
		return AddOrderResult{}, coreerrors.NewValidation(coreerrors.CodeInvalidQuantity, "quantity", "quantity must be positive")
	}

	var order *orderbookv1.Order
	if lifecycle == orderbookv1.Market {
		order = orderbookv1.NewMarketOrder(id, side, orderbookv1.Quantity(quantity))
	} else {
		order = orderbookv1.NewOrder(id, side, lifecycle, orderbookv1.Price(priceTicks), orderbookv1.Quantity(quantity))
	}

	trades, err := a.book.Add(order)
	if err != nil {
		return AddOrderResult{Success: false, Message: err.Error()}, nil
	}
	return AddOrderResult{Success: true, Message: "order admitted", Trades: trades}, nil
}

// CancelOrder is an idempotent passthrough to the Book Facade.
func (a *Adapter) CancelOrder(id orderbookv1.OrderID) {
	a.book.Cancel(id)
}

// BookLevel is one price-level entry in a GetOrderBook response.
type BookLevel struct {
	PriceTicks int32
	Quantity   uint32
}

// GetOrderBookResult is the two best-first price-level sequences §6
// describes.
type GetOrderBookResult struct {
	Bids []BookLevel
	Asks []BookLevel
}

// GetOrderBook is a passthrough to the Book Facade's snapshot, shaped as
// the raw-tick sequences an RPC handler would serialise.
func (a *Adapter) GetOrderBook() GetOrderBookResult {
	snap := a.book.Snapshot()
	return GetOrderBookResult{
		Bids: toBookLevels(snap.Bids),
		Asks: toBookLevels(snap.Asks),
	}
}

func toBookLevels(levels []orderbook.LevelSnapshot) []BookLevel {
	out := make([]BookLevel, 0, len(levels))
	for _, l := range levels {
		out = append(out, BookLevel{PriceTicks: int32(l.Price), Quantity: uint32(l.Quantity)})
	}
	return out
}

func parseSide(name string) (orderbookv1.Side, bool) {
	switch strings.ToLower(name) {
	case "buy":
		return orderbookv1.Buy, true
	case "sell":
		return orderbookv1.Sell, true
	default:
		return 0, false
	}
}
