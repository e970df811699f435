package matcher

import (
	"testing"

	"github.com/kavehhm/Multi-Type-Order-Book-Engine/internal/aggregate"
	orderbookv1 "github.com/kavehhm/Multi-Type-Order-Book-Engine/internal/domain/orderbook/v1"
	"github.com/kavehhm/Multi-Type-Order-Book-Engine/internal/ladder"
	"github.com/kavehhm/Multi-Type-Order-Book-Engine/internal/orderindex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBooks() *Books {
	return &Books{
		Ladder: ladder.New(),
		Index:  orderindex.New(),
		BidAgg: aggregate.NewBid(),
		AskAgg: aggregate.NewAsk(),
	}
}

func insert(b *Books, order *orderbookv1.Order) {
	n := b.Ladder.Insert(order)
	b.Index.Put(order.ID(), orderindex.Entry{Node: n, Side: order.Side(), Price: order.Price()})
	b.aggFor(order.Side()).OnAdded(order.Price(), order.InitialQuantity())
}

// Scenario 2: simple full cross.
func TestMatcher_SimpleCross(t *testing.T) {
	b := newBooks()
	sell := orderbookv1.NewOrder(1, orderbookv1.Sell, orderbookv1.GoodTillCancel, 100, 5)
	insert(b, sell)

	buy := orderbookv1.NewOrder(2, orderbookv1.Buy, orderbookv1.GoodTillCancel, 100, 5)
	insert(b, buy)

	trades := b.Run()
	require.Len(t, trades, 1)
	assert.Equal(t, orderbookv1.Price(100), trades[0].Bid.Price)
	assert.Equal(t, orderbookv1.Price(100), trades[0].Ask.Price)
	assert.Equal(t, orderbookv1.Quantity(5), trades[0].Bid.Quantity)
	assert.Equal(t, 0, b.Index.Len())
}

// Scenario 3: partial fill leaves residual resting.
func TestMatcher_PartialFillLeavesResidual(t *testing.T) {
	b := newBooks()
	sell := orderbookv1.NewOrder(1, orderbookv1.Sell, orderbookv1.GoodTillCancel, 100, 10)
	insert(b, sell)
	buy := orderbookv1.NewOrder(2, orderbookv1.Buy, orderbookv1.GoodTillCancel, 100, 4)
	insert(b, buy)

	trades := b.Run()
	require.Len(t, trades, 1)
	assert.Equal(t, orderbookv1.Quantity(4), trades[0].Bid.Quantity)
	assert.Equal(t, 1, b.Index.Len())
	assert.Equal(t, orderbookv1.Quantity(6), sell.RemainingQuantity())
}

// Price-time priority: earliest arrival at a price fills first.
func TestMatcher_TimePriorityWithinPrice(t *testing.T) {
	b := newBooks()
	first := orderbookv1.NewOrder(1, orderbookv1.Sell, orderbookv1.GoodTillCancel, 100, 5)
	second := orderbookv1.NewOrder(2, orderbookv1.Sell, orderbookv1.GoodTillCancel, 100, 5)
	insert(b, first)
	insert(b, second)

	buy := orderbookv1.NewOrder(3, orderbookv1.Buy, orderbookv1.GoodTillCancel, 100, 5)
	insert(b, buy)

	trades := b.Run()
	require.Len(t, trades, 1)
	assert.Equal(t, orderbookv1.OrderID(1), trades[0].Ask.OrderID)
	assert.True(t, first.IsFilled())
	assert.False(t, second.IsFilled())
}

func TestMatcher_CancelsHeadImmediateOrCancelResidual(t *testing.T) {
	b := newBooks()
	sell := orderbookv1.NewOrder(1, orderbookv1.Sell, orderbookv1.GoodTillCancel, 100, 5)
	insert(b, sell)

	fak := orderbookv1.NewOrder(2, orderbookv1.Buy, orderbookv1.ImmediateOrCancel, 100, 20)
	insert(b, fak)

	trades := b.Run()
	require.Len(t, trades, 1)
	assert.Equal(t, orderbookv1.Quantity(5), trades[0].Bid.Quantity)
	assert.Equal(t, 0, b.Index.Len())
}

// checkNotCrossed is the Matcher's own post-condition, exercised directly
// here: a book left crossed after matching is a bug in Run itself, never a
// caller mistake, so it panics rather than returning an error.
func TestBooks_CheckNotCrossed_PanicsOnCrossedBook(t *testing.T) {
	b := newBooks()
	insert(b, orderbookv1.NewOrder(1, orderbookv1.Buy, orderbookv1.GoodTillCancel, 105, 5))
	insert(b, orderbookv1.NewOrder(2, orderbookv1.Sell, orderbookv1.GoodTillCancel, 100, 5))

	assert.Panics(t, func() {
		b.checkNotCrossed()
	})
}
