package ladder

import (
	"testing"

	orderbookv1 "github.com/kavehhm/Multi-Type-Order-Book-Engine/internal/domain/orderbook/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkOrder(id orderbookv1.OrderID, side orderbookv1.Side, price orderbookv1.Price, qty orderbookv1.Quantity) *orderbookv1.Order {
	return orderbookv1.NewOrder(id, side, orderbookv1.GoodTillCancel, price, qty)
}

func TestLadder_InsertAndBestPrice(t *testing.T) {
	l := New()

	l.Insert(mkOrder(1, orderbookv1.Buy, 100, 10))
	l.Insert(mkOrder(2, orderbookv1.Buy, 105, 5))
	l.Insert(mkOrder(3, orderbookv1.Buy, 95, 5))

	price, ok := l.BestPrice(orderbookv1.Buy)
	require.True(t, ok)
	assert.Equal(t, orderbookv1.Price(105), price)

	l.Insert(mkOrder(4, orderbookv1.Sell, 110, 10))
	l.Insert(mkOrder(5, orderbookv1.Sell, 108, 5))

	price, ok = l.BestPrice(orderbookv1.Sell)
	require.True(t, ok)
	assert.Equal(t, orderbookv1.Price(108), price)
}

func TestLadder_PricesBestFirst(t *testing.T) {
	l := New()
	l.Insert(mkOrder(1, orderbookv1.Sell, 110, 10))
	l.Insert(mkOrder(2, orderbookv1.Sell, 105, 5))
	l.Insert(mkOrder(3, orderbookv1.Sell, 108, 5))

	prices := l.PricesBestFirst(orderbookv1.Sell)
	assert.Equal(t, []orderbookv1.Price{105, 108, 110}, prices)

	l2 := New()
	l2.Insert(mkOrder(4, orderbookv1.Buy, 100, 10))
	l2.Insert(mkOrder(5, orderbookv1.Buy, 105, 5))
	l2.Insert(mkOrder(6, orderbookv1.Buy, 95, 5))

	prices = l2.PricesBestFirst(orderbookv1.Buy)
	assert.Equal(t, []orderbookv1.Price{105, 100, 95}, prices)
}

func TestLadder_RemoveErasesEmptyLevel(t *testing.T) {
	l := New()
	n := l.Insert(mkOrder(1, orderbookv1.Buy, 100, 10))

	require.False(t, l.Empty(orderbookv1.Buy))
	l.Remove(orderbookv1.Buy, n)
	assert.True(t, l.Empty(orderbookv1.Buy))

	_, ok := l.BestPrice(orderbookv1.Buy)
	assert.False(t, ok)
}

func TestLadder_RemoveStaleHeapEntryIsSkipped(t *testing.T) {
	l := New()
	n1 := l.Insert(mkOrder(1, orderbookv1.Sell, 100, 10))
	l.Insert(mkOrder(2, orderbookv1.Sell, 105, 10))

	l.Remove(orderbookv1.Sell, n1)

	price, ok := l.BestPrice(orderbookv1.Sell)
	require.True(t, ok)
	assert.Equal(t, orderbookv1.Price(105), price)
}

func TestLadder_FIFOWithinPrice(t *testing.T) {
	l := New()
	l.Insert(mkOrder(1, orderbookv1.Buy, 100, 10))
	l.Insert(mkOrder(2, orderbookv1.Buy, 100, 5))

	front, ok := l.Front(orderbookv1.Buy)
	require.True(t, ok)
	assert.Equal(t, orderbookv1.OrderID(1), front.Order().ID())
}

func TestLadder_WorstPrice(t *testing.T) {
	l := New()
	l.Insert(mkOrder(1, orderbookv1.Sell, 100, 10))
	l.Insert(mkOrder(2, orderbookv1.Sell, 110, 10))
	l.Insert(mkOrder(3, orderbookv1.Sell, 105, 10))

	worst, ok := l.WorstPrice(orderbookv1.Sell)
	require.True(t, ok)
	assert.Equal(t, orderbookv1.Price(110), worst)
}
