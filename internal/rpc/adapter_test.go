package rpc

import (
	"testing"

	"github.com/kavehhm/Multi-Type-Order-Book-Engine/internal/usecase/orderbook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdapter_AddOrder_InvalidLifecycleRejectedAtBoundary(t *testing.T) {
	book := orderbook.New(nil)
	a := New(book)

	_, err := a.AddOrder("NotALifecycle", 1, "buy", 100, 10)
	require.Error(t, err)
	assert.Equal(t, 0, book.Size())
}

func TestAdapter_AddOrder_InvalidSideRejectedAtBoundary(t *testing.T) {
	book := orderbook.New(nil)
	a := New(book)

	_, err := a.AddOrder("GoodTillCancel", 1, "sideways", 100, 10)
	require.Error(t, err)
	assert.Equal(t, 0, book.Size())
}

func TestAdapter_AddOrder_CaseInsensitiveSide(t *testing.T) {
	book := orderbook.New(nil)
	a := New(book)

	result, err := a.AddOrder("GoodTillCancel", 1, "BUY", 100, 10)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 1, book.Size())
}

func TestAdapter_AddOrder_SoftRejectionIsNotAnError(t *testing.T) {
	book := orderbook.New(nil)
	a := New(book)

	result, err := a.AddOrder("Market", 1, "buy", 0, 10)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, 0, book.Size())
}

func TestAdapter_CancelOrder_Idempotent(t *testing.T) {
	book := orderbook.New(nil)
	a := New(book)

	_, err := a.AddOrder("GoodTillCancel", 1, "buy", 100, 10)
	require.NoError(t, err)

	a.CancelOrder(1)
	assert.Equal(t, 0, book.Size())

	a.CancelOrder(1)
	a.CancelOrder(999)
}

func TestAdapter_GetOrderBook(t *testing.T) {
	book := orderbook.New(nil)
	a := New(book)

	_, err := a.AddOrder("GoodTillCancel", 1, "buy", 100, 10)
	require.NoError(t, err)
	_, err = a.AddOrder("GoodTillCancel", 2, "sell", 105, 5)
	require.NoError(t, err)

	result := a.GetOrderBook()
	require.Len(t, result.Bids, 1)
	require.Len(t, result.Asks, 1)
	assert.Equal(t, int32(100), result.Bids[0].PriceTicks)
	assert.Equal(t, uint32(10), result.Bids[0].Quantity)
	assert.Equal(t, int32(105), result.Asks[0].PriceTicks)
}
