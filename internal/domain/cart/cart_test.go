package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/catalog"
)

func bookWithStock(t *testing.T, stock int) *catalog.Book {
	t.Helper()
	book, err := catalog.NewBook("Clean Architecture", uuid.New(), decimal.NewFromInt(120000))
	require.NoError(t, err)
	book.StockQuantity = stock
	return book
}

func TestNewCart_RequiresUser(t *testing.T) {
	_, err := NewCart(uuid.Nil)
	assert.Error(t, err)
}

func TestCart_AddItem_ClampsToStock(t *testing.T) {
	cart, err := NewCart(uuid.New())
	require.NoError(t, err)
	book := bookWithStock(t, 4)

	got, err := cart.AddItem(book, 10)
	require.NoError(t, err)
	assert.Equal(t, 4, got)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 4, cart.Items[0].Quantity)
}

func TestCart_AddItem_AccumulatesThenClamps(t *testing.T) {
	cart, err := NewCart(uuid.New())
	require.NoError(t, err)
	book := bookWithStock(t, 5)

	_, err = cart.AddItem(book, 3)
	require.NoError(t, err)
	got, err := cart.AddItem(book, 4)
	require.NoError(t, err)

	assert.Equal(t, 5, got)
	require.Len(t, cart.Items, 1)
}

func TestCart_AddItem_ZeroStockKeepsLine(t *testing.T) {
	cart, err := NewCart(uuid.New())
	require.NoError(t, err)
	book := bookWithStock(t, 0)

	got, err := cart.AddItem(book, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, got)
	assert.Len(t, cart.Items, 1)
}

func TestCart_AddItem_RejectsNonPositive(t *testing.T) {
	cart, err := NewCart(uuid.New())
	require.NoError(t, err)
	book := bookWithStock(t, 5)

	_, err = cart.AddItem(book, 0)
	assert.Error(t, err)
	_, err = cart.AddItem(book, -1)
	assert.Error(t, err)
}

func TestCart_UpdateItem(t *testing.T) {
	cart, err := NewCart(uuid.New())
	require.NoError(t, err)
	book := bookWithStock(t, 6)

	_, err = cart.AddItem(book, 2)
	require.NoError(t, err)

	got, err := cart.UpdateItem(book, 10)
	require.NoError(t, err)
	assert.Equal(t, 6, got)

	// zero removes the line
	got, err = cart.UpdateItem(book, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, got)
	assert.True(t, cart.IsEmpty())
}

func TestCart_UpdateItem_MissingLine(t *testing.T) {
	cart, err := NewCart(uuid.New())
	require.NoError(t, err)
	book := bookWithStock(t, 6)

	_, err = cart.UpdateItem(book, 3)
	assert.Error(t, err)
}

func TestCart_RemoveItemAndClear(t *testing.T) {
	cart, err := NewCart(uuid.New())
	require.NoError(t, err)
	first := bookWithStock(t, 3)
	second := bookWithStock(t, 3)

	_, err = cart.AddItem(first, 1)
	require.NoError(t, err)
	_, err = cart.AddItem(second, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, cart.TotalQuantity())

	require.NoError(t, cart.RemoveItem(first.ID))
	assert.Len(t, cart.Items, 1)
	assert.Error(t, cart.RemoveItem(first.ID))

	cart.Clear()
	assert.True(t, cart.IsEmpty())
}
