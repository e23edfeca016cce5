package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequentialIDs() IDFunc {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("product_%d", n)
	}
}

func validItem(id string) LineItem {
	return LineItem{ID: id, Code: Code02, Color: ColorBlack, Sleeve: SleeveShort, Size: SizeM, Quantity: 3}
}

func TestNewOrderForm_OneBlankItem(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	f := NewOrderForm(sequentialIDs(), now)

	require.Len(t, f.Items, 1)
	assert.Equal(t, "product_1", f.Items[0].ID)
	assert.Equal(t, 1, f.Items[0].Quantity)
	assert.Equal(t, now, f.CreatedAt)
	assert.False(t, f.CanRemove())
}

func TestAddItem_UniqueIDs(t *testing.T) {
	ids := sequentialIDs()
	f := NewOrderForm(ids, time.Now())

	second := f.AddItem(ids)
	third := f.AddItem(ids)

	require.Len(t, f.Items, 3)
	assert.NotEqual(t, second.ID, third.ID)
	assert.Equal(t, third, f.Items[2])
}

func TestRemoveItem_KeepsLastItem(t *testing.T) {
	f := NewOrderForm(sequentialIDs(), time.Now())
	only := f.Items[0]

	assert.False(t, f.RemoveItem(only.ID))
	assert.Equal(t, []LineItem{only}, f.Items)
}

func TestRemoveItem_PreservesOrder(t *testing.T) {
	ids := sequentialIDs()
	f := NewOrderForm(ids, time.Now())
	f.AddItem(ids)
	f.AddItem(ids)

	assert.True(t, f.RemoveItem("product_2"))

	require.Len(t, f.Items, 2)
	assert.Equal(t, "product_1", f.Items[0].ID)
	assert.Equal(t, "product_3", f.Items[1].ID)
}

func TestRemoveItem_UnknownID(t *testing.T) {
	ids := sequentialIDs()
	f := NewOrderForm(ids, time.Now())
	f.AddItem(ids)

	assert.False(t, f.RemoveItem("nope"))
	assert.Len(t, f.Items, 2)
}

func TestUpdateItem(t *testing.T) {
	f := NewOrderForm(sequentialIDs(), time.Now())
	code := Code07

	got, ok := f.UpdateItem("product_1", ItemUpdate{Code: &code})

	require.True(t, ok)
	assert.Equal(t, SleeveLong, got.Sleeve)
	assert.Equal(t, got, f.Items[0])

	_, ok = f.UpdateItem("missing", ItemUpdate{Code: &code})
	assert.False(t, ok)
}

func TestSetPhone_Normalizes(t *testing.T) {
	f := NewOrderForm(sequentialIDs(), time.Now())

	f.SetPhone("0812-3456-7890")

	assert.Equal(t, "6281234567890", f.Phone)
}

func TestValidate(t *testing.T) {
	f := &OrderForm{Items: []LineItem{validItem("a")}}
	assert.True(t, errors.Is(f.Validate(), ErrMissingContactInfo))
	assert.False(t, f.IsValid())

	f.CustomerName = "Budi"
	assert.ErrorIs(t, f.Validate(), ErrMissingContactInfo)

	f.Phone = "6281234567890"
	assert.NoError(t, f.Validate())
	assert.True(t, f.IsValid())

	f.Items = append(f.Items, NewLineItem("b"))
	assert.True(t, f.IsValid(), "incomplete items do not block a valid one")

	f.Items = []LineItem{NewLineItem("b")}
	assert.ErrorIs(t, f.Validate(), ErrNoValidProducts)
}

func TestValidate_ContactCheckedFirst(t *testing.T) {
	f := &OrderForm{Items: []LineItem{NewLineItem("a")}}

	assert.ErrorIs(t, f.Validate(), ErrMissingContactInfo)
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "Mohon lengkapi nama dan nomor telepon!", UserMessage(ErrMissingContactInfo))
	assert.Equal(t, "Mohon lengkapi minimal satu produk!", UserMessage(fmt.Errorf("submit: %w", ErrNoValidProducts)))
	assert.Empty(t, UserMessage(errors.New("other")))
}
