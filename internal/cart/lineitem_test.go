package cart

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/money"
)

const testImage = "http://localhost/test.png"

func newItem(t *testing.T, price int64, quantity, stock int) *LineItem {
	t.Helper()
	li, err := NewLineItem(Params{
		Name:      "name",
		UnitPrice: price,
		Quantity:  quantity,
		Stock:     stock,
		ImageRef:  testImage,
	})
	require.NoError(t, err)
	return li
}

func TestNewLineItem_AcceptsValidRanges(t *testing.T) {
	for _, price := range []int64{0, 1, 1235, money.MaxMinor} {
		for stock := 0; stock <= 4; stock++ {
			for quantity := 0; quantity <= stock; quantity++ {
				li := newItem(t, price, quantity, stock)
				assert.Equal(t, price, li.UnitPrice())
				assert.Equal(t, quantity, li.Quantity())
				assert.Equal(t, stock, li.Stock())
			}
		}
	}
}

func TestNewLineItem_Rejects(t *testing.T) {
	valid := Params{Name: "name", UnitPrice: 1, Quantity: 1, Stock: 5, ImageRef: testImage}

	tests := []struct {
		name    string
		mod     func(p *Params)
		wantErr error
		kind    Kind
	}{
		{"negative price", func(p *Params) { p.UnitPrice = -1 }, ErrInvalidPrice, InvalidPrice},
		{"price above ceiling", func(p *Params) { p.UnitPrice = money.MaxMinor + 1 }, ErrInvalidPrice, InvalidPrice},
		{"price near int64 max", func(p *Params) { p.UnitPrice = math.MaxInt64/2 + 1; p.Quantity = 2 }, ErrInvalidPrice, InvalidPrice},
		{"negative stock", func(p *Params) { p.Stock = -1 }, ErrInvalidStock, InvalidStock},
		{"stock above limit", func(p *Params) { p.Stock = MaxStock + 1 }, ErrInvalidStock, InvalidStock},
		{"negative quantity", func(p *Params) { p.Quantity = -1 }, ErrInvalidQuantity, InvalidQuantity},
		{"quantity above stock", func(p *Params) { p.Quantity = 6 }, ErrInvalidQuantity, InvalidQuantity},
		{"empty image", func(p *Params) { p.ImageRef = "" }, ErrInvalidImageReference, InvalidImageReference},
		{"image wrong extension", func(p *Params) { p.ImageRef = "https://test.exe" }, ErrInvalidImageReference, InvalidImageReference},
		{"blank name", func(p *Params) { p.Name = "  " }, ErrInvalidName, InvalidName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mod(&p)

			li, err := NewLineItem(p)
			require.Error(t, err)
			assert.Nil(t, li)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.kind, KindOf(err))
		})
	}
}

func TestNewLineItem_ID(t *testing.T) {
	li, err := NewLineItem(Params{ID: "sku-1", Name: "name", Quantity: 1, Stock: 1, ImageRef: testImage})
	require.NoError(t, err)
	assert.Equal(t, "sku-1", li.ID())

	a := newItem(t, 1, 1, 1)
	b := newItem(t, 1, 1, 1)
	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestUpdateQuantity_Clamps(t *testing.T) {
	tests := []struct {
		initial, stock, update, want int
	}{
		{3, 5, 6, 5},
		{3, 5, 5, 5},
		{3, 5, 4, 4},
		{3, 5, 0, MinQuantity},
		{3, 5, -1, MinQuantity},
		{0, 0, 10, 0},
	}

	for _, tt := range tests {
		li := newItem(t, 1, tt.initial, tt.stock)
		li.UpdateQuantity(tt.update)
		assert.Equal(t, tt.want, li.Quantity(), "update %d with stock %d", tt.update, tt.stock)
	}
}

func TestUpdateQuantity_StaysInRange(t *testing.T) {
	li := newItem(t, 7, 2, 9)
	for n := -20; n <= 20; n++ {
		li.UpdateQuantity(n)
		assert.GreaterOrEqual(t, li.Quantity(), MinQuantity)
		assert.LessOrEqual(t, li.Quantity(), li.Stock())
	}
}

func TestUpdateQuantity_Idempotent(t *testing.T) {
	for _, n := range []int{-3, 0, 12, 1000} {
		once := newItem(t, 1, 2, 5)
		once.UpdateQuantity(n)

		twice := newItem(t, 1, 2, 5)
		twice.UpdateQuantity(n)
		twice.UpdateQuantity(n)

		assert.Equal(t, once.Quantity(), twice.Quantity())
	}
}

func TestUpdateQuantity_LeavesOtherFields(t *testing.T) {
	li, err := NewLineItem(Params{ID: "x", Name: "Backpack", UnitPrice: 10995, Quantity: 1, Stock: 3, ImageRef: testImage})
	require.NoError(t, err)

	li.UpdateQuantity(2)
	assert.Equal(t, "x", li.ID())
	assert.Equal(t, "Backpack", li.Name())
	assert.Equal(t, int64(10995), li.UnitPrice())
	assert.Equal(t, 3, li.Stock())
	assert.Equal(t, testImage, li.ImageRef())
}

func TestPricing(t *testing.T) {
	li := newItem(t, 1235, 5, 10)
	assert.Equal(t, int64(1235), li.UnitPrice())
	assert.Equal(t, "$12.35", li.UnitPriceFormatted())
	assert.Equal(t, int64(6175), li.LineTotal())
	assert.Equal(t, "$61.75", li.LineTotalFormatted())

	free := newItem(t, 0, 5, 10)
	assert.Equal(t, "$0.00", free.UnitPriceFormatted())
	assert.Equal(t, "$0.00", free.LineTotalFormatted())

	cheap := newItem(t, 4, 5, 10)
	assert.Equal(t, "$0.04", cheap.UnitPriceFormatted())
	assert.Equal(t, "$0.20", cheap.LineTotalFormatted())
}

func TestLineTotal_Exact(t *testing.T) {
	for _, price := range []int64{1, 3, 10, 33, 1999, 10995} {
		li := newItem(t, price, 0, 50)
		for q := 0; q <= 50; q++ {
			li.UpdateQuantity(q)
			assert.Equal(t, li.UnitPrice()*int64(q), li.LineTotal())
		}
	}
}

func TestLineTotal_AtLimits(t *testing.T) {
	li := newItem(t, money.MaxMinor, MaxStock, MaxStock)
	assert.Equal(t, int64(10_000_000_000_000), li.LineTotal())
	assert.Equal(t, "$100,000,000,000.00", li.LineTotalFormatted())

	li.UpdateQuantity(math.MaxInt)
	assert.Equal(t, MaxStock, li.Quantity())
	assert.Positive(t, li.LineTotal())
}
