package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in      string
		want    ID
		wantErr bool
	}{
		{in: `"abc"`, want: "abc"},
		{in: `" padded "`, want: "padded"},
		{in: `7`, want: "7"},
		{in: `7.0`, want: "7"},
		{in: `null`, want: ""},
		{in: `1e5`, want: "100000"},
		{in: `12345678901234567890123`, want: "12345678901234567890123"},
		{in: `7.5`, wantErr: true},
		{in: `1e1000000`, wantErr: true},
		{in: `0e-20000000`, wantErr: true},
		{in: `true`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var id ID
			err := json.Unmarshal([]byte(tt.in), &id)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidID)
				assert.Empty(t, id)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestDecode(t *testing.T) {
	body := `[
		{"id": 1, "title": "Backpack", "price": 109.95, "image": "https://fakestoreapi.com/img/81fPKd-2AYL._AC_SL1500_.jpg",
		 "category": "men's clothing", "description": "bag", "rating": {"rate": 3.9, "count": 120}},
		{"id": 2, "title": "Broken", "price": "not-a-number"},
		{"id": "x3", "title": "Shirt", "price": "22.3", "stock": 4, "image": "https://example.com/shirt.png"}
	]`

	records, rejected, err := Decode([]byte(body))
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, ID("1"), records[0].ID)
	assert.Equal(t, "109.95", records[0].Price.String())
	assert.Nil(t, records[0].Stock)
	require.NotNil(t, records[0].Rating)
	assert.Equal(t, "120", records[0].Rating.Count.String())

	assert.Equal(t, ID("x3"), records[1].ID)
	require.NotNil(t, records[1].Stock)
	assert.Equal(t, int64(4), records[1].Stock.IntPart())

	require.Len(t, rejected, 1)
	assert.Equal(t, 1, rejected[0].Index)
}

func TestDecode_NotAnArray(t *testing.T) {
	_, _, err := Decode([]byte(`{"id": 1}`))
	assert.Error(t, err)
}
