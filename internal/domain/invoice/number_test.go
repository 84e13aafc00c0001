package invoice

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumber_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in    string
		valid bool
		want  string
	}{
		{in: `12.5`, valid: true, want: "12.5"},
		{in: `"7"`, valid: true, want: "7"},
		{in: `-3`, valid: true, want: "-3"},
		{in: `null`, valid: false},
		{in: `""`, valid: false},
		{in: `"abc"`, valid: false},
		{in: `true`, valid: false},
		{in: `{}`, valid: false},
	}

	for _, tt := range tests {
		var n Number
		require.NoError(t, json.Unmarshal([]byte(tt.in), &n), tt.in)
		assert.Equal(t, tt.valid, n.Valid, tt.in)
		if tt.valid {
			assert.Equal(t, tt.want, n.Decimal.String(), tt.in)
		}
	}
}

func TestNumber_InLineItem(t *testing.T) {
	var item LineItem
	err := json.Unmarshal([]byte(`{"description":"Pens","quantity":"lots","price":"2.50"}`), &item)
	require.NoError(t, err)

	assert.False(t, item.Quantity.Valid)
	assert.Equal(t, "0", item.DisplayQuantity().String())
	assert.Equal(t, "2.5", item.DisplayPrice().String())
	assert.True(t, item.Amount().IsZero())
}

func TestNumber_MarshalJSON(t *testing.T) {
	out, err := json.Marshal(struct {
		A Number `json:"a"`
		B Number `json:"b"`
	}{A: num("1.25")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1.25,"b":null}`, string(out))
}

func TestNumber_SQL(t *testing.T) {
	v, err := num("4.20").Value()
	require.NoError(t, err)
	assert.Equal(t, "4.2", v)

	v, err = Number{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	var n Number
	require.NoError(t, n.Scan("9.99"))
	assert.True(t, n.Valid)
	assert.Equal(t, "9.99", n.Decimal.String())

	require.NoError(t, n.Scan(nil))
	assert.False(t, n.Valid)
}

func TestLineItem_DisplayQuantityRounds(t *testing.T) {
	assert.Equal(t, "3", LineItem{Quantity: num("2.5")}.DisplayQuantity().String())
	assert.Equal(t, "2", LineItem{Quantity: num("2.4")}.DisplayQuantity().String())
	assert.Equal(t, "0", LineItem{Quantity: num("-2")}.DisplayQuantity().String())
}
