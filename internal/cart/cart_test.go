package cart

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendora/platform/internal/catalog"
)

func TestNormalizeRefPrecedence(t *testing.T) {
	items := Normalize([]ItemPayload{
		{CustomID: "A", ProductID: "507f1f77bcf86cd799439011", SKU: "SKU-1"},
		{ProductID: "507f1f77bcf86cd799439011", SKU: "SKU-1"},
		{SKU: "SKU-1"},
		{},
	})
	require.Len(t, items, 4)

	assert.Equal(t, catalog.ProductRef{Scheme: catalog.RefCustomID, Value: "A"}, items[0].Ref)
	assert.Equal(t, catalog.RefProductID, items[1].Ref.Scheme)
	assert.Equal(t, catalog.RefSKU, items[2].Ref.Scheme)
	assert.True(t, items[3].Ref.IsZero())
	assert.Equal(t, "item #4", items[3].Label)
}

func TestNormalizeQuantityCoercion(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"missing defaults to 1", "", 1},
		{"positive int", "3", 3},
		{"float truncates", "2.9", 2},
		{"zero coerces to 1", "0", 1},
		{"negative coerces to 1", "-4", 1},
		{"garbage coerces to 1", `"many"`, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := []ItemPayload{{CustomID: "A", Quantity: json.Number(tt.raw)}}
			if tt.raw == `"many"` {
				// a non-numeric string arrives through json.Number as-is
				payload[0].Quantity = json.Number("many")
			}
			items := Normalize(payload)
			assert.Equal(t, tt.want, items[0].Quantity)
		})
	}
}

func TestNormalizePriceForms(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{"plain number", `49.99`, 49.99},
		{"numeric string", `"12.50"`, 12.5},
		{"money object amount", `{"amount": 30, "currency": "USD"}`, 30},
		{"money object value", `{"value": 7.25}`, 7.25},
		{"negative rejected", `-5`, 0},
		{"missing", ``, 0},
		{"garbage", `[1,2]`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var raw json.RawMessage
			if tt.raw != "" {
				raw = json.RawMessage(tt.raw)
			}
			items := Normalize([]ItemPayload{{CustomID: "A", Price: raw}})
			assert.Equal(t, tt.want, items[0].UnitPrice)
		})
	}
}

func TestRefsDeduplicates(t *testing.T) {
	items := Normalize([]ItemPayload{
		{CustomID: "A"},
		{CustomID: "A"},
		{CustomID: "B"},
		{}, // no identifier, excluded
	})
	refs := Refs(items)
	require.Len(t, refs, 2)
	assert.Equal(t, "A", refs[0].Value)
	assert.Equal(t, "B", refs[1].Value)
}
