package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRefFromLegacyPrecedence(t *testing.T) {
	tests := []struct {
		name                     string
		customID, productID, sku string
		want                     ProductRef
	}{
		{"custom id wins", "c1", "p1", "s1", ProductRef{RefCustomID, "c1"}},
		{"product id next", "", "p1", "s1", ProductRef{RefProductID, "p1"}},
		{"sku last", "", "", "s1", ProductRef{RefSKU, "s1"}},
		{"whitespace is no identifier", "  ", "", "s1", ProductRef{RefSKU, "s1"}},
		{"nothing", "", "", "", ProductRef{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RefFromLegacy(tt.customID, tt.productID, tt.sku))
		})
	}
}

func TestRefIsZeroAndString(t *testing.T) {
	assert.True(t, ProductRef{}.IsZero())
	assert.False(t, RefFromLegacy("A", "", "").IsZero())
	assert.Equal(t, "custom:A", RefFromLegacy("A", "", "").String())
}
