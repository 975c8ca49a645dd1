package shipping

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendora/platform/internal/apperr"
	"github.com/vendora/platform/internal/cart"
	"github.com/vendora/platform/internal/catalog"
)

func declOpts(now time.Time) DeclarationOptions {
	return DeclarationOptions{
		Brand:         "Vendora",
		OriginCountry: "ZA",
		Currency:      "USD",
		Now:           func() time.Time { return now },
	}
}

func TestBuildCustomsDeclarationManifest(t *testing.T) {
	products := &fakeProducts{byRef: map[catalog.ProductRef]*catalog.Product{
		customRef("A"): productWithShipping("A", "biz-1", 1, 10, 10, 10, false),
	}}
	now := time.Unix(1700000000, 0)

	decl, err := BuildCustomsDeclaration(context.Background(), []cart.Item{cartItem("A", 2, 50)}, "US", products, declOpts(now))
	require.NoError(t, err)

	assert.Equal(t, "Vendora", decl.CertifySigner)
	assert.True(t, decl.Certify)
	assert.Equal(t, "MERCHANDISE", decl.ContentsType)
	assert.Equal(t, "RETURN", decl.NonDeliveryOption)
	assert.Equal(t, "DDU", decl.Incoterm)
	assert.Equal(t, "NOEEI_30_37_a", decl.EELPFC)
	assert.Equal(t, "VND-US-1700000000", decl.ExporterReference)

	require.Len(t, decl.Items, 1)
	item := decl.Items[0]
	assert.Equal(t, "Product A", item.Description)
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, "2.000", item.NetWeight)
	assert.Equal(t, "kg", item.MassUnit)
	assert.Equal(t, "100.00", item.ValueAmount)
	assert.Equal(t, "USD", item.ValueCurrency)
	assert.Equal(t, "ZA", item.OriginCountry)
}

func TestExporterReferenceCappedAt20(t *testing.T) {
	ref := exporterReference("germany", time.Unix(9999999999, 0))
	assert.Equal(t, "VND-GE-9999999999", ref)
	assert.LessOrEqual(t, len(ref), 20)

	// even a wider timestamp never exceeds the carrier field limit
	far := time.Unix(99999999999999, 0)
	long := fmt.Sprintf("VND-DE-%d", far.Unix())
	assert.Equal(t, long[:20], exporterReference("DE", far))
}

func TestCustomsDescriptionTruncated(t *testing.T) {
	product := productWithShipping("A", "biz-1", 0.1, 5, 5, 5, false)
	product.Name = strings.Repeat("x", 80)
	products := &fakeProducts{byRef: map[catalog.ProductRef]*catalog.Product{customRef("A"): product}}

	decl, err := BuildCustomsDeclaration(context.Background(), []cart.Item{cartItem("A", 1, 5)}, "US", products, declOpts(time.Now()))
	require.NoError(t, err)
	assert.Len(t, decl.Items[0].Description, 50)
}

func TestCustomsRoundingAndFloors(t *testing.T) {
	product := productWithShipping("A", "biz-1", 0.0004, 5, 5, 5, false)
	products := &fakeProducts{byRef: map[catalog.ProductRef]*catalog.Product{customRef("A"): product}}

	decl, err := BuildCustomsDeclaration(context.Background(), []cart.Item{cartItem("A", 1, 0)}, "US", products, declOpts(time.Now()))
	require.NoError(t, err)

	item := decl.Items[0]
	assert.Equal(t, "0.001", item.NetWeight) // floored at the carrier minimum
	assert.Equal(t, "0.00", item.ValueAmount)
}

func TestCustomsUsesProductOriginCountry(t *testing.T) {
	product := productWithShipping("A", "biz-1", 1, 5, 5, 5, false)
	product.CountryOfManufacture = "CN"
	products := &fakeProducts{byRef: map[catalog.ProductRef]*catalog.Product{customRef("A"): product}}

	decl, err := BuildCustomsDeclaration(context.Background(), []cart.Item{cartItem("A", 1, 5)}, "US", products, declOpts(time.Now()))
	require.NoError(t, err)
	assert.Equal(t, "CN", decl.Items[0].OriginCountry)
}

func TestCustomsFailsClosedOnIncompleteShipping(t *testing.T) {
	incomplete := productWithShipping("A", "biz-1", 1, 10, 10, 10, false)
	incomplete.Shipping.Dimensions.Width = 0
	products := &fakeProducts{byRef: map[catalog.ProductRef]*catalog.Product{customRef("A"): incomplete}}

	_, err := BuildCustomsDeclaration(context.Background(), []cart.Item{cartItem("A", 1, 5)}, "US", products, declOpts(time.Now()))
	require.Error(t, err)
	assert.Equal(t, apperr.CodeProductShippingMissing, apperr.Code(err))
}
