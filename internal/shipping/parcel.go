// Package shipping computes physical parcels, customs declarations and
// shipment origin addresses for checkout.
package shipping

import (
	"context"
	"fmt"
	"strings"

	"github.com/vendora/platform/internal/apperr"
	"github.com/vendora/platform/internal/cart"
	"github.com/vendora/platform/internal/catalog"
	"github.com/vendora/platform/internal/units"
)

// Carrier API minimums. Parcels below these would be rejected downstream.
const (
	minWeightKg = 0.001
	minDimCm    = 0.1
)

// Parcel is a physical shipping unit. Numeric fields are formatted strings
// with fixed unit tags: carrier APIs expect unit-tagged strings, and
// formatting here avoids scientific-notation bugs in the wire payload.
type Parcel struct {
	Length       string `json:"length"`
	Width        string `json:"width"`
	Height       string `json:"height"`
	DistanceUnit string `json:"distance_unit"`
	Weight       string `json:"weight"`
	MassUnit     string `json:"mass_unit"`
}

// resolvedRow is one cart line with its product and measurements already
// normalized to kg/cm.
type resolvedRow struct {
	item    cart.Item
	product *catalog.Product
	kg      float64
	length  float64
	width   float64
	height  float64
}

// resolveRows resolves every cart item and normalizes its measurements,
// failing fast with PRODUCT_SHIPPING_MISSING that enumerates every offending
// item. Partial results are never returned.
func resolveRows(ctx context.Context, items []cart.Item, products catalog.ProductLookup) ([]resolvedRow, error) {
	if len(items) == 0 {
		return nil, apperr.New(apperr.CodeCartEmpty, "cart has no items")
	}

	resolved, err := products.FindByRefs(ctx, cart.Refs(items))
	if err != nil {
		return nil, fmt.Errorf("resolve cart products: %w", err)
	}

	rows := make([]resolvedRow, 0, len(items))
	var missing []string
	for _, it := range items {
		product := resolved[it.Ref]
		if it.Ref.IsZero() || product == nil {
			missing = append(missing, it.Label)
			continue
		}

		spec := product.Shipping
		if spec == nil {
			missing = append(missing, it.Label)
			continue
		}
		kg, okW := units.ToKilograms(spec.Weight.Value, spec.Weight.Unit)
		l, okL := units.ToCentimeters(spec.Dimensions.Length, spec.Dimensions.Unit)
		w, okWd := units.ToCentimeters(spec.Dimensions.Width, spec.Dimensions.Unit)
		h, okH := units.ToCentimeters(spec.Dimensions.Height, spec.Dimensions.Unit)
		if !okW || !okL || !okWd || !okH {
			missing = append(missing, it.Label)
			continue
		}

		rows = append(rows, resolvedRow{item: it, product: product, kg: kg, length: l, width: w, height: h})
	}

	if len(missing) > 0 {
		return nil, apperr.New(apperr.CodeProductShippingMissing,
			"products missing or with incomplete shipping measurements: %s", strings.Join(missing, ", "))
	}
	return rows, nil
}

// BuildParcels consolidates a cart into one or two parcels: fragile items
// ship in their own parcel, everything else shares one. Weight sums over
// quantities; dimensions take the max per axis (items stack into one box,
// they are not laid end to end).
func BuildParcels(ctx context.Context, items []cart.Item, products catalog.ProductLookup) ([]Parcel, error) {
	rows, err := resolveRows(ctx, items, products)
	if err != nil {
		return nil, err
	}

	var fragile, normal []resolvedRow
	for _, row := range rows {
		if row.product.Shipping.Fragile {
			fragile = append(fragile, row)
		} else {
			normal = append(normal, row)
		}
	}

	if len(fragile) == 0 && len(normal) == 0 {
		// resolveRows guarantees rows is non-empty, but never ship nothing
		return []Parcel{buildParcel(rows)}, nil
	}

	var parcels []Parcel
	if len(fragile) > 0 {
		parcels = append(parcels, buildParcel(fragile))
	}
	if len(normal) > 0 {
		parcels = append(parcels, buildParcel(normal))
	}
	return parcels, nil
}

func buildParcel(rows []resolvedRow) Parcel {
	var totalKg, maxL, maxW, maxH float64
	for _, row := range rows {
		totalKg += row.kg * float64(row.item.Quantity)
		maxL = max(maxL, row.length)
		maxW = max(maxW, row.width)
		maxH = max(maxH, row.height)
	}

	return Parcel{
		Length:       fmt.Sprintf("%.1f", max(maxL, minDimCm)),
		Width:        fmt.Sprintf("%.1f", max(maxW, minDimCm)),
		Height:       fmt.Sprintf("%.1f", max(maxH, minDimCm)),
		DistanceUnit: "cm",
		Weight:       fmt.Sprintf("%.3f", max(totalKg, minWeightKg)),
		MassUnit:     "kg",
	}
}
