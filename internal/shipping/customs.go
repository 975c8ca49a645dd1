package shipping

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/vendora/platform/internal/cart"
	"github.com/vendora/platform/internal/catalog"
)

// Customs manifest constants, matching what the carrier expects.
const (
	contentsTypeMerchandise = "MERCHANDISE"
	nonDeliveryReturn       = "RETURN"
	incotermDDU             = "DDU"
	eelPFCNoEEI             = "NOEEI_30_37_a"

	exporterRefPrefix = "VND"
	exporterRefMaxLen = 20
	descriptionMaxLen = 50
)

// CustomsItem is one line of a customs manifest.
type CustomsItem struct {
	Description   string `json:"description"`
	Quantity      int    `json:"quantity"`
	NetWeight     string `json:"net_weight"`
	MassUnit      string `json:"mass_unit"`
	ValueAmount   string `json:"value_amount"`
	ValueCurrency string `json:"value_currency"`
	OriginCountry string `json:"origin_country"`
}

// CustomsDeclaration is the manifest submitted for international shipments.
type CustomsDeclaration struct {
	CertifySigner     string        `json:"certify_signer"`
	Certify           bool          `json:"certify"`
	ContentsType      string        `json:"contents_type"`
	NonDeliveryOption string        `json:"non_delivery_option"`
	Incoterm          string        `json:"incoterm"`
	EELPFC            string        `json:"eel_pfc"`
	ExporterReference string        `json:"exporter_reference"`
	Items             []CustomsItem `json:"items"`
}

// DeclarationOptions carries the per-tenant knobs for customs building.
type DeclarationOptions struct {
	Brand         string // signer name
	OriginCountry string // fallback country of manufacture
	Currency      string // declared value currency
	Now           func() time.Time
}

// BuildCustomsDeclaration produces a validated customs manifest for the cart.
// It reuses the parcel builder's validation pass: incomplete shipping
// metadata fails the whole declaration before anything is built.
func BuildCustomsDeclaration(ctx context.Context, items []cart.Item, destCountry string, products catalog.ProductLookup, opts DeclarationOptions) (*CustomsDeclaration, error) {
	rows, err := resolveRows(ctx, items, products)
	if err != nil {
		return nil, err
	}

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	decl := &CustomsDeclaration{
		CertifySigner:     opts.Brand,
		Certify:           true,
		ContentsType:      contentsTypeMerchandise,
		NonDeliveryOption: nonDeliveryReturn,
		Incoterm:          incotermDDU,
		EELPFC:            eelPFCNoEEI,
		ExporterReference: exporterReference(destCountry, now()),
		Items:             make([]CustomsItem, 0, len(rows)),
	}

	for _, row := range rows {
		qty := row.item.Quantity
		if qty < 1 {
			qty = 1
		}
		netKg := math.Max(roundTo(row.kg*float64(qty), 3), minWeightKg)
		value := math.Max(roundTo(row.item.UnitPrice*float64(qty), 2), 0)

		origin := row.product.CountryOfManufacture
		if origin == "" {
			origin = opts.OriginCountry
		}

		decl.Items = append(decl.Items, CustomsItem{
			Description:   truncate(row.product.Name, descriptionMaxLen),
			Quantity:      qty,
			NetWeight:     fmt.Sprintf("%.3f", netKg),
			MassUnit:      "kg",
			ValueAmount:   fmt.Sprintf("%.2f", value),
			ValueCurrency: opts.Currency,
			OriginCountry: origin,
		})
	}
	return decl, nil
}

// exporterReference builds "<prefix>-<2-char country>-<unix>", capped at 20
// characters to satisfy the carrier field limit.
func exporterReference(destCountry string, now time.Time) string {
	country := strings.ToUpper(strings.TrimSpace(destCountry))
	if len(country) > 2 {
		country = country[:2]
	}
	ref := fmt.Sprintf("%s-%s-%d", exporterRefPrefix, country, now.Unix())
	return truncate(ref, exporterRefMaxLen)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func roundTo(v float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(v*factor) / factor
}
