// Package cart holds the transient checkout cart shape and the adapter that
// normalizes loosely-typed request payloads into it.
package cart

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/vendora/platform/internal/catalog"
)

// Item is one normalized cart line. Ref may be zero when the payload carried
// no usable identifier; downstream builders list such items as unresolvable
// rather than silently dropping them.
type Item struct {
	Ref       catalog.ProductRef
	Label     string // what to call this line in error messages
	Quantity  int
	UnitPrice float64
}

// ItemPayload is the legacy request shape: overlapping identifier fields,
// quantity as number-or-string, price as number or structured money value.
type ItemPayload struct {
	CustomID  string          `json:"customId"`
	ProductID string          `json:"productId"`
	SKU       string          `json:"sku"`
	Quantity  json.Number     `json:"quantity"`
	Price     json.RawMessage `json:"price"`
}

// moneyPayload is the structured price form: {"amount": 12.5, "currency": "USD"}
// (some callers send "value" instead of "amount").
type moneyPayload struct {
	Amount   *float64 `json:"amount"`
	Value    *float64 `json:"value"`
	Currency string   `json:"currency"`
}

// Normalize converts raw payload items into canonical cart items.
// Quantity defaults to 1 and is coerced to a positive integer; price parses
// from either form and defaults to 0. Price correctness is enforced later by
// the FX and customs logic, so a zero here only reaches display paths.
func Normalize(payload []ItemPayload) []Item {
	items := make([]Item, 0, len(payload))
	for i, p := range payload {
		ref := catalog.RefFromLegacy(p.CustomID, p.ProductID, p.SKU)
		label := ref.Value
		if label == "" {
			label = fmt.Sprintf("item #%d", i+1)
		}
		items = append(items, Item{
			Ref:       ref,
			Label:     label,
			Quantity:  coerceQuantity(p.Quantity),
			UnitPrice: parsePrice(p.Price),
		})
	}
	return items
}

// Refs returns the distinct non-zero references of the given items.
func Refs(items []Item) []catalog.ProductRef {
	seen := make(map[catalog.ProductRef]struct{}, len(items))
	refs := make([]catalog.ProductRef, 0, len(items))
	for _, it := range items {
		if it.Ref.IsZero() {
			continue
		}
		if _, ok := seen[it.Ref]; ok {
			continue
		}
		seen[it.Ref] = struct{}{}
		refs = append(refs, it.Ref)
	}
	return refs
}

func coerceQuantity(raw json.Number) int {
	if raw.String() == "" {
		return 1
	}
	f, err := raw.Float64()
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 1
	}
	q := int(f)
	if q < 1 {
		return 1
	}
	return q
}

func parsePrice(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		if f, err := n.Float64(); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) && f >= 0 {
			return f
		}
		return 0
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(s, 64); err == nil && f >= 0 {
			return f
		}
		return 0
	}
	var m moneyPayload
	if err := json.Unmarshal(raw, &m); err == nil {
		switch {
		case m.Amount != nil && *m.Amount >= 0:
			return *m.Amount
		case m.Value != nil && *m.Value >= 0:
			return *m.Value
		}
	}
	return 0
}
