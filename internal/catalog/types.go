package catalog

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RefScheme identifies which product identifier field a reference points at.
type RefScheme string

const (
	RefCustomID  RefScheme = "custom"
	RefProductID RefScheme = "id"
	RefSKU       RefScheme = "sku"
)

// ProductRef is the canonical product reference used throughout checkout.
// Request payloads and stored order line items still carry the legacy field
// soup (customId/productId/sku/_id); RefFromLegacy normalizes it at the
// boundary so everything past it deals with exactly one reference shape.
type ProductRef struct {
	Scheme RefScheme
	Value  string
}

// IsZero reports whether the reference carries no identifier at all.
func (r ProductRef) IsZero() bool { return r.Value == "" }

func (r ProductRef) String() string {
	return string(r.Scheme) + ":" + r.Value
}

// RefFromLegacy converts the legacy multi-field identifier shape into a
// canonical ProductRef. Precedence: custom id, then database id, then SKU.
func RefFromLegacy(customID, productID, sku string) ProductRef {
	if v := strings.TrimSpace(customID); v != "" {
		return ProductRef{Scheme: RefCustomID, Value: v}
	}
	if v := strings.TrimSpace(productID); v != "" {
		return ProductRef{Scheme: RefProductID, Value: v}
	}
	if v := strings.TrimSpace(sku); v != "" {
		return ProductRef{Scheme: RefSKU, Value: v}
	}
	return ProductRef{}
}

// WeightSpec is a tagged weight measurement. Unit is one of kg, g, lb, oz.
type WeightSpec struct {
	Value float64 `bson:"value" json:"value"`
	Unit  string  `bson:"unit" json:"unit"`
}

// DimensionSpec is a tagged set of box dimensions. Unit is cm or in.
type DimensionSpec struct {
	Length float64 `bson:"length" json:"length"`
	Width  float64 `bson:"width" json:"width"`
	Height float64 `bson:"height" json:"height"`
	Unit   string  `bson:"unit" json:"unit"`
}

// ShippingSpec is the product shipping metadata consumed by parcel and
// customs building. Read-only input to checkout.
type ShippingSpec struct {
	Weight         WeightSpec    `bson:"weight" json:"weight"`
	Dimensions     DimensionSpec `bson:"dimensions" json:"dimensions"`
	ShipSeparately bool          `bson:"ship_separately" json:"shipSeparately"`
	Fragile        bool          `bson:"fragile" json:"fragile"`
	Packaging      string        `bson:"packaging,omitempty" json:"packaging,omitempty"`
}

// Product is a catalog document.
type Product struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CustomID             string             `bson:"custom_id,omitempty" json:"customId,omitempty"`
	SKU                  string             `bson:"sku,omitempty" json:"sku,omitempty"`
	Name                 string             `bson:"name" json:"name"`
	Category             string             `bson:"category,omitempty" json:"category,omitempty"`
	BusinessID           string             `bson:"business_id" json:"businessId"`
	Price                float64            `bson:"price" json:"price"`
	Currency             string             `bson:"currency,omitempty" json:"currency,omitempty"`
	CountryOfManufacture string             `bson:"country_of_manufacture,omitempty" json:"countryOfManufacture,omitempty"`
	Shipping             *ShippingSpec      `bson:"shipping,omitempty" json:"shipping,omitempty"`
	CreatedAt            time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt            time.Time          `bson:"updated_at" json:"updatedAt"`
}

// Business is a tenant document; address fields feed shipment origins.
type Business struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name    string             `bson:"name" json:"name"`
	Email   string             `bson:"email,omitempty" json:"email,omitempty"`
	Phone   string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Street  string             `bson:"street,omitempty" json:"street,omitempty"`
	City    string             `bson:"city,omitempty" json:"city,omitempty"`
	State   string             `bson:"state,omitempty" json:"state,omitempty"`
	Zip     string             `bson:"zip,omitempty" json:"zip,omitempty"`
	Country string             `bson:"country,omitempty" json:"country,omitempty"`
}
