package validation

import "github.com/vendora/platform/internal/cart"

// ParcelsRequest is the payload for POST /checkout/parcels.
type ParcelsRequest struct {
	Items []cart.ItemPayload `json:"items" validate:"required,min=1"`
}

// CustomsRequest is the payload for POST /checkout/customs.
type CustomsRequest struct {
	Items              []cart.ItemPayload `json:"items" validate:"required,min=1"`
	DestinationCountry string             `json:"destinationCountry" validate:"required,len=2"`
	Submit             bool               `json:"submit"` // false: build and return without carrier submission
}

// QuoteRequest is the payload for POST /checkout/quote. FromCurrency is the
// currency the cart prices are denominated in; conversion targets the
// configured checkout currency.
type QuoteRequest struct {
	Items        []cart.ItemPayload `json:"items" validate:"required,min=1"`
	FromCurrency string             `json:"fromCurrency" validate:"required,uppercase,len=3"`
}
