package shipping

import (
	"context"

	"github.com/vendora/platform/internal/apperr"
	"github.com/vendora/platform/internal/cart"
	"github.com/vendora/platform/internal/catalog"
)

// Address is a carrier-shaped postal address.
type Address struct {
	Name    string `json:"name"`
	Street1 string `json:"street1"`
	City    string `json:"city"`
	State   string `json:"state,omitempty"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
}

// BuildOriginAddress derives the shipment origin from the cart's selling
// business. One physical shipment has one origin, so a cart spanning sellers
// is a policy error, not a bug.
func BuildOriginAddress(ctx context.Context, items []cart.Item, products catalog.ProductLookup, businesses catalog.BusinessLookup) (*Address, error) {
	rows, err := resolveRows(ctx, items, products)
	if err != nil {
		return nil, err
	}

	sellerID := ""
	for _, row := range rows {
		id := row.product.BusinessID
		if id == "" {
			return nil, apperr.New(apperr.CodeSellerBusinessMissing,
				"product %q has no owning business", row.product.Name)
		}
		if sellerID == "" {
			sellerID = id
			continue
		}
		if sellerID != id {
			return nil, apperr.New(apperr.CodeMixedSellersNotSupported,
				"cart contains products from multiple sellers (%s, %s)", sellerID, id)
		}
	}

	business, err := businesses.Get(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, apperr.New(apperr.CodeSellerBusinessNotFound, "seller business %s not found", sellerID)
	}

	return &Address{
		Name:    business.Name,
		Street1: business.Street,
		City:    business.City,
		State:   business.State,
		Zip:     business.Zip,
		Country: business.Country,
		Phone:   business.Phone,
		Email:   business.Email,
	}, nil
}
