package shipping

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vendora/platform/internal/cart"
	"github.com/vendora/platform/internal/catalog"
)

// In-memory catalog fakes for builder tests.

type fakeProducts struct {
	byRef map[catalog.ProductRef]*catalog.Product
	err   error
}

func (f *fakeProducts) FindByRefs(_ context.Context, refs []catalog.ProductRef) (map[catalog.ProductRef]*catalog.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[catalog.ProductRef]*catalog.Product)
	for _, ref := range refs {
		if p, ok := f.byRef[ref]; ok {
			out[ref] = p
		}
	}
	return out, nil
}

type fakeBusinesses struct {
	byID map[string]*catalog.Business
}

func (f *fakeBusinesses) Get(_ context.Context, id string) (*catalog.Business, error) {
	return f.byID[id], nil
}

func customRef(id string) catalog.ProductRef {
	return catalog.ProductRef{Scheme: catalog.RefCustomID, Value: id}
}

func cartItem(customID string, qty int, price float64) cart.Item {
	return cart.Item{Ref: customRef(customID), Label: customID, Quantity: qty, UnitPrice: price}
}

func productWithShipping(customID, businessID string, weightKg float64, l, w, h float64, fragile bool) *catalog.Product {
	return &catalog.Product{
		ID:         primitive.NewObjectID(),
		CustomID:   customID,
		Name:       "Product " + customID,
		BusinessID: businessID,
		Shipping: &catalog.ShippingSpec{
			Weight:     catalog.WeightSpec{Value: weightKg, Unit: "kg"},
			Dimensions: catalog.DimensionSpec{Length: l, Width: w, Height: h, Unit: "cm"},
			Fragile:    fragile,
		},
	}
}
