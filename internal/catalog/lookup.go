package catalog

import "context"

// ProductLookup resolves a batch of canonical references to products in one
// query. References that match nothing are simply absent from the result map.
type ProductLookup interface {
	FindByRefs(ctx context.Context, refs []ProductRef) (map[ProductRef]*Product, error)
}

// BusinessLookup resolves a business id to its document.
// Returns (nil, nil) when the business does not exist.
type BusinessLookup interface {
	Get(ctx context.Context, id string) (*Business, error)
}
