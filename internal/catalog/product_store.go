package catalog

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const productCollectionName = "products"

// ProductStore is the Mongo-backed ProductLookup.
type ProductStore struct {
	collection *mongo.Collection
}

func NewProductStore(db *mongo.Database) *ProductStore {
	return &ProductStore{collection: db.Collection(productCollectionName)}
}

// FindByRefs resolves all refs with a single $or query across the supported
// identifier fields, then indexes the results back under each requested ref.
func (s *ProductStore) FindByRefs(ctx context.Context, refs []ProductRef) (map[ProductRef]*Product, error) {
	resolved := make(map[ProductRef]*Product, len(refs))
	if len(refs) == 0 {
		return resolved, nil
	}

	var customIDs, skus []string
	var objectIDs []primitive.ObjectID
	for _, ref := range refs {
		switch ref.Scheme {
		case RefCustomID:
			customIDs = append(customIDs, ref.Value)
		case RefSKU:
			skus = append(skus, ref.Value)
		case RefProductID:
			oid, err := primitive.ObjectIDFromHex(ref.Value)
			if err != nil {
				// malformed ids resolve to nothing, same as an unknown id
				continue
			}
			objectIDs = append(objectIDs, oid)
		}
	}

	var or []bson.M
	if len(customIDs) > 0 {
		or = append(or, bson.M{"custom_id": bson.M{"$in": customIDs}})
	}
	if len(skus) > 0 {
		or = append(or, bson.M{"sku": bson.M{"$in": skus}})
	}
	if len(objectIDs) > 0 {
		or = append(or, bson.M{"_id": bson.M{"$in": objectIDs}})
	}
	if len(or) == 0 {
		return resolved, nil
	}

	cursor, err := s.collection.Find(ctx, bson.M{"$or": or})
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []*Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	byCustom := make(map[string]*Product)
	bySKU := make(map[string]*Product)
	byID := make(map[string]*Product)
	for _, p := range products {
		if p.CustomID != "" {
			byCustom[p.CustomID] = p
		}
		if p.SKU != "" {
			bySKU[p.SKU] = p
		}
		byID[p.ID.Hex()] = p
	}

	for _, ref := range refs {
		var p *Product
		switch ref.Scheme {
		case RefCustomID:
			p = byCustom[ref.Value]
		case RefSKU:
			p = bySKU[ref.Value]
		case RefProductID:
			p = byID[ref.Value]
		}
		if p != nil {
			resolved[ref] = p
		}
	}
	return resolved, nil
}
