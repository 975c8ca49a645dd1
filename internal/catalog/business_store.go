package catalog

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const businessCollectionName = "businesses"

// BusinessStore is the Mongo-backed BusinessLookup.
type BusinessStore struct {
	collection *mongo.Collection
}

func NewBusinessStore(db *mongo.Database) *BusinessStore {
	return &BusinessStore{collection: db.Collection(businessCollectionName)}
}

// Get fetches a business by hex id. Returns (nil, nil) when the id is
// malformed or the business does not exist.
func (s *BusinessStore) Get(ctx context.Context, id string) (*Business, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var business Business
	err = s.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&business)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find business: %w", err)
	}
	return &business, nil
}
