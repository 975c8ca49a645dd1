package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const orderCollectionName = "orders"

// ErrStatusMismatch indicates a conditional status transition failed because
// the order was not in the expected state.
var ErrStatusMismatch = errors.New("order status mismatch")

// Store encapsulates operations on the orders collection.
type Store struct {
	collection *mongo.Collection
	nowFunc    func() time.Time
}

func NewStore(db *mongo.Database) *Store {
	return &Store{
		collection: db.Collection(orderCollectionName),
		nowFunc:    time.Now,
	}
}

// Create persists a new order, stamping timestamps and returning the id.
func (s *Store) Create(ctx context.Context, order *Order) error {
	now := s.nowFunc()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	order.UpdatedAt = now
	if order.Status == "" {
		order.Status = StatusPending
	}

	result, err := s.collection.InsertOne(ctx, order)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		order.ID = oid
	}
	return nil
}

// Get fetches an order by hex id. Returns (nil, nil) when the id is malformed
// or no order exists; callers decide how much of that to reveal.
func (s *Store) Get(ctx context.Context, id string) (*Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var order Order
	err = s.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return &order, nil
}

// ListByUser returns a user's orders, newest first.
func (s *Store) ListByUser(ctx context.Context, userID string, limit int64) ([]*Order, error) {
	return s.list(ctx, bson.M{"user_id": userID}, limit)
}

// ListBySeller returns orders sold by the given business, newest first.
func (s *Store) ListBySeller(ctx context.Context, businessID string, limit int64) ([]*Order, error) {
	return s.list(ctx, bson.M{"business_id": businessID}, limit)
}

func (s *Store) list(ctx context.Context, filter bson.M, limit int64) ([]*Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer cursor.Close(ctx)

	var result []*Order
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	if result == nil {
		result = []*Order{}
	}
	return result, nil
}

// UpdateStatus conditionally transitions an order from expected to newStatus.
func (s *Store) UpdateStatus(ctx context.Context, id, expectedStatus, newStatus string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid order id: %w", err)
	}

	result, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": oid, "status": expectedStatus},
		bson.M{"$set": bson.M{"status": newStatus, "updated_at": s.nowFunc()}},
	)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrStatusMismatch
	}
	return nil
}
