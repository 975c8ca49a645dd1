package orders

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vendora/platform/internal/catalog"
)

// Order statuses
const (
	StatusPending   = "PENDING"
	StatusPaid      = "PAID"
	StatusShipped   = "SHIPPED"
	StatusCancelled = "CANCELLED"
)

// OrderItem is one line of a stored order. Product references still carry
// the legacy overlapping identifier fields; Ref normalizes them.
type OrderItem struct {
	CustomID  string  `bson:"custom_id,omitempty" json:"customId,omitempty"`
	ProductID string  `bson:"product_id,omitempty" json:"productId,omitempty"`
	SKU       string  `bson:"sku,omitempty" json:"sku,omitempty"`
	Name      string  `bson:"name" json:"name"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	UnitPrice float64 `bson:"unit_price" json:"unitPrice"`
	Currency  string  `bson:"currency,omitempty" json:"currency,omitempty"`
}

// Ref returns the canonical product reference for this line.
func (i OrderItem) Ref() catalog.ProductRef {
	return catalog.RefFromLegacy(i.CustomID, i.ProductID, i.SKU)
}

// Order is the stored order document. Identity fields are read by the
// visibility resolver and never mutated by it.
type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          string             `bson:"user_id,omitempty" json:"userId,omitempty"`
	UserEmail       string             `bson:"user_email,omitempty" json:"userEmail,omitempty"`
	BusinessID      string             `bson:"business_id,omitempty" json:"businessId,omitempty"` // seller
	BuyerBusinessID string             `bson:"buyer_business_id,omitempty" json:"buyerBusinessId,omitempty"`
	Status          string             `bson:"status" json:"status"`
	Currency        string             `bson:"currency,omitempty" json:"currency,omitempty"`
	Total           float64            `bson:"total" json:"total"`
	Items           []OrderItem        `bson:"items" json:"items"`
	CreatedAt       time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updatedAt"`
}
