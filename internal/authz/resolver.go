package authz

import (
	"context"
	"fmt"
	"strings"

	"github.com/vendora/platform/internal/catalog"
	"github.com/vendora/platform/internal/orders"
)

// Decision is the outcome of a visibility check. Denial is a first-class
// value, not an error: errors here mean infrastructure failed, not that
// access was refused.
type Decision struct {
	Allowed          bool
	Reason           string // diagnostic only, never shown in production
	Order            *orders.Order
	SellerRestricted bool
}

func deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

func allow(order *orders.Order) Decision {
	return Decision{Allowed: true, Order: order}
}

// Resolver evaluates the order visibility policy.
type Resolver struct {
	products catalog.ProductLookup
}

func NewResolver(products catalog.ProductLookup) *Resolver {
	return &Resolver{products: products}
}

// ResolveOrderView applies the policy in precedence order admin -> user ->
// business; the first matching identity kind wins.
func (r *Resolver) ResolveOrderView(ctx context.Context, ident Identity, order *orders.Order) (Decision, error) {
	if order == nil {
		return deny("order does not exist"), nil
	}

	if ident.Admin {
		return allow(order), nil
	}

	if ident.UserID != "" || ident.UserEmail != "" {
		return resolveUser(ident, order), nil
	}

	if ident.BusinessID != "" {
		return r.resolveBusiness(ctx, ident.BusinessID, order)
	}

	return deny("no authenticated identity"), nil
}

func resolveUser(ident Identity, order *orders.Order) Decision {
	if ident.UserID != "" && ident.UserID == order.UserID {
		return allow(order)
	}
	if emailsEqual(ident.UserEmail, order.UserEmail) {
		return allow(order)
	}
	return deny("user is not the order owner")
}

// resolveBusiness grants full visibility to the order's seller or buyer
// business; any other business is a candidate seller and must prove
// per-line-item ownership.
func (r *Resolver) resolveBusiness(ctx context.Context, businessID string, order *orders.Order) (Decision, error) {
	if businessID == order.BusinessID {
		return allow(order), nil
	}
	if businessID == order.BuyerBusinessID {
		return allow(order), nil
	}

	refs := make([]catalog.ProductRef, 0, len(order.Items))
	for _, item := range order.Items {
		if ref := item.Ref(); !ref.IsZero() {
			refs = append(refs, ref)
		}
	}

	resolved, err := r.products.FindByRefs(ctx, refs)
	if err != nil {
		return Decision{}, fmt.Errorf("resolve order line products: %w", err)
	}

	var owned []orders.OrderItem
	for _, item := range order.Items {
		product := resolved[item.Ref()]
		if product != nil && product.BusinessID == businessID {
			owned = append(owned, item)
		}
	}
	if len(owned) == 0 {
		return deny("business owns none of the order's line items"), nil
	}

	// partial clone: only the owned line items are visible
	restricted := *order
	restricted.Items = owned
	return Decision{Allowed: true, Order: &restricted, SellerRestricted: true}, nil
}

func emailsEqual(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	return a != "" && a == b
}
