// Package handlers wires the checkout core to the JSON route surface.
package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vendora/platform/internal/apperr"
	"github.com/vendora/platform/internal/catalog"
	"github.com/vendora/platform/internal/config"
	"github.com/vendora/platform/internal/fx"
	"github.com/vendora/platform/internal/notify"
	"github.com/vendora/platform/internal/orders"
	"github.com/vendora/platform/internal/shipping"
)

// OrderReader is the read side of the orders store consumed by the order
// view and listing routes.
type OrderReader interface {
	Get(ctx context.Context, id string) (*orders.Order, error)
	ListByUser(ctx context.Context, userID string, limit int64) ([]*orders.Order, error)
	ListBySeller(ctx context.Context, businessID string, limit int64) ([]*orders.Order, error)
}

// HandlerConfig groups dependencies for the route handlers.
type HandlerConfig struct {
	Products   catalog.ProductLookup
	Businesses catalog.BusinessLookup
	Orders     OrderReader
	FX         *fx.Resolver
	Carrier    *shipping.CarrierClient
	Events     *notify.Publisher
	Config     *config.Config
	Log        *slog.Logger
}

// statusForCode maps stable error codes onto HTTP statuses.
func statusForCode(code string) int {
	switch code {
	case apperr.CodeFXInvalidCurrency, apperr.CodeFXInvalidAmount,
		apperr.CodeProductShippingMissing, apperr.CodeCartEmpty,
		apperr.CodeSellerBusinessMissing, apperr.CodeMixedSellersNotSupported:
		return http.StatusBadRequest
	case apperr.CodeSellerBusinessNotFound:
		return http.StatusNotFound
	case apperr.CodeFXDisabled, apperr.CodeFXNotConfigured, apperr.CodeFXProviderInvalid:
		return http.StatusServiceUnavailable
	case apperr.CodeFXLookupFailed, apperr.CodeFXInvalidRate,
		apperr.CodeShippoCustomsFailed, apperr.CodeShippoCustomsObjectError:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// renderError writes a coded error response. Uncoded errors surface as a
// bare 500 without internal detail.
func renderError(c *gin.Context, log *slog.Logger, err error) {
	code := apperr.Code(err)
	if code == "" {
		log.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}
	c.JSON(statusForCode(code), gin.H{"error": code, "message": err.Error()})
}
