package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vendora/platform/internal/authz"
)

const defaultOrderListLimit = 50

// RegisterOrdersRoutes registers the order endpoints behind the identity
// middleware.
func RegisterOrdersRoutes(r *gin.Engine, cfg HandlerConfig) {
	resolver := authz.NewResolver(cfg.Products)

	orders := r.Group("/orders", IdentityMiddleware())

	orders.GET("", func(c *gin.Context) {
		ctx := c.Request.Context()
		ident := identityFromContext(c)

		limit := int64(defaultOrderListLimit)
		if raw := c.Query("limit"); raw != "" {
			if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil && parsed > 0 {
				limit = parsed
			}
		}

		switch {
		case ident.UserID != "":
			list, err := cfg.Orders.ListByUser(ctx, ident.UserID, limit)
			if err != nil {
				renderError(c, cfg.Log, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{"orders": list})
		case ident.BusinessID != "":
			list, err := cfg.Orders.ListBySeller(ctx, ident.BusinessID, limit)
			if err != nil {
				renderError(c, cfg.Log, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{"orders": list})
		default:
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		}
	})

	orders.GET("/:id", func(c *gin.Context) {
		ctx := c.Request.Context()
		ident := identityFromContext(c)

		order, err := cfg.Orders.Get(ctx, c.Param("id"))
		if err != nil {
			renderError(c, cfg.Log, err)
			return
		}

		decision, err := resolver.ResolveOrderView(ctx, ident, order)
		if err != nil {
			renderError(c, cfg.Log, err)
			return
		}

		if !decision.Allowed {
			// In production a denied order is indistinguishable from a missing
			// one. Diagnostics only outside production.
			if cfg.Config.Production() {
				c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
				return
			}
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "reason": decision.Reason})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"order":             decision.Order,
			"seller_restricted": decision.SellerRestricted,
		})
	})
}
