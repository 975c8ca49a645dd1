package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vendora/platform/internal/cart"
	"github.com/vendora/platform/internal/notify"
	"github.com/vendora/platform/internal/shipping"
	"github.com/vendora/platform/internal/validation"
)

// RegisterCheckoutRoutes registers the parcel, customs and quote endpoints.
func RegisterCheckoutRoutes(r *gin.Engine, cfg HandlerConfig) {
	v := validation.New()

	r.POST("/checkout/parcels", func(c *gin.Context) {
		ctx := c.Request.Context()

		var req validation.ParcelsRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		parcels, err := shipping.BuildParcels(ctx, cart.Normalize(req.Items), cfg.Products)
		if err != nil {
			renderError(c, cfg.Log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"parcels": parcels})
	})

	r.POST("/checkout/customs", func(c *gin.Context) {
		ctx := c.Request.Context()

		var req validation.CustomsRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		items := cart.Normalize(req.Items)
		decl, err := shipping.BuildCustomsDeclaration(ctx, items, req.DestinationCountry, cfg.Products, shipping.DeclarationOptions{
			Brand:         cfg.Config.BrandName,
			OriginCountry: cfg.Config.OriginCountry,
			Currency:      cfg.Config.CheckoutCurrency,
			Now:           time.Now,
		})
		if err != nil {
			renderError(c, cfg.Log, err)
			return
		}

		if !req.Submit {
			c.JSON(http.StatusOK, gin.H{"declaration": decl})
			return
		}

		declarationID, err := cfg.Carrier.SubmitCustomsDeclaration(ctx, decl)
		if err != nil {
			renderError(c, cfg.Log, err)
			return
		}

		cfg.Events.Publish(ctx, notify.EventCustomsDeclared, gin.H{
			"declaration_id": declarationID,
			"destination":    req.DestinationCountry,
			"line_items":     len(decl.Items),
		})
		c.JSON(http.StatusCreated, gin.H{"declaration_id": declarationID})
	})

	r.POST("/checkout/origin", func(c *gin.Context) {
		ctx := c.Request.Context()

		var req validation.ParcelsRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		addr, err := shipping.BuildOriginAddress(ctx, cart.Normalize(req.Items), cfg.Products, cfg.Businesses)
		if err != nil {
			renderError(c, cfg.Log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"origin": addr})
	})

	r.POST("/checkout/quote", func(c *gin.Context) {
		ctx := c.Request.Context()

		var req validation.QuoteRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		var total float64
		for _, item := range cart.Normalize(req.Items) {
			total += item.UnitPrice * float64(item.Quantity)
		}

		conv, err := cfg.FX.ConvertAmount(ctx, total, req.FromCurrency, cfg.Config.CheckoutCurrency)
		if err != nil {
			renderError(c, cfg.Log, err)
			return
		}

		cfg.Events.Publish(ctx, notify.EventCheckoutPriced, gin.H{
			"total":    conv.Amount,
			"currency": cfg.Config.CheckoutCurrency,
			"rate":     conv.Rate,
		})
		c.JSON(http.StatusOK, gin.H{
			"total":    conv.Amount,
			"currency": cfg.Config.CheckoutCurrency,
			"rate":     conv.Rate,
			"provider": conv.Provider,
		})
	})
}
