package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterFXRoutes registers the rate lookup endpoint.
func RegisterFXRoutes(r *gin.Engine, cfg HandlerConfig) {
	r.GET("/fx/rate", func(c *gin.Context) {
		from := c.Query("from")
		to := c.Query("to")

		rate, err := cfg.FX.GetRate(c.Request.Context(), from, to)
		if err != nil {
			renderError(c, cfg.Log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"from": from, "to": to, "rate": rate})
	})
}
