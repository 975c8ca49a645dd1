package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/vendora/platform/internal/authz"
)

const identityKey = "vendora.identity"

// Trusted identity headers, set by the session layer in front of this
// service. This service never resolves sessions itself; it only consumes the
// already-authenticated identity.
const (
	headerAdmin      = "X-Auth-Admin"
	headerUserID     = "X-Auth-User-Id"
	headerUserEmail  = "X-Auth-User-Email"
	headerBusinessID = "X-Auth-Business-Id"
)

// IdentityMiddleware extracts the authenticated identity into the request
// context.
func IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(identityKey, authz.Identity{
			Admin:      c.GetHeader(headerAdmin) == "true",
			UserID:     c.GetHeader(headerUserID),
			UserEmail:  c.GetHeader(headerUserEmail),
			BusinessID: c.GetHeader(headerBusinessID),
		})
		c.Next()
	}
}

func identityFromContext(c *gin.Context) authz.Identity {
	if v, ok := c.Get(identityKey); ok {
		if ident, ok := v.(authz.Identity); ok {
			return ident
		}
	}
	return authz.Identity{}
}
