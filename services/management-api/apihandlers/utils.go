package apihandlers

import (
	jwthandling "github.com/the-deep/qber-backend/pkg/jwt-handling"
	"github.com/gin-gonic/gin"
)

func (h *HttpEndpoints) isInstanceAllowed(instanceID string) bool {
	for _, id := range h.allowedInstanceIDs {
		if id == instanceID {
			return true
		}
	}
	return false
}

// tokenClaims returns the claims of the already validated request token.
// Only usable behind the JWT middleware.
func tokenClaims(c *gin.Context) *jwthandling.EditorUserClaims {
	return c.MustGet("validatedToken").(*jwthandling.EditorUserClaims)
}
