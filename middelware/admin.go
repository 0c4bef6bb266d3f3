package middelware

import (
	"crypto/subtle"
	"net/http"

	"kishi-backend/models"

	"github.com/gin-gonic/gin"
)

// AdminKeyHeader carries the shared admin key on administrative requests
const AdminKeyHeader = "X-Admin-Key"

// AdminMiddleware guards the administrative listing and mutation endpoints.
// The contract otherwise assumes a trusted caller; this is the minimal
// authorization seam in front of it. With no key configured the check is
// disabled, which configuration validation only permits outside production.
type AdminMiddleware struct {
	config *models.Config
}

// NewAdminMiddleware creates a new admin key middleware
func NewAdminMiddleware(cfg *models.Config) *AdminMiddleware {
	return &AdminMiddleware{
		config: cfg,
	}
}

// RequireAdminKey returns a gin.HandlerFunc rejecting requests whose
// X-Admin-Key header does not match the configured key.
func (m *AdminMiddleware) RequireAdminKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.config.AdminAPIKey == "" {
			c.Next()
			return
		}

		provided := c.GetHeader(AdminKeyHeader)
		if subtle.ConstantTimeCompare([]byte(provided), []byte(m.config.AdminAPIKey)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.APIErrorResponse{
				Error: "Unauthorized",
			})
			return
		}

		c.Next()
	}
}
