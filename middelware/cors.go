package middelware

import (
	"strings"

	"kishi-backend/models"

	"github.com/gin-gonic/gin"
)

var (
	allowedMethods = strings.Join([]string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}, ", ")
	allowedHeaders = strings.Join([]string{
		"Origin",
		"Content-Type",
		"Content-Length",
		"Accept-Encoding",
		AdminKeyHeader,
		"X-Requested-With",
	}, ", ")
)

// CORSMiddleware reflects the request origin back when it matches the
// configured allow-list. Entries may be exact origins, "*", or wildcard
// subdomains like *.kishiconsulting.com.
type CORSMiddleware struct {
	origins []string
}

// NewCORSMiddleware creates a new CORS middleware
func NewCORSMiddleware(cfg *models.Config) *CORSMiddleware {
	return &CORSMiddleware{origins: cfg.CORSOrigins}
}

// CORS returns the gin.HandlerFunc applying the CORS headers
func (m *CORSMiddleware) CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		if origin := c.GetHeader("Origin"); m.originAllowed(origin) {
			c.Header("Access-Control-Allow-Origin", origin)
		}

		c.Header("Access-Control-Allow-Methods", allowedMethods)
		c.Header("Access-Control-Allow-Headers", allowedHeaders)
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}

		c.Next()
	}
}

// originAllowed matches origin against the configured entries. Requests
// without an Origin header (curl, same-origin) always pass.
func (m *CORSMiddleware) originAllowed(origin string) bool {
	if origin == "" {
		return true
	}

	for _, entry := range m.origins {
		switch {
		case entry == "*", entry == origin:
			return true
		case strings.HasPrefix(entry, "*."):
			domain := strings.TrimPrefix(entry, "*.")
			if origin == domain || strings.HasSuffix(origin, "."+domain) {
				return true
			}
		}
	}
	return false
}
