package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/uwosh/course-combine-api/internal/models"
	"github.com/uwosh/course-combine-api/internal/service"
	appErrors "github.com/uwosh/course-combine-api/pkg/errors"
	"github.com/uwosh/course-combine-api/pkg/response"
)

// ContextUserKey is the gin context key storing session claims.
const ContextUserKey = "currentUser"

// Session protects routes by requiring a valid workflow session token.
func Session(tokens *service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header"))
			c.Abort()
			return
		}

		claims, err := tokens.Validate(parts[1])
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextUserKey, claims)
		c.Next()
	}
}

// CurrentClaims returns the session claims stored on the context.
func CurrentClaims(c *gin.Context) *models.SessionClaims {
	if v, exists := c.Get(ContextUserKey); exists {
		if claims, ok := v.(*models.SessionClaims); ok {
			return claims
		}
	}
	return nil
}
