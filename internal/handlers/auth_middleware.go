package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/campus-track/attendance-service/internal/auth"
	"github.com/campus-track/attendance-service/internal/models"
	"github.com/campus-track/attendance-service/internal/services"
)

const principalKey = "principal"

// JWTAuthMiddleware validates bearer tokens and materializes the request
// principal.
type JWTAuthMiddleware struct {
	issuer      *auth.Issuer
	authService services.AuthService
}

func NewJWTAuthMiddleware(issuer *auth.Issuer, authService services.AuthService) *JWTAuthMiddleware {
	return &JWTAuthMiddleware{issuer: issuer, authService: authService}
}

// AuthMiddleware rejects requests without a valid, unrevoked bearer token and
// stores the decoded principal in the gin context.
func (m *JWTAuthMiddleware) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Missing or malformed Authorization header",
			})
			return
		}

		claims, err := m.issuer.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Invalid or expired token",
			})
			return
		}

		principal, err := claims.Principal()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Invalid token",
			})
			return
		}

		revoked, err := m.authService.IsTokenRevoked(c.Request.Context(), principal.TokenID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
				Message: "Internal server error",
			})
			return
		}
		if revoked {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Token has been revoked",
			})
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// RequireTeacher guards teacher-only route groups.
func (m *JWTAuthMiddleware) RequireTeacher() gin.HandlerFunc {
	return func(c *gin.Context) {
		if p := PrincipalFromContext(c); !p.IsTeacher() {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
				Message: "Teacher access required",
			})
			return
		}
		c.Next()
	}
}

// RequireStudent guards student-only route groups.
func (m *JWTAuthMiddleware) RequireStudent() gin.HandlerFunc {
	return func(c *gin.Context) {
		if p := PrincipalFromContext(c); !p.IsStudent() {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
				Message: "Student access required",
			})
			return
		}
		c.Next()
	}
}

// PrincipalFromContext returns the principal set by AuthMiddleware, or nil on
// unauthenticated routes.
func PrincipalFromContext(c *gin.Context) *models.Principal {
	if v, exists := c.Get(principalKey); exists {
		if p, ok := v.(*models.Principal); ok {
			return p
		}
	}
	return nil
}
