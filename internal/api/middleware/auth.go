package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"hiring-api/internal/models"
	"hiring-api/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	authorizationHeader = "Authorization"
	userCtx             = "userID" // Key to store user ID in context
	roleCtx             = "userRole"
)

// JWTAuthMiddleware creates a Gin middleware for JWT authentication. The
// caller's ID and role are stored in the request context for downstream
// handlers and role guards.
func JWTAuthMiddleware(jwtSecret string, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(authorizationHeader)
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		headerParts := strings.Split(authHeader, " ")
		if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid Authorization header format"})
			return
		}

		tokenString := headerParts[1]

		// Parse and validate the token
		token, err := jwt.ParseWithClaims(tokenString, &services.AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
			// Validate the alg is what you expect:
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(jwtSecret), nil
		})

		if err != nil {
			log.Infof("Auth middleware: Error parsing token: %v", err)
			if errors.Is(err, jwt.ErrTokenExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token has expired"})
			} else {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			}
			return
		}

		if claims, ok := token.Claims.(*services.AccessClaims); ok && token.Valid {
			// Token is valid, extract user ID (subject)
			userID, err := uuid.Parse(claims.Subject)
			if err != nil {
				log.Infof("Auth middleware: Error parsing user ID from token subject '%s': %v", claims.Subject, err)
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid user identifier in token"})
				return
			}

			c.Set(userCtx, userID)
			c.Set(roleCtx, claims.Role)
			c.Next()
		} else {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		}
	}
}

// RequireRoles creates a middleware allowing only the listed roles. It must
// run after JWTAuthMiddleware.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, err := GetRoleFromContext(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
	}
}

// Helper function to get user ID from context (optional but convenient)
func GetUserIDFromContext(c *gin.Context) (uuid.UUID, error) {
	userIDAny, exists := c.Get(userCtx)
	if !exists {
		return uuid.Nil, errors.New("user ID not found in context")
	}

	userID, ok := userIDAny.(uuid.UUID)
	if !ok {
		return uuid.Nil, errors.New("user ID in context is of invalid type")
	}

	return userID, nil
}

// GetRoleFromContext returns the authenticated caller's role.
func GetRoleFromContext(c *gin.Context) (models.Role, error) {
	roleAny, exists := c.Get(roleCtx)
	if !exists {
		return "", errors.New("user role not found in context")
	}

	role, ok := roleAny.(models.Role)
	if !ok {
		return "", errors.New("user role in context is of invalid type")
	}

	return role, nil
}
