package middleware

import (
	"net/http"
	"strings"

	"afya/config"
	deliverycontext "afya/internal/delivery/context"
	"afya/internal/delivery/http/response"
	"afya/internal/domain/entity"
	"afya/internal/usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AuthMiddleware authenticates requests with the bearer tokens issued by the
// external identity provider and gates admin-only routes on the role
// assignments resolved from the record store. Token claims never decide
// authorization; only the resolved role set does.
type AuthMiddleware struct {
	authz usecase.AuthzUsecase
	cfg   *config.Config
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(authz usecase.AuthzUsecase, cfg *config.Config) *AuthMiddleware {
	return &AuthMiddleware{authz: authz, cfg: cfg}
}

// Authenticate validates the bearer token and stores the caller's identity on
// the context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "UNAUTHENTICATED", "Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return response.Unauthorized(c, "UNAUTHENTICATED", "Invalid token format, must be Bearer token")
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}

			return []byte(m.cfg.SecretKey.Access), nil
		})
		if err != nil || !token.Valid {
			return response.Unauthorized(c, "UNAUTHENTICATED", "Invalid or expired token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return response.Unauthorized(c, "UNAUTHENTICATED", "Failed to parse token claims")
		}

		subject, ok := claims["sub"].(string)
		if !ok {
			return response.Unauthorized(c, "UNAUTHENTICATED", "User ID missing from token")
		}
		userID, err := uuid.Parse(subject)
		if err != nil {
			return response.Unauthorized(c, "UNAUTHENTICATED", "Invalid user ID format in token")
		}

		email, _ := claims["email"].(string)
		deliverycontext.SetIdentity(c, entity.Identity{ID: userID, Email: email})

		return next(c)
	}
}

// RequireAdmin gates a route group on the admin role. It must be used AFTER
// the Authenticate middleware. Role resolution failures deny.
func (m *AuthMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID := deliverycontext.GetUserID(c)
		if userID == uuid.Nil {
			return response.Unauthorized(c, "UNAUTHENTICATED", "Sign-in required")
		}

		if err := m.authz.RequireAdmin(c.Request().Context(), userID); err != nil {
			return response.Error(c, http.StatusForbidden, "ACCESS_DENIED", "Access denied. Admin privileges required.", nil)
		}

		return next(c)
	}
}
