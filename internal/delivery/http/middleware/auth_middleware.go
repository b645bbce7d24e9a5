package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"career-coach-backend/config"
	"career-coach-backend/internal/delivery/http/response"
	"career-coach-backend/internal/domain"
	"career-coach-backend/pkg/apperror"
	"career-coach-backend/pkg/auth"
	"career-coach-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware verifies the identity provider token and provisions the local
// user on first access. Downstream code reads the caller from the request context.
func AuthMiddleware(jwksProvider *auth.Provider, cfg *config.Config, authUC domain.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		var tokenString string

		// 1. Try to get token from Header
		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		} else {
			// 2. Try to get token from Cookie
			cookie, err := c.Cookie("auth_token")
			if err == nil && cookie != "" {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Unauthorized", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); ok {
				// HS256 - Use Secret
				if cfg.SupabaseJWTSecret == "" {
					return nil, fmt.Errorf("HS256 token received but SUPABASE_JWT_SECRET is not configured")
				}
				return []byte(cfg.SupabaseJWTSecret), nil
			}
			if jwksProvider == nil {
				return nil, fmt.Errorf("asymmetric token received but JWKS is not configured")
			}
			// RS256 / ES256 - Use JWKS
			return jwksProvider.KeyFunc(token)
		})

		if err != nil || !token.Valid {
			logger.Log.Debug("Token validation failed", "error", err)
			response.Error(c, http.StatusUnauthorized, "Invalid token", nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "Invalid claims", nil)
			c.Abort()
			return
		}

		// Extract Supabase standard claims
		sub, _ := claims["sub"].(string)
		email, _ := claims["email"].(string)

		if _, err := authUC.EnsureUser(c.Request.Context(), sub, email); err != nil {
			var appErr *apperror.AppError
			if errors.As(err, &appErr) && appErr.Code == http.StatusUnauthorized {
				response.Error(c, http.StatusUnauthorized, "Unauthorized", nil)
			} else {
				logger.Log.Error("Failed to provision user", "error", err)
				response.Error(c, http.StatusInternalServerError, "Failed to load user", nil)
			}
			c.Abort()
			return
		}

		ctx := context.WithValue(c.Request.Context(), domain.KeyExternalID, sub)
		ctx = context.WithValue(ctx, domain.KeyUserEmail, email)
		c.Request = c.Request.WithContext(ctx)

		c.Set(string(domain.KeyExternalID), sub)
		c.Set(string(domain.KeyUserEmail), email)

		c.Next()
	}
}
