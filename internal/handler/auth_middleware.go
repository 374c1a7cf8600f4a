package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/situgas/internal/domain"
	"github.com/KasumiMercury/situgas/internal/service/catalog"
)

const (
	userContextKey  = "situgas.user"
	tokenContextKey = "situgas.access_token"
)

type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*domain.User, error)
}

// RequireAuth resolves the bearer token to a user or rejects the request
// with 401.
func RequireAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			respondError(c, http.StatusUnauthorized, "unauthorized", "missing bearer token")
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), strings.TrimSpace(token))
		if err != nil {
			respondServiceError(c, err)
			return
		}

		c.Set(userContextKey, user)
		c.Set(tokenContextKey, strings.TrimSpace(token))
		c.Next()
	}
}

func currentUser(c *gin.Context) *domain.User {
	user, _ := c.MustGet(userContextKey).(*domain.User)
	return user
}

func currentUserID(c *gin.Context) string {
	return currentUser(c).ID
}

func accessToken(c *gin.Context) string {
	return c.GetString(tokenContextKey)
}

func actorFrom(c *gin.Context) catalog.Actor {
	return catalog.Actor{
		UserID:    currentUserID(c),
		IPAddress: c.ClientIP(),
	}
}
