package auth

import (
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/fleetgrid/fleetgrid/errors"
	"github.com/fleetgrid/fleetgrid/server"
	"github.com/fleetgrid/fleetgrid/user"
)

// AccessTokenParam is the query parameter the query-parameter bearer guard
// reads the token from.
const AccessTokenParam = "access_token"

// contextUserKey stores the resolved user in the gin context.
const contextUserKey = "auth.user"

// BearerGuard runs the bearer strategy on the Authorization header before
// the handler. On failure the request is aborted; there is no
// handler-level fallback.
func BearerGuard(strategy Strategy) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortUnauthorized(c)
			return
		}
		runGuard(c, strategy, raw)
	}
}

// QueryGuard runs the query-parameter bearer strategy before the handler,
// reading the token from the access_token query parameter.
func QueryGuard(strategy Strategy) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.Query(AccessTokenParam)
		if raw == "" {
			abortUnauthorized(c)
			return
		}
		runGuard(c, strategy, raw)
	}
}

func runGuard(c *gin.Context, strategy Strategy, raw string) {
	u, err := strategy.Attempt(c.Request.Context(), Credentials{Token: raw})
	if err != nil {
		appErr, ok := apperrors.AsAppError(err)
		if !ok {
			appErr = apperrors.Internal(err)
		}
		c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
		return
	}
	c.Set(contextUserKey, u)
	c.Next()
}

func abortUnauthorized(c *gin.Context) {
	appErr := apperrors.Unauthorized("")
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
}

func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

// CurrentUser retrieves the guard-resolved user from the gin context.
func CurrentUser(c *gin.Context) (*user.User, bool) {
	v, ok := c.Get(contextUserKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*user.User)
	return u, ok
}

// MustCurrentUser retrieves the guard-resolved user or aborts with 401.
// Use only behind a guard.
func MustCurrentUser(c *gin.Context) *user.User {
	u, ok := CurrentUser(c)
	if !ok {
		server.RespondWithError(c, apperrors.Unauthorized(""))
		c.Abort()
		return nil
	}
	return u
}
