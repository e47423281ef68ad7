// Package middleware provides the gin middleware chain: request
// logging with trace IDs and the identity resolver guarding protected
// routes.
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tasksphere/server/ctxutil"
	"github.com/tasksphere/server/data"
	"github.com/tasksphere/server/net/cookie"
	"github.com/tasksphere/server/net/resp"
	"github.com/tasksphere/server/security/jwt"
)

const (
	authorizationHeader = "Authorization"
	bearerPrefix        = "Bearer "

	// UserKey is the gin context key the resolved user ID is stored
	// under.
	UserKey = "current_user_id"
)

// AuthRequired resolves the caller's identity or aborts with 401. The
// token is taken from the Authorization header when present, otherwise
// from the "token" cookie; a present header wins even when invalid.
func AuthRequired(tm *jwt.TokenManager, d *data.Data) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			abortUnauthenticated(c)
			return
		}

		subject, err := tm.Subject(tokenString)
		if err != nil || subject == "" {
			abortUnauthenticated(c)
			return
		}

		userID, err := primitive.ObjectIDFromHex(subject)
		if err != nil {
			abortUnauthenticated(c)
			return
		}

		// Token subjects must reference a live account.
		if _, err := d.UserRepo.FindByID(c.Request.Context(), userID); err != nil {
			abortUnauthenticated(c)
			return
		}

		c.Set(UserKey, userID)
		ctx := ctxutil.SetUserID(c.Request.Context(), subject)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// CurrentUserID returns the resolved user ID set by AuthRequired.
func CurrentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	v, ok := c.Get(UserKey)
	if !ok {
		return primitive.NilObjectID, false
	}
	id, ok := v.(primitive.ObjectID)
	return id, ok
}

func extractToken(c *gin.Context) string {
	if header := c.GetHeader(authorizationHeader); header != "" {
		if strings.HasPrefix(header, bearerPrefix) {
			return strings.TrimPrefix(header, bearerPrefix)
		}
		// A malformed header still takes precedence over the cookie.
		return ""
	}
	return cookie.TokenFromRequest(c.Request)
}

func abortUnauthenticated(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	resp.Fail(c.Writer, resp.UnAuthorized("Could not validate credentials"))
	c.Abort()
}
