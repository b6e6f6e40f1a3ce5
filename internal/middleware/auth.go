package middleware

import (
	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gin-gonic/gin"
)

// UserIDKey is the gin context key auth middlewares store the caller's
// identity under.
const UserIDKey = "user_id"

// GetUserID extracts the caller's user ID: the value an auth
// middleware stored in the gin context, or the sub claim of a
// validated JWT.
func GetUserID(c *gin.Context) (string, bool) {
	return userID(c)
}

func userID(c *gin.Context) (string, bool) {
	if v, exists := c.Get(UserIDKey); exists {
		id, ok := v.(string)
		return id, ok && id != ""
	}

	// The JWT middleware stores the validated token in the request
	// context under its own key.
	claims, ok := c.Request.Context().Value(jwtmiddleware.ContextKey{}).(*validator.ValidatedClaims)
	if !ok {
		return "", false
	}

	return claims.RegisteredClaims.Subject, true
}
