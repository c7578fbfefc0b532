package middleware

import (
	"errors"
	"net/http"

	"cadvault/backend/common"
	"cadvault/backend/model"
	"cadvault/backend/service"

	"github.com/gin-gonic/gin"
)

// ContextUserKey is the gin context key holding the resolved *model.User.
const ContextUserKey = "user"

// JWTAuth is the auth gate wrapping every protected endpoint. It reads the
// session cookie, verifies the token and resolves the embedded user id to a
// live user row. The three failure modes map to distinct messages so clients
// can tell a stale session from a broken one.
func JWTAuth(tokens *service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(common.AuthCookieName)
		if err != nil || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token is missing!"})
			return
		}
		claims, err := tokens.ValidateToken(tokenString)
		if err != nil {
			if errors.Is(err, service.ErrTokenExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token expired!"})
			} else {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token!"})
			}
			return
		}
		user, err := model.GetUserById(claims.UserID)
		if err != nil {
			// Token verified but the user is gone, e.g. deleted after issuance.
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "User invalid!"})
			return
		}
		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the user injected by JWTAuth. Only valid on routes
// behind the gate.
func CurrentUser(c *gin.Context) (*model.User, bool) {
	v, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*model.User)
	return user, ok
}
