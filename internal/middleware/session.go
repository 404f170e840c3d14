package middleware

import (
	"net/http"

	"microblog/internal/auth"
	"microblog/internal/user"

	"github.com/gin-gonic/gin"
)

// CurrentUser resolves the session cookie to a user and stores both
// the ID and the record in the request context. Absent, invalid or
// expired tokens leave the request anonymous; protected routes decide
// what to do with that.
func CurrentUser(secret string, users user.UserServiceInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(auth.SessionCookie)
		if err != nil || token == "" {
			c.Next()
			return
		}

		claims, err := auth.ValidateSession(token, secret)
		if err != nil {
			// Stale or tampered cookie: drop it so the client stops
			// replaying it.
			c.SetCookie(auth.SessionCookie, "", -1, "/", "", false, true)
			c.Next()
			return
		}

		u, err := users.GetUserByID(claims.UserID)
		if err != nil {
			c.Next()
			return
		}

		c.Set(auth.UserIDKey, claims.UserID)
		c.Set(auth.CurrentUserKey, u)
		c.Next()
	}
}

// RequireAuthenticated redirects anonymous requests to the login page
// instead of invoking the protected handler.
func RequireAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(auth.UserIDKey); !exists {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// AnonymousOnly sends already-authenticated users back to the index;
// the register and login pages have nothing for them.
func AnonymousOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(auth.UserIDKey); exists {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}
