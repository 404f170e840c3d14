package middleware

import (
	"crypto/subtle"
	"net/http"

	"microblog/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CSRF implements the double-submit pattern: the token lives in a
// cookie and in a hidden form field, and a mutating request must
// present both with a valid MAC. A cross-site form can neither read
// the cookie nor mint a token without the secret.
func CSRF(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			token, err := c.Cookie(auth.CSRFCookie)
			if err != nil || !auth.VerifyCSRFToken(token, secret) {
				token, err = auth.IssueCSRFToken(secret)
				if err != nil {
					logrus.WithError(err).Error("Failed to issue CSRF token")
					c.String(http.StatusInternalServerError, "Internal server error")
					c.Abort()
					return
				}
				c.SetSameSite(http.SameSiteLaxMode)
				c.SetCookie(auth.CSRFCookie, token, 0, "/", "", false, true)
			}
			c.Set(auth.CSRFTokenKey, token)
			c.Next()
			return
		}

		cookieToken, err := c.Cookie(auth.CSRFCookie)
		formToken := c.PostForm(auth.CSRFField)

		if err != nil || formToken == "" ||
			subtle.ConstantTimeCompare([]byte(cookieToken), []byte(formToken)) != 1 ||
			!auth.VerifyCSRFToken(formToken, secret) {
			logrus.WithFields(logrus.Fields{
				"method": c.Request.Method,
				"path":   c.Request.URL.Path,
			}).Warn("Rejected request with invalid CSRF token")
			c.String(http.StatusForbidden, "Invalid CSRF token")
			c.Abort()
			return
		}

		// Keep the token available for the page a failed form re-renders.
		c.Set(auth.CSRFTokenKey, cookieToken)
		c.Next()
	}
}
