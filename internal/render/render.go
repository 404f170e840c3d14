package render

import (
	"microblog/internal/auth"
	"microblog/internal/flash"

	"github.com/gin-gonic/gin"
)

// HTML renders a page with the ambient data every template expects:
// the current user (if any), the pending flash message, and the CSRF
// token for forms. Page-specific data comes in through data.
func HTML(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}

	if _, ok := data["CurrentUser"]; !ok {
		if u, exists := c.Get(auth.CurrentUserKey); exists {
			data["CurrentUser"] = u
		} else {
			data["CurrentUser"] = nil
		}
	}

	if _, ok := data["Flash"]; !ok {
		data["Flash"] = flash.Pop(c)
	}

	if _, ok := data["CSRFToken"]; !ok {
		if token, exists := c.Get(auth.CSRFTokenKey); exists {
			data["CSRFToken"] = token
		} else {
			data["CSRFToken"] = ""
		}
	}

	c.HTML(status, name, data)
}
