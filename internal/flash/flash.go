package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

const cookieName = "flash"

// Message is a one-shot notice shown on the next rendered page.
// Category matches the bootstrap-style classes the templates use
// (success, danger).
type Message struct {
	Category string `json:"category"`
	Text     string `json:"text"`
}

// Set queues a message for the next page render. The message rides a
// cookie, so it survives the redirect that usually follows.
func Set(c *gin.Context, category, text string) {
	body, err := json.Marshal(Message{Category: category, Text: text})
	if err != nil {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cookieName, base64.RawURLEncoding.EncodeToString(body), 300, "/", "", false, true)
}

// Pop reads and clears the pending message, if any.
func Pop(c *gin.Context) *Message {
	raw, err := c.Cookie(cookieName)
	if err != nil {
		return nil
	}

	c.SetCookie(cookieName, "", -1, "/", "", false, true)

	body, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}

	var msg Message
	if err := json.Unmarshal(body, &msg); err != nil {
		return nil
	}
	return &msg
}
