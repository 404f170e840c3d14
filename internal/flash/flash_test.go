package flash

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndPop(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// Set on one request
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/register", nil)

	Set(c, "success", "Registration successful! Please log in.")

	var flashCookie *http.Cookie
	for _, ck := range w.Result().Cookies() {
		if ck.Name == "flash" {
			flashCookie = ck
		}
	}
	require.NotNil(t, flashCookie)
	assert.True(t, flashCookie.HttpOnly)

	// Pop on the next request
	w2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(w2)
	c2.Request = httptest.NewRequest("GET", "/login", nil)
	c2.Request.AddCookie(&http.Cookie{Name: "flash", Value: flashCookie.Value})

	msg := Pop(c2)
	require.NotNil(t, msg)
	assert.Equal(t, "success", msg.Category)
	assert.Equal(t, "Registration successful! Please log in.", msg.Text)

	// Pop clears the cookie
	var cleared bool
	for _, ck := range w2.Result().Cookies() {
		if ck.Name == "flash" && ck.Value == "" && ck.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)
}

func TestPop_NoCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)

	assert.Nil(t, Pop(c))
}

func TestPop_GarbageCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)
	c.Request.AddCookie(&http.Cookie{Name: "flash", Value: "not-base64-json!!!"})

	assert.Nil(t, Pop(c))
}
