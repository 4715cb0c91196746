package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	FlashCookieName = "crimcuts_flash"
	flashKey        = "flash"
)

// SetFlash stores a one-shot message for the next rendered page.
func SetFlash(c *gin.Context, message string) {
	if message == "" {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(FlashCookieName, message, 300, "/", "", false, true)
}

// PopFlash returns the pending flash message and clears it. Repeated calls in
// the same request return the same message.
func PopFlash(c *gin.Context) string {
	if msg, ok := c.Get(flashKey); ok {
		s, _ := msg.(string)
		return s
	}

	msg, err := c.Cookie(FlashCookieName)
	if err != nil || msg == "" {
		return ""
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(FlashCookieName, "", -1, "/", "", false, true)
	c.Set(flashKey, msg)
	return msg
}

// WithLayout fills the fields every page layout reads: the logged-in user and
// the pending flash message.
func WithLayout(c *gin.Context, data gin.H) gin.H {
	if data == nil {
		data = gin.H{}
	}
	if username, ok := GetUsername(c); ok {
		data["User"] = username
	}
	if _, set := data["Flash"]; !set {
		data["Flash"] = PopFlash(c)
	}
	return data
}
