package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/marcochiappo/Crimcuts/internal/middleware"
)

// render writes an HTML page with the shared layout fields filled in.
func render(c *gin.Context, status int, page string, data gin.H) {
	c.HTML(status, page, middleware.WithLayout(c, data))
}

// redirectWithFlash answers a form post with 303 so the browser follows with GET.
func redirectWithFlash(c *gin.Context, location, message string) {
	middleware.SetFlash(c, message)
	c.Redirect(http.StatusSeeOther, location)
}

// parseID reads a positive numeric path parameter.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
