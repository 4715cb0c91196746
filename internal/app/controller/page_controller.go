package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PageController serves the static pages and the health check.
type PageController struct {
	db *gorm.DB
}

func NewPageController(db *gorm.DB) *PageController {
	return &PageController{db: db}
}

// Index GET /
func (ctrl *PageController) Index(c *gin.Context) {
	render(c, http.StatusOK, "index.html", gin.H{"Title": "Home"})
}

// About GET /about
func (ctrl *PageController) About(c *gin.Context) {
	render(c, http.StatusOK, "about.html", gin.H{"Title": "About"})
}

// Map GET /map_page
func (ctrl *PageController) Map(c *gin.Context) {
	render(c, http.StatusOK, "map.html", gin.H{"Title": "Map"})
}

// Health reports whether the database answers a ping.
// GET /health
func (ctrl *PageController) Health(c *gin.Context) {
	status := http.StatusOK
	dbStatus := "ok"

	if sqlDB, err := ctrl.db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
		status = http.StatusServiceUnavailable
		dbStatus = "unavailable"
	}

	c.JSON(status, gin.H{
		"status":    http.StatusText(status),
		"database":  dbStatus,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
