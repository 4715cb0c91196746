package router

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/marcochiappo/Crimcuts/config"
	"github.com/marcochiappo/Crimcuts/internal/app/controller"
	"github.com/marcochiappo/Crimcuts/internal/middleware"
	"github.com/marcochiappo/Crimcuts/internal/web"
)

const (
	loginAttemptLimit  = 10
	loginAttemptWindow = time.Minute
)

type Router struct {
	authController    *controller.AuthController
	pageController    *controller.PageController
	barberController  *controller.BarberController
	ratingController  *controller.RatingController
	catalogController *controller.CatalogController
	haircutController *controller.HaircutController
	sessions          *middleware.SessionManager
	config            *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	pageController *controller.PageController,
	barberController *controller.BarberController,
	ratingController *controller.RatingController,
	catalogController *controller.CatalogController,
	haircutController *controller.HaircutController,
	sessions *middleware.SessionManager,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:    authController,
		pageController:    pageController,
		barberController:  barberController,
		ratingController:  ratingController,
		catalogController: catalogController,
		haircutController: haircutController,
		sessions:          sessions,
		config:            cfg,
	}
}

func (r *Router) Setup() (*gin.Engine, error) {
	gin.SetMode(r.config.Server.GinMode)

	templates, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	router := gin.New()
	router.MaxMultipartMemory = r.config.Server.MaxMultipartMemory
	router.SetHTMLTemplate(templates)

	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(gin.Recovery())
	router.Use(r.sessions.LoadSession())

	router.GET("/health", r.pageController.Health)
	router.GET("/metrics", middleware.MetricsHandler())

	// Uploaded photos
	router.Static("/static", r.config.Storage.StaticDir)

	router.GET("/", r.pageController.Index)
	router.GET("/about", r.pageController.About)
	router.GET("/map_page", r.pageController.Map)

	router.GET("/register", r.authController.RegisterPage)
	router.POST("/register", r.authController.Register)

	login := router.Group("/login")
	login.Use(middleware.LoginRateLimit(loginAttemptLimit, loginAttemptWindow))
	{
		login.GET("", r.authController.LoginPage)
		login.POST("", r.authController.Login)
	}
	router.GET("/logout", r.authController.Logout)

	router.GET("/barbers", r.barberController.ListBarbers)
	router.GET("/barbers/:id", r.barberController.GetBarber)

	router.POST("/rate/:id",
		r.sessions.RequireLogin("You must be logged in to rate a barber."),
		r.ratingController.SubmitRating)
	router.POST("/rate/:id/delete",
		r.sessions.RequireLogin("You must be logged in to delete a rating."),
		r.ratingController.DeleteRating)

	shopUpload := router.Group("/upload_shop")
	if r.config.Upload.RequireLoginForShopUpload {
		shopUpload.Use(r.sessions.RequireLogin("You must be logged in to upload a shop."))
	}
	{
		shopUpload.GET("", r.catalogController.UploadShopPage)
		shopUpload.POST("", r.catalogController.UploadShop)
	}

	barberUpload := router.Group("/upload_barber")
	barberUpload.Use(r.sessions.RequireLogin("You must be logged in to upload a barber profile."))
	{
		barberUpload.GET("", r.catalogController.UploadBarberPage)
		barberUpload.POST("", r.catalogController.UploadBarber)
	}

	router.GET("/haircut_upload", r.haircutController.UploadPage)
	router.POST("/haircut_upload", r.haircutController.Upload)

	router.GET("/search_shops", r.catalogController.SearchShops)

	return router, nil
}
