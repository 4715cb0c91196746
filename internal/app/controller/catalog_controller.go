package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/marcochiappo/Crimcuts/internal/app/service"
	apperrors "github.com/marcochiappo/Crimcuts/internal/errors"
	"github.com/marcochiappo/Crimcuts/internal/middleware"
	"github.com/marcochiappo/Crimcuts/pkg/logger"
)

type CatalogController struct {
	catalogService service.CatalogService
}

func NewCatalogController(catalogService service.CatalogService) *CatalogController {
	return &CatalogController{catalogService: catalogService}
}

type ShopForm struct {
	Name        string `form:"shop"`
	Location    string `form:"address"`
	Latitude    string `form:"latitude"`
	Longitude   string `form:"longitude"`
	Website     string `form:"website"`
	Description string `form:"description"`
}

// UploadShopPage GET /upload_shop
func (ctrl *CatalogController) UploadShopPage(c *gin.Context) {
	render(c, http.StatusOK, "upload_shop.html", gin.H{
		"Title": "Add Shop",
		"Form":  ShopForm{},
	})
}

// UploadShop adds a shop
// POST /upload_shop
func (ctrl *CatalogController) UploadShop(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var form ShopForm
	_ = c.ShouldBind(&form)

	shop, err := ctrl.catalogService.AddShop(c.Request.Context(), service.ShopInput{
		Name:        form.Name,
		Location:    form.Location,
		Latitude:    form.Latitude,
		Longitude:   form.Longitude,
		Website:     form.Website,
		Description: form.Description,
	})
	if err != nil {
		if msg, ok := service.UserMessage(err); ok {
			render(c, http.StatusBadRequest, "upload_shop.html", gin.H{
				"Title": "Add Shop",
				"Form":  form,
				"Error": msg,
			})
			return
		}
		log.Error("Failed to add shop", err)
		apperrors.InternalErrorPage(c, "")
		return
	}

	log.Info("Shop uploaded", logger.Fields{
		"shop_id": shop.ID,
	})
	redirectWithFlash(c, "/barbers", "Shop added.")
}

// UploadBarberPage GET /upload_barber
func (ctrl *CatalogController) UploadBarberPage(c *gin.Context) {
	ctrl.renderBarberForm(c, http.StatusOK, "", "")
}

// UploadBarber adds a barber to an existing shop
// POST /upload_barber
func (ctrl *CatalogController) UploadBarber(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	name := c.PostForm("barber")
	barber, err := ctrl.catalogService.AddBarber(c.Request.Context(), name, c.PostForm("shop_id"))
	if err != nil {
		if msg, ok := service.UserMessage(err); ok {
			ctrl.renderBarberForm(c, http.StatusBadRequest, name, msg)
			return
		}
		log.Error("Failed to add barber", err)
		apperrors.InternalErrorPage(c, "")
		return
	}

	log.Info("Barber uploaded", logger.Fields{
		"barber_id": barber.ID,
		"shop_id":   barber.ShopID,
	})
	redirectWithFlash(c, "/barbers", "Barber added.")
}

func (ctrl *CatalogController) renderBarberForm(c *gin.Context, status int, name, errMsg string) {
	shops, err := ctrl.catalogService.ListShops(c.Request.Context())
	if err != nil {
		middleware.GetLoggerFromContext(c).Error("Failed to list shops", err)
		apperrors.InternalErrorPage(c, "")
		return
	}

	render(c, status, "upload_barber.html", gin.H{
		"Title":      "Add Barber",
		"Shops":      shops,
		"BarberName": name,
		"Error":      errMsg,
	})
}

// SearchShops returns shops with coordinates whose name matches the query.
// Lookup failures still answer 200 with an empty list.
// GET /search_shops?query=
func (ctrl *CatalogController) SearchShops(c *gin.Context) {
	results, err := ctrl.catalogService.SearchShops(c.Request.Context(), c.Query("query"))
	if err != nil {
		middleware.GetLoggerFromContext(c).Error("Shop search failed", err, logger.Fields{
			"query": c.Query("query"),
		})
	}
	c.JSON(http.StatusOK, results)
}
