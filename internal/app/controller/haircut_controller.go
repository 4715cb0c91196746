package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/marcochiappo/Crimcuts/internal/app/service"
	apperrors "github.com/marcochiappo/Crimcuts/internal/errors"
	"github.com/marcochiappo/Crimcuts/internal/middleware"
	"github.com/marcochiappo/Crimcuts/pkg/logger"
)

type HaircutController struct {
	haircutService service.HaircutService
}

func NewHaircutController(haircutService service.HaircutService) *HaircutController {
	return &HaircutController{haircutService: haircutService}
}

// UploadPage GET /haircut_upload
func (ctrl *HaircutController) UploadPage(c *gin.Context) {
	render(c, http.StatusOK, "haircut_upload.html", gin.H{"Title": "Share a Haircut", "BarberName": ""})
}

// Upload adds a photo to a barber's gallery
// POST /haircut_upload
func (ctrl *HaircutController) Upload(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	barberName := c.PostForm("barber")

	photo, closePhoto, err := formPhoto(c, "photo")
	if err != nil {
		log.Warn("Failed to read haircut photo", logger.Fields{
			"error": err.Error(),
		})
		ctrl.uploadError(c, barberName, "Could not read the uploaded photo.")
		return
	}
	defer closePhoto()

	haircut, err := ctrl.haircutService.UploadHaircut(c.Request.Context(), barberName, photo)
	if err != nil {
		if msg, ok := service.UserMessage(err); ok {
			ctrl.uploadError(c, barberName, msg)
			return
		}
		log.Error("Failed to upload haircut", err)
		apperrors.InternalErrorPage(c, "")
		return
	}

	log.Info("Haircut uploaded", logger.Fields{
		"haircut_id": haircut.ID,
		"barber_id":  haircut.BarberID,
	})
	redirectWithFlash(c, "/barbers", "Haircut photo uploaded.")
}

func (ctrl *HaircutController) uploadError(c *gin.Context, barberName, message string) {
	render(c, http.StatusBadRequest, "haircut_upload.html", gin.H{
		"Title":      "Share a Haircut",
		"BarberName": barberName,
		"Error":      message,
	})
}
