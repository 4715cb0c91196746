package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/marcochiappo/Crimcuts/internal/app/model"
	"github.com/marcochiappo/Crimcuts/internal/app/service"
	apperrors "github.com/marcochiappo/Crimcuts/internal/errors"
	"github.com/marcochiappo/Crimcuts/internal/middleware"
	"github.com/marcochiappo/Crimcuts/pkg/logger"
)

const barberNotFoundText = "Barber not found"

type BarberController struct {
	catalogService service.CatalogService
	ratingService  service.RatingService
	haircutService service.HaircutService
}

func NewBarberController(
	catalogService service.CatalogService,
	ratingService service.RatingService,
	haircutService service.HaircutService,
) *BarberController {
	return &BarberController{
		catalogService: catalogService,
		ratingService:  ratingService,
		haircutService: haircutService,
	}
}

// ListBarbers shows every shop with its barbers
// GET /barbers
func (ctrl *BarberController) ListBarbers(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	shops, err := ctrl.catalogService.ListShopsWithBarbers(c.Request.Context())
	if err != nil {
		log.Error("Failed to list barbers", err)
		apperrors.InternalErrorPage(c, "")
		return
	}

	render(c, http.StatusOK, "barbers.html", gin.H{
		"Title": "Barbers",
		"Shops": shops,
	})
}

// GetBarber shows a barber with ratings, aggregate and haircut gallery
// GET /barbers/:id
func (ctrl *BarberController) GetBarber(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		apperrors.NotFoundText(c, barberNotFoundText)
		return
	}
	ctrl.renderDetail(c, http.StatusOK, id, "")
}

// renderDetail writes the barber page. errMsg is shown inline when a rating
// submission was rejected.
func (ctrl *BarberController) renderDetail(c *gin.Context, status int, barberID uint, errMsg string) {
	log := middleware.GetLoggerFromContext(c)
	ctx := c.Request.Context()

	barber, err := ctrl.catalogService.GetBarber(ctx, barberID)
	if err != nil {
		if errors.Is(err, service.ErrBarberNotFound) {
			log.Debug("Barber not found", logger.Fields{
				"barber_id": barberID,
			})
			apperrors.NotFoundText(c, barberNotFoundText)
			return
		}
		log.Error("Failed to load barber", err, logger.Fields{
			"barber_id": barberID,
		})
		apperrors.InternalErrorPage(c, "")
		return
	}

	ratings, err := ctrl.ratingService.ListRatings(ctx, barberID)
	if err != nil {
		log.Error("Failed to list ratings", err, logger.Fields{
			"barber_id": barberID,
		})
		apperrors.InternalErrorPage(c, "")
		return
	}

	aggregate, err := ctrl.ratingService.GetAggregate(ctx, barberID)
	if err != nil {
		log.Error("Failed to compute rating aggregate", err, logger.Fields{
			"barber_id": barberID,
		})
		apperrors.InternalErrorPage(c, "")
		return
	}

	haircuts, err := ctrl.haircutService.ListByBarber(ctx, barberID)
	if err != nil {
		log.Error("Failed to list haircut photos", err, logger.Fields{
			"barber_id": barberID,
		})
		haircuts = []model.HaircutPhoto{}
	}

	render(c, status, "barber_detail.html", gin.H{
		"Title":     barber.Name,
		"Barber":    barber,
		"Ratings":   ratings,
		"Aggregate": aggregate,
		"Haircuts":  haircuts,
		"Error":     errMsg,
	})
}
