package controller

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/marcochiappo/Crimcuts/internal/app/service"
	apperrors "github.com/marcochiappo/Crimcuts/internal/errors"
	"github.com/marcochiappo/Crimcuts/internal/middleware"
	"github.com/marcochiappo/Crimcuts/pkg/logger"
)

const (
	msgRatingCreated  = "Thanks for your rating!"
	msgRatingUpdated  = "Your rating has been updated!"
	msgRatingDeleted  = "Your rating has been deleted."
	msgRatingNotFound = "No rating found to delete."
)

type RatingController struct {
	ratingService service.RatingService
	barbers       *BarberController
}

func NewRatingController(ratingService service.RatingService, barbers *BarberController) *RatingController {
	return &RatingController{
		ratingService: ratingService,
		barbers:       barbers,
	}
}

// SubmitRating creates or replaces the user's rating of a barber
// POST /rate/:id
func (ctrl *RatingController) SubmitRating(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		redirectWithFlash(c, "/login", "You must be logged in to rate a barber.")
		return
	}

	barberID, ok := parseID(c, "id")
	if !ok {
		apperrors.NotFoundText(c, barberNotFoundText)
		return
	}

	photo, closePhoto, err := formPhoto(c, "photo")
	if err != nil {
		log.Warn("Failed to read rating photo", logger.Fields{
			"error": err.Error(),
		})
		ctrl.barbers.renderDetail(c, http.StatusBadRequest, barberID, "Could not read the uploaded photo.")
		return
	}
	defer closePhoto()

	result, err := ctrl.ratingService.SubmitRating(c.Request.Context(), service.SubmitRatingInput{
		UserID:    userID,
		BarberID:  barberID,
		RawRating: c.PostForm("rating"),
		Comment:   c.PostForm("comment"),
		Photo:     photo,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBarberNotFound):
			apperrors.NotFoundText(c, barberNotFoundText)
		case errors.Is(err, service.ErrInvalidRating):
			msg, _ := service.UserMessage(err)
			log.Info("Rating rejected", logger.Fields{
				"barber_id": barberID,
				"raw":       c.PostForm("rating"),
			})
			ctrl.barbers.renderDetail(c, http.StatusBadRequest, barberID, msg)
		default:
			log.Error("Failed to submit rating", err, logger.Fields{
				"barber_id": barberID,
				"user_id":   userID,
			})
			apperrors.InternalErrorPage(c, "")
		}
		return
	}

	message := msgRatingUpdated
	outcome := middleware.RatingUpdated
	if result.Created {
		message = msgRatingCreated
		outcome = middleware.RatingCreated
	}
	middleware.RecordRating(outcome)

	redirectWithFlash(c, fmt.Sprintf("/barbers/%d", barberID), message)
}

// DeleteRating withdraws the user's rating of a barber
// POST /rate/:id/delete
func (ctrl *RatingController) DeleteRating(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		redirectWithFlash(c, "/login", "You must be logged in to delete a rating.")
		return
	}

	barberID, ok := parseID(c, "id")
	if !ok {
		apperrors.NotFoundText(c, barberNotFoundText)
		return
	}

	deleted, err := ctrl.ratingService.DeleteRating(c.Request.Context(), userID, barberID)
	if err != nil {
		log.Error("Failed to delete rating", err, logger.Fields{
			"barber_id": barberID,
			"user_id":   userID,
		})
		apperrors.InternalErrorPage(c, "")
		return
	}

	message := msgRatingNotFound
	outcome := middleware.RatingNoop
	if deleted {
		message = msgRatingDeleted
		outcome = middleware.RatingDeleted
	}
	middleware.RecordRating(outcome)

	redirectWithFlash(c, fmt.Sprintf("/barbers/%d", barberID), message)
}
