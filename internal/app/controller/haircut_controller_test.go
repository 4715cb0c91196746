package controller

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/marcochiappo/Crimcuts/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHaircutController_Upload(t *testing.T) {
	server := setupControllerTest(t)
	barber := server.seedBarber(t, "Main Street Cuts", "Sam Fade")
	b := server.browser(t)

	w := b.postMultipart("/haircut_upload", map[string]string{"barber": "Sam Fade"}, "fade.png", []byte("png"))
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/barbers", w.Header().Get("Location"))

	var photo model.HaircutPhoto
	require.NoError(t, server.db.First(&photo).Error)
	assert.Equal(t, barber.ID, photo.BarberID)
	require.NotNil(t, photo.Photo)
	assert.Equal(t, fmt.Sprintf("static/barber_images/haircut_%d_fade.png", barber.ID), *photo.Photo)

	page := b.get(fmt.Sprintf("/barbers/%d", barber.ID)).Body.String()
	assert.Contains(t, page, "Haircut gallery")
	assert.Contains(t, page, "/"+*photo.Photo)
}

func TestHaircutController_UnknownBarber(t *testing.T) {
	server := setupControllerTest(t)

	w := server.browser(t).postMultipart("/haircut_upload", map[string]string{"barber": "Nobody Here"}, "fade.png", []byte("png"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Please enter a valid barber: format is First_name Last_name")

	var count int64
	require.NoError(t, server.db.Model(&model.HaircutPhoto{}).Count(&count).Error)
	assert.Zero(t, count)
}
