package web

import (
	"bytes"
	"testing"

	"github.com/marcochiappo/Crimcuts/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplates_ParseAllPages(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	for _, page := range []string{
		"index.html", "register.html", "login.html", "barbers.html", "barber_detail.html",
		"upload_shop.html", "upload_barber.html", "haircut_upload.html", "about.html", "map.html", "error.html",
	} {
		assert.NotNil(t, tmpl.Lookup(page), page)
	}
}

func TestTemplates_BarberDetail(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	avg := 5.0
	photo := "static/barber_images/1_1_cut.jpg"
	data := map[string]interface{}{
		"Title":     "Sam Fade",
		"User":      "alice",
		"Barber":    &model.Barber{ID: 1, Name: "Sam Fade", Shop: &model.Shop{Name: "Main Street Cuts", Location: "1 Main St"}},
		"Aggregate": model.Aggregate{Average: &avg, Count: 1},
		"Ratings": []model.Rating{
			{Rating: 5, Comment: "<b>great</b>", Photo: &photo, User: &model.User{Username: "alice"}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "barber_detail.html", data))
	out := buf.String()

	assert.Contains(t, out, `<span id="average">5.0</span>`)
	assert.Contains(t, out, `<span id="count">1</span> rating)`)
	assert.Contains(t, out, "/static/barber_images/1_1_cut.jpg")
	assert.Contains(t, out, "&lt;b&gt;great&lt;/b&gt;")
	assert.Contains(t, out, `action="/rate/1"`)
}

func TestPhotoURL(t *testing.T) {
	local := "static/barber_images/a.jpg"
	remote := "https://cdn.example.com/barber_images/a.jpg"
	empty := ""

	assert.Equal(t, "/static/barber_images/a.jpg", PhotoURL(&local))
	assert.Equal(t, remote, PhotoURL(&remote))
	assert.Equal(t, "", PhotoURL(&empty))
	assert.Equal(t, "", PhotoURL(nil))
}

func TestStars(t *testing.T) {
	assert.Equal(t, "★★★☆☆", Stars(3))
	assert.Equal(t, "★★★★★", Stars(9))
}
