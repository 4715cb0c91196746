package controller

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"testing"

	"github.com/marcochiappo/Crimcuts/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogController_UploadShop(t *testing.T) {
	server := setupControllerTest(t)
	b := server.browser(t)

	w := b.postForm("/upload_shop", url.Values{
		"shop":      {"Main Street Cuts"},
		"address":   {"1 Main St"},
		"latitude":  {"42.37"},
		"longitude": {"-71.12"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/barbers", w.Header().Get("Location"))

	var shop model.Shop
	require.NoError(t, server.db.First(&shop).Error)
	assert.Equal(t, "Main Street Cuts", shop.Name)
	require.NotNil(t, shop.Latitude)
	assert.InDelta(t, 42.37, *shop.Latitude, 1e-9)
}

func TestCatalogController_UploadShop_Validation(t *testing.T) {
	server := setupControllerTest(t)

	tests := []struct {
		name    string
		form    url.Values
		message string
	}{
		{name: "Missing address", form: url.Values{"shop": {"Cuts"}}, message: "Shop name and address are required."},
		{name: "Bad latitude", form: url.Values{"shop": {"Cuts"}, "address": {"1 Main"}, "latitude": {"north"}}, message: "Latitude must be a number."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := server.browser(t).postForm("/upload_shop", tt.form)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), tt.message)
		})
	}

	var count int64
	require.NoError(t, server.db.Model(&model.Shop{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCatalogController_UploadBarber(t *testing.T) {
	server := setupControllerTest(t)
	shop := &model.Shop{Name: "Main Street Cuts", Location: "1 Main St"}
	require.NoError(t, server.db.Create(shop).Error)
	b := server.browser(t)

	form := b.get("/upload_barber")
	assert.Equal(t, http.StatusOK, form.Code)
	assert.Contains(t, form.Body.String(), "Main Street Cuts")

	w := b.postForm("/upload_barber", url.Values{"barber": {"Sam Fade"}, "shop_id": {strconv.Itoa(int(shop.ID))}})
	require.Equal(t, http.StatusSeeOther, w.Code)

	var barber model.Barber
	require.NoError(t, server.db.First(&barber).Error)
	assert.Equal(t, "Sam Fade", barber.Name)
	assert.Equal(t, shop.ID, barber.ShopID)

	bad := b.postForm("/upload_barber", url.Values{"barber": {"Kim Taper"}, "shop_id": {"999"}})
	assert.Equal(t, http.StatusBadRequest, bad.Code)
	assert.Contains(t, bad.Body.String(), "Please choose an existing shop.")
}

func TestCatalogController_SearchShops(t *testing.T) {
	server := setupControllerTest(t)
	server.seedBarber(t, "Main Street Cuts", "Sam Fade")
	server.seedBarber(t, "Harbor Barbers", "Kim Taper")
	require.NoError(t, server.db.Create(&model.Shop{Name: "Mainline No Coords", Location: "3 Pine St"}).Error)

	search := func(query string) []map[string]string {
		w := server.browser(t).get("/search_shops?query=" + url.QueryEscape(query))
		require.Equal(t, http.StatusOK, w.Code)
		var results []map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &results))
		return results
	}

	empty := server.browser(t).get("/search_shops?query=")
	assert.Equal(t, http.StatusOK, empty.Code)
	assert.JSONEq(t, "[]", empty.Body.String())

	results := search("main")
	require.Len(t, results, 1)
	assert.Equal(t, "Main Street Cuts", results[0]["name"])
	assert.Equal(t, "42.37,-71.12", results[0]["location"])

	assert.Empty(t, search("%"))
}
