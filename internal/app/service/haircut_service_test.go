package service

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/marcochiappo/Crimcuts/internal/app/model"
	"github.com/marcochiappo/Crimcuts/internal/app/repository"
	"github.com/marcochiappo/Crimcuts/internal/db"
	"github.com/marcochiappo/Crimcuts/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uintString(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}

func TestHaircutService_UploadHaircut(t *testing.T) {
	testDB := db.SetupTestDB(t)
	root := t.TempDir()
	photos, err := storage.NewLocalStorage(root)
	require.NoError(t, err)

	catalog := NewCatalogService(repository.NewCatalogRepository(testDB))
	svc := NewHaircutService(catalog, repository.NewHaircutPhotoRepository(testDB), photos)
	ctx := context.Background()

	shop := &model.Shop{Name: "Main Street Cuts", Location: "1 Main St"}
	require.NoError(t, testDB.Create(shop).Error)
	barber := &model.Barber{Name: "Sam Fade", ShopID: shop.ID}
	require.NoError(t, testDB.Create(barber).Error)

	_, err = svc.UploadHaircut(ctx, "Nobody Here", &PhotoUpload{Filename: "x.jpg", Content: strings.NewReader("img")})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Please enter a valid barber: format is First_name Last_name", validationErr.Message)

	entries, err := os.ReadDir(filepath.Join(root, storage.PhotoDir))
	require.NoError(t, err)
	assert.Empty(t, entries, "nothing stored for an unknown barber")

	entry, err := svc.UploadHaircut(ctx, " Sam Fade ", &PhotoUpload{Filename: "taper.png", Content: strings.NewReader("img")})
	require.NoError(t, err)
	require.NotNil(t, entry.Photo)
	assert.Equal(t, "static/barber_images/haircut_"+uintString(barber.ID)+"_taper.png", *entry.Photo)

	noPhoto, err := svc.UploadHaircut(ctx, "Sam Fade", nil)
	require.NoError(t, err)
	assert.Nil(t, noPhoto.Photo)

	listed, err := svc.ListByBarber(ctx, barber.ID)
	require.NoError(t, err)
	assert.Len(t, listed, 2)
}
