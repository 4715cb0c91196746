package controller

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/marcochiappo/Crimcuts/config"
	"github.com/marcochiappo/Crimcuts/internal/app/model"
	"github.com/marcochiappo/Crimcuts/internal/app/repository"
	"github.com/marcochiappo/Crimcuts/internal/app/service"
	"github.com/marcochiappo/Crimcuts/internal/db"
	"github.com/marcochiappo/Crimcuts/internal/middleware"
	"github.com/marcochiappo/Crimcuts/internal/storage"
	"github.com/marcochiappo/Crimcuts/internal/web"
	"github.com/marcochiappo/Crimcuts/pkg/util"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testServer struct {
	router    *gin.Engine
	db        *gorm.DB
	staticDir string
}

func setupControllerTest(t *testing.T) *testServer {
	gin.SetMode(gin.TestMode)

	testDB := db.SetupTestDB(t)
	staticDir := t.TempDir()
	photos, err := storage.NewLocalStorage(staticDir)
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(testDB)
	catalogRepo := repository.NewCatalogRepository(testDB)
	ratingRepo := repository.NewRatingRepository(testDB)
	haircutRepo := repository.NewHaircutPhotoRepository(testDB)

	authService := service.NewAuthService(userRepo, util.PasswordPolicy{MinLength: 8, RequireDigit: true, RequireUpper: true, RequireLower: true})
	catalogService := service.NewCatalogService(catalogRepo)
	ratingService := service.NewRatingService(ratingRepo, catalogRepo, photos)
	haircutService := service.NewHaircutService(catalogService, haircutRepo, photos)

	sessions := middleware.NewSessionManager(config.SessionConfig{Secret: "test-secret", TTL: time.Hour})

	authCtrl := NewAuthController(authService, sessions)
	pageCtrl := NewPageController(testDB)
	barberCtrl := NewBarberController(catalogService, ratingService, haircutService)
	ratingCtrl := NewRatingController(ratingService, barberCtrl)
	catalogCtrl := NewCatalogController(catalogService)
	haircutCtrl := NewHaircutController(haircutService)

	templates, err := web.Templates()
	require.NoError(t, err)

	router := gin.New()
	router.SetHTMLTemplate(templates)
	router.Use(middleware.LoggingMiddleware())
	router.Use(sessions.LoadSession())

	router.GET("/", pageCtrl.Index)
	router.GET("/about", pageCtrl.About)
	router.GET("/health", pageCtrl.Health)
	router.GET("/register", authCtrl.RegisterPage)
	router.POST("/register", authCtrl.Register)
	router.GET("/login", authCtrl.LoginPage)
	router.POST("/login", authCtrl.Login)
	router.GET("/logout", authCtrl.Logout)
	router.GET("/barbers", barberCtrl.ListBarbers)
	router.GET("/barbers/:id", barberCtrl.GetBarber)
	router.POST("/rate/:id", ratingCtrl.SubmitRating)
	router.POST("/rate/:id/delete", ratingCtrl.DeleteRating)
	router.GET("/upload_shop", catalogCtrl.UploadShopPage)
	router.POST("/upload_shop", catalogCtrl.UploadShop)
	router.GET("/upload_barber", catalogCtrl.UploadBarberPage)
	router.POST("/upload_barber", catalogCtrl.UploadBarber)
	router.GET("/search_shops", catalogCtrl.SearchShops)
	router.GET("/haircut_upload", haircutCtrl.UploadPage)
	router.POST("/haircut_upload", haircutCtrl.Upload)

	return &testServer{router: router, db: testDB, staticDir: staticDir}
}

func (s *testServer) seedBarber(t *testing.T, shopName, barberName string) *model.Barber {
	lat, lon := 42.37, -71.12
	shop := &model.Shop{Name: shopName, Location: "1 Main St", Latitude: &lat, Longitude: &lon}
	require.NoError(t, s.db.Create(shop).Error)
	barber := &model.Barber{Name: barberName, ShopID: shop.ID}
	require.NoError(t, s.db.Create(barber).Error)
	return barber
}

// browser replays cookies between requests the way a browser would.
type browser struct {
	t       *testing.T
	server  *testServer
	cookies map[string]*http.Cookie
}

func (s *testServer) browser(t *testing.T) *browser {
	return &browser{t: t, server: s, cookies: map[string]*http.Cookie{}}
}

func (b *browser) do(req *http.Request) *httptest.ResponseRecorder {
	for _, c := range b.cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	b.server.router.ServeHTTP(w, req)

	for _, c := range w.Result().Cookies() {
		if c.MaxAge < 0 || c.Value == "" {
			delete(b.cookies, c.Name)
			continue
		}
		b.cookies[c.Name] = c
	}
	return w
}

func (b *browser) get(path string) *httptest.ResponseRecorder {
	return b.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (b *browser) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req)
}

// postMultipart sends fields plus an optional file under "photo".
func (b *browser) postMultipart(path string, fields map[string]string, filename string, content []byte) *httptest.ResponseRecorder {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(b.t, mw.WriteField(k, v))
	}
	if filename != "" {
		fw, err := mw.CreateFormFile("photo", filename)
		require.NoError(b.t, err)
		_, err = io.Copy(fw, bytes.NewReader(content))
		require.NoError(b.t, err)
	}
	require.NoError(b.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return b.do(req)
}

func (b *browser) register(username, password string) *httptest.ResponseRecorder {
	return b.postForm("/register", url.Values{
		"username":         {username},
		"password":         {password},
		"confirm_password": {password},
	})
}
