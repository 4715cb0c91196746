package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/marcochiappo/Crimcuts/internal/app/service"
	apperrors "github.com/marcochiappo/Crimcuts/internal/errors"
	"github.com/marcochiappo/Crimcuts/internal/middleware"
	"github.com/marcochiappo/Crimcuts/pkg/logger"
)

type AuthController struct {
	authService service.AuthService
	sessions    *middleware.SessionManager
}

func NewAuthController(authService service.AuthService, sessions *middleware.SessionManager) *AuthController {
	return &AuthController{
		authService: authService,
		sessions:    sessions,
	}
}

type RegisterForm struct {
	Username        string `form:"username"`
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirm_password"`
}

type LoginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// RegisterPage renders the registration form
// GET /register
func (ctrl *AuthController) RegisterPage(c *gin.Context) {
	render(c, http.StatusOK, "register.html", gin.H{"Title": "Register", "Username": ""})
}

// Register creates an account and logs the new user in
// POST /register
func (ctrl *AuthController) Register(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var form RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		log.Warn("Invalid registration form", logger.Fields{
			"error": err.Error(),
		})
		ctrl.registerError(c, http.StatusBadRequest, form.Username, "All fields are required.")
		return
	}

	user, err := ctrl.authService.Register(c.Request.Context(), form.Username, form.Password, form.ConfirmPassword)
	if err != nil {
		msg, userFacing := service.UserMessage(err)
		switch {
		case errors.Is(err, service.ErrUsernameExists):
			log.Warn("Registration failed: username already exists", logger.Fields{
				"username": form.Username,
			})
			ctrl.registerError(c, http.StatusConflict, form.Username, msg)
		case userFacing:
			log.Info("Registration rejected", logger.Fields{
				"reason": err.Error(),
			})
			ctrl.registerError(c, http.StatusBadRequest, form.Username, msg)
		default:
			log.Error("Registration failed", err, logger.Fields{
				"username": form.Username,
			})
			apperrors.InternalErrorPage(c, "")
		}
		return
	}

	if err := ctrl.sessions.Login(c, user); err != nil {
		log.Error("Failed to start session after registration", err, logger.Fields{
			"user_id": user.ID,
		})
		apperrors.InternalErrorPage(c, "")
		return
	}

	log.Info("User registered successfully", logger.Fields{
		"user_id":  user.ID,
		"username": user.Username,
	})
	c.Redirect(http.StatusSeeOther, "/")
}

func (ctrl *AuthController) registerError(c *gin.Context, status int, username, message string) {
	render(c, status, "register.html", gin.H{
		"Title":    "Register",
		"Error":    message,
		"Username": username,
	})
}

// LoginPage renders the login form
// GET /login
func (ctrl *AuthController) LoginPage(c *gin.Context) {
	render(c, http.StatusOK, "login.html", gin.H{"Title": "Log In", "Username": ""})
}

// Login authenticates the user and starts a session
// POST /login
func (ctrl *AuthController) Login(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var form LoginForm
	_ = c.ShouldBind(&form)
	if form.Username == "" || form.Password == "" {
		ctrl.loginError(c, http.StatusBadRequest, form.Username, "All fields are required.")
		return
	}

	user, err := ctrl.authService.Authenticate(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			log.Warn("Login failed: invalid credentials", logger.Fields{
				"username": form.Username,
			})
			msg, _ := service.UserMessage(err)
			ctrl.loginError(c, http.StatusUnauthorized, form.Username, msg)
			return
		}
		log.Error("Login failed", err, logger.Fields{
			"username": form.Username,
		})
		apperrors.InternalErrorPage(c, "")
		return
	}

	if err := ctrl.sessions.Login(c, user); err != nil {
		log.Error("Failed to start session", err, logger.Fields{
			"user_id": user.ID,
		})
		apperrors.InternalErrorPage(c, "")
		return
	}

	log.Info("User logged in successfully", logger.Fields{
		"user_id": user.ID,
	})
	c.Redirect(http.StatusSeeOther, "/")
}

func (ctrl *AuthController) loginError(c *gin.Context, status int, username, message string) {
	render(c, status, "login.html", gin.H{
		"Title":    "Log In",
		"Error":    message,
		"Username": username,
	})
}

// Logout ends the session
// GET /logout
func (ctrl *AuthController) Logout(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	ctrl.sessions.Logout(c)

	middleware.GetLoggerFromContext(c).Info("User logged out", logger.Fields{
		"user_id": userID,
	})
	c.Redirect(http.StatusSeeOther, "/")
}
