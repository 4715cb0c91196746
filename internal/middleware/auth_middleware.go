package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/marcochiappo/Crimcuts/config"
	"github.com/marcochiappo/Crimcuts/internal/app/model"
	"github.com/marcochiappo/Crimcuts/pkg/logger"
	"github.com/marcochiappo/Crimcuts/pkg/redis"
	"github.com/marcochiappo/Crimcuts/pkg/util"
)

const (
	SessionCookieName = "crimcuts_session"

	UserIDKey        = "user_id"
	UsernameKey      = "username"
	SessionIDKey     = "session_id"
	SessionExpiryKey = "session_expires_at"
)

// SessionManager issues and reads the signed session cookie.
type SessionManager struct {
	secret string
	ttl    time.Duration
	secure bool
}

func NewSessionManager(cfg config.SessionConfig) *SessionManager {
	return &SessionManager{
		secret: cfg.Secret,
		ttl:    cfg.TTL,
		secure: cfg.SecureCookie,
	}
}

// Login starts a session for user by setting the session cookie.
func (m *SessionManager) Login(c *gin.Context, user *model.User) error {
	token, claims, err := util.GenerateSessionToken(user.ID, user.Username, m.secret, m.ttl)
	if err != nil {
		return err
	}

	m.setCookie(c, SessionCookieName, token, int(m.ttl.Seconds()))
	c.Set(UserIDKey, user.ID)
	c.Set(UsernameKey, user.Username)
	c.Set(SessionIDKey, claims.ID)
	c.Set(SessionExpiryKey, claims.ExpiresAt.Time)

	GetLoggerFromContext(c).Debug("Session started", logger.Fields{
		"user_id": user.ID,
	})
	return nil
}

// Logout clears the cookie and blacklists the session id when Redis is on.
func (m *SessionManager) Logout(c *gin.Context) {
	if sessionID := c.GetString(SessionIDKey); sessionID != "" {
		remaining := time.Until(c.GetTime(SessionExpiryKey))
		if err := redis.RevokeSession(c.Request.Context(), sessionID, remaining); err != nil {
			GetLoggerFromContext(c).Warn("Failed to revoke session", logger.Fields{
				"error": err.Error(),
			})
		}
	}

	m.setCookie(c, SessionCookieName, "", -1)
	c.Set(UserIDKey, nil)
	c.Set(UsernameKey, nil)
	c.Set(SessionIDKey, "")
}

// LoadSession reads the session cookie if present. Requests without a valid
// session continue as guests.
func (m *SessionManager) LoadSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		token, err := c.Cookie(SessionCookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		claims, err := util.ValidateSessionToken(token, m.secret)
		if err != nil {
			log.Debug("Session cookie rejected - continuing as guest", logger.Fields{
				"error": err.Error(),
			})
			m.setCookie(c, SessionCookieName, "", -1)
			c.Next()
			return
		}

		revoked, err := redis.IsSessionRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			log.Warn("Session revocation check failed, allowing session", logger.Fields{
				"error": err.Error(),
			})
		}
		if revoked {
			log.Debug("Revoked session presented - continuing as guest")
			m.setCookie(c, SessionCookieName, "", -1)
			c.Next()
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UsernameKey, claims.Username)
		c.Set(SessionIDKey, claims.ID)
		c.Set(SessionExpiryKey, claims.ExpiresAt.Time)

		c.Next()
	}
}

// RequireLogin redirects guests to the login page with message as flash.
func (m *SessionManager) RequireLogin(message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetUserID(c); ok {
			c.Next()
			return
		}

		GetLoggerFromContext(c).Info("Login required", logger.Fields{
			"path": c.Request.URL.Path,
		})
		SetFlash(c, message)
		c.Redirect(http.StatusSeeOther, "/login")
		c.Abort()
	}
}

func (m *SessionManager) setCookie(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", "", m.secure, true)
}

// GetUserID extracts the logged-in user id from context
func GetUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists || userID == nil {
		return 0, false
	}
	id, ok := userID.(uint)
	return id, ok && id != 0
}

// GetUsername extracts the logged-in username from context
func GetUsername(c *gin.Context) (string, bool) {
	username, exists := c.Get(UsernameKey)
	if !exists || username == nil {
		return "", false
	}
	name, ok := username.(string)
	return name, ok && name != ""
}
