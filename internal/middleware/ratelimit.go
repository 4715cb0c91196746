package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/marcochiappo/Crimcuts/pkg/logger"
	"github.com/marcochiappo/Crimcuts/pkg/redis"
)

const tooManyAttemptsMessage = "Too many login attempts. Please wait a minute and try again."

// LoginRateLimit throttles POSTs per client IP. It fails open when Redis is
// not configured or unreachable.
func LoginRateLimit(limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		allowed, err := redis.CheckRateLimit(c.Request.Context(), "login", "ip:"+c.ClientIP(), limit, window)
		if err != nil {
			GetLoggerFromContext(c).Warn("Rate limit check failed, allowing request", logger.Fields{
				"error": err.Error(),
			})
			c.Next()
			return
		}

		if !allowed {
			GetLoggerFromContext(c).Warn("Login rate limit exceeded", logger.Fields{
				"ip": c.ClientIP(),
			})
			c.HTML(http.StatusTooManyRequests, "login.html", WithLayout(c, gin.H{
				"Title":    "Log In",
				"Error":    tooManyAttemptsMessage,
				"Username": "",
			}))
			c.Abort()
			return
		}

		c.Next()
	}
}
