package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/pkg/session"
)

const SessionIDKey = "session_id"

// Session resolves the cart session from the signed cookie, starting a new
// session when the cookie is missing, expired or forged.
func Session(cfg *config.Config, manager *session.Manager, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := c.Cookie(cfg.Session.CookieName); err == nil && token != "" {
			if claims, err := manager.Validate(token); err == nil {
				c.Set(SessionIDKey, claims.SessionID)
				c.Next()
				return
			}
		}

		sessionID, token, err := manager.New()
		if err != nil {
			logger.WithError(err).Error("Failed to issue session token")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to start session",
			})
			return
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cfg.Session.CookieName, token, int(cfg.Session.TTL.Seconds()), "/", "", cfg.Session.Secure, true)
		c.Set(SessionIDKey, sessionID)
		c.Next()
	}
}

// GetSessionID returns the cart session of the request
func GetSessionID(c *gin.Context) string {
	return c.GetString(SessionIDKey)
}
