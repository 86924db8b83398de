package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	deviceCookie    = "skishop_device"
	deviceCookieAge = 365 * 24 * 60 * 60
	deviceCtxKey    = "deviceID"
)

// deviceMiddleware pins an opaque device id to the browser so the shopper's
// cart store can be found again across requests and reloads.
func deviceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(deviceCookie)
		if err != nil || id == "" {
			id = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(deviceCookie, id, deviceCookieAge, "/", "", false, true)
		}
		c.Set(deviceCtxKey, id)
		c.Next()
	}
}

func deviceID(c *gin.Context) string {
	return c.GetString(deviceCtxKey)
}
