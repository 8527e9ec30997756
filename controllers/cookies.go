package controllers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/suraj4812010/Videotube/models"
)

// CookieWriter sets and clears the accessToken/refreshToken cookies.
// Both are http-only; Secure is enabled in production.
type CookieWriter struct {
	secure     bool
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewCookieWriter(secure bool, accessTTL, refreshTTL time.Duration) CookieWriter {
	return CookieWriter{secure: secure, accessTTL: accessTTL, refreshTTL: refreshTTL}
}

func (w CookieWriter) set(c *gin.Context, pair models.TokenPair) {
	c.SetCookie("accessToken", pair.AccessToken, int(w.accessTTL.Seconds()), "/", "", w.secure, true)
	c.SetCookie("refreshToken", pair.RefreshToken, int(w.refreshTTL.Seconds()), "/", "", w.secure, true)
}

func (w CookieWriter) clear(c *gin.Context) {
	c.SetCookie("accessToken", "", -1, "/", "", w.secure, true)
	c.SetCookie("refreshToken", "", -1, "/", "", w.secure, true)
}
