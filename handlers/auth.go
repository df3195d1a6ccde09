// File: handlers/auth.go
package handlers

import (
	"net/http"
	"net/url"
	"time"

	"smartsched/config"
	"smartsched/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthLoginHandler returns the Google consent URL the client should open.
func (hb *HandlerBundle) AuthLoginHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"auth_url": hb.Creds.AuthURL()})
}

// AuthCallbackHandler completes the OAuth code exchange and redirects back
// to the frontend with the outcome in the query string.
func (hb *HandlerBundle) AuthCallbackHandler(c *gin.Context) {
	frontend := config.AppConfig.FrontendURL

	code := c.Query("code")
	if code == "" {
		c.Redirect(http.StatusFound, frontend+"?auth=error&message="+url.QueryEscape("missing authorization code"))
		return
	}

	if err := hb.Creds.Exchange(c.Request.Context(), code); err != nil {
		utils.GetLogger().Error("oauth exchange failed", zap.Error(err))
		c.Redirect(http.StatusFound, frontend+"?auth=error&message="+url.QueryEscape(err.Error()))
		return
	}

	c.Redirect(http.StatusFound, frontend+"?auth=success")
}

// AuthStatusHandler reports whether a usable calendar credential is stored.
func (hb *HandlerBundle) AuthStatusHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"authenticated": hb.Creds.IsAuthenticated(c.Request.Context()),
		"timestamp":     time.Now(),
	})
}
