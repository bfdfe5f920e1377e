package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mvdti/dashboard-service/internal/auth"
)

var errMissingAuthEnv = errors.New("auth not configured: PASS_TI, PASS_JEFES and SESSION_SECRET must be set")

type AuthHandler struct {
	sessions *auth.Sessions
	// secureCookie requires https for the session cookie (production).
	secureCookie bool
}

func NewAuthHandler(sessions *auth.Sessions, secureCookie bool) *AuthHandler {
	return &AuthHandler{sessions: sessions, secureCookie: secureCookie}
}

type loginRequest struct {
	Pass string `json:"pass"`
}

// Login exchanges the shared password for a role and sets the session cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	if !h.sessions.Configured() {
		fail(c, errMissingAuthEnv)
		return
	}
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid body")
		return
	}
	role, err := h.sessions.Login(strings.TrimSpace(req.Pass))
	if err != nil {
		unauthorized(c, "invalid password")
		return
	}
	token, err := h.sessions.Issue(role)
	if err != nil {
		fail(c, err)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.CookieName, token, int(auth.SessionTTL.Seconds()), "/", "", h.secureCookie, true)
	c.JSON(http.StatusOK, gin.H{"ok": true, "role": role})
}

// Me reports the role held by the session cookie.
func (h *AuthHandler) Me(c *gin.Context) {
	token, err := c.Cookie(auth.CookieName)
	if err != nil {
		unauthorized(c, "no session")
		return
	}
	role, err := h.sessions.Verify(token)
	if err != nil {
		unauthorized(c, "invalid session")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "role": role})
}

// RequireSession is the middleware for routes that need a verified session.
// It stores the role under the "role" context key.
func (h *AuthHandler) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(auth.CookieName)
		if err != nil {
			unauthorized(c, "no session")
			c.Abort()
			return
		}
		role, err := h.sessions.Verify(token)
		if err != nil {
			unauthorized(c, "invalid session")
			c.Abort()
			return
		}
		c.Set("role", role)
		c.Next()
	}
}
