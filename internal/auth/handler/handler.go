// Package handler exposes the auth controller over HTTP.
package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/VanVu13/simpleauth/internal/auth"
	"github.com/VanVu13/simpleauth/internal/middleware"
	"github.com/VanVu13/simpleauth/internal/session"
)

type Handler struct {
	auth       *auth.Service
	ttl        time.Duration
	cookieOpts session.CookieOptions
}

func NewHandler(service *auth.Service, ttl time.Duration, cookieOpts session.CookieOptions) *Handler {
	return &Handler{
		auth:       service,
		ttl:        ttl,
		cookieOpts: cookieOpts,
	}
}

// RegisterPublicRoutes wires the routes that need no session.
func (h *Handler) RegisterPublicRoutes(r *gin.Engine) {
	r.POST("/api/register", h.Register)
	r.POST("/api/login", h.Login)

	// Login entry point the gate redirects interactive clients to.
	// HTML rendering lives elsewhere; this answers with a hint.
	r.GET("/login", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "POST credentials to /api/login"})
	})

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/login")
	})
}

// RegisterProtectedRoutes wires the routes behind the session gate.
func (h *Handler) RegisterProtectedRoutes(r gin.IRoutes) {
	r.POST("/api/logout", h.Logout)
	r.GET("/api/profile", h.Profile)
}

// Logout destroys the current session and clears the cookie.
func (h *Handler) Logout(c *gin.Context) {
	sessionID, ok := middleware.SessionIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := h.auth.Logout(c.Request.Context(), sessionID)

	// Clear the cookie even if the session was already gone.
	session.ClearCookie(c.Writer, h.cookieOpts)

	if err != nil {
		if errors.Is(err, auth.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	c.Status(http.StatusNoContent)
}

// Profile returns the authenticated user's identity fields. The
// password hash is excluded from the user's JSON encoding.
func (h *Handler) Profile(c *gin.Context) {
	sessionID, ok := middleware.SessionIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	u, err := h.auth.Profile(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, auth.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": u})
}
