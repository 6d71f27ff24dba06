package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/VanVu13/simpleauth/internal/auth"
	"github.com/VanVu13/simpleauth/internal/session"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	sess, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "username and password required"})
		case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, auth.ErrWrongPassword):
			// One message for both, so responses don't reveal which
			// usernames exist.
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		}
		return
	}

	session.SetCookie(c.Writer, sess.SessionID, h.ttl, h.cookieOpts)

	c.JSON(http.StatusOK, gin.H{
		"status":  "logged_in",
		"user_id": sess.UserID,
	})
}
