package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GinRequireAuth adapts the net/http session gate to Gin. The gate
// stays framework-agnostic; this bridge is the only Gin-aware part.
func GinRequireAuth(gate *Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c.Request = r
			c.Next()
		})

		handler := gate.RequireAuth(next)
		handler.ServeHTTP(c.Writer, c.Request)

		// If the gate already wrote the response, stop the Gin chain.
		if c.Writer.Written() {
			c.Abort()
			return
		}
	}
}
