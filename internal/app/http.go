package app

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/VanVu13/simpleauth/internal/auth"
	"github.com/VanVu13/simpleauth/internal/auth/handler"
	"github.com/VanVu13/simpleauth/internal/config"
	"github.com/VanVu13/simpleauth/internal/middleware"
	"github.com/VanVu13/simpleauth/internal/session"
	"github.com/VanVu13/simpleauth/internal/user"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {
	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	userStore := user.NewPostgresStore(infra.Pool)
	sessionStore := session.NewRedisStore(infra.Redis.Client)

	authService := auth.NewService(userStore, sessionStore, cfg.SessionTTL)

	cookieOpts := session.CookieOptions{
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
	authHandler := handler.NewHandler(authService, cfg.SessionTTL, cookieOpts)

	gate := middleware.NewGate(sessionStore, "/login")

	// ----------------------------
	// Router
	// ----------------------------

	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())

	if cfg.CORSAllowedOrigins != "" {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = strings.Split(cfg.CORSAllowedOrigins, ",")
		corsConfig.AllowCredentials = true
		router.Use(cors.New(corsConfig))
	}

	// ----------------------------
	// Public Routes
	// ----------------------------

	authHandler.RegisterPublicRoutes(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ----------------------------
	// Protected Routes
	// ----------------------------

	protected := router.Group("")
	protected.Use(middleware.GinRequireAuth(gate))
	authHandler.RegisterProtectedRoutes(protected)

	// ----------------------------
	// Cleanup
	// ----------------------------

	return router, func() error {
		infra.Pool.Close()
		return infra.Redis.Close()
	}, nil
}
