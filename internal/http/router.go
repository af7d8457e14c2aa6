package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/nurpe/checkbook-insights/internal/http/middleware"
)

type RouterOptions struct {
	Environment    string
	AllowedOrigins []string
	Log            zerolog.Logger
}

func NewRouter(handler *Handler, authMiddleware gin.HandlerFunc, opts RouterOptions) *gin.Engine {
	if opts.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(opts.Log))
	router.Use(middleware.Metrics())
	router.Use(cors.New(corsConfig(opts.AllowedOrigins)))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	handler.Register(router, authMiddleware)
	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Disposition", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	for _, origin := range origins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	}
	return cfg
}
