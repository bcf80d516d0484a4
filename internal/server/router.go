package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/yungbote/prepplan-backend/internal/handlers"
)

type RouterConfig struct {
	ServiceName     string
	AllowOrigins    []string
	GenerateHandler *handlers.GenerateHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(otelgin.Middleware(cfg.ServiceName))

	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "X-Requested-With"},
		AllowCredentials: false,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	router.POST("/generate/routine", cfg.GenerateHandler.GenerateRoutine)
	router.POST("/generate/prep", cfg.GenerateHandler.GeneratePrep)
	router.POST("/reroll/:section", cfg.GenerateHandler.Reroll)

	return router
}
