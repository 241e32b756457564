package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/roster/internal/config"
	"github.com/stemsi/roster/internal/handler"
	"github.com/stemsi/roster/internal/metrics"
	"github.com/stemsi/roster/internal/middleware"
	"github.com/stemsi/roster/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Student *handler.StudentHandler
	WS      *handler.WSHandler
}

// SetupRouter configures the roster routes and global middlewares.
func SetupRouter(
	handlers *Handlers,
	cfg *config.Config,
	rec *metrics.Recorder,
	log zerolog.Logger,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", response.HeaderRequestID}
	corsConfig.ExposeHeaders = []string{response.HeaderRequestID}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.Brotli(middleware.BrotliConfig{
		Quality:   middleware.DefaultBrotliConfig.Quality,
		MinLength: cfg.BrotliMinLength,
	}))

	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(rec.Handler()))

	// ─── Roster form API ───────────────────────────────────────────────
	students := router.Group("/api/v1/students")
	students.Use(middleware.NoStore())
	{
		students.GET("", handlers.Student.ListStudents)

		mutations := students.Group("")
		if cfg.RateLimitPerMinute > 0 {
			mutations.Use(middleware.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute).Middleware())
		}
		mutations.POST("", handlers.Student.CreateStudent)
		mutations.POST("/delete", handlers.Student.DeleteSelected)
		mutations.POST("/reset", handlers.Student.ResetStudents)
		mutations.DELETE("/:id", handlers.Student.DeleteStudent)
	}

	// ─── Live table stream ─────────────────────────────────────────────
	router.GET("/ws/v1/students/stream", handlers.WS.RosterStream)

	return router
}
