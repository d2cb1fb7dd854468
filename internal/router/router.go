package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ignitefit/class-booking/internal/config"
	"github.com/ignitefit/class-booking/internal/handler"
	"github.com/ignitefit/class-booking/internal/middleware"
	"github.com/ignitefit/class-booking/internal/response"
	"github.com/rs/zerolog"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Class   *handler.ClassHandler
	Booking *handler.BookingHandler
	Event   *handler.EventHandler
	System  *handler.SystemHandler
}

// SetupRouter configures routes and middlewares. ctx bounds background work
// started by middlewares such as the rate limiter's cleanup loop.
func SetupRouter(ctx context.Context, handlers *Handlers, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()

	// Request ID first so recovery and access logs can reference it.
	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.AccessLog(log))
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Error().
			Interface("panic", recovered).
			Str("request_id", c.GetString(response.ContextKeyRequestID)).
			Msg("Recovered from panic")
		response.AbortFail(c, http.StatusInternalServerError, response.ErrInternal)
	}))

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(middleware.Brotli())

	var writeLimit gin.HandlerFunc = func(c *gin.Context) { c.Next() }
	if cfg.RateLimitPerMinute > 0 {
		writeLimit = middleware.NewRateLimiter(ctx, cfg.RateLimitPerMinute, time.Minute).Middleware()
	}

	router.GET("/health", handlers.System.Health)

	// ─── Classes ───────────────────────────────────────────────────────
	classes := router.Group("/classes")
	{
		classes.GET("", handlers.Class.ListClasses)
		classes.GET("/:id", handlers.Class.GetClass)
		classes.POST("", writeLimit, handlers.Class.CreateClasses)
	}

	// ─── Bookings ──────────────────────────────────────────────────────
	bookings := router.Group("/bookings")
	{
		bookings.GET("", middleware.NoStore(), handlers.Booking.ListBookings)
		bookings.POST("", writeLimit, handlers.Booking.CreateBooking)
	}

	// ─── Audit ─────────────────────────────────────────────────────────
	router.GET("/events", middleware.NoStore(), handlers.Event.ListEvents)

	router.NoRoute(func(c *gin.Context) {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	})

	return router
}
