package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ignitefit/class-booking/internal/config"
	"github.com/ignitefit/class-booking/internal/response"
	"github.com/ignitefit/class-booking/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const pingTimeout = 2 * time.Second

// SystemHandler reports process health and the state of optional dependencies.
type SystemHandler struct {
	bookingService *service.BookingService
	rdb            *redis.Client
	pool           *pgxpool.Pool
	startTime      time.Time
	log            zerolog.Logger
}

// NewSystemHandler creates a SystemHandler. rdb and pool may be nil when the
// audit trail is disabled.
func NewSystemHandler(bookingService *service.BookingService, rdb *redis.Client, pool *pgxpool.Pool, log zerolog.Logger) *SystemHandler {
	return &SystemHandler{
		bookingService: bookingService,
		rdb:            rdb,
		pool:           pool,
		startTime:      time.Now(),
		log:            log.With().Str("component", "system_handler").Logger(),
	}
}

type dependencyStatus struct {
	Status     string `json:"status"`
	Error      string `json:"error,omitempty"`
	QueueDepth *int64 `json:"queue_depth,omitempty"`
}

type healthReport struct {
	Status       string                      `json:"status"`
	Uptime       string                      `json:"uptime"`
	Goroutines   int                         `json:"goroutines"`
	GoVersion    string                      `json:"go_version"`
	Store        service.Stats               `json:"store"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

// Health godoc
// GET /health
// Always 200 while the process serves requests; a failing dependency shows up
// as status "degraded" since bookings keep working without the audit trail.
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
	defer cancel()

	report := healthReport{
		Status:       "ok",
		Uptime:       time.Since(h.startTime).Round(time.Second).String(),
		Goroutines:   runtime.NumGoroutine(),
		GoVersion:    runtime.Version(),
		Store:        h.bookingService.Stats(),
		Dependencies: map[string]dependencyStatus{},
	}

	if h.rdb != nil {
		dep := dependencyStatus{Status: "ok"}
		if err := h.rdb.Ping(ctx).Err(); err != nil {
			dep = dependencyStatus{Status: "down", Error: err.Error()}
		} else if n, err := h.rdb.LLen(ctx, config.WorkerKey.BookingEventsQueue).Result(); err == nil {
			dep.QueueDepth = &n
		}
		report.Dependencies["redis"] = dep
	}

	if h.pool != nil {
		dep := dependencyStatus{Status: "ok"}
		if err := h.pool.Ping(ctx); err != nil {
			dep = dependencyStatus{Status: "down", Error: err.Error()}
		}
		report.Dependencies["postgres"] = dep
	}

	for name, dep := range report.Dependencies {
		if dep.Status != "ok" {
			report.Status = "degraded"
			h.log.Warn().Str("dependency", name).Str("error", dep.Error).Msg("Dependency unhealthy")
		}
	}

	response.Success(c, http.StatusOK, report)
}
