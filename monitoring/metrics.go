package monitoring

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	loginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "login_attempts_total",
			Help: "Login attempts by outcome",
		},
		[]string{"outcome"},
	)

	rateLimited = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		},
		[]string{"scope"},
	)

	recordOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "record_operations_total",
			Help: "Data-access facade operations by collection, verb and outcome",
		},
		[]string{"collection", "operation", "outcome"},
	)

	submissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "public_submissions_total",
			Help: "Public form submissions accepted",
		},
		[]string{"kind"},
	)
)

// TrackLoginAttempt records a login outcome: success, failure, rate_limited
// or invalid.
func TrackLoginAttempt(outcome string) {
	loginAttempts.WithLabelValues(outcome).Inc()
}

func TrackRateLimited(scope string) {
	rateLimited.WithLabelValues(scope).Inc()
}

func TrackRecordOp(collection, operation, outcome string) {
	recordOperations.WithLabelValues(collection, operation, outcome).Inc()
}

func TrackSubmission(kind string) {
	submissions.WithLabelValues(kind).Inc()
}

// StartMetricsServer serves /metrics and /health on a dedicated operational
// port, separate from the application listener.
func StartMetricsServer(port string) {
	e := echo.New()

	e.GET("/metrics", func(c echo.Context) error {
		promhttp.Handler().ServeHTTP(c.Response(), c.Request())
		return nil
	})
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
	})

	server := &http.Server{
		Addr:    ":" + port,
		Handler: e,
	}

	go func() {
		slog.Info("metrics server listening", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("metrics server stopped", "error", err)
		}
	}()
}
