package cmd

import (
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/plugins/migratecmd"
	"github.com/redis/go-redis/v9"

	"club-portal/config"
	"club-portal/handlers"
	_ "club-portal/migrations"
	"club-portal/monitoring"
	"club-portal/notify"
	"club-portal/policy"
	"club-portal/security"
	"club-portal/store"
	"club-portal/utils"
)

func Start() error {
	app := pocketbase.New()

	cfg := config.LoadConfig()

	admin := security.NewAdminChecker(cfg.AdminEmails)

	var limiter security.Limiter
	var redisClient *redis.Client
	switch cfg.RateLimitBackend {
	case "redis":
		client, err := utils.NewRedisClient(cfg.RedisURL, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return err
		}
		defer client.Close()
		redisClient = client
		limiter = security.NewRedisLimiter(redisClient, cfg.RateLimitAttempts, cfg.RateLimitWindow)
	default:
		limiter = security.NewMemoryLimiter(cfg.RateLimitAttempts, cfg.RateLimitWindow)
	}

	notifier := notify.NewNotifier(cfg)

	st := store.New(app, admin)
	rosterCache := utils.NewSessionCache(cfg.RosterCacheTTL)

	authHandler := handlers.NewAuthHandler(app, limiter, admin)
	eventHandler := handlers.NewEventHandler(app, st)
	winnerHandler := handlers.NewWinnerHandler(app, st)
	submissionHandler := handlers.NewSubmissionHandler(app, st, notifier)
	teamHandler := handlers.NewTeamHandler(app, st, rosterCache)

	migratecmd.MustRegister(app, app.RootCmd, migratecmd.Config{
		Automigrate: true,
	})

	app.OnServe().BindFunc(func(e *core.ServeEvent) error {
		if err := policy.Sync(app, admin.Emails()); err != nil {
			return err
		}

		e.Router.BindFunc(security.SecureHeaders())

		// Public catalog
		e.Router.GET("/api/v1/events", eventHandler.List)
		e.Router.GET("/api/v1/events/{id}", eventHandler.Get)
		e.Router.GET("/api/v1/winners", winnerHandler.List)
		e.Router.GET("/api/v1/team", teamHandler.List)

		// Public submissions
		e.Router.POST("/api/v1/registrations", submissionHandler.Register)
		e.Router.POST("/api/v1/contact", submissionHandler.Contact)

		// Auth
		e.Router.POST("/api/v1/auth/login", authHandler.Login)
		e.Router.POST("/api/v1/auth/logout", authHandler.Logout)
		e.Router.GET("/api/v1/auth/session", authHandler.Session)

		// Admin surface
		adminGroup := e.Router.Group("/api/v1/admin")
		adminGroup.Bind(apis.RequireAuth())
		adminGroup.POST("/events", eventHandler.Create)
		adminGroup.POST("/events-with-winners", eventHandler.CreateWithWinners)
		adminGroup.PATCH("/events/{id}", eventHandler.Update)
		adminGroup.DELETE("/events/{id}", eventHandler.Delete)
		adminGroup.POST("/winners", winnerHandler.Create)
		adminGroup.PATCH("/winners/{id}", winnerHandler.Update)
		adminGroup.DELETE("/winners/{id}", winnerHandler.Delete)
		adminGroup.POST("/team", teamHandler.Create)
		adminGroup.PATCH("/team/{id}", teamHandler.Update)
		adminGroup.DELETE("/team/{id}", teamHandler.Delete)
		adminGroup.GET("/registrations", submissionHandler.ListRegistrations)
		adminGroup.GET("/messages", submissionHandler.ListMessages)
		adminGroup.GET("/stats", submissionHandler.Stats)

		// Dev-only tooling
		if cfg.Environment == "development" {
			e.Router.POST("/api/v1/dev/password-check", authHandler.PasswordCheck)
		}

		// Health check
		e.Router.GET("/health", func(e *core.RequestEvent) error {
			if redisClient != nil {
				if err := utils.RedisHealthCheck(redisClient); err != nil {
					return e.JSON(503, map[string]string{
						"status": "unhealthy",
						"error":  err.Error(),
					})
				}
			}
			return e.JSON(200, map[string]string{"status": "healthy"})
		})

		log.Println("Server routes registered")

		return e.Next()
	})

	if cfg.EnableMetrics {
		monitoring.StartMetricsServer(cfg.MetricsPort)
	}

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
	return nil
}
