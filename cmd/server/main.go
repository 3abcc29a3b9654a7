package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/gofiber/contrib/otelfiber/v2"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/jackc/pgx/v5/stdlib"

	"feedback-service/internal/api"
	"feedback-service/internal/events"
	"feedback-service/internal/qrposter"
	"feedback-service/internal/repository"
	"feedback-service/internal/service"
	"feedback-service/internal/tracing"
	_ "feedback-service/migrations"
)

func main() {
	if err := godotenv.Load(".env.dev"); err != nil {
		fmt.Println("No .env.dev file found, reading from environment variables provided by Docker")
	}

	api.SetupGlobalHandler("feedback-service")

	shutdownTracer, err := tracing.InitTracerProvider("feedback-service")
	if err != nil {
		log.Fatalf("Failed to initialize OpenTelemetry: %v", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Printf("Error shutting down tracer provider: %v", err)
		}
	}()

	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		handleMigrations()
		return
	}

	db := connectDB()
	defer db.Close()

	natsURL := os.Getenv("NATS_URL")
	if natsURL == "" {
		natsURL = "nats://localhost:4222"
	}
	feedbackPublisher, err := events.NewNatsPublisher(natsURL)
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}
	log.Println("Successfully connected to NATS.")

	siteRepo := repository.NewPostgresSiteRepository(db)
	canteenRepo := repository.NewPostgresCanteenRepository(db)
	questionRepo := repository.NewPostgresQuestionRepository(db)
	feedbackRepo := repository.NewPostgresFeedbackRepository(db)
	userRepo := repository.NewPostgresUserRepository(db)
	tokenRepo := repository.NewPostgresTokenRepository(db)
	deviceTokenRepo := repository.NewPostgresDeviceTokenRepository(db)

	bootstrapAdmin := service.BootstrapAdminConfig{
		Username:     os.Getenv("BOOTSTRAP_ADMIN_USERNAME"),
		Password:     os.Getenv("BOOTSTRAP_ADMIN_PASSWORD"),
		SiteLocation: os.Getenv("BOOTSTRAP_ADMIN_SITE"),
	}
	if _, err := service.EnsureBootstrapAdmin(context.Background(), siteRepo, userRepo, bootstrapAdmin); err != nil {
		log.Fatalf("Failed to seed bootstrap admin: %v", err)
	}

	authService := service.NewAuthService(userRepo, tokenRepo)
	directoryService := service.NewDirectoryService(siteRepo, canteenRepo)
	questionService := service.NewQuestionService(questionRepo, siteRepo)
	feedbackService := service.NewFeedbackService(feedbackRepo, questionRepo, canteenRepo, feedbackPublisher)
	statsService := service.NewStatsService(feedbackRepo, questionRepo, siteRepo)
	userService := service.NewUserService(userRepo)
	deviceTokenService := service.NewDeviceTokenService(deviceTokenRepo)

	hub := events.NewLiveStatsHub(func(ctx context.Context) (interface{}, error) {
		return statsService.Snapshot(ctx)
	})
	if err := hub.Listen(natsURL); err != nil {
		log.Printf("WARNING: Failed to start live stats hub: %v", err)
		// Continue running even if the subscriber fails, NATS may not be ready
	}
	defer hub.Close()

	posterStore, err := qrposter.NewStore()
	if err != nil {
		log.Fatalf("Failed to initialize QR poster store: %v", err)
	}

	authHandler := api.NewAuthHandler(authService)
	siteHandler := api.NewSiteHandler(directoryService)
	questionHandler := api.NewQuestionHandler(questionService)
	feedbackHandler := api.NewFeedbackHandler(feedbackService)
	statsHandler := api.NewStatsHandler(statsService, hub)
	userHandler := api.NewUserHandler(userService, deviceTokenService)
	posterHandler := api.NewPosterHandler(directoryService, posterStore)

	app := fiber.New()
	app.Use(otelfiber.Middleware())
	app.Use(api.PrometheusMiddleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": "feedback-service"})
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	v1 := app.Group("/v1")

	authRoutes := v1.Group("/auth")
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Post("/refresh", authHandler.Refresh)
	authRoutes.Post("/logout", authHandler.Logout)

	v1.Get("/users/me", api.AuthMiddleware(), authHandler.Me)

	v1.Get("/sites", siteHandler.ListSites)
	v1.Get("/canteens", siteHandler.ListCanteens)
	v1.Get("/questions", questionHandler.ListQuestions)
	v1.Post("/feedback", api.OptionalAuthMiddleware(), feedbackHandler.SubmitFeedback)

	adminRoutes := v1.Group("/admin")
	adminRoutes.Use(api.AuthMiddleware(), api.AdminOnly())

	adminRoutes.Post("/sites", siteHandler.CreateSite)
	adminRoutes.Put("/sites/:id", siteHandler.UpdateSite)
	adminRoutes.Delete("/sites/:id", siteHandler.DeleteSite)
	adminRoutes.Post("/sites/:id/qr-poster", posterHandler.CreateQRPoster)

	adminRoutes.Post("/canteens", siteHandler.AddCanteen)
	adminRoutes.Delete("/canteens/:id", siteHandler.RemoveCanteen)

	adminRoutes.Post("/questions", questionHandler.CreateQuestion)
	adminRoutes.Put("/questions/:id", questionHandler.UpdateQuestion)
	adminRoutes.Delete("/questions/:id", questionHandler.DeleteQuestion)

	adminRoutes.Get("/users", userHandler.ListUsers)
	adminRoutes.Put("/users/:id", userHandler.UpdateUser)
	adminRoutes.Delete("/users/:id", userHandler.DeleteUser)
	adminRoutes.Post("/device-token", userHandler.RegisterDeviceToken)

	adminRoutes.Get("/feedback", feedbackHandler.ListFeedback)

	adminRoutes.Get("/stats/questions", statsHandler.QuestionStats)
	adminRoutes.Get("/stats/sites", statsHandler.SiteStats)
	adminRoutes.Get("/stats/chart", statsHandler.QuestionChart)
	adminRoutes.Get("/stats/chart/sites", statsHandler.SiteChart)

	adminRoutes.Use("/stats/live", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	adminRoutes.Get("/stats/live", statsHandler.LiveStats())

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8001"
	}

	log.Printf("Listening feedback-service on port %s", port)
	log.Fatal(app.Listen(":" + port))
}

func connectDB() *sqlx.DB {
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbName := os.Getenv("DB_NAME")

	dbURL := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		dbUser, dbPassword, dbHost, dbPort, dbName,
	)

	db, err := sqlx.Connect("pgx", dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Successfully connected to the database.")
	return db
}

func handleMigrations() {
	fmt.Println("Running database migrations...")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbName := os.Getenv("DB_NAME")

	dbURL := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		dbUser, dbPassword, dbHost, dbPort, dbName,
	)

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		log.Fatalf("failed to connect to database for migration: %v", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("failed to set goose dialect: %v", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		log.Fatalf("goose: failed to run migrations: %v", err)
	}

	fmt.Println("Migrations applied successfully!")
}
