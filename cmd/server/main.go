package main

import (
	"context"
	"errors"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/resumify/resumify-api/internal/ats"
	"github.com/resumify/resumify-api/internal/auth"
	"github.com/resumify/resumify-api/internal/config"
	"github.com/resumify/resumify-api/internal/domain/fiber/handler"
	"github.com/resumify/resumify-api/internal/middleware"
	"github.com/resumify/resumify-api/internal/model"
	"github.com/resumify/resumify-api/internal/repository"
	"github.com/resumify/resumify-api/internal/service"
	"github.com/resumify/resumify-api/internal/usage"
	"github.com/resumify/resumify-api/internal/usecase"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	ctx := context.Background()
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()

	app := fiber.New(fiber.Config{
		AppName:   appConfig.Name,
		BodyLimit: 6 * 1024 * 1024,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError

			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}

			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}

			return ctx.Status(code).JSON(fiber.Map{"success": false, "message": message})
		},
	})
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: appConfig.AllowedOrigins,
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: !appConfig.IsProduction(),
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.IsProduction()
		},
	}))
	app.Use(healthcheck.New())
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(middleware.RateLimiter(100, 1*time.Minute))

	db := ConnectDB()

	userRepo := repository.NewUserRepository(db)
	resumeRepo := repository.NewResumeRepository(db)

	var providers []service.TextGenerator
	var embedder service.Embedder
	gemini, err := service.NewGeminiService(ctx)
	if err != nil {
		log.Printf("Gemini disabled: %v", err)
	} else {
		providers = append(providers, gemini)
		embedder = gemini
	}
	if openRouter := service.NewOpenRouterService(); openRouter.Enabled() {
		providers = append(providers, openRouter)
	}
	if len(providers) == 0 {
		log.Println("Warning: no AI provider configured, AI endpoints will fail")
	}

	jwtConfig := config.LoadJWTConfig()
	tokens := auth.NewTokenService(jwtConfig.Secret, time.Duration(jwtConfig.ExpirationHours)*time.Hour)
	gate := usage.NewGate(userRepo, config.LoadUsageConfig().FreeLimit)
	scorer := ats.NewScorer(ats.DefaultDictionary())

	authUC := usecase.NewAuthUsecase(userRepo, tokens)
	resumeUC := usecase.NewResumeUsecase(resumeRepo, scorer, embedder)
	aiUC := usecase.NewAIUsecase(service.NewFallbackGenerator(providers...))

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads/resumes/"
	}

	authHandler := handler.NewAuthHandler(authUC, gate)
	api := app.Group("/api")
	// Public routes first: the private group's middleware covers every later /api route.
	authHandler.RegisterPublicRoutes(api)

	private := api.Group("", middleware.Auth(tokens), middleware.LoadUser(userRepo))
	metered := middleware.UsageGate(gate, time.Now)

	authHandler.RegisterRoutes(private)
	handler.NewResumeHandler(resumeUC).RegisterRoutes(private)
	handler.NewAIHandler(aiUC, resumeUC, uploadDir).RegisterRoutes(private, middleware.RateLimiter(10, time.Minute), metered)
	handler.NewRecruiterHandler(resumeUC).RegisterRoutes(private, middleware.RequirePlan(model.PlanB2B), metered)

	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			log.Printf("Active goroutines: %d", runtime.NumGoroutine())
			if gemini != nil {
				if errs, open := gemini.GetCircuitBreakerStatus(); open {
					log.Printf("Gemini circuit breaker open after %d consecutive errors", errs)
				}
			}
		}
	}()

	log.Println("Server running on ", appConfig.Port)
	if err := app.Listen(appConfig.Port); err != nil {
		log.Fatal(err)
	}
}

func ConnectDB() *gorm.DB {
	dbConfig := config.LoadDBConfig()
	appConfig := config.LoadAppConfig()

	db, err := gorm.Open(postgres.Open(dbConfig.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}
	pgDB, err := db.DB()
	if err != nil {
		log.Fatalf("Could not get database instance: %v", err)
	}
	if !appConfig.IsProduction() {
		pgDB.SetMaxIdleConns(5)
		pgDB.SetMaxOpenConns(10)
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		pgDB.SetMaxIdleConns(20)
		pgDB.SetMaxOpenConns(200)
		pgDB.SetConnMaxLifetime(time.Hour)
	}

	for _, ext := range []string{`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`, `CREATE EXTENSION IF NOT EXISTS vector`} {
		if err := db.Exec(ext).Error; err != nil {
			log.Fatalf("enable extension failed: %v", err)
		}
	}

	if err := db.AutoMigrate(&model.User{}, &model.Resume{}); err != nil {
		log.Fatal("migration failed: ", err)
	}
	return db
}
