package config

import (
	"RecipeBook/internal/api/handlers"
	"RecipeBook/internal/api/routes"
	"RecipeBook/internal/middleware"
	"RecipeBook/internal/utils"
	"RecipeBook/internal/utils/storage"
	"RecipeBook/pkg/browse"
	"RecipeBook/pkg/jwt"
	"RecipeBook/pkg/repository"
	"RecipeBook/pkg/review"
	"RecipeBook/pkg/user"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

// NewApp wires the whole HTTP surface over the given repository backend.
func NewApp(repo repository.Repository) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3, err := storage.NewAwsS3()
	if err != nil {
		return nil, err
	}

	// Service
	jwtService := jwt.NewJWTService()
	browseService := browse.NewBrowseService(repo)
	reviewService := review.NewReviewService(repo)
	userService := user.NewUserService(repo, user.NewBcryptHasher(), jwtService, s3)

	// Handler
	browseHandler := handlers.NewBrowseHandler(browseService)
	reviewHandler := handlers.NewReviewHandler(reviewService, validator)
	userHandler := handlers.NewUserHandler(userService, validator)

	// routes
	routesConfig := routes.Config{
		App:           app,
		BrowseHandler: browseHandler,
		ReviewHandler: reviewHandler,
		UserHandler:   userHandler,
		Middleware:    middlewares,
		JWTService:    jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
