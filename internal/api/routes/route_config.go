package routes

import (
	"RecipeBook/internal/api/handlers"
	"RecipeBook/internal/middleware"
	"RecipeBook/pkg/jwt"
	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App           *fiber.App
	BrowseHandler handlers.BrowseHandler
	ReviewHandler handlers.ReviewHandler
	UserHandler   handlers.UserHandler
	Middleware    middleware.Middleware
	JWTService    jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Recipes()
	c.Favourites()
	c.Reviews()
	c.User()
	c.GuestRoute()
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/v1/recipes", c.Middleware.OptionalAuthMiddleware(c.JWTService))
	// browsing is open to everyone, a token only marks favourites
	{
		recipes.Get("", c.BrowseHandler.GetRecipes)
		recipes.Get("/featured", c.BrowseHandler.GetFeaturedRecipes)
		recipes.Get("/:id", c.BrowseHandler.GetRecipeDetail)
		recipes.Get("/:id/reviews", c.ReviewHandler.GetReviews)
	}
}

func (c *Config) Favourites() {
	favourites := c.App.Group("/api/v1/favourites", c.Middleware.AuthMiddleware(c.JWTService))
	{
		favourites.Get("", c.BrowseHandler.GetFavourites)
		favourites.Post("/:id", c.BrowseHandler.ToggleFavourite)
	}
}

func (c *Config) Reviews() {
	reviews := c.App.Group("/api/v1/reviews", c.Middleware.AuthMiddleware(c.JWTService))
	{
		reviews.Post("", c.ReviewHandler.AddReview)
		reviews.Delete("/:id", c.ReviewHandler.DeleteReview)
	}
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Post("/forget", c.UserHandler.ForgotPassword)
		user.Post("/reset", c.UserHandler.ResetPassword)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
		user.Patch("/profile-picture", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.UpdateProfilePicture)
	}
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
