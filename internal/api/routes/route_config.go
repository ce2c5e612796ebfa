package routes

import (
	"Pantrii-Backend/internal/api/handlers"
	"Pantrii-Backend/internal/middleware"
	"Pantrii-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App           *fiber.App
	UserHandler   handlers.UserHandler
	FoodHandler   handlers.FoodHandler
	RecipeHandler handlers.RecipeHandler
	FlavorHandler handlers.FlavorHandler
	MealHandler   handlers.MealHandler
	Middleware    middleware.Middleware
	JWTService    jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.User()
	c.FoodItems()
	c.Recipes()
	c.Flavors()
	c.Meals()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
	}
}

func (c *Config) FoodItems() {
	foodItems := c.App.Group("/api/v1/food-items", c.Middleware.AuthMiddleware(c.JWTService))
	foodItems.Get("/dashboard", c.FoodHandler.GetDashboardStats)
	foodItems.Get("/categories", c.FoodHandler.GetCategories)
	foodItems.Get("/export", c.FoodHandler.ExportPantry)
	foodItems.Post("/reminder", c.FoodHandler.SendExpiryReminder)

	foodItems.Post("", c.FoodHandler.AddFoodItem)
	foodItems.Get("", c.FoodHandler.GetFoodItems)
	foodItems.Get("/:id", c.FoodHandler.GetFoodItemDetails)
	foodItems.Put("/:id", c.FoodHandler.UpdateFoodItem)
	foodItems.Delete("/:id", c.FoodHandler.DeleteFoodItem)

	foodItems.Post("/image", c.FoodHandler.UploadFoodImage)
	foodItems.Post("/damaged", c.FoodHandler.MarkAsDamaged)
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/v1/recipes", c.Middleware.AuthMiddleware(c.JWTService))
	recipes.Get("/suggestions", c.RecipeHandler.GetSmartSuggestions)
	recipes.Post("/import", c.RecipeHandler.ImportRecipes)
	recipes.Get("/search", c.RecipeHandler.SearchRemoteRecipes)

	recipes.Get("/bookmarks", c.RecipeHandler.GetBookmarkedRecipes)
	recipes.Post("/bookmarks", c.RecipeHandler.BookmarkRecipe)
	recipes.Delete("/bookmarks/:id", c.RecipeHandler.RemoveBookmark)

	recipes.Get("/history", c.RecipeHandler.GetRecipeHistory)
	recipes.Post("/cooked", c.RecipeHandler.MarkAsCooked)

	recipes.Post("", c.RecipeHandler.CreateRecipe)
	recipes.Get("", c.RecipeHandler.ListRecipes)
	recipes.Get("/:id", c.RecipeHandler.GetRecipeDetail)
	recipes.Get("/:id/shopping-list", c.RecipeHandler.ExportShoppingList)
	recipes.Delete("/:id", c.RecipeHandler.DeleteRecipe)
}

func (c *Config) Flavors() {
	flavors := c.App.Group("/api/v1/flavors")
	flavors.Get("/categories", c.FlavorHandler.GetCategories)
	flavors.Post("/detect", c.FlavorHandler.DetectFlavors)

	auth := flavors.Group("", c.Middleware.AuthMiddleware(c.JWTService))
	auth.Get("/preferences", c.FlavorHandler.GetPreferences)
	auth.Put("/preferences", c.FlavorHandler.SetPreference)
	auth.Post("/combinations", c.FlavorHandler.TrackCombination)
	auth.Delete("/combinations", c.FlavorHandler.ResetCombinations)
	auth.Get("/combinations/:flavor", c.FlavorHandler.RecommendCombinations)
}

func (c *Config) Meals() {
	meals := c.App.Group("/api/v1/meals", c.Middleware.AuthMiddleware(c.JWTService))
	meals.Get("/plan", c.MealHandler.GetWeekPlan)
	meals.Post("/plan", c.MealHandler.AddPlanEntry)
	meals.Delete("/plan/:id", c.MealHandler.DeletePlanEntry)

	meals.Post("", c.MealHandler.LogMeal)
	meals.Get("", c.MealHandler.GetMeals)
	meals.Delete("/:id", c.MealHandler.DeleteMeal)
}
