package config

import (
	"Pantrii-Backend/internal/api/handlers"
	"Pantrii-Backend/internal/api/routes"
	"Pantrii-Backend/internal/middleware"
	"Pantrii-Backend/internal/utils"
	"Pantrii-Backend/internal/utils/mailing"
	"Pantrii-Backend/internal/utils/storage"
	"Pantrii-Backend/pkg/flavor"
	"Pantrii-Backend/pkg/food"
	"Pantrii-Backend/pkg/jwt"
	"Pantrii-Backend/pkg/meal"
	"Pantrii-Backend/pkg/mealdb"
	"Pantrii-Backend/pkg/recipe"
	"Pantrii-Backend/pkg/user"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		AppName: "pantrii",
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// access log and limiter
	if err := os.MkdirAll("./logs", os.ModePerm); err != nil {
		return nil, fmt.Errorf("error creating logs directory: %w", err)
	}
	file, err := os.OpenFile(
		"./logs/access.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		return nil, fmt.Errorf("error opening access log: %w", err)
	}

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   utils.GetConfig("TIMEZONE"),
		Output:     file,
	}))
	app.Use(middlewares.RequestLogger())

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	mailer := mailing.NewMailer()
	mealdbClient := mealdb.NewClient(utils.GetConfig("MEALDB_BASE_URL"), mealdb.NewCacheFromConfig(context.Background()))

	// Repository
	userRepository := user.NewUserRepository(db)
	foodRepository := food.NewFoodRepository(db)
	flavorRepository := flavor.NewFlavorRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)
	mealRepository := meal.NewMealRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	foodService := food.NewFoodService(foodRepository, s3, mailer, userService)
	flavorService := flavor.NewFlavorService(flavorRepository)
	recipeService := recipe.NewRecipeService(recipeRepository, foodService, flavorService, mealdbClient)
	mealService := meal.NewMealService(mealRepository, flavorService, recipeRepository)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	foodHandler := handlers.NewFoodHandler(foodService, validator)
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator)
	flavorHandler := handlers.NewFlavorHandler(flavorService, validator)
	mealHandler := handlers.NewMealHandler(mealService, validator)

	// routes
	routesConfig := routes.Config{
		App:           app,
		UserHandler:   userHandler,
		FoodHandler:   foodHandler,
		RecipeHandler: recipeHandler,
		FlavorHandler: flavorHandler,
		MealHandler:   mealHandler,
		Middleware:    middlewares,
		JWTService:    jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
