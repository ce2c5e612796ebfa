package main

import (
	"Pantrii-Backend/cmd/config"
	migration "Pantrii-Backend/cmd/database/migrate"
	"Pantrii-Backend/internal/utils"
	"log"

	"go.uber.org/zap"
)

func main() {
	utils.LoadConfig()
	if err := utils.InitLogger(utils.GetConfig("LOG_LEVEL")); err != nil {
		log.Fatalf("error initializing logger: %v", err)
	}
	defer utils.SyncLogger()

	db, err := config.ConnectDB()
	if err != nil {
		utils.LogFatal("failed to connect database", zap.Error(err))
	}

	if err := migration.Migrate(db); err != nil {
		utils.LogFatal("failed to migrate database", zap.Error(err))
	}

	app, err := config.NewApp(db)
	if err != nil {
		utils.LogFatal("failed to build app", zap.Error(err))
	}

	port := utils.GetConfig("APP_PORT")
	utils.LogInfo("server starting", zap.String("port", port))
	if err := app.Listen(":" + port); err != nil {
		utils.LogFatal("server stopped", zap.Error(err))
	}
}
