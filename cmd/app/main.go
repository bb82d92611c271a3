package main

import (
	"StyleSnap-Backend/cmd/config"
	migration "StyleSnap-Backend/cmd/database/migrate"
	"StyleSnap-Backend/internal/utils"
	applogger "StyleSnap-Backend/internal/utils/logger"
	"log"
	"os"
)

func main() {
	utils.LoadConfig()
	defer applogger.Sync()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if err := migration.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	app, err := config.NewApp(db)
	if err != nil {
		log.Fatalf("failed to configure app: %v", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
