package config

import (
	"StyleSnap-Backend/internal/api/handlers"
	"StyleSnap-Backend/internal/api/routes"
	"StyleSnap-Backend/internal/middleware"
	"StyleSnap-Backend/internal/utils"
	applogger "StyleSnap-Backend/internal/utils/logger"
	"StyleSnap-Backend/internal/utils/storage"
	"StyleSnap-Backend/pkg/currency"
	"StyleSnap-Backend/pkg/fashion"
	"StyleSnap-Backend/pkg/gemini"
	"StyleSnap-Backend/pkg/jwt"
	"StyleSnap-Backend/pkg/receipt"
	"StyleSnap-Backend/pkg/user"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	zapLogger := applogger.Get()

	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
		BodyLimit:         20 * 1024 * 1024,
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
		TimeZone:   "Asia/Kuala_Lumpur",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()

	// Repository
	userRepository := user.NewUserRepository(db)
	receiptRepository := receipt.NewReceiptRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	geminiService := gemini.NewGeminiService(zapLogger)
	currencyService := currency.NewCurrencyService(zapLogger)
	userService := user.NewUserService(userRepository, jwtService, zapLogger)
	fashionService := fashion.NewFashionService(geminiService, zapLogger)
	receiptService := receipt.NewReceiptService(receiptRepository, s3, geminiService, currencyService, zapLogger)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	fashionHandler := handlers.NewFashionHandler(fashionService, validator)
	receiptHandler := handlers.NewReceiptHandler(receiptService, validator)

	// routes
	routesConfig := routes.Config{
		App:            app,
		UserHandler:    userHandler,
		FashionHandler: fashionHandler,
		ReceiptHandler: receiptHandler,
		Middleware:     middlewares,
		JWTService:     jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
