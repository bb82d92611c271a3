package routes

import (
	"StyleSnap-Backend/internal/api/handlers"
	"StyleSnap-Backend/internal/middleware"
	"StyleSnap-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App            *fiber.App
	UserHandler    handlers.UserHandler
	FashionHandler handlers.FashionHandler
	ReceiptHandler handlers.ReceiptHandler
	Middleware     middleware.Middleware
	JWTService     jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Fashion()
	c.Receipts()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Post("/send_verify", c.UserHandler.SendVerificationEmail)
		user.Get("/verify", c.UserHandler.VerifyEmail)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
	}
}

func (c *Config) Fashion() {
	fashion := c.App.Group("/api/v1/fashion")
	fashion.Post("/recommendations", c.FashionHandler.GetRecommendations)
}

func (c *Config) Receipts() {
	receipts := c.App.Group("/api/v1/receipts", c.Middleware.AuthMiddleware(c.JWTService))
	receipts.Post("", c.ReceiptHandler.ProcessReceipt)
	receipts.Get("", c.ReceiptHandler.GetReceipts)
	receipts.Get("/:id", c.ReceiptHandler.GetReceiptByID)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
