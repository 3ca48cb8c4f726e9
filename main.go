package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/samvriksha/samvriksha-api/config"
	"github.com/samvriksha/samvriksha-api/controllers"
	"github.com/samvriksha/samvriksha-api/initializers"
	"github.com/samvriksha/samvriksha-api/payment"
	"github.com/samvriksha/samvriksha-api/routes"
	"github.com/samvriksha/samvriksha-api/services"
	"github.com/samvriksha/samvriksha-api/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	db, err := initializers.ConnectToDB(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("database error: %v", err)
	}
	if err := initializers.SyncDatabase(db); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	mailer := utils.NewMailer(utils.MailerConfig{
		SMTPAddress: cfg.SMTPAddress,
		SMTPHost:    cfg.SMTPHost,
		FromEmail:   cfg.FromEmail,
		Password:    cfg.FromEmailPassword,
	})
	gateway := payment.NewRazorpayClient(cfg)

	cartService := services.NewCartService(db)
	checkoutService := services.NewCheckoutService(db, gateway, cfg.PaymentCurrency)

	authController := controllers.NewAuthController(db, mailer, cfg)
	productController := controllers.NewProductController(db, cfg.S3Bucket)
	cartController := controllers.NewCartController(cartService)
	orderController := controllers.NewOrderController(checkoutService)

	server := gin.Default()
	server.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "https://samvriksha.netlify.app"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.DefaultRoutes(server)
	routes.AuthRoutes(server, authController, cfg.JWTSecret)
	routes.ProductRoutes(server, productController, cfg.JWTSecret)
	routes.CartRoutes(server, cartController, cfg.JWTSecret)
	routes.OrderRoutes(server, orderController, cfg.JWTSecret)

	if err := server.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
