package main

import (
	"time"

	"github.com/bluecilantro/catering-api/config"
	"github.com/bluecilantro/catering-api/initializers"
	"github.com/bluecilantro/catering-api/routes"
	"github.com/bluecilantro/catering-api/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var cfg *config.Config

func init() {
	initializers.LoadEnv()
	cfg = config.Load()
	initializers.ConnectToDB()
	initializers.SyncDatabase()
	services.Setup(cfg, initializers.DB)
}

func main() {
	server := gin.Default()
	server.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", cfg.AppURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Stripe-Signature"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	routes.DefaultRoutes(server)
	routes.AuthRoutes(server)
	routes.MenuRoutes(server)
	routes.PackageRoutes(server)
	routes.CheckoutRoutes(server)
	routes.WebhookRoutes(server)
	routes.OrderRoutes(server)
	routes.SettingsRoutes(server)
	server.Run(":" + cfg.ServerPort)
}
