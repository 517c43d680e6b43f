package routes

import (
	"github.com/bluecilantro/catering-api/controllers"
	"github.com/gin-gonic/gin"
)

func WebhookRoutes(server *gin.Engine) {
	server.POST("/webhooks/stripe", controllers.HandleStripeWebhook)
}
