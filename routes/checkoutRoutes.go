package routes

import (
	"github.com/bluecilantro/catering-api/controllers"
	"github.com/gin-gonic/gin"
)

func CheckoutRoutes(server *gin.Engine) {
	server.POST("/checkout", controllers.CreateCheckout)
	server.GET("/checkout/session", controllers.GetCheckoutSession)
}
