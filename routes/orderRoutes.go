package routes

import (
	"github.com/bluecilantro/catering-api/controllers"
	"github.com/bluecilantro/catering-api/middlewares"
	"github.com/gin-gonic/gin"
)

func OrderRoutes(server *gin.Engine) {
	server.POST("/order", controllers.CreateOrder)
	server.GET("/order/lookup", controllers.LookupOrder)

	admin := server.Group("/order", middlewares.RequireAuth(), middlewares.RequireAdmin())
	{
		admin.GET("", controllers.GetOrders)
		admin.GET("/active-count", controllers.GetActiveOrderCount)
		admin.GET("/:orderId", controllers.GetOrder)
		admin.PUT("/:orderId", controllers.UpdateOrderStatus)
		admin.DELETE("/:orderId", controllers.DeleteOrder)
	}
}
