package routes

import (
	"github.com/bluecilantro/catering-api/controllers"
	"github.com/bluecilantro/catering-api/middlewares"
	"github.com/gin-gonic/gin"
)

func MenuRoutes(server *gin.Engine) {
	server.GET("/menu/categories", controllers.GetMenuCategories)
	server.GET("/menu/items", controllers.GetMenuItems)

	admin := server.Group("/menu", middlewares.RequireAuth(), middlewares.RequireAdmin())
	{
		admin.POST("/categories", controllers.CreateMenuCategory)
		admin.PUT("/categories/:id", controllers.UpdateMenuCategory)
		admin.DELETE("/categories/:id", controllers.DeleteMenuCategory)
		admin.POST("/items", controllers.CreateMenuItem)
		admin.PUT("/items/:id", controllers.UpdateMenuItem)
		admin.DELETE("/items/:id", controllers.DeleteMenuItem)
		admin.POST("/item-images", controllers.UploadMenuItemImages)
	}
}
