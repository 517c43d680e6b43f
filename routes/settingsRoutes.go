package routes

import (
	"github.com/bluecilantro/catering-api/controllers"
	"github.com/bluecilantro/catering-api/middlewares"
	"github.com/gin-gonic/gin"
)

func SettingsRoutes(server *gin.Engine) {
	server.GET("/settings", controllers.GetSettings)
	server.PUT("/settings", middlewares.RequireAuth(), middlewares.RequireAdmin(), controllers.UpdateSettings)
}
