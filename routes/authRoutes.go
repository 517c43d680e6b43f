package routes

import (
	"github.com/bluecilantro/catering-api/controllers"
	"github.com/gin-gonic/gin"
)

func AuthRoutes(server *gin.Engine) {
	auth := server.Group("/auth")
	{
		auth.POST("/check-email", controllers.CheckEmail)
		auth.POST("/setup-password", controllers.SetupPassword)
		auth.POST("/login", controllers.Login)
	}
}
