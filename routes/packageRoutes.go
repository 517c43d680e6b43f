package routes

import (
	"github.com/bluecilantro/catering-api/controllers"
	"github.com/bluecilantro/catering-api/middlewares"
	"github.com/gin-gonic/gin"
)

func PackageRoutes(server *gin.Engine) {
	server.GET("/packages", controllers.GetPackages)
	server.GET("/packages/:id", controllers.GetPackage)

	admin := server.Group("/packages", middlewares.RequireAuth(), middlewares.RequireAdmin())
	{
		admin.POST("", controllers.CreatePackage)
		admin.PUT("/:id", controllers.UpdatePackage)
		admin.DELETE("/:id", controllers.DeletePackage)

		admin.POST("/:id/tiers", controllers.CreatePackageTier)
		admin.PUT("/:id/tiers/:tierId", controllers.UpdatePackageTier)
		admin.DELETE("/:id/tiers/:tierId", controllers.DeletePackageTier)

		admin.POST("/:id/categories", controllers.CreatePackageCategory)
		admin.PUT("/:id/categories/:categoryId", controllers.UpdatePackageCategory)
		admin.DELETE("/:id/categories/:categoryId", controllers.DeletePackageCategory)

		admin.POST("/:id/categories/:categoryId/items", controllers.CreatePackageCategoryItem)
		admin.PUT("/:id/categories/:categoryId/items/:itemId", controllers.UpdatePackageCategoryItem)
		admin.DELETE("/:id/categories/:categoryId/items/:itemId", controllers.DeletePackageCategoryItem)

		admin.POST("/:id/items", controllers.CreatePackageItem)
		admin.PUT("/:id/items/:itemId", controllers.UpdatePackageItem)
		admin.DELETE("/:id/items/:itemId", controllers.DeletePackageItem)

		admin.POST("/:id/upgrades", controllers.CreatePackageUpgrade)
		admin.PUT("/:id/upgrades/:upgradeId", controllers.UpdatePackageUpgrade)
		admin.DELETE("/:id/upgrades/:upgradeId", controllers.DeletePackageUpgrade)
	}
}
