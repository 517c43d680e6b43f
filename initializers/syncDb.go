package initializers

import (
	"log"

	"github.com/bluecilantro/catering-api/models"
)

func SyncDatabase() {
	DB.AutoMigrate(
		&models.AdminUser{},
		&models.Setting{},
		&models.MenuCategory{},
		&models.MenuItem{},
		&models.MenuPackage{},
		&models.PackageTier{},
		&models.PackageCategory{},
		&models.PackageCategoryItem{},
		&models.PackageItem{},
		&models.PackageUpgrade{},
		&models.Order{},
		&models.OrderItem{},
	)
	log.Println("Database synced successfully.")
}
