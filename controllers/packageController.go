package controllers

import (
	"net/http"

	"github.com/bluecilantro/catering-api/initializers"
	"github.com/bluecilantro/catering-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func orderedPreload(activeOnly bool) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if activeOnly {
			db = db.Where("active = ?", true)
		}
		return db.Order("display_order asc")
	}
}

func packageQuery(activeOnly bool) *gorm.DB {
	query := initializers.DB.
		Preload("Tiers", orderedPreload(activeOnly)).
		Preload("Categories", orderedPreload(activeOnly)).
		Preload("Categories.Items", orderedPreload(activeOnly)).
		Preload("Items", orderedPreload(activeOnly)).
		Preload("Upgrades", orderedPreload(activeOnly))
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	return query
}

// GetPackages lists packages; active=true restricts every level to active
// records for the public storefront.
func GetPackages(ctx *gin.Context) {
	activeOnly := ctx.Query("active") == "true"

	var packages []models.MenuPackage
	if result := packageQuery(activeOnly).Order("display_order asc").Find(&packages); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to fetch packages", result.Error)
		return
	}

	ctx.JSON(http.StatusOK, packages)
}

func GetPackage(ctx *gin.Context) {
	var pkg models.MenuPackage
	if err := packageQuery(false).First(&pkg, "menu_packages.id = ?", ctx.Param("id")).Error; err != nil {
		respondWithError(ctx, http.StatusNotFound, "Package not found", nil)
		return
	}

	ctx.JSON(http.StatusOK, pkg)
}

func CreatePackage(ctx *gin.Context) {
	var pkg models.MenuPackage
	if err := ctx.ShouldBindJSON(&pkg); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if pkg.Name == "" || pkg.Type == "" {
		respondWithError(ctx, http.StatusBadRequest, "Name and type are required", nil)
		return
	}
	if pkg.Type != models.PackageTypeSelection && pkg.Type != models.PackageTypeQuantity && pkg.Type != models.PackageTypeFixed {
		respondWithError(ctx, http.StatusBadRequest, "Invalid package type", nil)
		return
	}

	pkg.DisplayOrder = nextDisplayOrder(&models.MenuPackage{}, "")

	if err := initializers.DB.Create(&pkg).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create package", err)
		return
	}

	ctx.JSON(http.StatusCreated, pkg)
}

func UpdatePackage(ctx *gin.Context) {
	var pkg models.MenuPackage
	if err := initializers.DB.First(&pkg, "id = ?", ctx.Param("id")).Error; err != nil {
		respondWithError(ctx, http.StatusNotFound, "Package not found", nil)
		return
	}

	var body models.MenuPackage
	if err := ctx.ShouldBindJSON(&body); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := initializers.DB.Model(&pkg).Updates(map[string]any{
		"name":        body.Name,
		"description": body.Description,
		"type":        body.Type,
		"image_url":   body.ImageURL,
		"badge":       body.Badge,
		"min_guests":  body.MinGuests,
		"active":      body.Active,
	}).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update package", err)
		return
	}

	ctx.JSON(http.StatusOK, pkg)
}

func DeletePackage(ctx *gin.Context) {
	if err := initializers.DB.Delete(&models.MenuPackage{}, "id = ?", ctx.Param("id")).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete package", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Package deleted successfully."})
}

// Tier, category, item and upgrade sub-resources share the same shape:
// create under the parent package, update by id, delete by id.

func CreatePackageTier(ctx *gin.Context) {
	var tier models.PackageTier
	if err := ctx.ShouldBindJSON(&tier); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	tier.PackageID = ctx.Param("id")
	if err := initializers.DB.Create(&tier).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create tier", err)
		return
	}

	ctx.JSON(http.StatusCreated, tier)
}

func UpdatePackageTier(ctx *gin.Context) {
	var tier models.PackageTier
	if err := initializers.DB.First(&tier, "id = ? AND package_id = ?", ctx.Param("tierId"), ctx.Param("id")).Error; err != nil {
		respondWithError(ctx, http.StatusNotFound, "Tier not found", nil)
		return
	}

	var body models.PackageTier
	if err := ctx.ShouldBindJSON(&body); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := initializers.DB.Model(&tier).Updates(map[string]any{
		"name":             body.Name,
		"description":      body.Description,
		"price_per_person": body.PricePerPerson,
		"min_guests":       body.MinGuests,
		"active":           body.Active,
		"display_order":    body.DisplayOrder,
	}).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update tier", err)
		return
	}

	ctx.JSON(http.StatusOK, tier)
}

func DeletePackageTier(ctx *gin.Context) {
	if err := initializers.DB.Delete(&models.PackageTier{}, "id = ? AND package_id = ?", ctx.Param("tierId"), ctx.Param("id")).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete tier", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Tier deleted successfully."})
}

func CreatePackageCategory(ctx *gin.Context) {
	var category models.PackageCategory
	if err := ctx.ShouldBindJSON(&category); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	category.PackageID = ctx.Param("id")
	if err := initializers.DB.Create(&category).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create category", err)
		return
	}

	ctx.JSON(http.StatusCreated, category)
}

func UpdatePackageCategory(ctx *gin.Context) {
	var category models.PackageCategory
	if err := initializers.DB.First(&category, "id = ? AND package_id = ?", ctx.Param("categoryId"), ctx.Param("id")).Error; err != nil {
		respondWithError(ctx, http.StatusNotFound, "Category not found", nil)
		return
	}

	var body models.PackageCategory
	if err := ctx.ShouldBindJSON(&body); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := initializers.DB.Model(&category).Updates(map[string]any{
		"name":           body.Name,
		"max_selections": body.MaxSelections,
		"active":         body.Active,
		"display_order":  body.DisplayOrder,
	}).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update category", err)
		return
	}

	ctx.JSON(http.StatusOK, category)
}

func DeletePackageCategory(ctx *gin.Context) {
	if err := initializers.DB.Delete(&models.PackageCategory{}, "id = ? AND package_id = ?", ctx.Param("categoryId"), ctx.Param("id")).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete category", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Category deleted successfully."})
}

func CreatePackageCategoryItem(ctx *gin.Context) {
	var item models.PackageCategoryItem
	if err := ctx.ShouldBindJSON(&item); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	item.CategoryID = ctx.Param("categoryId")
	if err := initializers.DB.Create(&item).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create item", err)
		return
	}

	ctx.JSON(http.StatusCreated, item)
}

func UpdatePackageCategoryItem(ctx *gin.Context) {
	var item models.PackageCategoryItem
	if err := initializers.DB.First(&item, "id = ? AND category_id = ?", ctx.Param("itemId"), ctx.Param("categoryId")).Error; err != nil {
		respondWithError(ctx, http.StatusNotFound, "Item not found", nil)
		return
	}

	var body models.PackageCategoryItem
	if err := ctx.ShouldBindJSON(&body); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := initializers.DB.Model(&item).Updates(map[string]any{
		"name":          body.Name,
		"description":   body.Description,
		"active":        body.Active,
		"display_order": body.DisplayOrder,
	}).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update item", err)
		return
	}

	ctx.JSON(http.StatusOK, item)
}

func DeletePackageCategoryItem(ctx *gin.Context) {
	if err := initializers.DB.Delete(&models.PackageCategoryItem{}, "id = ? AND category_id = ?", ctx.Param("itemId"), ctx.Param("categoryId")).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete item", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Item deleted successfully."})
}

func CreatePackageItem(ctx *gin.Context) {
	var item models.PackageItem
	if err := ctx.ShouldBindJSON(&item); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	item.PackageID = ctx.Param("id")
	if err := initializers.DB.Create(&item).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create item", err)
		return
	}

	ctx.JSON(http.StatusCreated, item)
}

func UpdatePackageItem(ctx *gin.Context) {
	var item models.PackageItem
	if err := initializers.DB.First(&item, "id = ? AND package_id = ?", ctx.Param("itemId"), ctx.Param("id")).Error; err != nil {
		respondWithError(ctx, http.StatusNotFound, "Item not found", nil)
		return
	}

	var body models.PackageItem
	if err := ctx.ShouldBindJSON(&body); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := initializers.DB.Model(&item).Updates(map[string]any{
		"name":          body.Name,
		"description":   body.Description,
		"price":         body.Price,
		"unit":          body.Unit,
		"active":        body.Active,
		"display_order": body.DisplayOrder,
	}).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update item", err)
		return
	}

	ctx.JSON(http.StatusOK, item)
}

func DeletePackageItem(ctx *gin.Context) {
	if err := initializers.DB.Delete(&models.PackageItem{}, "id = ? AND package_id = ?", ctx.Param("itemId"), ctx.Param("id")).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete item", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Item deleted successfully."})
}

func CreatePackageUpgrade(ctx *gin.Context) {
	var upgrade models.PackageUpgrade
	if err := ctx.ShouldBindJSON(&upgrade); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	upgrade.PackageID = ctx.Param("id")
	if err := initializers.DB.Create(&upgrade).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create upgrade", err)
		return
	}

	ctx.JSON(http.StatusCreated, upgrade)
}

func UpdatePackageUpgrade(ctx *gin.Context) {
	var upgrade models.PackageUpgrade
	if err := initializers.DB.First(&upgrade, "id = ? AND package_id = ?", ctx.Param("upgradeId"), ctx.Param("id")).Error; err != nil {
		respondWithError(ctx, http.StatusNotFound, "Upgrade not found", nil)
		return
	}

	var body models.PackageUpgrade
	if err := ctx.ShouldBindJSON(&body); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := initializers.DB.Model(&upgrade).Updates(map[string]any{
		"name":             body.Name,
		"description":      body.Description,
		"price_per_person": body.PricePerPerson,
		"active":           body.Active,
		"display_order":    body.DisplayOrder,
	}).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update upgrade", err)
		return
	}

	ctx.JSON(http.StatusOK, upgrade)
}

func DeletePackageUpgrade(ctx *gin.Context) {
	if err := initializers.DB.Delete(&models.PackageUpgrade{}, "id = ? AND package_id = ?", ctx.Param("upgradeId"), ctx.Param("id")).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete upgrade", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Upgrade deleted successfully."})
}
