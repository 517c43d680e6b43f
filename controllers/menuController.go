package controllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/bluecilantro/catering-api/initializers"
	"github.com/bluecilantro/catering-api/models"
	"github.com/bluecilantro/catering-api/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func GetMenuCategories(ctx *gin.Context) {
	var categories []models.MenuCategory
	result := initializers.DB.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order asc")
		}).
		Order("display_order asc").
		Find(&categories)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to fetch categories", result.Error)
		return
	}

	ctx.JSON(http.StatusOK, categories)
}

func CreateMenuCategory(ctx *gin.Context) {
	var category models.MenuCategory
	if err := ctx.ShouldBindJSON(&category); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if category.DisplayOrder == 0 {
		category.DisplayOrder = nextDisplayOrder(&models.MenuCategory{}, "")
	}

	if err := initializers.DB.Create(&category).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create category", err)
		return
	}

	ctx.JSON(http.StatusCreated, category)
}

func UpdateMenuCategory(ctx *gin.Context) {
	var category models.MenuCategory
	if err := initializers.DB.First(&category, "id = ?", ctx.Param("id")).Error; err != nil {
		respondWithError(ctx, http.StatusNotFound, "Category not found", nil)
		return
	}

	var body struct {
		Name         *string `json:"name"`
		DisplayOrder *int    `json:"displayOrder"`
		Active       *bool   `json:"active"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	updates := map[string]any{}
	if body.Name != nil {
		updates["name"] = *body.Name
	}
	if body.DisplayOrder != nil {
		updates["display_order"] = *body.DisplayOrder
	}
	if body.Active != nil {
		updates["active"] = *body.Active
	}

	if err := initializers.DB.Model(&category).Updates(updates).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update category", err)
		return
	}

	ctx.JSON(http.StatusOK, category)
}

func DeleteMenuCategory(ctx *gin.Context) {
	if err := initializers.DB.Delete(&models.MenuCategory{}, "id = ?", ctx.Param("id")).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete category", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Category deleted successfully."})
}

func GetMenuItems(ctx *gin.Context) {
	var items []models.MenuItem
	query := initializers.DB.Order("display_order asc")
	if ctx.Query("active") == "true" {
		query = query.Where("active = ?", true)
	}
	if result := query.Find(&items); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to fetch items", result.Error)
		return
	}

	ctx.JSON(http.StatusOK, items)
}

func CreateMenuItem(ctx *gin.Context) {
	var item models.MenuItem
	if err := ctx.ShouldBindJSON(&item); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if item.Name == "" || item.Price.IsZero() || item.CategoryID == "" {
		respondWithError(ctx, http.StatusBadRequest, "Name, price, and category are required", nil)
		return
	}

	if item.PricingType == "" {
		item.PricingType = models.PricingTypeFixed
	}
	item.DisplayOrder = nextDisplayOrder(&models.MenuItem{}, item.CategoryID)

	if err := initializers.DB.Create(&item).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create item", err)
		return
	}

	ctx.JSON(http.StatusCreated, item)
}

func UpdateMenuItem(ctx *gin.Context) {
	var item models.MenuItem
	if err := initializers.DB.First(&item, "id = ?", ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Item not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to fetch item", err)
		}
		return
	}

	var updated models.MenuItem
	if err := ctx.ShouldBindJSON(&updated); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	updated.ID = item.ID
	if err := initializers.DB.Model(&item).Updates(map[string]any{
		"category_id":   updated.CategoryID,
		"name":          updated.Name,
		"description":   updated.Description,
		"price":         updated.Price,
		"pricing_type":  updated.PricingType,
		"serves_count":  updated.ServesCount,
		"image_url":     updated.ImageURL,
		"dietary_tags":  updated.DietaryTags,
		"active":        updated.Active,
		"display_order": updated.DisplayOrder,
	}).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update item", err)
		return
	}

	ctx.JSON(http.StatusOK, item)
}

func DeleteMenuItem(ctx *gin.Context) {
	if err := initializers.DB.Delete(&models.MenuItem{}, "id = ?", ctx.Param("id")).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete item", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Item deleted successfully."})
}

// getAWSUploader returns a configured S3 upload manager
func getAWSUploader() (*manager.Uploader, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return manager.NewUploader(client), nil
}

func UploadMenuItemImages(ctx *gin.Context) {
	form, err := ctx.MultipartForm()
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid form data", err)
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		respondWithError(ctx, http.StatusBadRequest, "No files uploaded", nil)
		return
	}

	itemID := ctx.PostForm("itemId")
	if itemID == "" {
		respondWithError(ctx, http.StatusBadRequest, "Missing itemId", nil)
		return
	}

	var item models.MenuItem
	if err := initializers.DB.First(&item, "id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Item not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to validate item", err)
		}
		return
	}

	uploader, err := getAWSUploader()
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to configure uploader", err)
		return
	}

	bucket := services.Cfg.S3Bucket
	var urls []string
	for _, file := range files {
		src, err := file.Open()
		if err != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to read uploaded file", err)
			return
		}

		key := fmt.Sprintf("menu-items/%s/%d-%s", itemID, time.Now().UnixNano(), file.Filename)
		result, err := uploader.Upload(context.TODO(), &s3.PutObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(key),
			Body:   src,
		})
		src.Close()
		if err != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to upload image", err)
			return
		}
		urls = append(urls, result.Location)
	}

	// The latest upload becomes the item image.
	if err := initializers.DB.Model(&item).Update("image_url", urls[len(urls)-1]).Error; err != nil {
		log.Printf("Image uploaded but item %s not updated: %v", itemID, err)
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Images uploaded successfully", "urls": urls})
}

// nextDisplayOrder appends new records after the current maximum, optionally
// scoped to a category.
func nextDisplayOrder(model any, categoryID string) int {
	var max *int
	query := initializers.DB.Model(model).Select("MAX(display_order)")
	if categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}
	query.Scan(&max)
	if max == nil {
		return 1
	}
	return *max + 1
}
