package controllers

import (
	"log"
	"net/http"

	"github.com/bluecilantro/catering-api/initializers"
	"github.com/bluecilantro/catering-api/models"
	"github.com/bluecilantro/catering-api/services"
	"github.com/gin-gonic/gin"
)

func GetSettings(ctx *gin.Context) {
	var settings []models.Setting
	if result := initializers.DB.Find(&settings); result.Error != nil {
		log.Println(result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch settings")
		return
	}

	response := gin.H{}
	for _, setting := range settings {
		response[setting.Key] = setting.Value
	}

	ctx.JSON(http.StatusOK, response)
}

// UpdateSettings upserts each key in the request body.
func UpdateSettings(ctx *gin.Context) {
	var body map[string]string
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	for key, value := range body {
		if err := services.Settings.Upsert(key, value); err != nil {
			log.Printf("Failed to save setting %s: %v", key, err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to save settings")
			return
		}
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true})
}
