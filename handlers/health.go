package handlers

import (
	"net/http"

	"transit-delay-api/services"

	"github.com/gin-gonic/gin"
)

func Health(svc *services.PredictionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":       "UP",
			"model_loaded": svc.ModelLoaded(),
		})
	}
}
