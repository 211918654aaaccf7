package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"farmniti/services"

	"github.com/gin-gonic/gin"
)

// DiagnoseCropRequest describes the crop and observed symptoms
type DiagnoseCropRequest struct {
	Crop     string `json:"crop" binding:"required"`
	Symptoms string `json:"symptoms" binding:"required"`
}

// DiagnoseCrop returns a structured advisory for the reported symptoms
func DiagnoseCrop(c *gin.Context) {
	var req DiagnoseCropRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	diagnosis, err := services.DiagnoseCrop(ctx, req.Crop, req.Symptoms)
	if err != nil {
		log.Printf("Crop diagnosis failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to generate diagnosis"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "diagnosis": diagnosis})
}
