package handlers

import (
	"context"
	"net/http"

	"learning-service/internal/service"

	"github.com/gin-gonic/gin"
)

type GamificationHandler struct {
	Service *service.GamificationService
}

func NewGamificationHandler(s *service.GamificationService) *GamificationHandler {
	return &GamificationHandler{Service: s}
}

// GetProfile returns the level/XP/streak summary
func (h *GamificationHandler) GetProfile(c *gin.Context) {
	userID := c.GetHeader("X-User-ID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID is required"})
		return
	}

	profile, err := h.Service.GetProfile(context.Background(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// ListBadges returns badges with earn state and progress
func (h *GamificationHandler) ListBadges(c *gin.Context) {
	userID := c.GetHeader("X-User-ID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID is required"})
		return
	}

	statuses, err := h.Service.ListBadges(context.Background(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load badges", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"badges": statuses, "count": len(statuses)})
}

// GetStreak returns streak details
func (h *GamificationHandler) GetStreak(c *gin.Context) {
	userID := c.GetHeader("X-User-ID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID is required"})
		return
	}

	streak, err := h.Service.GetStreak(context.Background(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load streak", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, streak)
}
