package handlers

import (
	"context"
	"net/http"

	"learning-service/internal/models"
	"learning-service/internal/repository"

	"github.com/gin-gonic/gin"
)

type BadgeHandler struct {
	Repo *repository.BadgeRepository
}

func NewBadgeHandler(repo *repository.BadgeRepository) *BadgeHandler {
	return &BadgeHandler{Repo: repo}
}

// ListCatalog returns the non-secret badge catalog
func (h *BadgeHandler) ListCatalog(c *gin.Context) {
	badges, err := h.Repo.FindAll(context.Background(), false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"badges": badges, "count": len(badges)})
}

// CreateBadge adds a badge definition to the catalog
func (h *BadgeHandler) CreateBadge(c *gin.Context) {
	var badge models.Badge
	if err := c.ShouldBindJSON(&badge); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Repo.Create(context.Background(), &badge); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, badge)
}
