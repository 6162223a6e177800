package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"learning-service/internal/selection"
	"learning-service/internal/service"

	"github.com/gin-gonic/gin"
)

type ProgressHandler struct {
	Service *service.ProgressService
}

func NewProgressHandler(s *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{Service: s}
}

// SubmitAnswer records a study-mode answer and returns its rewards
func (h *ProgressHandler) SubmitAnswer(c *gin.Context) {
	userID := c.GetHeader("X-User-ID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID is required"})
		return
	}

	var req struct {
		QuestionID       string `json:"question_id" binding:"required"`
		IsCorrect        *bool  `json:"is_correct" binding:"required"`
		TimeSpentSeconds int    `json:"time_spent_seconds"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "details": err.Error()})
		return
	}

	outcome, err := h.Service.SubmitAnswer(context.Background(), userID, req.QuestionID, *req.IsCorrect, req.TimeSpentSeconds)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update progress", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, outcome)
}

// NextQuestion serves the next question(s) from the adaptive selector
func (h *ProgressHandler) NextQuestion(c *gin.Context) {
	userID := c.GetHeader("X-User-ID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID is required"})
		return
	}

	count := 1
	if v := c.Query("count"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > 50 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "count must be between 1 and 50"})
			return
		}
		count = parsed
	}

	opts := selection.DefaultOptions()
	opts.Difficulty = c.Query("difficulty")
	opts.Category = c.Query("category")
	opts.PreferWeakCategories = c.Query("prefer_weak") == "true"
	if v := c.Query("max_new"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			opts.MaxNewQuestions = parsed
		}
	}
	if c.Query("include_reviews") == "false" {
		opts.IncludeReviews = false
	}

	questions, err := h.Service.NextQuestions(context.Background(), userID, opts, count)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to select questions", "details": err.Error()})
		return
	}
	if len(questions) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No questions available"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"questions": questions, "count": len(questions)})
}

// CompleteSession credits a finished study session
func (h *ProgressHandler) CompleteSession(c *gin.Context) {
	userID := c.GetHeader("X-User-ID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID is required"})
		return
	}

	var req struct {
		QuestionsCompleted     int       `json:"questions_completed" binding:"required"`
		CorrectAnswers         int       `json:"correct_answers"`
		SessionDurationMinutes int       `json:"session_duration_minutes" binding:"required"`
		StartTime              time.Time `json:"start_time"`
		EndTime                time.Time `json:"end_time"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "details": err.Error()})
		return
	}

	outcome, err := h.Service.CompleteSession(
		context.Background(),
		userID,
		req.QuestionsCompleted,
		req.CorrectAnswers,
		req.SessionDurationMinutes,
		req.StartTime,
		req.EndTime,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete session", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, outcome)
}

// GetProgress returns the full per-user aggregate
func (h *ProgressHandler) GetProgress(c *gin.Context) {
	userID := c.GetHeader("X-User-ID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID is required"})
		return
	}

	progress, err := h.Service.GetProgress(context.Background(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load progress", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, progress)
}

// ToggleBookmark flips a question bookmark
func (h *ProgressHandler) ToggleBookmark(c *gin.Context) {
	userID := c.GetHeader("X-User-ID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID is required"})
		return
	}

	questionID := c.Param("questionId")
	bookmarked, err := h.Service.ToggleBookmark(context.Background(), userID, questionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle bookmark", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"question_id": questionID, "is_bookmarked": bookmarked})
}
