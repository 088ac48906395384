package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/GigiaaaChen/synapse-tasks/internal/adapters/handler/http/middleware"
	"github.com/GigiaaaChen/synapse-tasks/internal/core/domain"
	"github.com/GigiaaaChen/synapse-tasks/internal/core/services"
	"github.com/gin-gonic/gin"
)

type GoalHandler struct {
	svc *services.GoalService
}

func NewGoalHandler(svc *services.GoalService) *GoalHandler {
	return &GoalHandler{svc: svc}
}

type createGoalRequest struct {
	Title         string `json:"title" binding:"required"`
	Category      string `json:"category"`
	Frequency     string `json:"frequency" binding:"required"`
	RepeatWeekday int    `json:"repeat_weekday"`
	EndDate       string `json:"end_date" binding:"required"`
}

func (h *GoalHandler) RegisterRoutes(router *gin.RouterGroup) {
	goals := router.Group("/goals")
	{
		goals.POST("", h.Create)
		goals.GET("", h.List)
		goals.DELETE("/:id", h.Delete)
		goals.GET("/:id/occurrences", h.ListOccurrences)
	}

	occurrences := router.Group("/occurrences")
	{
		occurrences.POST("/:id/complete", h.CompleteOccurrence)
		occurrences.POST("/:id/uncomplete", h.UncompleteOccurrence)
	}
}

func (h *GoalHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req createGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date format, expected YYYY-MM-DD"})
		return
	}

	goal, occurrences, err := h.svc.Create(c.Request.Context(), services.CreateGoalInput{
		UserID:        userID,
		Title:         req.Title,
		Category:      req.Category,
		Frequency:     req.Frequency,
		RepeatWeekday: req.RepeatWeekday,
		EndDate:       endDate,
	})
	if err != nil {
		if isGoalValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"goal":        goal,
		"occurrences": occurrences,
	})
}

func (h *GoalHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	goals, err := h.svc.ListByUserID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, goals)
}

func (h *GoalHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		if errors.Is(err, domain.ErrGoalNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "goal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *GoalHandler) ListOccurrences(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	occurrences, err := h.svc.ListOccurrences(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		if errors.Is(err, domain.ErrGoalNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "goal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, occurrences)
}

func (h *GoalHandler) CompleteOccurrence(c *gin.Context) {
	h.occurrenceTransition(c, h.svc.CompleteOccurrence)
}

func (h *GoalHandler) UncompleteOccurrence(c *gin.Context) {
	h.occurrenceTransition(c, h.svc.UncompleteOccurrence)
}

func (h *GoalHandler) occurrenceTransition(c *gin.Context, fn func(ctx context.Context, id, userID string) (*domain.GoalOccurrence, error)) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	occ, err := fn(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		if errors.Is(err, domain.ErrOccurrenceNotFound) || errors.Is(err, domain.ErrGoalNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "occurrence not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, occ)
}

func isGoalValidationError(err error) bool {
	return errors.Is(err, domain.ErrGoalTitleEmpty) ||
		errors.Is(err, domain.ErrTaskTitleTooLong) ||
		errors.Is(err, domain.ErrInvalidCategory) ||
		errors.Is(err, domain.ErrInvalidFrequency) ||
		errors.Is(err, domain.ErrInvalidWeekday) ||
		errors.Is(err, domain.ErrGoalEndDateZero)
}
