package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/GigiaaaChen/synapse-tasks/internal/adapters/handler/http/middleware"
	"github.com/GigiaaaChen/synapse-tasks/internal/core/domain"
	"github.com/GigiaaaChen/synapse-tasks/internal/core/services"
	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	svc        *services.TaskService
	sessionSvc *services.SessionService
}

func NewTaskHandler(svc *services.TaskService, sessionSvc *services.SessionService) *TaskHandler {
	return &TaskHandler{
		svc:        svc,
		sessionSvc: sessionSvc,
	}
}

type createTaskRequest struct {
	Title     string     `json:"title" binding:"required"`
	Category  string     `json:"category"`
	DueDate   *time.Time `json:"due_date"`
	IsGoal    bool       `json:"is_goal"`
	Frequency string     `json:"frequency"`
}

type updateTaskRequest struct {
	Title    string       `json:"title"`
	Category string       `json:"category"`
	DueDate  optionalTime `json:"due_date"`
	Progress *int         `json:"progress"`
}

// optionalTime tells an absent due_date apart from an explicit null, so a
// PUT can clear a due date as well as set one.
type optionalTime struct {
	set   bool
	value *time.Time
}

func (o *optionalTime) UnmarshalJSON(data []byte) error {
	o.set = true
	if bytes.Equal(data, []byte("null")) {
		o.value = nil
		return nil
	}
	return json.Unmarshal(data, &o.value)
}

type recordSessionRequest struct {
	StartedAt time.Time `json:"started_at" binding:"required"`
	EndedAt   time.Time `json:"ended_at" binding:"required"`
}

func (h *TaskHandler) RegisterRoutes(router *gin.RouterGroup) {
	tasks := router.Group("/tasks")
	{
		tasks.POST("", h.Create)
		tasks.GET("", h.List)
		tasks.PUT("/:id", h.Update)
		tasks.DELETE("/:id", h.Delete)
		tasks.POST("/:id/complete", h.Complete)
		tasks.POST("/:id/uncomplete", h.Uncomplete)
		tasks.POST("/:id/sessions", h.RecordSession)
		tasks.GET("/:id/sessions", h.ListSessions)
	}
}

func (h *TaskHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.svc.Create(c.Request.Context(), services.CreateTaskInput{
		UserID:    userID,
		Title:     req.Title,
		Category:  req.Category,
		DueDate:   req.DueDate,
		IsGoal:    req.IsGoal,
		Frequency: req.Frequency,
	})
	if err != nil {
		if isTaskValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusCreated, task)
}

func (h *TaskHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	list, err := h.svc.ListByUserID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *TaskHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.svc.Update(c.Request.Context(), services.UpdateTaskInput{
		ID:         c.Param("id"),
		UserID:     userID,
		Title:      req.Title,
		Category:   req.Category,
		DueDate:    req.DueDate.value,
		DueDateSet: req.DueDate.set,
		Progress:   req.Progress,
	})
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return
		}
		if isTaskValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	err := h.svc.Delete(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *TaskHandler) Complete(c *gin.Context) {
	h.transition(c, h.svc.Complete)
}

func (h *TaskHandler) Uncomplete(c *gin.Context) {
	h.transition(c, h.svc.Uncomplete)
}

func (h *TaskHandler) RecordSession(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req recordSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.sessionSvc.Record(c.Request.Context(), services.RecordSessionInput{
		UserID:    userID,
		TaskID:    c.Param("id"),
		StartedAt: req.StartedAt,
		EndedAt:   req.EndedAt,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTaskNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		case errors.Is(err, domain.ErrInvalidSessionSpan):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, session)
}

func (h *TaskHandler) ListSessions(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	sessions, err := h.sessionSvc.ListByTaskID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, sessions)
}

func (h *TaskHandler) transition(c *gin.Context, fn func(ctx context.Context, id, userID string) (*domain.Task, error)) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	task, err := fn(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, task)
}

func isTaskValidationError(err error) bool {
	return errors.Is(err, domain.ErrTaskTitleEmpty) ||
		errors.Is(err, domain.ErrTaskTitleTooLong) ||
		errors.Is(err, domain.ErrInvalidCategory) ||
		errors.Is(err, domain.ErrInvalidProgress) ||
		errors.Is(err, domain.ErrInvalidFrequency) ||
		errors.Is(err, domain.ErrGoalTaskHasDueDate) ||
		errors.Is(err, domain.ErrGoalTaskNeedsFreq)
}
