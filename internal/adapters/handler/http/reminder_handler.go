package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/GigiaaaChen/synapse-tasks/internal/adapters/handler/http/middleware"
	"github.com/GigiaaaChen/synapse-tasks/internal/core/domain"
	"github.com/GigiaaaChen/synapse-tasks/internal/core/services"
	"github.com/gin-gonic/gin"
)

type ReminderHandler struct {
	svc *services.ReminderService
}

func NewReminderHandler(svc *services.ReminderService) *ReminderHandler {
	return &ReminderHandler{svc: svc}
}

func (h *ReminderHandler) RegisterRoutes(router *gin.RouterGroup) {
	reminders := router.Group("/reminders")
	{
		reminders.GET("/due", h.Due)
		reminders.POST("/dispatch", h.Dispatch)
	}
}

// Due previews the eligible reminder set without recording delivery.
func (h *ReminderHandler) Due(c *gin.Context) {
	h.respond(c, h.svc.DueReminders)
}

// Dispatch records delivery and returns only the items whose dedup key was
// newly inserted. Calling it twice in the same period returns the items once.
func (h *ReminderHandler) Dispatch(c *gin.Context) {
	h.respond(c, h.svc.DispatchReminders)
}

func (h *ReminderHandler) respond(c *gin.Context, fn func(ctx context.Context, userID, periodType string) ([]domain.ReminderNotice, error)) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	periodType := c.DefaultQuery("period", domain.PeriodDaily)

	notices, err := fn(c.Request.Context(), userID, periodType)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPeriodType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"period":    periodType,
		"reminders": notices,
	})
}
