package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/situgas/internal/service/notify"
)

type NotificationHandler struct {
	notifyService *notify.Service
	clock         func() time.Time
}

func NewNotificationHandler(notifyService *notify.Service) *NotificationHandler {
	return &NotificationHandler{
		notifyService: notifyService,
		clock:         time.Now,
	}
}

// touchSession marks the user as active for the scheduler. A failed refresh
// does not fail the request.
func (h *NotificationHandler) touchSession(c *gin.Context, now time.Time) {
	ctx := c.Request.Context()
	userID := currentUserID(c)
	if err := h.notifyService.StartSession(ctx, userID, now); err != nil {
		slog.WarnContext(ctx, "failed to refresh reminder session",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}
}

func (h *NotificationHandler) List(c *gin.Context) {
	h.touchSession(c, h.clock())

	active, err := h.notifyService.Active(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, active)
}

// Check polls right away, the way the app does when it opens, and keeps
// the session alive for the scheduler.
func (h *NotificationHandler) Check(c *gin.Context) {
	ctx := c.Request.Context()
	userID := currentUserID(c)
	now := h.clock()

	h.touchSession(c, now)

	result, err := h.notifyService.Poll(ctx, userID, now)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, result)
}

func (h *NotificationHandler) Dismiss(c *gin.Context) {
	h.touchSession(c, h.clock())

	if err := h.notifyService.Dismiss(c.Request.Context(), currentUserID(c), c.Param("notificationID")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *NotificationHandler) ClearAll(c *gin.Context) {
	h.touchSession(c, h.clock())

	cleared, err := h.notifyService.ClearAll(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"cleared": cleared})
}

func (h *NotificationHandler) StartSession(c *gin.Context) {
	if err := h.notifyService.StartSession(c.Request.Context(), currentUserID(c), h.clock()); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *NotificationHandler) EndSession(c *gin.Context) {
	if err := h.notifyService.EndSession(c.Request.Context(), currentUserID(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
