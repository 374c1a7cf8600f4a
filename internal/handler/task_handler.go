package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/situgas/internal/domain"
	"github.com/KasumiMercury/situgas/internal/service/catalog"
)

type TaskHandler struct {
	taskService     *catalog.TaskService
	reminderService *catalog.ReminderService
}

func NewTaskHandler(taskService *catalog.TaskService, reminderService *catalog.ReminderService) *TaskHandler {
	return &TaskHandler{
		taskService:     taskService,
		reminderService: reminderService,
	}
}

// taskRequest serves create and update. On update, an empty priority_code
// clears the priority while an absent one leaves it alone.
type taskRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	Deadline     *string `json:"deadline"`
	StatusCode   *string `json:"status_code"`
	PriorityCode *string `json:"priority_code"`
}

type reminderRequest struct {
	RemindAt *string `json:"remind_at"`
	Sent     *bool   `json:"sent"`
}

func (h *TaskHandler) Show(c *gin.Context) {
	task, err := h.taskService.Get(c.Request.Context(), currentUserID(c), c.Param("taskID"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, task)
}

func (h *TaskHandler) Update(c *gin.Context) {
	var req taskRequest
	if !bindJSON(c, &req) {
		return
	}

	update := domain.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Deadline != nil {
		deadline, ok := parseTime(*req.Deadline)
		if !ok {
			respondError(c, http.StatusBadRequest, "validation_error", "deadline must be a valid date time")
			return
		}
		update.Deadline = &deadline
	}
	if req.StatusCode != nil {
		code := domain.StatusCode(*req.StatusCode)
		update.StatusCode = &code
	}
	if req.PriorityCode != nil {
		if *req.PriorityCode == "" {
			update.ClearPriority = true
		} else {
			code := domain.PriorityCode(*req.PriorityCode)
			update.PriorityCode = &code
		}
	}

	task, err := h.taskService.Update(c.Request.Context(), actorFrom(c), c.Param("taskID"), update)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, task)
}

func (h *TaskHandler) Delete(c *gin.Context) {
	if err := h.taskService.Delete(c.Request.Context(), actorFrom(c), c.Param("taskID")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *TaskHandler) ListReminders(c *gin.Context) {
	reminders, err := h.reminderService.List(c.Request.Context(), currentUserID(c), c.Param("taskID"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, reminders)
}

func (h *TaskHandler) CreateReminder(c *gin.Context) {
	var req reminderRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.RemindAt == nil {
		respondError(c, http.StatusBadRequest, "validation_error", "remind_at is required")
		return
	}
	remindAt, ok := parseTime(*req.RemindAt)
	if !ok {
		respondError(c, http.StatusBadRequest, "validation_error", "remind_at must be a valid date time")
		return
	}

	reminder, err := h.reminderService.Create(c.Request.Context(), currentUserID(c), c.Param("taskID"), remindAt)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusCreated, reminder)
}

func (h *TaskHandler) UpdateReminder(c *gin.Context) {
	var req reminderRequest
	if !bindJSON(c, &req) {
		return
	}

	update := domain.ReminderUpdate{Sent: req.Sent}
	if req.RemindAt != nil {
		remindAt, ok := parseTime(*req.RemindAt)
		if !ok {
			respondError(c, http.StatusBadRequest, "validation_error", "remind_at must be a valid date time")
			return
		}
		update.RemindAt = &remindAt
	}

	reminder, err := h.reminderService.Update(c.Request.Context(), currentUserID(c), c.Param("reminderID"), update)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, reminder)
}

func (h *TaskHandler) DeleteReminder(c *gin.Context) {
	if err := h.reminderService.Delete(c.Request.Context(), currentUserID(c), c.Param("reminderID")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
