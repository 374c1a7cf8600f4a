package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/situgas/internal/domain"
	"github.com/KasumiMercury/situgas/internal/service/catalog"
)

type CourseHandler struct {
	courseService *catalog.CourseService
	taskService   *catalog.TaskService
}

func NewCourseHandler(courseService *catalog.CourseService, taskService *catalog.TaskService) *CourseHandler {
	return &CourseHandler{
		courseService: courseService,
		taskService:   taskService,
	}
}

type courseRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
}

func (h *CourseHandler) List(c *gin.Context) {
	courses, err := h.courseService.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, courses)
}

func (h *CourseHandler) Create(c *gin.Context) {
	var req courseRequest
	if !bindJSON(c, &req) {
		return
	}

	input := catalog.CreateCourseInput{
		Description: req.Description,
		Color:       req.Color,
	}
	if req.Title != nil {
		input.Title = *req.Title
	}

	course, err := h.courseService.Create(c.Request.Context(), actorFrom(c), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusCreated, course)
}

func (h *CourseHandler) Show(c *gin.Context) {
	course, err := h.courseService.Get(c.Request.Context(), currentUserID(c), c.Param("courseID"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, course)
}

func (h *CourseHandler) Update(c *gin.Context) {
	var req courseRequest
	if !bindJSON(c, &req) {
		return
	}

	course, err := h.courseService.Update(c.Request.Context(), actorFrom(c), c.Param("courseID"), domain.CourseUpdate{
		Title:       req.Title,
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, course)
}

func (h *CourseHandler) Delete(c *gin.Context) {
	if err := h.courseService.Delete(c.Request.Context(), actorFrom(c), c.Param("courseID")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CourseHandler) ListTasks(c *gin.Context) {
	tasks, err := h.taskService.ListByCourse(c.Request.Context(), currentUserID(c), c.Param("courseID"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, tasks)
}

func (h *CourseHandler) CreateTask(c *gin.Context) {
	var req taskRequest
	if !bindJSON(c, &req) {
		return
	}

	input := catalog.CreateTaskInput{
		Description: req.Description,
	}
	if req.Title != nil {
		input.Title = *req.Title
	}
	if req.StatusCode != nil {
		input.StatusCode = domain.StatusCode(*req.StatusCode)
	}
	if req.PriorityCode != nil && *req.PriorityCode != "" {
		code := domain.PriorityCode(*req.PriorityCode)
		input.PriorityCode = &code
	}
	if req.Deadline != nil {
		deadline, ok := parseTime(*req.Deadline)
		if !ok {
			respondError(c, http.StatusBadRequest, "validation_error", "deadline must be a valid date time")
			return
		}
		input.Deadline = deadline
	}

	task, err := h.taskService.Create(c.Request.Context(), actorFrom(c), c.Param("courseID"), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusCreated, task)
}
