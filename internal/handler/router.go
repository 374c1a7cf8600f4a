package handler

import (
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Auth         *AuthHandler
	Courses      *CourseHandler
	Tasks        *TaskHandler
	Lookups      *LookupHandler
	Notification *NotificationHandler
}

// RegisterRoutes mounts the v1 API on r. Everything but lookups and the
// credential endpoints sits behind requireAuth.
func RegisterRoutes(r gin.IRouter, h Handlers, requireAuth gin.HandlerFunc) {
	v1 := r.Group("/api/v1")

	v1.GET("/lookups/task-statuses", h.Lookups.TaskStatuses)
	v1.GET("/lookups/task-priorities", h.Lookups.TaskPriorities)

	authGroup := v1.Group("/auth")
	authGroup.POST("/register", h.Auth.Register)
	authGroup.POST("/login", h.Auth.Login)
	authGroup.GET("/me", requireAuth, h.Auth.Me)
	authGroup.POST("/logout", requireAuth, h.Auth.Logout)

	protected := v1.Group("", requireAuth)

	protected.GET("/dashboard", h.Lookups.Dashboard)

	protected.GET("/courses", h.Courses.List)
	protected.POST("/courses", h.Courses.Create)
	protected.GET("/courses/:courseID", h.Courses.Show)
	protected.PUT("/courses/:courseID", h.Courses.Update)
	protected.PATCH("/courses/:courseID", h.Courses.Update)
	protected.DELETE("/courses/:courseID", h.Courses.Delete)
	protected.GET("/courses/:courseID/tasks", h.Courses.ListTasks)
	protected.POST("/courses/:courseID/tasks", h.Courses.CreateTask)

	protected.GET("/tasks/:taskID", h.Tasks.Show)
	protected.PUT("/tasks/:taskID", h.Tasks.Update)
	protected.PATCH("/tasks/:taskID", h.Tasks.Update)
	protected.DELETE("/tasks/:taskID", h.Tasks.Delete)
	protected.GET("/tasks/:taskID/reminders", h.Tasks.ListReminders)
	protected.POST("/tasks/:taskID/reminders", h.Tasks.CreateReminder)
	protected.PUT("/reminders/:reminderID", h.Tasks.UpdateReminder)
	protected.PATCH("/reminders/:reminderID", h.Tasks.UpdateReminder)
	protected.DELETE("/reminders/:reminderID", h.Tasks.DeleteReminder)

	protected.GET("/notifications", h.Notification.List)
	protected.DELETE("/notifications", h.Notification.ClearAll)
	protected.POST("/notifications/check", h.Notification.Check)
	protected.POST("/notifications/session", h.Notification.StartSession)
	protected.DELETE("/notifications/session", h.Notification.EndSession)
	protected.DELETE("/notifications/:notificationID", h.Notification.Dismiss)
}
