package repository

import (
	"time"

	"github.com/KasumiMercury/situgas/internal/domain"
)

type userModel struct {
	ID        string `gorm:"primaryKey;type:uuid"`
	Email     string `gorm:"size:255;uniqueIndex;not null"`
	FullName  string `gorm:"size:255"`
	Provider  string `gorm:"size:50;not null;default:email"`
	IsActive  bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (userModel) TableName() string { return "users" }

func (m *userModel) toDomain() *domain.User {
	return &domain.User{
		ID:        m.ID,
		Email:     m.Email,
		FullName:  m.FullName,
		Provider:  m.Provider,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
	}
}

type taskStatusModel struct {
	ID    uint   `gorm:"primaryKey"`
	Code  string `gorm:"size:20;uniqueIndex;not null"`
	Label string `gorm:"size:100;not null"`
}

func (taskStatusModel) TableName() string { return "task_statuses" }

func (m taskStatusModel) toDomain() domain.TaskStatus {
	return domain.TaskStatus{ID: m.ID, Code: domain.StatusCode(m.Code), Label: m.Label}
}

type taskPriorityModel struct {
	ID    uint   `gorm:"primaryKey"`
	Code  string `gorm:"size:20;uniqueIndex;not null"`
	Label string `gorm:"size:100;not null"`
}

func (taskPriorityModel) TableName() string { return "task_priorities" }

func (m taskPriorityModel) toDomain() domain.TaskPriority {
	return domain.TaskPriority{ID: m.ID, Code: domain.PriorityCode(m.Code), Label: m.Label}
}

type courseModel struct {
	ID          string      `gorm:"primaryKey;type:uuid"`
	OwnerID     string      `gorm:"type:uuid;index;not null"`
	Title       string      `gorm:"size:255;not null"`
	Description *string     `gorm:"type:text"`
	Color       *string     `gorm:"size:20"`
	Tasks       []taskModel `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
	TasksCount  int         `gorm:"->;-:migration"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (courseModel) TableName() string { return "courses" }

func (m *courseModel) toDomain() *domain.Course {
	course := &domain.Course{
		ID:          m.ID,
		OwnerID:     m.OwnerID,
		Title:       m.Title,
		Description: m.Description,
		Color:       m.Color,
		TasksCount:  m.TasksCount,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.Tasks != nil {
		course.Tasks = make([]domain.Task, 0, len(m.Tasks))
		for i := range m.Tasks {
			course.Tasks = append(course.Tasks, *m.Tasks[i].toDomain())
		}
		course.TasksCount = len(m.Tasks)
	}
	return course
}

type taskModel struct {
	ID          string             `gorm:"primaryKey;type:uuid"`
	CourseID    string             `gorm:"type:uuid;index;not null"`
	CreatorID   *string            `gorm:"type:uuid"`
	Title       string             `gorm:"size:255;not null"`
	Description *string            `gorm:"type:text"`
	Deadline    time.Time          `gorm:"index;not null"`
	PriorityID  *uint              `gorm:"index"`
	Priority    *taskPriorityModel `gorm:"foreignKey:PriorityID;constraint:OnDelete:SET NULL"`
	StatusID    uint               `gorm:"index;not null"`
	Status      taskStatusModel    `gorm:"foreignKey:StatusID"`
	Reminders   []reminderModel    `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (taskModel) TableName() string { return "tasks" }

func (m *taskModel) toDomain() *domain.Task {
	task := &domain.Task{
		ID:          m.ID,
		CourseID:    m.CourseID,
		CreatorID:   m.CreatorID,
		Title:       m.Title,
		Description: m.Description,
		Deadline:    m.Deadline,
		Status:      m.Status.toDomain(),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.Priority != nil {
		priority := m.Priority.toDomain()
		task.Priority = &priority
	}
	return task
}

type reminderModel struct {
	ID        string    `gorm:"primaryKey;type:uuid"`
	TaskID    string    `gorm:"type:uuid;index;not null"`
	RemindAt  time.Time `gorm:"not null"`
	Sent      bool      `gorm:"not null;default:false"`
	CreatedAt time.Time
}

func (reminderModel) TableName() string { return "reminders" }

func (m *reminderModel) toDomain() *domain.Reminder {
	return &domain.Reminder{
		ID:        m.ID,
		TaskID:    m.TaskID,
		RemindAt:  m.RemindAt,
		Sent:      m.Sent,
		CreatedAt: m.CreatedAt,
	}
}

type auditLogModel struct {
	ID         uint   `gorm:"primaryKey"`
	UserID     string `gorm:"type:uuid;index"`
	Action     string `gorm:"size:20;not null"`
	ObjectType string `gorm:"size:50;not null"`
	ObjectID   string `gorm:"size:64"`
	IPAddress  string `gorm:"size:45"`
	CreatedAt  time.Time
}

func (auditLogModel) TableName() string { return "audit_logs" }

type loginLogModel struct {
	ID        uint    `gorm:"primaryKey"`
	UserID    *string `gorm:"type:uuid;index"`
	Provider  string  `gorm:"size:50"`
	Success   bool
	IPAddress string `gorm:"size:45"`
	UserAgent string `gorm:"type:text"`
	Browser   string `gorm:"size:100"`
	OS        string `gorm:"size:100"`
	Mobile    bool
	CreatedAt time.Time
}

func (loginLogModel) TableName() string { return "login_logs" }
