package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// CatalogMetrics counts domain events of the course and task catalog. They
// are scraped from /metrics.
type CatalogMetrics struct {
	CoursesCreated   prometheus.Counter
	TasksCreated     prometheus.Counter
	TasksCompleted   prometheus.Counter
	RemindersCreated prometheus.Counter
	Logins           *prometheus.CounterVec
}

// NewCatalogMetrics registers the counters with reg. A nil reg uses the
// default registerer.
func NewCatalogMetrics(reg prometheus.Registerer) *CatalogMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &CatalogMetrics{
		CoursesCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "situgas_courses_created_total",
			Help: "Total number of courses created",
		}),
		TasksCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "situgas_tasks_created_total",
			Help: "Total number of tasks created",
		}),
		TasksCompleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "situgas_tasks_completed_total",
			Help: "Total number of tasks moved to the completed status",
		}),
		RemindersCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "situgas_scheduled_reminders_created_total",
			Help: "Total number of scheduled reminders created",
		}),
		Logins: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "situgas_logins_total",
			Help: "Login and registration attempts by outcome",
		}, []string{"kind", "outcome"}),
	}
}

func (m *CatalogMetrics) IncCoursesCreated() {
	if m == nil {
		return
	}
	m.CoursesCreated.Inc()
}

func (m *CatalogMetrics) IncTasksCreated() {
	if m == nil {
		return
	}
	m.TasksCreated.Inc()
}

func (m *CatalogMetrics) IncTasksCompleted() {
	if m == nil {
		return
	}
	m.TasksCompleted.Inc()
}

func (m *CatalogMetrics) IncRemindersCreated() {
	if m == nil {
		return
	}
	m.RemindersCreated.Inc()
}

func (m *CatalogMetrics) IncLogin(kind string, success bool) {
	if m == nil {
		return
	}
	outcome := "failure"
	if success {
		outcome = "success"
	}
	m.Logins.WithLabelValues(kind, outcome).Inc()
}
