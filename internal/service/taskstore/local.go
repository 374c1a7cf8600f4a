package taskstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/KasumiMercury/situgas/internal/domain"
	"github.com/KasumiMercury/situgas/internal/service/reminder"
)

var ErrUnsupportedFormat = errors.New("unsupported export format")

// Export is the browser local-storage data: courses with their tasks nested
// inside. The app stores the bare course array under the "courses" key;
// DecodeExport also accepts it wrapped in an object.
type Export struct {
	Courses []ExportCourse `json:"courses" yaml:"courses"`
}

type ExportCourse struct {
	ID    string       `json:"id" yaml:"id"`
	Name  string       `json:"name" yaml:"name"`
	Tasks []ExportTask `json:"tasks" yaml:"tasks"`
}

type ExportTask struct {
	ID       string `json:"id" yaml:"id"`
	Title    string `json:"title" yaml:"title"`
	Deadline string `json:"deadline" yaml:"deadline"`
	Status   string `json:"status" yaml:"status"`
	Priority string `json:"priority,omitempty" yaml:"priority,omitempty"`
}

// SkippedTask is a task that could not be normalized.
type SkippedTask struct {
	CourseID string
	TaskID   string
	Reason   string
}

// Normalize converts the export into evaluator tasks. Tasks whose deadline
// does not parse are left out and reported instead of failing the export.
func (e *Export) Normalize() ([]reminder.Task, []SkippedTask) {
	tasks := make([]reminder.Task, 0)
	var skipped []SkippedTask

	for _, course := range e.Courses {
		for _, task := range course.Tasks {
			deadline, err := parseDeadline(task.Deadline)
			if err != nil {
				skipped = append(skipped, SkippedTask{
					CourseID: course.ID,
					TaskID:   task.ID,
					Reason:   err.Error(),
				})
				continue
			}

			tasks = append(tasks, reminder.Task{
				ID:        task.ID,
				Title:     task.Title,
				Deadline:  deadline,
				Completed: domain.StatusCode(task.Status).IsCompleted(),
			})
		}
	}

	return tasks, skipped
}

var deadlineLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

const dateOnlyLayout = "2006-01-02"

func parseDeadline(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errors.New("deadline is empty")
	}
	for _, layout := range deadlineLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	// A bare date is due at the last millisecond of that local day.
	if t, err := time.ParseInLocation(dateOnlyLayout, value, time.Local); err == nil {
		return t.Add(24*time.Hour - time.Millisecond), nil
	}
	return time.Time{}, fmt.Errorf("invalid deadline %q", value)
}

// DecodeExport parses a JSON or YAML export. format is "json" or "yaml".
// The top level is either the course array or an object with a "courses"
// field.
func DecodeExport(data []byte, format string) (*Export, error) {
	var export Export
	switch strings.ToLower(format) {
	case "json":
		var err error
		if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
			err = json.Unmarshal(trimmed, &export.Courses)
		} else {
			err = json.Unmarshal(data, &export)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode json export: %w", err)
		}
	case "yaml", "yml":
		var doc yaml.Node
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode yaml export: %w", err)
		}
		if len(doc.Content) == 0 {
			break
		}
		var err error
		if root := doc.Content[0]; root.Kind == yaml.SequenceNode {
			err = root.Decode(&export.Courses)
		} else {
			err = root.Decode(&export)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode yaml export: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	return &export, nil
}

// LocalFile serves tasks from an exported local-storage file. The file is
// re-read on every call so edits show up on the next poll. The user id is
// ignored; an export holds a single user's data.
type LocalFile struct {
	path string
}

func NewLocalFile(path string) *LocalFile {
	return &LocalFile{path: path}
}

func (l *LocalFile) ListTasks(ctx context.Context, _ string) ([]reminder.Task, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read export: %w", err)
	}

	format := strings.TrimPrefix(filepath.Ext(l.path), ".")
	export, err := DecodeExport(data, format)
	if err != nil {
		return nil, err
	}

	tasks, skipped := export.Normalize()
	for _, s := range skipped {
		slog.WarnContext(ctx, "skipping task with invalid deadline",
			slog.String("course_id", s.CourseID),
			slog.String("task_id", s.TaskID),
			slog.String("reason", s.Reason),
		)
	}

	return tasks, nil
}
