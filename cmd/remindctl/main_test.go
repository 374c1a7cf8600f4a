package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KasumiMercury/situgas/internal/domain"
)

const exportFixture = `{
  "courses": [
    {
      "id": "c1",
      "name": "Kalkulus",
      "tasks": [
        {"id": "t1", "title": "Essay", "deadline": "2024-03-10T12:30:00Z", "status": "belum"},
        {"id": "t2", "title": "Lab", "deadline": "2024-03-10T12:30:00Z", "status": "selesai"},
        {"id": "t3", "title": "Quiz", "deadline": "soon", "status": "proses"},
        {"id": "t4", "title": "Report", "deadline": "2024-03-08T09:00:00Z", "status": "proses"}
      ]
    }
  ]
}`

func writeExport(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.json")
	if err := os.WriteFile(path, []byte(exportFixture), 0o600); err != nil {
		t.Fatalf("failed to write export: %v", err)
	}
	return path
}

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &errOut

	err := app.Run(context.Background(), append([]string{"remindctl"}, args...))
	return out.String(), err
}

func TestEvaluate_JSON(t *testing.T) {
	path := writeExport(t)

	out, err := runApp(t, "--file", path, "--json", "evaluate", "--at", "2024-03-10T12:00:00Z")
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), out)
	}

	want := []struct {
		id       string
		severity domain.Severity
		message  string
	}{
		{id: "t1:urgent", severity: domain.SeverityUrgent, message: "Due in 30 minutes"},
		{id: "t4:overdue", severity: domain.SeverityOverdue, message: "Overdue by 2 days"},
	}
	for i, line := range lines {
		var n domain.Notification
		if err := json.Unmarshal([]byte(line), &n); err != nil {
			t.Fatalf("line %d is not JSON: %v", i, err)
		}
		if n.ID != want[i].id || n.Severity != want[i].severity || n.Message != want[i].message {
			t.Errorf("line %d = %+v, want %+v", i, n, want[i])
		}
	}
}

func TestEvaluate_Table(t *testing.T) {
	path := writeExport(t)

	out, err := runApp(t, "--file", path, "evaluate", "--at", "2024-03-10T12:00:00Z")
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	if !strings.Contains(out, "urgent") || !strings.Contains(out, "Essay") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if strings.Contains(out, "Lab") {
		t.Errorf("completed task was printed:\n%s", out)
	}
}

func TestEvaluate_NothingDue(t *testing.T) {
	path := writeExport(t)

	out, err := runApp(t, "--file", path, "evaluate", "--at", "2024-01-01T00:00:00Z")
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	if !strings.HasPrefix(out, "No notifications") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestEvaluate_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "missing file flag", args: []string{"evaluate"}},
		{name: "bad time", args: []string{"--file", "tasks.json", "evaluate", "--at", "tomorrow"}},
		{name: "unreadable file", args: []string{"--file", filepath.Join(t.TempDir(), "missing.json"), "evaluate"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := runApp(t, tt.args...); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
