package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vaxremind/models"
)

func TestPrintDue(t *testing.T) {
	var buf bytes.Buffer
	printDue(&buf, []models.DueReminder{
		{
			Reminder: models.Reminder{ID: "r1", Name: "MMR", ScheduledDate: "2026-03-01", ScheduledTime: "09:00", Priority: models.PriorityCritical},
			Result:   models.DueEvaluation{Due: true, IsOverdue: true},
		},
		{
			Reminder: models.Reminder{ID: "r2", Name: "Polio", ScheduledDate: "2026-03-02", ScheduledTime: "08:00", Priority: models.PriorityNormal},
			Result:   models.DueEvaluation{Due: true},
		},
	})

	out := buf.String()
	for _, want := range []string{"ID", "r1", "overdue", "critical", "r2", "Polio"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintDueEmpty(t *testing.T) {
	var buf bytes.Buffer
	printDue(&buf, nil)
	if strings.TrimSpace(buf.String()) != "no reminders due" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestCommandsRegistered(t *testing.T) {
	root := New()
	for _, name := range []string{"serve", "install", "evaluate"} {
		if c, _, err := root.Find([]string{name}); err != nil || c.Name() != name {
			t.Fatalf("command %q not registered: %v", name, err)
		}
	}
	if root.PersistentFlags().Lookup("config") == nil {
		t.Fatalf("expected --config flag")
	}
}

func TestEvaluateFromFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "reminders.json")
	body := `[
		{"id":"r1","name":"MMR","scheduledDate":"2026-03-01","scheduledTime":"09:00","status":"pending","priority":"critical"},
		{"id":"r2","name":"Polio","scheduledDate":"2026-03-02","scheduledTime":"08:00","status":"pending","priority":"normal"},
		{"id":"r3","name":"Hep B","scheduledDate":"2026-02-01","scheduledTime":"08:00","status":"completed","priority":"normal"}
	]`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	root := New()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"evaluate", "--from-file", path, "--at", "2026-03-01T10:00"})
	if err := root.Execute(); err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "r1") {
		t.Fatalf("expected r1 due:\n%s", got)
	}
	if strings.Contains(got, "r2") || strings.Contains(got, "r3") {
		t.Fatalf("only r1 is due:\n%s", got)
	}
}
