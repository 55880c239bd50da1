package evaluator

import (
	"testing"
	"time"

	"vaxremind/models"
)

func at(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.ParseInLocation("2006-01-02T15:04", value, time.UTC)
	if err != nil {
		t.Fatalf("parse %q: %v", value, err)
	}
	return ts
}

func reminder(id, date, clock string, status models.ReminderStatus) models.Reminder {
	return models.Reminder{
		ID:            id,
		Name:          "MMR Dose",
		ScheduledDate: date,
		ScheduledTime: clock,
		Status:        status,
		Priority:      models.PriorityNormal,
	}
}

func TestOverdueRegardlessOfTime(t *testing.T) {
	now := at(t, "2024-05-03T00:05")
	for _, clock := range []string{"00:00", "09:00", "23:59"} {
		got := Evaluate([]models.Reminder{reminder("r", "2024-05-02", clock, models.StatusPending)}, now)
		if len(got) != 1 {
			t.Fatalf("clock %s: expected one due reminder, got %d", clock, len(got))
		}
		if !got[0].Result.IsOverdue || !got[0].Result.Due {
			t.Fatalf("clock %s: expected overdue, got %+v", clock, got[0].Result)
		}
	}
}

func TestTodayDueMatchesClockComparison(t *testing.T) {
	now := at(t, "2024-05-03T10:00")
	cases := []struct {
		clock string
		due   bool
	}{
		{"09:00", true},
		{"09:59", true},
		{"10:00", true},
		{"10:01", false},
		{"23:00", false},
	}
	for _, tc := range cases {
		res := Check(reminder("r", "2024-05-03", tc.clock, models.StatusPending), "2024-05-03", now.Format(ClockLayout))
		if res.Due != tc.due {
			t.Fatalf("clock %s: expected due=%v, got %v", tc.clock, tc.due, res.Due)
		}
		if res.IsOverdue {
			t.Fatalf("clock %s: same-day reminder must not be overdue", tc.clock)
		}
	}
}

func TestNonPendingNeverDue(t *testing.T) {
	nows := []time.Time{at(t, "2024-01-01T00:00"), at(t, "2024-05-03T10:00"), at(t, "2030-12-31T23:59")}
	reminders := []models.Reminder{
		reminder("done", "2024-05-01", "09:00", models.StatusCompleted),
		reminder("later", "2024-05-01", "09:00", models.StatusSnoozed),
	}
	for _, now := range nows {
		if got := Evaluate(reminders, now); len(got) != 0 {
			t.Fatalf("now %v: expected no due reminders, got %+v", now, got)
		}
	}
}

func TestFutureReminderNotDue(t *testing.T) {
	got := Evaluate([]models.Reminder{reminder("r", "2024-05-04", "00:00", models.StatusPending)}, at(t, "2024-05-03T23:59"))
	if len(got) != 0 {
		t.Fatalf("expected nothing due, got %+v", got)
	}
}

func TestOverdueScenario(t *testing.T) {
	r := reminder("r1", "2024-05-01", "09:00", models.StatusPending)
	got := Evaluate([]models.Reminder{r}, at(t, "2024-05-03T10:00"))
	if len(got) != 1 || got[0].Reminder.ID != "r1" || !got[0].Result.IsOverdue {
		t.Fatalf("expected r1 overdue, got %+v", got)
	}
}

func TestOnTimeScenario(t *testing.T) {
	r := reminder("r1", "2024-05-03", "09:00", models.StatusPending)
	got := Evaluate([]models.Reminder{r}, at(t, "2024-05-03T10:00"))
	if len(got) != 1 {
		t.Fatalf("expected one due reminder, got %d", len(got))
	}
	if !got[0].Result.Due || got[0].Result.IsOverdue {
		t.Fatalf("expected due and not overdue, got %+v", got[0].Result)
	}
}

func TestEvaluateDoesNotMutateInput(t *testing.T) {
	reminders := []models.Reminder{reminder("r1", "2024-05-01", "09:00", models.StatusPending)}
	Evaluate(reminders, at(t, "2024-05-03T10:00"))
	if reminders[0].Status != models.StatusPending {
		t.Fatalf("status changed to %q", reminders[0].Status)
	}
}

func TestEvaluateUsesLocationOfNow(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	// 2024-05-02T20:00 UTC is already 2024-05-03T05:00 in Tokyo.
	now := at(t, "2024-05-02T20:00").In(tokyo)
	got := Evaluate([]models.Reminder{reminder("r", "2024-05-03", "05:00", models.StatusPending)}, now)
	if len(got) != 1 {
		t.Fatalf("expected reminder due in Tokyo time, got %+v", got)
	}
}

func TestEmptyCollection(t *testing.T) {
	if got := Evaluate(nil, time.Now()); len(got) != 0 {
		t.Fatalf("expected no due reminders, got %d", len(got))
	}
}
