package grades

import (
	"testing"
	"time"

	"github.com/dalemusser/capstonehub/internal/domain/models"
)

func TestPriorityFor(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	due := func(days int) *time.Time {
		d := now.AddDate(0, 0, days)
		return &d
	}

	cases := []struct {
		name string
		task models.Task
		want models.TaskPriority
	}{
		{"graded is always low", models.Task{Status: models.TaskGraded, DueDate: due(1)}, models.PriorityLow},
		{"overdue pending", models.Task{Status: models.TaskPending, DueDate: due(-3)}, models.PriorityUrgent},
		{"due in 2 days", models.Task{Status: models.TaskPending, DueDate: due(2)}, models.PriorityUrgent},
		{"due in 5 days", models.Task{Status: models.TaskSubmitted, DueDate: due(5)}, models.PriorityHigh},
		{"due in 10 days", models.Task{Status: models.TaskPending, DueDate: due(10)}, models.PriorityMedium},
		{"due in 30 days", models.Task{Status: models.TaskPending, DueDate: due(30)}, models.PriorityLow},
		{"no due date keeps stored", models.Task{Status: models.TaskPending, Priority: models.PriorityHigh}, models.PriorityHigh},
		{"no due date, no stored", models.Task{Status: models.TaskPending}, models.PriorityLow},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := PriorityFor(c.task, now); got != c.want {
				t.Errorf("got %q, want %q", got, c.want)
			}
		})
	}
}
