package grades

import (
	"time"

	"github.com/dalemusser/capstonehub/internal/domain/models"
)

// PriorityFor derives a task's display priority from its due date and
// status. Graded tasks are always low. For tasks with a due date the
// thresholds are: overdue or due within 2 days → urgent, within 5 →
// high, within 10 → medium, otherwise low. Tasks without a due date
// keep whatever priority they were authored with.
func PriorityFor(t models.Task, now time.Time) models.TaskPriority {
	if t.Status == models.TaskGraded {
		return models.PriorityLow
	}
	if t.DueDate == nil {
		if t.Priority != "" {
			return t.Priority
		}
		return models.PriorityLow
	}

	days := int(t.DueDate.Sub(now).Hours() / 24)
	switch {
	case days < 0:
		return models.PriorityUrgent
	case days <= 2:
		return models.PriorityUrgent
	case days <= 5:
		return models.PriorityHigh
	case days <= 10:
		return models.PriorityMedium
	default:
		return models.PriorityLow
	}
}
