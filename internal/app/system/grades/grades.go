// Package grades computes weighted grades and completion progress for a
// set of tasks. All functions are pure: they read the task slice and
// return values, so callers recompute instead of trusting cached fields.
package grades

import (
	"fmt"
	"math"

	"github.com/dalemusser/capstonehub/internal/domain/models"
)

// Result is the aggregate outcome of grading a task set.
type Result struct {
	TotalGrade      float64 `json:"total_grade"` // weighted sum, rounded to 1 decimal
	CompletedWeight float64 `json:"completed_weight"`
	RemainingWeight float64 `json:"remaining_weight"`
	GradedTasks     int     `json:"graded_tasks"`
	TotalTasks      int     `json:"total_tasks"`
	Percentage      float64 `json:"percentage"` // same scale as TotalGrade
	IsPassing       bool    `json:"is_passing"`
	Letter          string  `json:"letter"`
	Status          string  `json:"status"`
}

// PassMark is the minimum total grade considered passing.
const PassMark = 50.0

// Weighted computes the aggregate grade over tasks. Only tasks with
// status graded and a recorded grade contribute; each contributes
// (grade/maxGrade*100) * (weight/100) points. Weights are not required
// to sum to 100 here; ValidateWeights reports on that separately.
//
// An empty task set (or one with no graded tasks) yields a zero,
// non-passing result rather than NaN.
func Weighted(tasks []models.Task) Result {
	res := Result{TotalTasks: len(tasks)}

	var total float64
	for _, t := range tasks {
		res.RemainingWeight += t.Weight
		if t.Status != models.TaskGraded || t.Grade == nil || t.MaxGrade <= 0 {
			continue
		}
		pct := *t.Grade / t.MaxGrade * 100
		total += pct * (t.Weight / 100)
		res.CompletedWeight += t.Weight
		res.GradedTasks++
	}
	res.RemainingWeight -= res.CompletedWeight

	res.TotalGrade = round1(total)
	res.Percentage = res.TotalGrade
	res.IsPassing = res.TotalGrade >= PassMark
	res.Letter = LetterFor(res.TotalGrade)
	res.Status = StatusFor(res.TotalGrade)
	return res
}

// Progress returns project completion as a whole percentage. A task
// counts as done purely by status == graded; the grade value itself is
// irrelevant here. Returns 0 for an empty task set or zero total weight.
func Progress(tasks []models.Task) int {
	var total, done float64
	for _, t := range tasks {
		total += t.Weight
		if t.Status == models.TaskGraded {
			done += t.Weight
		}
	}
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * done / total))
}

// WeightCheck is the advisory result of checking that a project's task
// weights sum to 100. It does not block persistence.
type WeightCheck struct {
	IsValid     bool    `json:"is_valid"`
	TotalWeight float64 `json:"total_weight"`
	Message     string  `json:"message"`
}

// ValidateWeights reports whether the task weights sum to exactly 100,
// with a distinct message for under-, over-, and fully-allocated sets.
func ValidateWeights(tasks []models.Task) WeightCheck {
	var total float64
	for _, t := range tasks {
		total += t.Weight
	}
	check := WeightCheck{TotalWeight: total}
	switch {
	case total == 100:
		check.IsValid = true
		check.Message = "Task weights sum to 100%."
	case total < 100:
		check.Message = fmt.Sprintf("Task weights sum to %g%%; %g%% of the grade is unallocated.", total, 100-total)
	default:
		check.Message = fmt.Sprintf("Task weights sum to %g%%; reduce weights by %g%%.", total, total-100)
	}
	return check
}

// letterBands maps inclusive lower bounds to letter grades, highest
// first. The ladder deliberately has more bands than the status ladder
// (A+ and A both report status "excellent").
var letterBands = []struct {
	min    float64
	letter string
}{
	{90, "A+"},
	{85, "A"},
	{80, "B+"},
	{75, "B"},
	{70, "C+"},
	{65, "C"},
	{60, "D+"},
	{50, "D"},
}

// LetterFor maps a total grade to its letter on the grading ladder.
func LetterFor(grade float64) string {
	for _, b := range letterBands {
		if grade >= b.min {
			return b.letter
		}
	}
	return "F"
}

// StatusFor maps a total grade to its coarse standing bucket.
func StatusFor(grade float64) string {
	switch {
	case grade >= 90:
		return "excellent"
	case grade >= 80:
		return "very-good"
	case grade >= 70:
		return "good"
	case grade >= 60:
		return "acceptable"
	default:
		return "failing"
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
