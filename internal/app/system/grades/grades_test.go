package grades

import (
	"strings"
	"testing"

	"github.com/dalemusser/capstonehub/internal/domain/models"
)

func graded(grade, maxGrade, weight float64) models.Task {
	return models.Task{
		Status:   models.TaskGraded,
		Grade:    &grade,
		MaxGrade: maxGrade,
		Weight:   weight,
	}
}

func ungraded(weight float64) models.Task {
	return models.Task{
		Status:   models.TaskPending,
		MaxGrade: 100,
		Weight:   weight,
	}
}

func TestWeighted_Empty(t *testing.T) {
	res := Weighted(nil)

	if res.TotalGrade != 0 {
		t.Errorf("TotalGrade: got %v, want 0", res.TotalGrade)
	}
	if res.GradedTasks != 0 {
		t.Errorf("GradedTasks: got %d, want 0", res.GradedTasks)
	}
	if res.IsPassing {
		t.Error("empty task set must not be passing")
	}
	if res.Letter != "F" {
		t.Errorf("Letter: got %q, want F", res.Letter)
	}
}

func TestWeighted_SingleTask(t *testing.T) {
	// (80/100*100) * (40/100) = 32.0
	res := Weighted([]models.Task{graded(80, 100, 40)})

	if res.TotalGrade != 32.0 {
		t.Errorf("TotalGrade: got %v, want 32.0", res.TotalGrade)
	}
	if res.CompletedWeight != 40 {
		t.Errorf("CompletedWeight: got %v, want 40", res.CompletedWeight)
	}
	if res.GradedTasks != 1 || res.TotalTasks != 1 {
		t.Errorf("counts: got %d/%d, want 1/1", res.GradedTasks, res.TotalTasks)
	}
}

func TestWeighted_TwoTasks(t *testing.T) {
	// task1: 80/100*100=80, weighted 32; task2: 40/50*100=80, weighted 48.
	res := Weighted([]models.Task{
		graded(80, 100, 40),
		graded(40, 50, 60),
	})

	if res.TotalGrade != 80.0 {
		t.Errorf("TotalGrade: got %v, want 80.0", res.TotalGrade)
	}
	if res.Letter != "B+" {
		t.Errorf("Letter: got %q, want B+", res.Letter)
	}
	if res.Status != "very-good" {
		t.Errorf("Status: got %q, want very-good", res.Status)
	}
	if !res.IsPassing {
		t.Error("expected passing")
	}
	if res.RemainingWeight != 0 {
		t.Errorf("RemainingWeight: got %v, want 0", res.RemainingWeight)
	}
}

func TestWeighted_UngradedOnly(t *testing.T) {
	res := Weighted([]models.Task{ungraded(100)})

	if res.TotalGrade != 0 {
		t.Errorf("TotalGrade: got %v, want 0", res.TotalGrade)
	}
	if res.RemainingWeight != 100 {
		t.Errorf("RemainingWeight: got %v, want 100", res.RemainingWeight)
	}
	if res.GradedTasks != 0 {
		t.Errorf("GradedTasks: got %d, want 0", res.GradedTasks)
	}
}

func TestWeighted_RoundsToOneDecimal(t *testing.T) {
	// 33/100*100 * 33/100 = 10.89 → 10.9
	res := Weighted([]models.Task{graded(33, 100, 33)})

	if res.TotalGrade != 10.9 {
		t.Errorf("TotalGrade: got %v, want 10.9", res.TotalGrade)
	}
}

func TestWeighted_ZeroMaxGradeSkipped(t *testing.T) {
	// A graded task with max_grade 0 must not produce NaN.
	res := Weighted([]models.Task{graded(0, 0, 50)})

	if res.TotalGrade != 0 {
		t.Errorf("TotalGrade: got %v, want 0", res.TotalGrade)
	}
	if res.GradedTasks != 0 {
		t.Errorf("GradedTasks: got %d, want 0 (zero max grade skipped)", res.GradedTasks)
	}
}

func TestLetterFor_Ladder(t *testing.T) {
	cases := []struct {
		grade float64
		want  string
	}{
		{100, "A+"}, {90, "A+"},
		{89.9, "A"}, {85, "A"},
		{84.9, "B+"}, {80, "B+"},
		{79.9, "B"}, {75, "B"},
		{74.9, "C+"}, {70, "C+"},
		{69.9, "C"}, {65, "C"},
		{64.9, "D+"}, {60, "D+"},
		{59.9, "D"}, {50, "D"},
		{49.9, "F"}, {0, "F"},
	}
	for _, c := range cases {
		if got := LetterFor(c.grade); got != c.want {
			t.Errorf("LetterFor(%v): got %q, want %q", c.grade, got, c.want)
		}
	}
}

func TestLetterFor_Monotonic(t *testing.T) {
	order := map[string]int{"F": 0, "D": 1, "D+": 2, "C": 3, "C+": 4, "B": 5, "B+": 6, "A": 7, "A+": 8}
	prev := -1
	for g := 0.0; g <= 100; g += 0.5 {
		rank := order[LetterFor(g)]
		if rank < prev {
			t.Fatalf("letter rank decreased at grade %v", g)
		}
		prev = rank
	}
}

func TestStatusFor_Buckets(t *testing.T) {
	cases := []struct {
		grade float64
		want  string
	}{
		{95, "excellent"},
		{90, "excellent"},
		{85, "very-good"}, // letter A, but status uses the 80 bucket
		{80, "very-good"},
		{75, "good"},
		{65, "acceptable"},
		{59.9, "failing"},
	}
	for _, c := range cases {
		if got := StatusFor(c.grade); got != c.want {
			t.Errorf("StatusFor(%v): got %q, want %q", c.grade, got, c.want)
		}
	}
}

func TestProgress(t *testing.T) {
	tasks := []models.Task{
		graded(10, 20, 30), // counted by status, grade irrelevant
		ungraded(70),
	}
	if got := Progress(tasks); got != 30 {
		t.Errorf("Progress: got %d, want 30", got)
	}
}

func TestProgress_GradeValueIgnored(t *testing.T) {
	// A graded task with a failing grade still counts as done.
	tasks := []models.Task{graded(0, 100, 50), ungraded(50)}
	if got := Progress(tasks); got != 50 {
		t.Errorf("Progress: got %d, want 50", got)
	}
}

func TestProgress_ZeroWeight(t *testing.T) {
	if got := Progress(nil); got != 0 {
		t.Errorf("Progress(nil): got %d, want 0", got)
	}
	if got := Progress([]models.Task{ungraded(0), graded(5, 10, 0)}); got != 0 {
		t.Errorf("Progress(zero weights): got %d, want 0", got)
	}
}

func TestValidateWeights(t *testing.T) {
	exact := ValidateWeights([]models.Task{ungraded(60), ungraded(40)})
	if !exact.IsValid || exact.TotalWeight != 100 {
		t.Errorf("exact: got %+v", exact)
	}

	under := ValidateWeights([]models.Task{ungraded(60)})
	if under.IsValid {
		t.Error("under-allocated set must not be valid")
	}
	if !strings.Contains(under.Message, "unallocated") {
		t.Errorf("under message: got %q", under.Message)
	}

	over := ValidateWeights([]models.Task{ungraded(60), ungraded(60)})
	if over.IsValid {
		t.Error("over-allocated set must not be valid")
	}
	if !strings.Contains(over.Message, "reduce") {
		t.Errorf("over message: got %q", over.Message)
	}
	if under.Message == over.Message {
		t.Error("under and over messages must differ")
	}
}
