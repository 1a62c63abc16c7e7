package service

import (
	"testing"
	"time"

	"quiz-platform/internal/models"
)

func completedAttempt(quizID string, score float64, duration time.Duration) models.Attempt {
	started := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	completed := started.Add(duration)
	return models.Attempt{
		QuizID:      quizID,
		Score:       score,
		Status:      models.AttemptCompleted,
		StartedAt:   started,
		CompletedAt: &completed,
	}
}

func TestComputeStatisticsAverageScore(t *testing.T) {
	quizzes := map[string]models.Quiz{
		"quiz1": {ID: "quiz1", CategoryID: "cat1"},
	}
	names := map[string]string{"cat1": "Algorithms"}
	attempts := []models.Attempt{
		completedAttempt("quiz1", 100, 5*time.Minute),
		completedAttempt("quiz1", 50, 5*time.Minute),
		completedAttempt("quiz1", 0, 5*time.Minute),
	}

	stats := ComputeStatistics(attempts, quizzes, names)

	if stats.TotalQuizzes != 3 {
		t.Errorf("expected 3 quizzes, got %d", stats.TotalQuizzes)
	}
	if stats.AverageScore != 50.0 {
		t.Errorf("expected average 50.0, got %f", stats.AverageScore)
	}
	if stats.TotalTimeSpent != 3*300 {
		t.Errorf("expected 900 seconds total, got %d", stats.TotalTimeSpent)
	}
}

func TestComputeStatisticsEmpty(t *testing.T) {
	stats := ComputeStatistics(nil, nil, nil)

	if stats.TotalQuizzes != 0 {
		t.Errorf("expected 0 quizzes, got %d", stats.TotalQuizzes)
	}
	if stats.AverageScore != 0 {
		t.Errorf("expected average 0 with no attempts, got %f", stats.AverageScore)
	}
	if len(stats.CategoryBreakdown) != 0 {
		t.Errorf("expected empty breakdown, got %d entries", len(stats.CategoryBreakdown))
	}
}

func TestComputeStatisticsCategoryBreakdown(t *testing.T) {
	quizzes := map[string]models.Quiz{
		"quiz1": {ID: "quiz1", CategoryID: "cat1"},
		"quiz2": {ID: "quiz2", CategoryID: "cat2"},
	}
	names := map[string]string{"cat1": "Algorithms", "cat2": "Networks"}
	attempts := []models.Attempt{
		completedAttempt("quiz1", 80, time.Minute),
		completedAttempt("quiz1", 60, time.Minute),
		completedAttempt("quiz2", 40, time.Minute),
	}

	stats := ComputeStatistics(attempts, quizzes, names)

	if len(stats.CategoryBreakdown) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(stats.CategoryBreakdown))
	}

	sum := 0
	byID := make(map[string]CategoryStat)
	for _, entry := range stats.CategoryBreakdown {
		sum += entry.Attempts
		byID[entry.CategoryID] = entry
	}
	if sum != len(attempts) {
		t.Errorf("breakdown attempt counts sum to %d, want %d", sum, len(attempts))
	}
	if byID["cat1"].AverageScore != 70.0 {
		t.Errorf("cat1 average = %f, want 70.0", byID["cat1"].AverageScore)
	}
	if byID["cat2"].AverageScore != 40.0 {
		t.Errorf("cat2 average = %f, want 40.0", byID["cat2"].AverageScore)
	}
	if byID["cat1"].CategoryName != "Algorithms" {
		t.Errorf("cat1 name = %q", byID["cat1"].CategoryName)
	}
}
