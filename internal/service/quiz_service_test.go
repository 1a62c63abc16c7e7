package service

import (
	"encoding/json"
	"strconv"
	"strings"
	"testing"

	"quiz-platform/internal/apperr"
	"quiz-platform/internal/models"
	"quiz-platform/internal/selection"
)

func categoryQuestions(categoryID string, n int) []models.Question {
	questions := make([]models.Question, n)
	for i := range questions {
		questions[i] = models.Question{
			ID:         categoryID + "-q" + strconv.Itoa(i),
			CategoryID: categoryID,
		}
	}
	return questions
}

func TestSelectQuestionsReturnsRequestedCount(t *testing.T) {
	selector := selection.NewSeededSelector(1)
	candidates := categoryQuestions("cat1", 20)

	for _, count := range []int{1, 5, 20} {
		selected, err := SelectQuestions(selector, candidates, count)
		if err != nil {
			t.Fatalf("SelectQuestions(%d) failed: %v", count, err)
		}
		if len(selected) != count {
			t.Errorf("SelectQuestions(%d) returned %d questions", count, len(selected))
		}
	}
}

func TestSelectQuestionsStayWithinEligibleCategories(t *testing.T) {
	children := []models.Category{{ID: "child1"}, {ID: "child2"}}
	eligible := EligibleCategoryIDs("cat1", children)

	var candidates []models.Question
	for _, id := range eligible {
		candidates = append(candidates, categoryQuestions(id, 4)...)
	}
	allowed := make(map[string]bool, len(eligible))
	for _, id := range eligible {
		allowed[id] = true
	}

	selector := selection.NewSeededSelector(7)
	selected, err := SelectQuestions(selector, candidates, 10)
	if err != nil {
		t.Fatal(err)
	}
	for _, q := range selected {
		if !allowed[q.CategoryID] {
			t.Errorf("question %s from category %s outside the eligible set", q.ID, q.CategoryID)
		}
	}
}

func TestSelectQuestionsInsufficientPool(t *testing.T) {
	selector := selection.NewSeededSelector(3)
	candidates := categoryQuestions("cat1", 3)

	_, err := SelectQuestions(selector, candidates, 10)
	if err == nil {
		t.Fatal("expected an error for a pool smaller than the request")
	}
	if apperr.KindOf(err) != apperr.KindInvalidRequest {
		t.Errorf("expected InvalidRequest, got kind %v", apperr.KindOf(err))
	}
	if want := "not enough questions available. Found 3, requested 10"; err.Error() != want {
		t.Errorf("error %q, want %q", err.Error(), want)
	}
}

func TestEligibleCategoryIDs(t *testing.T) {
	children := []models.Category{
		{ID: "trees", ParentID: "dsa"},
		{ID: "graphs", ParentID: "dsa"},
	}

	got := EligibleCategoryIDs("dsa", children)
	want := []string{"dsa", "trees", "graphs"}
	if len(got) != len(want) {
		t.Fatalf("eligible set %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("eligible set %v, want %v", got, want)
		}
	}

	if got := EligibleCategoryIDs("leaf", nil); len(got) != 1 || got[0] != "leaf" {
		t.Errorf("childless category should be eligible alone, got %v", got)
	}
}

func TestBuildSnapshots(t *testing.T) {
	questions := []models.Question{
		{ID: "q1", Question: "first", CorrectAnswer: "a", Explanation: "because"},
		{ID: "q2", Question: "second", CorrectAnswer: "b"},
		{ID: "q3", Question: "third", CorrectAnswer: "c"},
	}
	answers := []models.AnswerRecord{
		{QuestionID: "q1", UserAnswer: "a", IsCorrect: true, TimeSpentSeconds: 12},
		{QuestionID: "q3", UserAnswer: "wrong", IsCorrect: false, TimeSpentSeconds: 30},
	}

	snapshots := BuildSnapshots(questions, answers)

	if len(snapshots) != 3 {
		t.Fatalf("expected 3 snapshots, got %d", len(snapshots))
	}
	if snapshots[0].UserAnswer != "a" || !snapshots[0].IsCorrect || snapshots[0].TimeSpentSeconds != 12 {
		t.Errorf("q1 snapshot wrong: %+v", snapshots[0])
	}
	// Unanswered questions snapshot as incorrect with an empty answer.
	if snapshots[1].UserAnswer != "" || snapshots[1].IsCorrect {
		t.Errorf("q2 snapshot should be empty and incorrect: %+v", snapshots[1])
	}
	if snapshots[2].UserAnswer != "wrong" || snapshots[2].IsCorrect {
		t.Errorf("q3 snapshot wrong: %+v", snapshots[2])
	}
	// Snapshots carry the full question content for history rendering.
	if snapshots[0].CorrectAnswer != "a" || snapshots[0].Explanation != "because" {
		t.Errorf("q1 snapshot missing question content: %+v", snapshots[0])
	}
}

func TestBuildSnapshotsKeepsQuizOrder(t *testing.T) {
	questions := []models.Question{{ID: "b"}, {ID: "a"}, {ID: "c"}}
	answers := []models.AnswerRecord{
		{QuestionID: "c"}, {QuestionID: "a"}, {QuestionID: "b"},
	}

	snapshots := BuildSnapshots(questions, answers)
	got := []string{snapshots[0].QuestionID, snapshots[1].QuestionID, snapshots[2].QuestionID}
	want := []string{"b", "a", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("snapshot order %v, want %v", got, want)
		}
	}
}

// The start-quiz response must never leak answers: a serialized
// PublicQuestion contains neither correctAnswer nor explanation.
func TestPublicQuestionNeverLeaksAnswer(t *testing.T) {
	q := models.Question{
		ID:            "q1",
		Question:      "What is a mutex?",
		Options:       []string{"lock", "queue"},
		CorrectAnswer: "lock",
		Explanation:   "mutual exclusion",
		Difficulty:    models.DifficultyEasy,
		Type:          models.TypeMCQ,
		CategoryID:    "cat1",
	}

	payload, err := json.Marshal(StartQuizResponse{
		Questions: []models.PublicQuestion{q.Public()},
	})
	if err != nil {
		t.Fatal(err)
	}
	body := string(payload)
	if strings.Contains(body, "correctAnswer") || strings.Contains(body, "explanation") {
		t.Errorf("response leaks answer fields: %s", body)
	}
	if strings.Contains(body, "mutual exclusion") {
		t.Errorf("response leaks explanation text: %s", body)
	}
	if !strings.Contains(body, "What is a mutex?") {
		t.Errorf("response missing question text: %s", body)
	}
}
