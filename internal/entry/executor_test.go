package entry

import (
	"context"
	"fmt"
	"testing"

	"github.com/windedu/windtest-entry-app/internal/model"
	"github.com/windedu/windtest-entry-app/internal/notion"
)

// recordingStore captures every write it receives.
type recordingStore struct {
	creates []notion.Properties
	updates map[string]notion.Properties
	failAll bool
}

func (r *recordingStore) QueryAll(_ context.Context, _ string, _ notion.Filter) ([]notion.Page, error) {
	return nil, nil
}

func (r *recordingStore) CreatePage(_ context.Context, _ string, props notion.Properties) (string, error) {
	if r.failAll {
		return "", fmt.Errorf("injected")
	}
	r.creates = append(r.creates, props)
	return fmt.Sprintf("created-%d", len(r.creates)), nil
}

func (r *recordingStore) UpdatePage(_ context.Context, pageID string, props notion.Properties) error {
	if r.failAll {
		return fmt.Errorf("injected")
	}
	if r.updates == nil {
		r.updates = make(map[string]notion.Properties)
	}
	r.updates[pageID] = props
	return nil
}

func (r *recordingStore) CreateComment(_ context.Context, _, _, _ string) error {
	return nil
}

func TestExecuteWritesFullPropertySetOnCreateAndUpdate(t *testing.T) {
	store := &recordingStore{}
	exec := NewExecutor(store, testConfig())

	req := testRequest(nil)
	plan := model.WritePlan{
		"q1": {QuestionID: "q1", Action: model.WriteActionCreate, Outcome: model.OutcomeCorrect},
		"q2": {QuestionID: "q2", Action: model.WriteActionUpdate, RecordID: "rec-2", Outcome: model.OutcomeIncorrect},
	}
	questions := map[string]model.Question{
		"q1": {ID: "q1", Label: "3"},
		"q2": {ID: "q2", Label: "7"},
	}

	result := exec.Execute(context.Background(), req, plan, questions)
	if result.SuccessCount != 2 || result.FailureCount != 0 {
		t.Fatalf("counts = %d/%d, want 2/0", result.SuccessCount, result.FailureCount)
	}

	if len(store.creates) != 1 {
		t.Fatalf("creates = %d, want 1", len(store.creates))
	}
	created := store.creates[0]
	if got := created[notion.PropTitle].Title[0].Text.Content; got != "김철수-기초 3회차-3" {
		t.Errorf("create title = %q", got)
	}
	if got := created[notion.PropStudent].Relation[0].ID; got != "student-1" {
		t.Errorf("create student relation = %q", got)
	}
	if got := created[notion.PropExamDate].Date.Start; got != "2026-03-02" {
		t.Errorf("create exam date = %q", got)
	}

	// An update rewrites the same full property set as a create, not just the
	// fields believed to have changed.
	updated, ok := store.updates["rec-2"]
	if !ok {
		t.Fatal("rec-2 was not updated")
	}
	for _, prop := range []string{
		notion.PropTitle, notion.PropStudent, notion.PropQuestion,
		notion.PropTestName, notion.PropOutcome, notion.PropExamDate,
	} {
		if _, present := updated[prop]; !present {
			t.Errorf("update missing property %q", prop)
		}
	}
	if got := updated[notion.PropTitle].Title[0].Text.Content; got != "김철수-기초 3회차-7" {
		t.Errorf("update title = %q", got)
	}
}

func TestExecuteFallsBackToQuestionIDWhenLabelMissing(t *testing.T) {
	store := &recordingStore{}
	exec := NewExecutor(store, testConfig())

	plan := model.WritePlan{
		"q9": {QuestionID: "q9", Action: model.WriteActionCreate, Outcome: model.OutcomeCorrect},
	}

	exec.Execute(context.Background(), testRequest(nil), plan, nil)

	if len(store.creates) != 1 {
		t.Fatalf("creates = %d, want 1", len(store.creates))
	}
	if got := store.creates[0][notion.PropTitle].Title[0].Text.Content; got != "김철수-기초 3회차-q9" {
		t.Errorf("title = %q, want question ID fallback", got)
	}
}

func TestExecuteCountsEveryFailureAndKeepsGoing(t *testing.T) {
	store := &recordingStore{failAll: true}
	exec := NewExecutor(store, testConfig())

	plan := model.WritePlan{
		"q1": {QuestionID: "q1", Action: model.WriteActionCreate, Outcome: model.OutcomeCorrect},
		"q2": {QuestionID: "q2", Action: model.WriteActionCreate, Outcome: model.OutcomeCorrect},
		"q3": {QuestionID: "q3", Action: model.WriteActionCreate, Outcome: model.OutcomeIncorrect},
	}

	result := exec.Execute(context.Background(), testRequest(nil), plan, nil)

	if result.SuccessCount != 0 || result.FailureCount != 3 {
		t.Fatalf("counts = %d/%d, want 0/3", result.SuccessCount, result.FailureCount)
	}
	if len(result.FailedQuestionIDs) != 3 {
		t.Fatalf("FailedQuestionIDs = %v, want all three", result.FailedQuestionIDs)
	}
}
