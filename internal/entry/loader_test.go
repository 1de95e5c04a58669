package entry

import (
	"context"
	"fmt"
	"testing"

	"github.com/windedu/windtest-entry-app/internal/model"
	"github.com/windedu/windtest-entry-app/internal/notion"
)

// cannedStore returns a fixed page list for every query.
type cannedStore struct {
	pages []notion.Page
	err   error
}

func (c cannedStore) QueryAll(_ context.Context, _ string, _ notion.Filter) ([]notion.Page, error) {
	return c.pages, c.err
}

func (c cannedStore) CreatePage(_ context.Context, _ string, _ notion.Properties) (string, error) {
	return "", fmt.Errorf("not implemented")
}

func (c cannedStore) UpdatePage(_ context.Context, _ string, _ notion.Properties) error {
	return fmt.Errorf("not implemented")
}

func (c cannedStore) CreateComment(_ context.Context, _, _, _ string) error {
	return fmt.Errorf("not implemented")
}

func resultPage(id, questionID string, outcome model.Outcome) notion.Page {
	return notion.Page{
		ID: id,
		Properties: map[string]notion.PropertyValue{
			notion.PropQuestion: notion.RelationProp(questionID),
			notion.PropOutcome:  notion.SelectProp(notion.OutcomeWire(outcome)),
		},
	}
}

func TestExistingResultsMapsQuestionToRecord(t *testing.T) {
	loader := NewLoader(cannedStore{pages: []notion.Page{
		resultPage("rec-1", "q1", model.OutcomeCorrect),
		resultPage("rec-2", "q2", model.OutcomeIncorrect),
	}}, testConfig())

	existing, err := loader.ExistingResults(context.Background(), "student-1", "기초 3회차")
	if err != nil {
		t.Fatal(err)
	}

	if len(existing) != 2 {
		t.Fatalf("len = %d, want 2", len(existing))
	}
	if got := existing["q1"]; got.RecordID != "rec-1" || got.Outcome != model.OutcomeCorrect {
		t.Errorf("q1 = %+v", got)
	}
	if got := existing["q2"]; got.RecordID != "rec-2" || got.Outcome != model.OutcomeIncorrect {
		t.Errorf("q2 = %+v", got)
	}
}

func TestExistingResultsDuplicateQuestionLastWins(t *testing.T) {
	loader := NewLoader(cannedStore{pages: []notion.Page{
		resultPage("rec-old", "q1", model.OutcomeIncorrect),
		resultPage("rec-new", "q1", model.OutcomeCorrect),
	}}, testConfig())

	existing, err := loader.ExistingResults(context.Background(), "student-1", "기초 3회차")
	if err != nil {
		t.Fatal(err)
	}

	if len(existing) != 1 {
		t.Fatalf("len = %d, want 1", len(existing))
	}
	if got := existing["q1"]; got.RecordID != "rec-new" {
		t.Errorf("RecordID = %s, want rec-new (last record wins)", got.RecordID)
	}
}

func TestExistingResultsSkipsRecordsWithoutQuestionRelation(t *testing.T) {
	orphan := notion.Page{
		ID: "rec-orphan",
		Properties: map[string]notion.PropertyValue{
			notion.PropOutcome: notion.SelectProp(notion.OutcomeWire(model.OutcomeCorrect)),
		},
	}
	loader := NewLoader(cannedStore{pages: []notion.Page{
		orphan,
		resultPage("rec-1", "q1", model.OutcomeCorrect),
	}}, testConfig())

	existing, err := loader.ExistingResults(context.Background(), "student-1", "기초 3회차")
	if err != nil {
		t.Fatal(err)
	}
	if len(existing) != 1 {
		t.Fatalf("len = %d, want 1 (orphan skipped)", len(existing))
	}
}

func TestExistingResultsPropagatesQueryError(t *testing.T) {
	loader := NewLoader(cannedStore{err: fmt.Errorf("boom")}, testConfig())

	if _, err := loader.ExistingResults(context.Background(), "student-1", "기초 3회차"); err == nil {
		t.Fatal("expected error")
	}
}

func TestExistingReportReturnsEmptyWhenAbsent(t *testing.T) {
	loader := NewLoader(cannedStore{}, testConfig())

	id, err := loader.ExistingReport(context.Background(), "student-1", "기초 3회차")
	if err != nil {
		t.Fatal(err)
	}
	if id != "" {
		t.Fatalf("id = %q, want empty", id)
	}
}

func TestExistingReportDuplicatesUseFirst(t *testing.T) {
	loader := NewLoader(cannedStore{pages: []notion.Page{
		{ID: "report-a"},
		{ID: "report-b"},
	}}, testConfig())

	id, err := loader.ExistingReport(context.Background(), "student-1", "기초 3회차")
	if err != nil {
		t.Fatal(err)
	}
	if id != "report-a" {
		t.Fatalf("id = %s, want report-a (first match wins)", id)
	}
}
