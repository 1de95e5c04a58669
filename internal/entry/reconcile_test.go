package entry

import (
	"testing"

	"github.com/windedu/windtest-entry-app/internal/model"
)

func TestReconcilePlansCreateForNewQuestions(t *testing.T) {
	submitted := map[string]model.Outcome{
		"q1": model.OutcomeCorrect,
		"q2": model.OutcomeIncorrect,
	}

	plan, _, _ := Reconcile(submitted, nil, nil)

	if len(plan) != 2 {
		t.Fatalf("expected 2 planned writes, got %d", len(plan))
	}
	for questionID, write := range plan {
		if write.Action != model.WriteActionCreate {
			t.Errorf("question %s: expected create, got %s", questionID, write.Action)
		}
		if write.RecordID != "" {
			t.Errorf("question %s: create must not carry a record ID", questionID)
		}
		if write.Outcome != submitted[questionID] {
			t.Errorf("question %s: outcome %s, want %s", questionID, write.Outcome, submitted[questionID])
		}
	}
}

func TestReconcilePlansUpdateForExistingQuestions(t *testing.T) {
	submitted := map[string]model.Outcome{
		"q1": model.OutcomeIncorrect,
		"q2": model.OutcomeCorrect,
	}
	existing := map[string]model.ExistingResult{
		"q1": {RecordID: "rec-1", Outcome: model.OutcomeCorrect},
	}

	plan, _, _ := Reconcile(submitted, existing, nil)

	if got := plan["q1"]; got.Action != model.WriteActionUpdate || got.RecordID != "rec-1" {
		t.Fatalf("q1: expected update of rec-1, got %+v", got)
	}
	if got := plan["q2"]; got.Action != model.WriteActionCreate {
		t.Fatalf("q2: expected create, got %+v", got)
	}
}

func TestReconcileLeavesUnsubmittedQuestionsUntouched(t *testing.T) {
	submitted := map[string]model.Outcome{
		"q1": model.OutcomeCorrect,
	}
	existing := map[string]model.ExistingResult{
		"q1": {RecordID: "rec-1", Outcome: model.OutcomeIncorrect},
		"q4": {RecordID: "rec-4", Outcome: model.OutcomeCorrect},
	}

	plan, _, _ := Reconcile(submitted, existing, nil)

	if _, planned := plan["q4"]; planned {
		t.Fatal("q4 was not submitted and must not be planned")
	}
	if len(plan) != 1 {
		t.Fatalf("expected 1 planned write, got %d", len(plan))
	}
}

func TestReconcileTotalScoreSumsCorrectOutcomes(t *testing.T) {
	submitted := map[string]model.Outcome{
		"q1": model.OutcomeCorrect,
		"q2": model.OutcomeIncorrect,
		"q3": model.OutcomeCorrect,
	}
	questions := map[string]model.Question{
		"q1": {ID: "q1", Score: 3},
		"q2": {ID: "q2", Score: 5},
		"q3": {ID: "q3", Score: 2},
	}

	_, totalScore, missing := Reconcile(submitted, nil, questions)

	if totalScore != 5 {
		t.Fatalf("totalScore = %v, want 5", totalScore)
	}
	if len(missing) != 0 {
		t.Fatalf("unexpected missing metadata: %v", missing)
	}
}

func TestReconcileMissingMetadataScoresZero(t *testing.T) {
	submitted := map[string]model.Outcome{
		"q1": model.OutcomeCorrect,
		"q2": model.OutcomeCorrect,
	}
	questions := map[string]model.Question{
		"q1": {ID: "q1", Score: 4},
	}

	_, totalScore, missing := Reconcile(submitted, nil, questions)

	if totalScore != 4 {
		t.Fatalf("totalScore = %v, want 4", totalScore)
	}
	if len(missing) != 1 || missing[0] != "q2" {
		t.Fatalf("missing = %v, want [q2]", missing)
	}
}

func TestReconcileIsDeterministic(t *testing.T) {
	submitted := map[string]model.Outcome{
		"q1": model.OutcomeCorrect,
		"q2": model.OutcomeCorrect,
		"q3": model.OutcomeIncorrect,
		"q4": model.OutcomeCorrect,
	}
	existing := map[string]model.ExistingResult{
		"q2": {RecordID: "rec-2", Outcome: model.OutcomeIncorrect},
	}
	questions := map[string]model.Question{
		"q1": {ID: "q1", Score: 1},
		"q2": {ID: "q2", Score: 2},
		"q3": {ID: "q3", Score: 4},
		"q4": {ID: "q4", Score: 8},
	}

	firstPlan, firstScore, _ := Reconcile(submitted, existing, questions)
	for i := 0; i < 20; i++ {
		plan, score, _ := Reconcile(submitted, existing, questions)
		if score != firstScore {
			t.Fatalf("run %d: score %v differs from %v", i, score, firstScore)
		}
		if len(plan) != len(firstPlan) {
			t.Fatalf("run %d: plan size changed", i)
		}
		for questionID, write := range plan {
			if firstPlan[questionID] != write {
				t.Fatalf("run %d: plan for %s changed: %+v vs %+v", i, questionID, write, firstPlan[questionID])
			}
		}
	}
}
