package model

import "testing"

func TestOutcomeValid(t *testing.T) {
	if !OutcomeCorrect.Valid() || !OutcomeIncorrect.Valid() {
		t.Error("enum values must be valid")
	}
	if Outcome("").Valid() || Outcome("maybe").Valid() {
		t.Error("arbitrary strings must be invalid")
	}
}

func TestWritePlanCounts(t *testing.T) {
	plan := WritePlan{
		"q1": {QuestionID: "q1", Action: WriteActionCreate},
		"q2": {QuestionID: "q2", Action: WriteActionUpdate, RecordID: "rec-2"},
		"q3": {QuestionID: "q3", Action: WriteActionCreate},
	}

	if got := plan.Creates(); got != 2 {
		t.Errorf("Creates() = %d, want 2", got)
	}
	if got := plan.Updates(); got != 1 {
		t.Errorf("Updates() = %d, want 1", got)
	}
}
