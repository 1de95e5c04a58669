package entry

import "github.com/windedu/windtest-entry-app/internal/model"

// Reconcile computes the write plan that brings the persisted results in line
// with the submitted outcomes. It is a pure function of its inputs.
//
// Every submitted question gets exactly one planned write: an update when a
// record already exists, a create otherwise. Questions that exist remotely but
// are not part of this submission are left untouched; re-grading a subset must
// never clobber prior data.
//
// The returned total score sums the weights of the correctly answered
// questions. A question without metadata contributes 0; its ID is returned in
// missingMeta so the caller can log the data-quality signal.
func Reconcile(
	submitted map[string]model.Outcome,
	existing map[string]model.ExistingResult,
	questions map[string]model.Question,
) (plan model.WritePlan, totalScore float64, missingMeta []string) {
	plan = make(model.WritePlan, len(submitted))

	for questionID, outcome := range submitted {
		if outcome == model.OutcomeCorrect {
			if q, ok := questions[questionID]; ok {
				totalScore += q.Score
			} else {
				missingMeta = append(missingMeta, questionID)
			}
		}

		if prev, ok := existing[questionID]; ok {
			plan[questionID] = model.PlannedWrite{
				QuestionID: questionID,
				Action:     model.WriteActionUpdate,
				RecordID:   prev.RecordID,
				Outcome:    outcome,
			}
		} else {
			plan[questionID] = model.PlannedWrite{
				QuestionID: questionID,
				Action:     model.WriteActionCreate,
				Outcome:    outcome,
			}
		}
	}

	return plan, totalScore, missingMeta
}
