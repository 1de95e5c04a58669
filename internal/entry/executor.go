package entry

import (
	"context"
	"fmt"
	"sort"

	"github.com/windedu/windtest-entry-app/internal/config"
	"github.com/windedu/windtest-entry-app/internal/logger"
	"github.com/windedu/windtest-entry-app/internal/model"
	"github.com/windedu/windtest-entry-app/internal/notion"

	"github.com/rs/zerolog"
)

// ExecResult is the per-record accounting of one plan execution.
type ExecResult struct {
	SuccessCount      int
	FailureCount      int
	FailedQuestionIDs []string
}

// Executor applies a write plan record by record. A failure on one record
// never blocks the rest; failures are counted and surfaced, not retried.
type Executor struct {
	store Store
	cfg   *config.Config
	log   zerolog.Logger
}

func NewExecutor(store Store, cfg *config.Config) *Executor {
	return &Executor{
		store: store,
		cfg:   cfg,
		log:   logger.Get(),
	}
}

// Execute writes every planned record sequentially. All records in one
// submission share the request's exam date, the session's sitting date rather
// than wall-clock save time.
func (e *Executor) Execute(ctx context.Context, req model.SubmissionRequest, plan model.WritePlan, questions map[string]model.Question) ExecResult {
	var result ExecResult

	// Stable execution order keeps the logs readable; correctness does not
	// depend on it.
	ids := make([]string, 0, len(plan))
	for questionID := range plan {
		ids = append(ids, questionID)
	}
	sort.Strings(ids)

	examDate := req.ExamDate.Format("2006-01-02")

	for _, questionID := range ids {
		write := plan[questionID]
		props := e.resultProps(req, write, questions, examDate)

		var err error
		if write.Action == model.WriteActionUpdate {
			err = e.store.UpdatePage(ctx, write.RecordID, props)
		} else {
			_, err = e.store.CreatePage(ctx, e.cfg.Notion.ResultsDB, props)
		}

		if err != nil {
			result.FailureCount++
			result.FailedQuestionIDs = append(result.FailedQuestionIDs, questionID)
			e.log.Error().
				Err(err).
				Str("question_id", questionID).
				Str("action", string(write.Action)).
				Msg("Result write failed")
			continue
		}
		result.SuccessCount++
	}

	return result
}

func (e *Executor) resultProps(req model.SubmissionRequest, write model.PlannedWrite, questions map[string]model.Question, examDate string) notion.Properties {
	label := write.QuestionID
	if q, ok := questions[write.QuestionID]; ok && q.Label != "" {
		label = q.Label
	}

	return notion.Properties{
		notion.PropTitle:    notion.TitleProp(fmt.Sprintf("%s-%s-%s", req.StudentName, req.TestName, label)),
		notion.PropStudent:  notion.RelationProp(req.StudentID),
		notion.PropQuestion: notion.RelationProp(write.QuestionID),
		notion.PropTestName: notion.SelectProp(req.TestName),
		notion.PropOutcome:  notion.SelectProp(notion.OutcomeWire(write.Outcome)),
		notion.PropExamDate: notion.DateProp(examDate),
	}
}
