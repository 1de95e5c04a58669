package entry

import (
	"context"
	"fmt"

	"github.com/windedu/windtest-entry-app/internal/config"
	"github.com/windedu/windtest-entry-app/internal/logger"
	"github.com/windedu/windtest-entry-app/internal/model"
	"github.com/windedu/windtest-entry-app/pkg/errors"

	"github.com/rs/zerolog"
)

// QuestionSource supplies question metadata (labels, score weights) for a
// test. The catalog service implements it.
type QuestionSource interface {
	QuestionsForTest(ctx context.Context, testName string) ([]model.Question, error)
}

// Service runs one submission end to end: load existing state, reconcile,
// execute the plan record by record, then maintain the report. Strictly
// sequential, no cross-submission state. Two overlapping submissions for the
// same (student, test) pair race with last-writer-wins; that is an accepted
// limitation of the remote store, not something this service locks around.
type Service struct {
	loader    *Loader
	executor  *Executor
	reports   *ReportMaintainer
	questions QuestionSource
	cfg       *config.Config
	log       zerolog.Logger
}

func NewService(store Store, questions QuestionSource, cfg *config.Config) *Service {
	loader := NewLoader(store, cfg)
	return &Service{
		loader:    loader,
		executor:  NewExecutor(store, cfg),
		reports:   NewReportMaintainer(store, loader, cfg),
		questions: questions,
		cfg:       cfg,
		log:       logger.Get(),
	}
}

// ProcessSubmission persists one submitted outcome set. The returned summary
// surfaces every per-record count; an error is returned only when the whole
// submission had to be aborted before any write was attempted.
func (s *Service) ProcessSubmission(ctx context.Context, req model.SubmissionRequest) (model.SubmissionSummary, error) {
	log := s.log.With().
		Str("student_id", req.StudentID).
		Str("test_name", req.TestName).
		Logger()

	if len(req.Outcomes) == 0 {
		return model.SubmissionSummary{}, errors.ErrEmptySubmission
	}

	// Question metadata only feeds scoring and display titles; a failed
	// lookup degrades to zero weights instead of blocking the entry.
	questionMeta := make(map[string]model.Question)
	if qs, err := s.questions.QuestionsForTest(ctx, req.TestName); err != nil {
		log.Warn().Err(err).Msg("Question metadata unavailable, scores default to 0")
	} else {
		for _, q := range qs {
			questionMeta[q.ID] = q
		}
	}

	// A failed load aborts the submission. Writing blind against unknown
	// existing state would mint duplicate records.
	existing, err := s.loader.ExistingResults(ctx, req.StudentID, req.TestName)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load existing results, aborting submission")
		return model.SubmissionSummary{}, fmt.Errorf("%w: %v", errors.ErrExistingStateLoad, err)
	}

	plan, totalScore, missingMeta := Reconcile(req.Outcomes, existing, questionMeta)
	if len(missingMeta) > 0 {
		log.Warn().
			Strs("question_ids", missingMeta).
			Msg("Submitted questions without metadata, scored as 0")
	}

	log.Info().
		Int("creates", plan.Creates()).
		Int("updates", plan.Updates()).
		Float64("total_score", totalScore).
		Msg("Write plan computed")

	exec := s.executor.Execute(ctx, req, plan, questionMeta)

	summary := model.SubmissionSummary{
		SuccessCount:      exec.SuccessCount,
		FailureCount:      exec.FailureCount,
		TotalScore:        totalScore,
		FailedQuestionIDs: exec.FailedQuestionIDs,
	}

	// The report reflects the submission as a whole, so it is maintained as
	// soon as at least one result record landed, even on partial failure.
	// The score is computed from all submitted outcomes, not just the ones
	// whose writes succeeded.
	if exec.SuccessCount > 0 {
		if err := s.reports.Upsert(ctx, req, totalScore); err != nil {
			log.Error().Err(err).Msg("Report upsert failed")
		} else {
			summary.ReportSaved = true
		}
	} else {
		log.Warn().Msg("Every result write failed, skipping report maintenance")
	}

	log.Info().
		Int("success", summary.SuccessCount).
		Int("failed", summary.FailureCount).
		Bool("report_saved", summary.ReportSaved).
		Msg("Submission processed")

	return summary, nil
}
