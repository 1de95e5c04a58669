package worker

import (
	"context"
	"encoding/json"

	"github.com/windedu/windtest-entry-app/internal/config"
	"github.com/windedu/windtest-entry-app/internal/entry"
	"github.com/windedu/windtest-entry-app/internal/journal"
	"github.com/windedu/windtest-entry-app/internal/logger"
	"github.com/windedu/windtest-entry-app/internal/model"
	"github.com/windedu/windtest-entry-app/internal/queue"

	"github.com/rs/zerolog"
)

// EntryWorker drains the submission queue and runs each submission through
// the entry pipeline, journaling the outcome.
type EntryWorker struct {
	cfg        *config.Config
	repo       journal.Repository
	service    *entry.Service
	consumer   *queue.Consumer
	workerPool *WorkerPool
	log        zerolog.Logger
}

func NewEntryWorker(
	cfg *config.Config,
	repo journal.Repository,
	service *entry.Service,
	redisClient *queue.RedisClient,
) *EntryWorker {
	return &EntryWorker{
		cfg:        cfg,
		repo:       repo,
		service:    service,
		consumer:   queue.NewConsumer(redisClient, cfg),
		workerPool: NewWorkerPool(cfg.Workers.Entry.Count),
		log:        logger.Get(),
	}
}

func (w *EntryWorker) Start(ctx context.Context) error {
	w.log.Info().Msg("Starting entry worker")

	w.workerPool.Start(ctx)

	return w.consumer.ConsumeSubmissionQueue(ctx, w.handleMessage)
}

func (w *EntryWorker) Stop() {
	w.log.Info().Msg("Stopping entry worker")
	w.workerPool.Stop()
}

func (w *EntryWorker) handleMessage(ctx context.Context, data []byte) error {
	var job model.SubmissionJob
	if err := json.Unmarshal(data, &job); err != nil {
		w.log.Error().Err(err).Msg("Failed to unmarshal submission job")
		return err
	}

	w.log.Info().
		Int64("submission_id", job.SubmissionID).
		Str("student_id", job.Request.StudentID).
		Str("test_name", job.Request.TestName).
		Msg("Processing submission job")

	w.workerPool.Submit(func(ctx context.Context) error {
		return w.processSubmission(ctx, job)
	})

	return nil
}

func (w *EntryWorker) processSubmission(ctx context.Context, job model.SubmissionJob) error {
	summary, err := w.service.ProcessSubmission(ctx, job.Request)

	status := model.SubmissionStatusDone
	var errorMessage *string
	switch {
	case err != nil:
		status = model.SubmissionStatusFailed
		msg := err.Error()
		errorMessage = &msg
	case summary.FailureCount > 0:
		status = model.SubmissionStatusPartial
	}

	if jErr := w.repo.UpdateSubmissionResult(ctx, job.SubmissionID, summary, status, errorMessage); jErr != nil {
		w.log.Error().Err(jErr).Int64("submission_id", job.SubmissionID).Msg("Failed to journal submission result")
	}

	return err
}
