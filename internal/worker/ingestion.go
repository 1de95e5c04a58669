package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/windedu/windtest-entry-app/internal/catalog"
	"github.com/windedu/windtest-entry-app/internal/config"
	"github.com/windedu/windtest-entry-app/internal/journal"
	"github.com/windedu/windtest-entry-app/internal/logger"
	"github.com/windedu/windtest-entry-app/internal/model"
	"github.com/windedu/windtest-entry-app/internal/queue"
	"github.com/windedu/windtest-entry-app/internal/sheet"
	"github.com/windedu/windtest-entry-app/internal/storage"

	"github.com/rs/zerolog"
)

// IngestionWorker turns uploaded outcome sheets into submission jobs:
// download from S3, parse, validate, resolve question labels against the
// catalog, enqueue.
type IngestionWorker struct {
	cfg        *config.Config
	repo       journal.Repository
	storage    storage.Storage
	parser     sheet.ParsingStrategy
	catalog    *catalog.Service
	producer   *queue.Producer
	consumer   *queue.Consumer
	workerPool *WorkerPool
	log        zerolog.Logger
}

func NewIngestionWorker(
	cfg *config.Config,
	repo journal.Repository,
	store storage.Storage,
	catalogSvc *catalog.Service,
	redisClient *queue.RedisClient,
) *IngestionWorker {
	return &IngestionWorker{
		cfg:        cfg,
		repo:       repo,
		storage:    store,
		parser:     sheet.NewExcelStrategy(),
		catalog:    catalogSvc,
		producer:   queue.NewProducer(redisClient, cfg),
		consumer:   queue.NewConsumer(redisClient, cfg),
		workerPool: NewWorkerPool(cfg.Workers.Ingestion.Count),
		log:        logger.Get(),
	}
}

func (w *IngestionWorker) Start(ctx context.Context) error {
	w.log.Info().Msg("Starting ingestion worker")

	w.workerPool.Start(ctx)

	return w.consumer.ConsumeSheetQueue(ctx, w.handleMessage)
}

func (w *IngestionWorker) Stop() {
	w.log.Info().Msg("Stopping ingestion worker")
	w.workerPool.Stop()
}

func (w *IngestionWorker) handleMessage(ctx context.Context, data []byte) error {
	var job model.SheetJob
	if err := json.Unmarshal(data, &job); err != nil {
		w.log.Error().Err(err).Msg("Failed to unmarshal sheet job")
		return err
	}

	w.log.Info().Int64("sheet_id", job.SheetID).Str("s3_key", job.S3Key).Msg("Processing sheet job")

	w.workerPool.Submit(func(ctx context.Context) error {
		return w.processSheet(ctx, job)
	})

	return nil
}

func (w *IngestionWorker) processSheet(ctx context.Context, job model.SheetJob) error {
	log := w.log.With().Int64("sheet_id", job.SheetID).Logger()

	sheetRow, err := w.repo.GetSheet(ctx, job.SheetID)
	if err != nil {
		log.Error().Err(err).Msg("Sheet row not found")
		return err
	}

	rows, err := w.loadAndParse(ctx, job)
	if err != nil {
		log.Error().Err(err).Msg("Failed to parse sheet")
		return w.fail(ctx, job.SheetID, err)
	}

	outcomes, err := w.resolveLabels(ctx, sheetRow.TestName, rows)
	if err != nil {
		log.Error().Err(err).Msg("Failed to resolve question labels")
		return w.fail(ctx, job.SheetID, err)
	}

	request := model.SubmissionRequest{
		StudentID:        sheetRow.StudentID,
		StudentName:      sheetRow.StudentName,
		TestName:         sheetRow.TestName,
		TeacherID:        sheetRow.TeacherID,
		ExamDate:         sheetRow.ExamDate,
		TimeTakenMinutes: sheetRow.TimeTaken,
		Outcomes:         outcomes,
	}

	submissionID, err := w.repo.InsertSubmission(ctx, &model.Submission{
		StudentID:   request.StudentID,
		StudentName: request.StudentName,
		TestName:    request.TestName,
		Status:      model.SubmissionStatusQueued,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to journal submission")
		return w.fail(ctx, job.SheetID, err)
	}

	if err := w.producer.EnqueueSubmissionJob(ctx, model.SubmissionJob{
		SubmissionID: submissionID,
		Request:      request,
	}); err != nil {
		log.Error().Err(err).Msg("Failed to enqueue submission job")
		return w.fail(ctx, job.SheetID, err)
	}

	if err := w.repo.UpdateSheetStatus(ctx, job.SheetID, model.SheetStatusParsedOK, nil); err != nil {
		log.Error().Err(err).Msg("Failed to update sheet status")
	}

	log.Info().
		Int64("submission_id", submissionID).
		Int("outcomes", len(outcomes)).
		Msg("Sheet ingested")
	return nil
}

func (w *IngestionWorker) loadAndParse(ctx context.Context, job model.SheetJob) ([]model.OutcomeRow, error) {
	reader, err := w.storage.Download(ctx, job.S3Key)
	if err != nil {
		return nil, fmt.Errorf("download sheet: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read sheet data: %w", err)
	}

	rows, err := w.parser.Parse(ctx, data)
	if err != nil {
		return nil, err
	}

	if err := w.parser.Validate(ctx, rows); err != nil {
		return nil, err
	}

	return rows, nil
}

// resolveLabels maps grader-written labels to question IDs. A sheet naming
// questions that do not exist for the test is rejected whole; silently
// dropping rows would hide grading data.
func (w *IngestionWorker) resolveLabels(ctx context.Context, testName string, rows []model.OutcomeRow) (map[string]model.Outcome, error) {
	questions, err := w.catalog.QuestionsForTest(ctx, testName)
	if err != nil {
		return nil, err
	}

	byLabel := make(map[string]string, len(questions))
	for _, q := range questions {
		byLabel[q.Label] = q.ID
	}

	outcomes := make(map[string]model.Outcome, len(rows))
	var unknown []string
	for _, row := range rows {
		questionID, ok := byLabel[row.Label]
		if !ok {
			unknown = append(unknown, row.Label)
			continue
		}
		outcomes[questionID] = row.Outcome
	}

	if len(unknown) > 0 {
		return nil, fmt.Errorf("unknown question labels [%s] for test %q", strings.Join(unknown, ", "), testName)
	}
	return outcomes, nil
}

func (w *IngestionWorker) fail(ctx context.Context, sheetID int64, cause error) error {
	msg := cause.Error()
	if err := w.repo.UpdateSheetStatus(ctx, sheetID, model.SheetStatusParsedFail, &msg); err != nil {
		w.log.Error().Err(err).Int64("sheet_id", sheetID).Msg("Failed to mark sheet as failed")
	}
	return cause
}
