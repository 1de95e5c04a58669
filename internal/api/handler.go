package api

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/windedu/windtest-entry-app/internal/catalog"
	"github.com/windedu/windtest-entry-app/internal/config"
	"github.com/windedu/windtest-entry-app/internal/journal"
	"github.com/windedu/windtest-entry-app/internal/logger"
	"github.com/windedu/windtest-entry-app/internal/model"
	"github.com/windedu/windtest-entry-app/internal/storage"
	pkgerrors "github.com/windedu/windtest-entry-app/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Enqueuer is the slice of the queue producer the handlers need; tests plug
// in a recording fake.
type Enqueuer interface {
	EnqueueSubmissionJob(ctx context.Context, job model.SubmissionJob) error
	EnqueueSheetJob(ctx context.Context, job model.SheetJob) error
}

// Catalog is the read side the entry forms consume.
type Catalog interface {
	Students(ctx context.Context) ([]model.Student, error)
	Tests(ctx context.Context) ([]string, error)
	QuestionsForTest(ctx context.Context, testName string) ([]model.Question, error)
	Users(ctx context.Context) ([]model.User, error)
}

type Handler struct {
	repo     journal.Repository
	producer Enqueuer
	storage  storage.Storage
	catalog  Catalog
	teachers *catalog.TeacherResolver
	cfg      *config.Config
	log      zerolog.Logger
}

func NewHandler(
	repo journal.Repository,
	producer Enqueuer,
	store storage.Storage,
	catalogSvc Catalog,
	cfg *config.Config,
) *Handler {
	return &Handler{
		repo:     repo,
		producer: producer,
		storage:  store,
		catalog:  catalogSvc,
		teachers: catalog.NewTeacherResolver(cfg),
		cfg:      cfg,
		log:      logger.Get(),
	}
}

// SubmitResults validates one outcome set and queues it for the entry worker.
func (h *Handler) SubmitResults(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	outcomes, err := parseOutcomes(req.Outcomes)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if h.cfg.IsTimedTest(req.TestName) && req.TimeTakenMinutes <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": pkgerrors.ErrTimeTakenRequired.Error()})
		return
	}

	examDate, err := parseExamDate(req.ExamDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "exam_date must be YYYY-MM-DD"})
		return
	}

	teacherID, teacherResolved := h.resolveTeacher(c.Request.Context(), req.TeacherName)

	submissionID, err := h.repo.InsertSubmission(c.Request.Context(), &model.Submission{
		StudentID:   req.StudentID,
		StudentName: req.StudentName,
		TestName:    req.TestName,
		Status:      model.SubmissionStatusQueued,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to journal submission")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	job := model.SubmissionJob{
		SubmissionID: submissionID,
		Request: model.SubmissionRequest{
			StudentID:        req.StudentID,
			StudentName:      req.StudentName,
			TestName:         req.TestName,
			TeacherID:        teacherID,
			ExamDate:         examDate,
			TimeTakenMinutes: req.TimeTakenMinutes,
			Outcomes:         outcomes,
		},
	}

	if err := h.producer.EnqueueSubmissionJob(c.Request.Context(), job); err != nil {
		h.log.Error().Err(err).Msg("Failed to enqueue submission job")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to queue submission"})
		return
	}

	h.log.Info().
		Int64("submission_id", submissionID).
		Str("student_id", req.StudentID).
		Str("test_name", req.TestName).
		Int("outcomes", len(outcomes)).
		Msg("Submission enqueued")

	resp := SubmitResponse{
		SubmissionID:    submissionID,
		Status:          string(model.SubmissionStatusQueued),
		TeacherResolved: teacherResolved,
	}
	if req.TeacherName != "" && !teacherResolved {
		resp.Message = fmt.Sprintf("No workspace user found for teacher %q; report will be saved without teacher tag", req.TeacherName)
	}
	c.JSON(http.StatusAccepted, resp)
}

// UploadSheet accepts a bulk outcome sheet, stores it, and queues ingestion.
func (h *Handler) UploadSheet(c *gin.Context) {
	studentID := c.PostForm("student_id")
	studentName := c.PostForm("student_name")
	testName := c.PostForm("test_name")
	if studentID == "" || studentName == "" || testName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "student_id, student_name and test_name are required"})
		return
	}

	timeTaken, _ := strconv.Atoi(c.PostForm("time_taken_minutes"))
	if h.cfg.IsTimedTest(testName) && timeTaken <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": pkgerrors.ErrTimeTakenRequired.Error()})
		return
	}

	examDate, err := parseExamDate(c.PostForm("exam_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "exam_date must be YYYY-MM-DD"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file"})
		return
	}
	defer file.Close()

	teacherID, teacherResolved := h.resolveTeacher(c.Request.Context(), c.PostForm("teacher_name"))

	key := fmt.Sprintf("sheets/%d_%s", time.Now().UnixNano(), filepath.Base(fileHeader.Filename))
	if err := h.storage.Upload(c.Request.Context(), key, file); err != nil {
		h.log.Error().Err(err).Str("s3_key", key).Msg("Failed to store sheet")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store sheet"})
		return
	}

	sheetID, err := h.repo.InsertSheet(c.Request.Context(), &model.Sheet{
		S3Key:       key,
		StudentID:   studentID,
		StudentName: studentName,
		TestName:    testName,
		TeacherID:   teacherID,
		ExamDate:    examDate,
		TimeTaken:   timeTaken,
		Status:      model.SheetStatusUploaded,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to journal sheet")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := h.producer.EnqueueSheetJob(c.Request.Context(), model.SheetJob{
		SheetID: sheetID,
		S3Key:   key,
	}); err != nil {
		h.log.Error().Err(err).Msg("Failed to enqueue sheet job")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to queue sheet"})
		return
	}

	h.log.Info().Int64("sheet_id", sheetID).Str("s3_key", key).Msg("Sheet enqueued for ingestion")

	c.JSON(http.StatusAccepted, SheetUploadResponse{
		SheetID:         sheetID,
		S3Key:           key,
		Status:          string(model.SheetStatusUploaded),
		TeacherResolved: teacherResolved,
	})
}

func (h *Handler) GetSubmission(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission ID"})
		return
	}

	sub, err := h.repo.GetSubmission(c.Request.Context(), id)
	if err == pkgerrors.ErrSubmissionNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		return
	}
	if err != nil {
		h.log.Error().Err(err).Int64("submission_id", id).Msg("Failed to get submission")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, sub)
}

func (h *Handler) ListSubmissions(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 || limit > 200 {
		limit = 20
	}

	subs, err := h.repo.ListRecentSubmissions(c.Request.Context(), limit)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list submissions")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"submissions": subs})
}

func (h *Handler) ListStudents(c *gin.Context) {
	students, err := h.catalog.Students(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to fetch students")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Remote store unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"students": students})
}

func (h *Handler) ListTests(c *gin.Context) {
	tests, err := h.catalog.Tests(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to fetch tests")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Remote store unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tests": tests})
}

func (h *Handler) ListQuestions(c *gin.Context) {
	testName := c.Param("name")
	questions, err := h.catalog.QuestionsForTest(c.Request.Context(), testName)
	if err != nil {
		h.log.Error().Err(err).Str("test_name", testName).Msg("Failed to fetch questions")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Remote store unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"test_name": testName,
		"timed":     h.cfg.IsTimedTest(testName),
		"questions": questions,
	})
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": h.cfg.App.Name,
		"version": h.cfg.App.Version,
	})
}

// resolveTeacher maps a roster teacher name to a workspace user ID. An empty
// name or a failed match yields an empty ID; the report is then saved without
// the teacher tag.
func (h *Handler) resolveTeacher(ctx context.Context, teacherName string) (string, bool) {
	if teacherName == "" {
		return "", false
	}

	users, err := h.catalog.Users(ctx)
	if err != nil {
		h.log.Warn().Err(err).Msg("Workspace users unavailable, teacher left unresolved")
		return "", false
	}

	user, ok := h.teachers.Resolve(teacherName, users)
	if !ok {
		return "", false
	}
	return user.ID, true
}

func parseOutcomes(raw map[string]string) (map[string]model.Outcome, error) {
	if len(raw) == 0 {
		return nil, pkgerrors.ErrEmptySubmission
	}

	outcomes := make(map[string]model.Outcome, len(raw))
	for questionID, value := range raw {
		outcome := model.Outcome(value)
		if !outcome.Valid() {
			return nil, fmt.Errorf("invalid outcome %q for question %s", value, questionID)
		}
		outcomes[questionID] = outcome
	}
	return outcomes, nil
}

func parseExamDate(s string) (time.Time, error) {
	if s == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse("2006-01-02", s)
}
