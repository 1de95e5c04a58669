package journal

import (
	"context"
	"database/sql"
	"errors"

	"github.com/windedu/windtest-entry-app/internal/model"
	pkgerrors "github.com/windedu/windtest-entry-app/pkg/errors"
)

// Repository journals submissions and uploaded sheets locally so the API can
// answer status queries without touching the remote store.
type Repository interface {
	InsertSubmission(ctx context.Context, sub *model.Submission) (int64, error)
	UpdateSubmissionResult(ctx context.Context, id int64, summary model.SubmissionSummary, status model.SubmissionStatus, errorMessage *string) error
	GetSubmission(ctx context.Context, id int64) (*model.Submission, error)
	ListRecentSubmissions(ctx context.Context, limit int) ([]model.Submission, error)

	InsertSheet(ctx context.Context, sheet *model.Sheet) (int64, error)
	UpdateSheetStatus(ctx context.Context, id int64, status model.SheetStatus, errorMessage *string) error
	GetSheet(ctx context.Context, id int64) (*model.Sheet, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) InsertSubmission(ctx context.Context, sub *model.Submission) (int64, error) {
	query := `INSERT INTO submissions
		(student_id, student_name, test_name, total_score, success_count, failure_count, report_saved, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		sub.StudentID, sub.StudentName, sub.TestName,
		sub.TotalScore, sub.SuccessCount, sub.FailureCount, sub.ReportSaved, sub.Status)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (r *repository) UpdateSubmissionResult(ctx context.Context, id int64, summary model.SubmissionSummary, status model.SubmissionStatus, errorMessage *string) error {
	query := `UPDATE submissions
		SET total_score = ?, success_count = ?, failure_count = ?, report_saved = ?,
		    status = ?, error_message = ?, updated_at = NOW()
		WHERE id = ?`

	_, err := r.db.ExecContext(ctx, query,
		summary.TotalScore, summary.SuccessCount, summary.FailureCount, summary.ReportSaved,
		status, errorMessage, id)
	return err
}

func (r *repository) GetSubmission(ctx context.Context, id int64) (*model.Submission, error) {
	query := `SELECT id, student_id, student_name, test_name, total_score, success_count,
		failure_count, report_saved, status, error_message, created_at, updated_at
		FROM submissions WHERE id = ?`

	var sub model.Submission
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&sub.ID, &sub.StudentID, &sub.StudentName, &sub.TestName, &sub.TotalScore,
		&sub.SuccessCount, &sub.FailureCount, &sub.ReportSaved, &sub.Status,
		&sub.ErrorMessage, &sub.CreatedAt, &sub.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkgerrors.ErrSubmissionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *repository) ListRecentSubmissions(ctx context.Context, limit int) ([]model.Submission, error) {
	query := `SELECT id, student_id, student_name, test_name, total_score, success_count,
		failure_count, report_saved, status, error_message, created_at, updated_at
		FROM submissions ORDER BY created_at DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []model.Submission
	for rows.Next() {
		var sub model.Submission
		if err := rows.Scan(
			&sub.ID, &sub.StudentID, &sub.StudentName, &sub.TestName, &sub.TotalScore,
			&sub.SuccessCount, &sub.FailureCount, &sub.ReportSaved, &sub.Status,
			&sub.ErrorMessage, &sub.CreatedAt, &sub.UpdatedAt,
		); err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

func (r *repository) InsertSheet(ctx context.Context, sheet *model.Sheet) (int64, error) {
	query := `INSERT INTO sheets
		(s3_key, student_id, student_name, test_name, teacher_id, exam_date, time_taken, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		sheet.S3Key, sheet.StudentID, sheet.StudentName, sheet.TestName,
		sheet.TeacherID, sheet.ExamDate, sheet.TimeTaken, sheet.Status)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (r *repository) UpdateSheetStatus(ctx context.Context, id int64, status model.SheetStatus, errorMessage *string) error {
	query := `UPDATE sheets SET status = ?, error_message = ?, updated_at = NOW() WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, status, errorMessage, id)
	return err
}

func (r *repository) GetSheet(ctx context.Context, id int64) (*model.Sheet, error) {
	query := `SELECT id, s3_key, student_id, student_name, test_name, teacher_id, exam_date,
		time_taken, status, error_message, created_at, updated_at
		FROM sheets WHERE id = ?`

	var sheet model.Sheet
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&sheet.ID, &sheet.S3Key, &sheet.StudentID, &sheet.StudentName, &sheet.TestName,
		&sheet.TeacherID, &sheet.ExamDate, &sheet.TimeTaken, &sheet.Status,
		&sheet.ErrorMessage, &sheet.CreatedAt, &sheet.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkgerrors.ErrSheetNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sheet, nil
}
