package model

import "time"

// SubmissionRequest is the immutable input to one entry pass: everything the
// core needs, carried explicitly instead of read from ambient session state.
type SubmissionRequest struct {
	StudentID        string             `json:"student_id"`
	StudentName      string             `json:"student_name"`
	TestName         string             `json:"test_name"`
	TeacherID        string             `json:"teacher_id,omitempty"`
	ExamDate         time.Time          `json:"exam_date"`
	TimeTakenMinutes int                `json:"time_taken_minutes,omitempty"`
	Outcomes         map[string]Outcome `json:"outcomes"` // question ID -> outcome
}

// SubmissionJob is the queued form of a submission, keyed by its journal row.
type SubmissionJob struct {
	SubmissionID int64             `json:"submission_id"`
	Request      SubmissionRequest `json:"request"`
}

// SheetJob points the ingestion worker at an uploaded outcome sheet.
type SheetJob struct {
	SheetID int64  `json:"sheet_id"`
	S3Key   string `json:"s3_key"`
}

// SubmissionSummary is the caller-visible outcome of one entry pass. Every
// count is surfaced; partial failure is reported, never hidden.
type SubmissionSummary struct {
	SuccessCount      int      `json:"success_count"`
	FailureCount      int      `json:"failure_count"`
	TotalScore        float64  `json:"total_score"`
	ReportSaved       bool     `json:"report_saved"`
	FailedQuestionIDs []string `json:"failed_question_ids,omitempty"`
}

type SubmissionStatus string

const (
	SubmissionStatusQueued  SubmissionStatus = "QUEUED"
	SubmissionStatusDone    SubmissionStatus = "DONE"
	SubmissionStatusPartial SubmissionStatus = "PARTIAL"
	SubmissionStatusFailed  SubmissionStatus = "FAILED"
)

// Submission is the journal row for one processed (or queued) submission.
type Submission struct {
	ID           int64            `json:"id" db:"id"`
	StudentID    string           `json:"student_id" db:"student_id"`
	StudentName  string           `json:"student_name" db:"student_name"`
	TestName     string           `json:"test_name" db:"test_name"`
	TotalScore   float64          `json:"total_score" db:"total_score"`
	SuccessCount int              `json:"success_count" db:"success_count"`
	FailureCount int              `json:"failure_count" db:"failure_count"`
	ReportSaved  bool             `json:"report_saved" db:"report_saved"`
	Status       SubmissionStatus `json:"status" db:"status"`
	ErrorMessage *string          `json:"error_message,omitempty" db:"error_message"`
	CreatedAt    time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at" db:"updated_at"`
}

type SheetStatus string

const (
	SheetStatusUploaded   SheetStatus = "UPLOADED"
	SheetStatusParsedOK   SheetStatus = "PARSED_OK"
	SheetStatusParsedFail SheetStatus = "PARSED_FAIL"
)

// Sheet is the journal row for one uploaded bulk outcome sheet.
type Sheet struct {
	ID           int64       `json:"id" db:"id"`
	S3Key        string      `json:"s3_key" db:"s3_key"`
	StudentID    string      `json:"student_id" db:"student_id"`
	StudentName  string      `json:"student_name" db:"student_name"`
	TestName     string      `json:"test_name" db:"test_name"`
	TeacherID    string      `json:"teacher_id" db:"teacher_id"`
	ExamDate     time.Time   `json:"exam_date" db:"exam_date"`
	TimeTaken    int         `json:"time_taken" db:"time_taken"`
	Status       SheetStatus `json:"status" db:"status"`
	ErrorMessage *string     `json:"error_message,omitempty" db:"error_message"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at" db:"updated_at"`
}

// OutcomeRow is one parsed row of a bulk outcome sheet: a question label as
// written by the grader plus the outcome for it.
type OutcomeRow struct {
	Label   string  `json:"label"`
	Outcome Outcome `json:"outcome"`
}
