package api

// SubmitRequest is the JSON body of POST /api/v1/submissions. Outcomes are
// keyed by question ID with values "CORRECT"/"INCORRECT". A teacher may be
// given by roster name; the handler resolves it to a workspace user.
type SubmitRequest struct {
	StudentID        string            `json:"student_id" binding:"required"`
	StudentName      string            `json:"student_name" binding:"required"`
	TestName         string            `json:"test_name" binding:"required"`
	TeacherName      string            `json:"teacher_name"`
	ExamDate         string            `json:"exam_date"` // YYYY-MM-DD, defaults to today
	TimeTakenMinutes int               `json:"time_taken_minutes"`
	Outcomes         map[string]string `json:"outcomes" binding:"required"`
}

type SubmitResponse struct {
	SubmissionID    int64  `json:"submission_id"`
	Status          string `json:"status"`
	TeacherResolved bool   `json:"teacher_resolved"`
	Message         string `json:"message,omitempty"`
}

type SheetUploadResponse struct {
	SheetID         int64  `json:"sheet_id"`
	S3Key           string `json:"s3_key"`
	Status          string `json:"status"`
	TeacherResolved bool   `json:"teacher_resolved"`
}
