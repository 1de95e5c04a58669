package model

import "time"

// Outcome is the per-question grading result. The remote store speaks the
// Korean sentinel values (정답/오답); translation happens only at the
// serialization boundary in the notion package.
type Outcome string

const (
	OutcomeCorrect   Outcome = "CORRECT"
	OutcomeIncorrect Outcome = "INCORRECT"
)

func (o Outcome) Valid() bool {
	return o == OutcomeCorrect || o == OutcomeIncorrect
}

// ExistingResult is the request-scoped view of an already persisted result
// record: just enough to decide create-vs-update.
type ExistingResult struct {
	RecordID string
	Outcome  Outcome
}

// ResultRecord represents one student's outcome on one question for one test
// administration. Owned by the remote store; this struct is a transient copy.
type ResultRecord struct {
	ID         string
	StudentID  string
	QuestionID string
	TestName   string
	Outcome    Outcome
	ExamDate   time.Time
}

// ReportRecord is the single aggregate summary per (student, test).
type ReportRecord struct {
	ID               string
	StudentID        string
	TestName         string
	TotalScore       float64
	ExamDate         time.Time
	TeacherID        string
	TimeTakenMinutes int
}

type WriteAction string

const (
	WriteActionCreate WriteAction = "CREATE"
	WriteActionUpdate WriteAction = "UPDATE"
)

// PlannedWrite is one entry of a WritePlan: the intended outcome for a
// question plus whether it lands as a fresh record or an in-place update.
type PlannedWrite struct {
	QuestionID string
	Action     WriteAction
	RecordID   string // set only for updates
	Outcome    Outcome
}

// WritePlan maps question ID to its planned write. Ephemeral; discarded after
// execution.
type WritePlan map[string]PlannedWrite

func (p WritePlan) Creates() int {
	n := 0
	for _, w := range p {
		if w.Action == WriteActionCreate {
			n++
		}
	}
	return n
}

func (p WritePlan) Updates() int {
	return len(p) - p.Creates()
}
