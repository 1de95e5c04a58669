package errors

import (
	"errors"
	"fmt"
)

var (
	ErrSheetNotFound      = errors.New("sheet not found")
	ErrInvalidSheetFormat = errors.New("invalid sheet format")
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrNoQuestions        = errors.New("no questions found for test")
	ErrTimeTakenRequired  = errors.New("time taken is required for timed tests")
	ErrEmptySubmission    = errors.New("submission contains no outcomes")
	ErrExistingStateLoad  = errors.New("failed to load existing results")
	ErrUnknownLabels      = errors.New("sheet references unknown question labels")
)

// TransportError marks a failed remote store call (network error, timeout,
// or non-success HTTP status). Reads treat it as fatal for the submission;
// writes count it as a per-record failure.
type TransportError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("remote store %s failed with status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("remote store %s failed: %v", e.Op, e.Err)
}

func (e TransportError) Unwrap() error {
	return e.Err
}

func NewTransportError(op string, statusCode int, err error) error {
	return TransportError{Op: op, StatusCode: statusCode, Err: err}
}

// IsTransport reports whether err is (or wraps) a TransportError.
func IsTransport(err error) bool {
	var te TransportError
	return errors.As(err, &te)
}

type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field '%s' with value '%v': %s",
		e.Field, e.Value, e.Message)
}

// RetryableError marks a transient remote failure (rate limit, 5xx) that a
// caller-level retry policy may act on. The entry core itself never retries.
type RetryableError struct {
	Err     error
	Message string
}

func (e RetryableError) Error() string {
	return fmt.Sprintf("retryable error: %s - %s", e.Message, e.Err.Error())
}

func (e RetryableError) Unwrap() error {
	return e.Err
}

func NewRetryableError(err error, message string) error {
	return RetryableError{
		Err:     err,
		Message: message,
	}
}
