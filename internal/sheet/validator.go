package sheet

import (
	"context"

	"github.com/windedu/windtest-entry-app/internal/model"
	"github.com/windedu/windtest-entry-app/pkg/errors"
)

type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

func (v *Validator) Validate(ctx context.Context, rows []model.OutcomeRow) error {
	if len(rows) == 0 {
		return errors.ErrInvalidSheetFormat
	}

	seen := make(map[string]bool, len(rows))
	for _, row := range rows {
		if seen[row.Label] {
			return errors.ValidationError{
				Field:   "question",
				Value:   row.Label,
				Message: "duplicate question label in sheet",
			}
		}
		seen[row.Label] = true

		if !row.Outcome.Valid() {
			return errors.ValidationError{
				Field:   "outcome",
				Value:   string(row.Outcome),
				Message: "outcome must be correct or incorrect",
			}
		}
	}

	return nil
}
