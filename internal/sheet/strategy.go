package sheet

import (
	"context"

	"github.com/windedu/windtest-entry-app/internal/model"
)

type ParsingStrategy interface {
	Parse(ctx context.Context, data []byte) ([]model.OutcomeRow, error)
	Validate(ctx context.Context, rows []model.OutcomeRow) error
}

type ExcelStrategy struct {
	parser    *Parser
	validator *Validator
}

func NewExcelStrategy() ParsingStrategy {
	return &ExcelStrategy{
		parser:    NewParser(),
		validator: NewValidator(),
	}
}

func (s *ExcelStrategy) Parse(ctx context.Context, data []byte) ([]model.OutcomeRow, error) {
	return s.parser.Parse(ctx, data)
}

func (s *ExcelStrategy) Validate(ctx context.Context, rows []model.OutcomeRow) error {
	return s.validator.Validate(ctx, rows)
}
