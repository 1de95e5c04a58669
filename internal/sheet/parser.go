package sheet

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/windedu/windtest-entry-app/internal/catalog"
	"github.com/windedu/windtest-entry-app/internal/model"
	"github.com/windedu/windtest-entry-app/pkg/errors"

	"github.com/xuri/excelize/v2"
)

// Parser reads bulk outcome sheets: one row per question, a `question` column
// with the grader-written label and an `outcome` column with the mark.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(ctx context.Context, data []byte) ([]model.OutcomeRow, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open sheet: %w", err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.ErrInvalidSheetFormat
	}

	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}

	if len(rows) < 2 { // Header + at least one data row
		return nil, errors.ErrInvalidSheetFormat
	}

	header := rows[0]
	columnMap := make(map[string]int)
	for i, col := range header {
		columnMap[strings.ToLower(strings.TrimSpace(col))] = i
	}

	for _, col := range []string{"question", "outcome"} {
		if _, exists := columnMap[col]; !exists {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	var outcomes []model.OutcomeRow
	for i, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}

		parsed, err := p.parseRow(row, columnMap)
		if err != nil {
			return nil, fmt.Errorf("error parsing row %d: %w", i+2, err)
		}
		outcomes = append(outcomes, *parsed)
	}

	return outcomes, nil
}

func (p *Parser) parseRow(row []string, columnMap map[string]int) (*model.OutcomeRow, error) {
	getValue := func(colName string) string {
		if idx, exists := columnMap[colName]; exists && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	label := catalog.CanonicalLabel(getValue("question"))
	if label == "" {
		return nil, fmt.Errorf("question label is required")
	}

	outcomeStr := getValue("outcome")
	if outcomeStr == "" {
		return nil, fmt.Errorf("outcome is required")
	}

	outcome, ok := parseOutcome(outcomeStr)
	if !ok {
		return nil, fmt.Errorf("invalid outcome value: %s", outcomeStr)
	}

	return &model.OutcomeRow{Label: label, Outcome: outcome}, nil
}

// parseOutcome accepts the marks graders actually write: O/X, the Korean
// select values, or the English words.
func parseOutcome(s string) (model.Outcome, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "o", "정답", "correct":
		return model.OutcomeCorrect, true
	case "x", "오답", "incorrect":
		return model.OutcomeIncorrect, true
	default:
		return "", false
	}
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
