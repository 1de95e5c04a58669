package entry

import (
	"context"
	"fmt"

	"github.com/windedu/windtest-entry-app/internal/config"
	"github.com/windedu/windtest-entry-app/internal/logger"
	"github.com/windedu/windtest-entry-app/internal/model"
	"github.com/windedu/windtest-entry-app/internal/notion"

	"github.com/rs/zerolog"
)

// Loader reads the already-persisted state for a (student, test) pair.
// It is strictly read-only; a transport failure aborts the submission rather
// than risking duplicate record creation.
type Loader struct {
	store Store
	cfg   *config.Config
	log   zerolog.Logger
}

func NewLoader(store Store, cfg *config.Config) *Loader {
	return &Loader{
		store: store,
		cfg:   cfg,
		log:   logger.Get(),
	}
}

func resultsFilter(studentID, testName string) notion.Filter {
	return notion.AndFilter(
		notion.RelationContains(notion.PropStudent, studentID),
		notion.SelectEquals(notion.PropTestName, testName),
	)
}

// ExistingResults returns question ID -> persisted result for the pair,
// paging through every matching record. The remote store does not enforce
// uniqueness; if duplicates exist the last record in iteration order wins.
func (l *Loader) ExistingResults(ctx context.Context, studentID, testName string) (map[string]model.ExistingResult, error) {
	pages, err := l.store.QueryAll(ctx, l.cfg.Notion.ResultsDB, resultsFilter(studentID, testName))
	if err != nil {
		return nil, fmt.Errorf("query existing results: %w", err)
	}

	existing := make(map[string]model.ExistingResult, len(pages))
	for _, page := range pages {
		questionID := page.FirstRelationID(notion.PropQuestion)
		if questionID == "" {
			l.log.Warn().Str("record_id", page.ID).Msg("Result record without question relation, skipping")
			continue
		}

		outcome, ok := notion.OutcomeFromWire(page.SelectName(notion.PropOutcome))
		if !ok {
			l.log.Warn().
				Str("record_id", page.ID).
				Str("value", page.SelectName(notion.PropOutcome)).
				Msg("Result record with unknown outcome value")
		}

		existing[questionID] = model.ExistingResult{
			RecordID: page.ID,
			Outcome:  outcome,
		}
	}

	return existing, nil
}

// ExistingReport returns the page ID of the report for the pair, or "" when
// none exists. Duplicates are anomalous; the first match is used.
func (l *Loader) ExistingReport(ctx context.Context, studentID, testName string) (string, error) {
	pages, err := l.store.QueryAll(ctx, l.cfg.Notion.ReportsDB, resultsFilter(studentID, testName))
	if err != nil {
		return "", fmt.Errorf("query existing report: %w", err)
	}

	if len(pages) == 0 {
		return "", nil
	}
	if len(pages) > 1 {
		l.log.Warn().
			Str("student_id", studentID).
			Str("test_name", testName).
			Int("count", len(pages)).
			Msg("Multiple report records found, using first")
	}
	return pages[0].ID, nil
}
