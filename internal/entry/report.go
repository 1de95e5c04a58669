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

// ReportMaintainer upserts the single report record per (student, test) and
// notifies the administrator when a write lands.
type ReportMaintainer struct {
	store  Store
	loader *Loader
	cfg    *config.Config
	log    zerolog.Logger
}

func NewReportMaintainer(store Store, loader *Loader, cfg *config.Config) *ReportMaintainer {
	return &ReportMaintainer{
		store:  store,
		loader: loader,
		cfg:    cfg,
		log:    logger.Get(),
	}
}

// Upsert creates or updates the report for the request's (student, test) pair.
// The status property is stamped "entry complete" on every successful write;
// it is a sync confirmation tag, not a state machine. Exactly one notification
// comment is posted iff the write itself succeeded; a failed notification is
// logged and swallowed.
func (m *ReportMaintainer) Upsert(ctx context.Context, req model.SubmissionRequest, totalScore float64) error {
	existingID, err := m.loader.ExistingReport(ctx, req.StudentID, req.TestName)
	if err != nil {
		return err
	}

	props := m.reportProps(req, totalScore)

	pageID := existingID
	if existingID != "" {
		if err := m.store.UpdatePage(ctx, existingID, props); err != nil {
			return fmt.Errorf("update report: %w", err)
		}
		m.log.Info().Str("report_id", existingID).Msg("Report updated")
	} else {
		pageID, err = m.store.CreatePage(ctx, m.cfg.Notion.ReportsDB, props)
		if err != nil {
			return fmt.Errorf("create report: %w", err)
		}
		m.log.Info().Str("report_id", pageID).Msg("Report created")
	}

	m.notify(ctx, pageID)
	return nil
}

func (m *ReportMaintainer) reportProps(req model.SubmissionRequest, totalScore float64) notion.Properties {
	props := notion.Properties{
		notion.PropTitle:        notion.TitleProp(fmt.Sprintf("%s - %s", req.StudentName, req.TestName)),
		notion.PropStudent:      notion.RelationProp(req.StudentID),
		notion.PropTestName:     notion.SelectProp(req.TestName),
		notion.PropScore:        notion.NumberProp(totalScore),
		notion.PropReportStatus: notion.SelectProp(notion.ReportStatusEntryComplete),
		notion.PropExamDate:     notion.DateProp(req.ExamDate.Format("2006-01-02")),
	}

	// An empty people list clears a previously assigned teacher.
	if req.TeacherID != "" {
		props[notion.PropTeacher] = notion.PeopleProp(req.TeacherID)
	} else {
		props[notion.PropTeacher] = notion.PeopleProp()
	}

	if req.TimeTakenMinutes > 0 {
		props[notion.PropTimeTaken] = notion.NumberProp(float64(req.TimeTakenMinutes))
	}

	return props
}

func (m *ReportMaintainer) notify(ctx context.Context, pageID string) {
	err := m.store.CreateComment(ctx, pageID, m.cfg.Notion.AdminUserID, notion.NotificationMessage)
	if err != nil {
		// Best effort only; a lost notification must never fail the submission.
		m.log.Warn().Err(err).Str("report_id", pageID).Msg("Failed to notify administrator")
	}
}
