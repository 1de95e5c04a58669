package catalog

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/windedu/windtest-entry-app/internal/config"
	"github.com/windedu/windtest-entry-app/internal/logger"
	"github.com/windedu/windtest-entry-app/internal/model"
	"github.com/windedu/windtest-entry-app/internal/notion"

	"github.com/rs/zerolog"
)

// Remote is the slice of the store client the catalog needs.
type Remote interface {
	QueryAll(ctx context.Context, databaseID string, filter notion.Filter) ([]notion.Page, error)
	ListUsers(ctx context.Context) ([]notion.PersonRef, error)
	MultiSelectOptions(ctx context.Context, databaseID, property string) ([]string, error)
}

// Service serves read-only catalog data (students, tests, questions,
// workspace users) with a TTL cache in front of each remote fetch. Entry
// forms hit these lists on every render; the remote store should not.
type Service struct {
	remote Remote
	cfg    *config.Config
	log    zerolog.Logger

	mu        sync.RWMutex
	students  cached
	tests     cached
	users     cached
	questions map[string]cached // keyed by test name
}

type cached struct {
	value     interface{}
	expiresAt time.Time
}

func (c cached) fresh(now time.Time) bool {
	return c.value != nil && now.Before(c.expiresAt)
}

func NewService(remote Remote, cfg *config.Config) *Service {
	return &Service{
		remote:    remote,
		cfg:       cfg,
		log:       logger.Get(),
		questions: make(map[string]cached),
	}
}

// Students returns every student, sorted by display name.
func (s *Service) Students(ctx context.Context) ([]model.Student, error) {
	now := time.Now()

	s.mu.RLock()
	if s.students.fresh(now) {
		students := s.students.value.([]model.Student)
		s.mu.RUnlock()
		return students, nil
	}
	s.mu.RUnlock()

	pages, err := s.remote.QueryAll(ctx, s.cfg.Notion.StudentsDB, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch students: %w", err)
	}

	students := make([]model.Student, 0, len(pages))
	for _, page := range pages {
		name := page.TitleText(notion.PropTitle)
		if name == "" {
			continue
		}
		students = append(students, model.Student{ID: page.ID, Name: name})
	}
	sort.Slice(students, func(i, j int) bool { return students[i].Name < students[j].Name })

	s.mu.Lock()
	s.students = cached{value: students, expiresAt: now.Add(s.cfg.Entry.StudentsCacheTTL)}
	s.mu.Unlock()

	return students, nil
}

// Tests returns the known test names, read from the Questions database
// schema's multi_select options, sorted.
func (s *Service) Tests(ctx context.Context) ([]string, error) {
	now := time.Now()

	s.mu.RLock()
	if s.tests.fresh(now) {
		tests := s.tests.value.([]string)
		s.mu.RUnlock()
		return tests, nil
	}
	s.mu.RUnlock()

	tests, err := s.remote.MultiSelectOptions(ctx, s.cfg.Notion.QuestionsDB, notion.PropTestName)
	if err != nil {
		return nil, fmt.Errorf("fetch tests: %w", err)
	}
	sort.Strings(tests)

	s.mu.Lock()
	s.tests = cached{value: tests, expiresAt: now.Add(s.cfg.Entry.QuestionsCacheTTL)}
	s.mu.Unlock()

	return tests, nil
}

// QuestionsForTest returns the questions of a test in natural label order.
func (s *Service) QuestionsForTest(ctx context.Context, testName string) ([]model.Question, error) {
	now := time.Now()

	s.mu.RLock()
	if entry, ok := s.questions[testName]; ok && entry.fresh(now) {
		questions := entry.value.([]model.Question)
		s.mu.RUnlock()
		return questions, nil
	}
	s.mu.RUnlock()

	filter := notion.MultiSelectContains(notion.PropTestName, testName)
	pages, err := s.remote.QueryAll(ctx, s.cfg.Notion.QuestionsDB, filter)
	if err != nil {
		return nil, fmt.Errorf("fetch questions for %q: %w", testName, err)
	}

	questions := make([]model.Question, 0, len(pages))
	for i, page := range pages {
		title := page.TitleText(notion.PropTitle)
		questions = append(questions, model.Question{
			ID:    page.ID,
			Title: title,
			// Sequential position is the fallback when the title carries
			// no "_NN" segment.
			Label:      LabelFromTitle(title, fmt.Sprintf("%d", i+1)),
			Text:       page.RichTextValue(notion.PropQuestionText),
			Unit:       page.SelectName(notion.PropUnit),
			Types:      page.MultiSelectNames(notion.PropQTypes),
			Difficulty: page.SelectName(notion.PropDifficulty),
			Score:      page.NumberValue(notion.PropWeight),
		})
	}
	SortQuestionsByLabel(questions)

	s.mu.Lock()
	s.questions[testName] = cached{value: questions, expiresAt: now.Add(s.cfg.Entry.QuestionsCacheTTL)}
	s.mu.Unlock()

	return questions, nil
}

// Users returns the workspace's person users.
func (s *Service) Users(ctx context.Context) ([]model.User, error) {
	now := time.Now()

	s.mu.RLock()
	if s.users.fresh(now) {
		users := s.users.value.([]model.User)
		s.mu.RUnlock()
		return users, nil
	}
	s.mu.RUnlock()

	refs, err := s.remote.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch users: %w", err)
	}

	users := make([]model.User, 0, len(refs))
	for _, ref := range refs {
		if ref.Type != "person" {
			continue
		}
		user := model.User{ID: ref.ID, Name: ref.Name}
		if ref.Person != nil {
			user.Email = ref.Person.Email
		}
		users = append(users, user)
	}

	s.mu.Lock()
	s.users = cached{value: users, expiresAt: now.Add(s.cfg.Entry.StudentsCacheTTL)}
	s.mu.Unlock()

	return users, nil
}

// Refresh drops every cache and re-fetches the slow-moving lists. The refresh
// worker calls this on an interval so entry forms stay warm.
func (s *Service) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.students = cached{}
	s.tests = cached{}
	s.users = cached{}
	s.questions = make(map[string]cached)
	s.mu.Unlock()

	if _, err := s.Students(ctx); err != nil {
		return err
	}
	if _, err := s.Users(ctx); err != nil {
		return err
	}
	tests, err := s.Tests(ctx)
	if err != nil {
		return err
	}
	for _, test := range tests {
		if _, err := s.QuestionsForTest(ctx, test); err != nil {
			return err
		}
	}

	s.log.Debug().Int("tests", len(tests)).Msg("Catalog refreshed")
	return nil
}
