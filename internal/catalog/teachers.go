package catalog

import (
	"strings"

	"github.com/windedu/windtest-entry-app/internal/config"
	"github.com/windedu/windtest-entry-app/internal/logger"
	"github.com/windedu/windtest-entry-app/internal/model"

	"github.com/rs/zerolog"
)

// TeacherResolver maps the configured teacher roster onto workspace users.
// Workspace display names are not reliable: some accounts register the
// Korean family name first, some are spaced, some reversed ("지현 김" for
// 김지현). Matching tries email first, then increasingly lenient name forms.
type TeacherResolver struct {
	roster []config.TeacherConfig
	log    zerolog.Logger
}

func NewTeacherResolver(cfg *config.Config) *TeacherResolver {
	return &TeacherResolver{
		roster: cfg.Entry.Teachers,
		log:    logger.Get(),
	}
}

// Names returns the roster's teacher names in configured order.
func (r *TeacherResolver) Names() []string {
	names := make([]string, len(r.roster))
	for i, t := range r.roster {
		names[i] = t.Name
	}
	return names
}

// Resolve finds the workspace user for a roster teacher name. Reports with an
// unresolved teacher are saved without the teacher tag; the caller logs that.
func (r *TeacherResolver) Resolve(teacherName string, users []model.User) (model.User, bool) {
	var entry *config.TeacherConfig
	for i := range r.roster {
		if r.roster[i].Name == teacherName {
			entry = &r.roster[i]
			break
		}
	}
	if entry == nil {
		return model.User{}, false
	}

	// 1. Email is the strongest signal.
	if entry.Email != "" {
		for _, u := range users {
			if u.Email != "" && strings.EqualFold(u.Email, entry.Email) {
				return u, true
			}
		}
	}

	// 2. Exact display name.
	for _, u := range users {
		if u.Name == entry.Name {
			return u, true
		}
	}

	target := strings.ReplaceAll(entry.Name, " ", "")

	for _, u := range users {
		clean := strings.ReplaceAll(u.Name, " ", "")

		// 3. Same name with spacing differences.
		if clean == target {
			return u, true
		}

		// 4. Two-part name registered in reversed order.
		parts := strings.Split(u.Name, " ")
		if len(parts) == 2 && parts[1]+parts[0] == target {
			return u, true
		}
	}

	r.log.Warn().Str("teacher", teacherName).Msg("No workspace user matched teacher")
	return model.User{}, false
}
