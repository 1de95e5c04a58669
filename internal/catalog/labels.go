package catalog

import (
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/windedu/windtest-entry-app/internal/model"
)

// CanonicalLabel normalizes a question label the way graders write them:
// whitespace trimmed and leading zeros stripped, so "03" matches "3". A bare
// "0" stays "0".
func CanonicalLabel(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 1 && s[0] == '0' {
		trimmed := strings.TrimLeft(s, "0")
		if trimmed == "" {
			return "0"
		}
		return trimmed
	}
	return s
}

// LabelFromTitle derives the display label from a question title of the form
// "TestName_NN": the segment after the last underscore, canonicalized.
// Returns fallback when the title has no underscore segment.
func LabelFromTitle(title, fallback string) string {
	if title == "" {
		return fallback
	}
	parts := strings.Split(title, "_")
	if len(parts) < 2 {
		return fallback
	}
	return CanonicalLabel(parts[len(parts)-1])
}

// ParseLabelList splits free-form grader input ("1-1, 03 7;9") into canonical
// labels. Commas, semicolons, and any whitespace all separate.
func ParseLabelList(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ';' || unicode.IsSpace(r)
	})

	labels := make([]string, 0, len(fields))
	for _, f := range fields {
		if label := CanonicalLabel(f); label != "" {
			labels = append(labels, label)
		}
	}
	return labels
}

// LabelLess orders labels naturally: digit runs compare numerically, so
// "1-1" < "1-2" < "1-10" < "2", and "1" sorts before "1-1".
func LabelLess(a, b string) bool {
	aParts := splitRuns(a)
	bParts := splitRuns(b)

	for i := 0; i < len(aParts) && i < len(bParts); i++ {
		ap, bp := aParts[i], bParts[i]
		an, aIsNum := parseNum(ap)
		bn, bIsNum := parseNum(bp)

		switch {
		case aIsNum && bIsNum:
			if an != bn {
				return an < bn
			}
		case aIsNum != bIsNum:
			// Numbers sort before text, matching how labels read.
			return aIsNum
		default:
			al, bl := strings.ToLower(ap), strings.ToLower(bp)
			if al != bl {
				return al < bl
			}
		}
	}
	return len(aParts) < len(bParts)
}

// SortQuestionsByLabel sorts questions in display order.
func SortQuestionsByLabel(questions []model.Question) {
	sort.SliceStable(questions, func(i, j int) bool {
		return LabelLess(questions[i].Label, questions[j].Label)
	})
}

// splitRuns breaks a label into alternating digit and non-digit runs.
func splitRuns(s string) []string {
	var runs []string
	start := 0
	for i := 1; i <= len(s); i++ {
		if i == len(s) || isDigit(s[i]) != isDigit(s[i-1]) {
			runs = append(runs, s[start:i])
			start = i
		}
	}
	return runs
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func parseNum(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
