package catalog

import (
	"reflect"
	"sort"
	"testing"

	"github.com/windedu/windtest-entry-app/internal/model"
)

func TestCanonicalLabel(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"3", "3"},
		{"03", "3"},
		{"007", "7"},
		{" 12 ", "12"},
		{"0", "0"},
		{"00", "0"},
		{"1-1", "1-1"},
		{"0900", "900"},
		{"", ""},
	}
	for _, c := range cases {
		if got := CanonicalLabel(c.in); got != c.want {
			t.Errorf("CanonicalLabel(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestLabelFromTitle(t *testing.T) {
	cases := []struct {
		title, fallback, want string
	}{
		{"기초 3회차_01", "x", "1"},
		{"심화 1회차_12", "x", "12"},
		{"기초_모의_07", "x", "7"},
		{"no underscore", "9", "9"},
		{"", "5", "5"},
	}
	for _, c := range cases {
		if got := LabelFromTitle(c.title, c.fallback); got != c.want {
			t.Errorf("LabelFromTitle(%q, %q) = %q, want %q", c.title, c.fallback, got, c.want)
		}
	}
}

func TestParseLabelList(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"1, 2, 3", []string{"1", "2", "3"}},
		{"1-1 03;7", []string{"1-1", "3", "7"}},
		{"  5  ", []string{"5"}},
		{",,;;", []string{}},
		{"", []string{}},
	}
	for _, c := range cases {
		if got := ParseLabelList(c.in); !reflect.DeepEqual(got, c.want) {
			t.Errorf("ParseLabelList(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestLabelLessNaturalOrder(t *testing.T) {
	labels := []string{"2", "1-10", "10", "1", "1-2", "1-1", "서술형1", "서술형10", "서술형2"}
	sort.Slice(labels, func(i, j int) bool { return LabelLess(labels[i], labels[j]) })

	want := []string{"1", "1-1", "1-2", "1-10", "2", "10", "서술형1", "서술형2", "서술형10"}
	if !reflect.DeepEqual(labels, want) {
		t.Fatalf("sorted = %v, want %v", labels, want)
	}
}

func TestLabelLessNumbersBeforeText(t *testing.T) {
	if !LabelLess("9", "서술형1") {
		t.Error("numeric labels must sort before text labels")
	}
	if LabelLess("서술형1", "9") {
		t.Error("text labels must not sort before numeric labels")
	}
}

func TestSortQuestionsByLabelIsStable(t *testing.T) {
	questions := []model.Question{
		{ID: "a", Label: "2"},
		{ID: "b", Label: "1"},
		{ID: "c", Label: "1"},
	}
	SortQuestionsByLabel(questions)

	got := []string{questions[0].ID, questions[1].ID, questions[2].ID}
	want := []string{"b", "c", "a"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
}
