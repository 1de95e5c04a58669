package catalog

import (
	"testing"

	"github.com/windedu/windtest-entry-app/internal/config"
	"github.com/windedu/windtest-entry-app/internal/model"
)

func rosterConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Entry.Teachers = []config.TeacherConfig{
		{Name: "김지현", Email: "jihyun.kim@windedu.kr"},
		{Name: "박민수"},
		{Name: "이 서연"},
	}
	return cfg
}

func TestResolvePrefersEmail(t *testing.T) {
	r := NewTeacherResolver(rosterConfig())
	users := []model.User{
		{ID: "u1", Name: "김지현", Email: "other@windedu.kr"},
		{ID: "u2", Name: "완전히 다른 이름", Email: "JIHYUN.KIM@windedu.kr"},
	}

	got, ok := r.Resolve("김지현", users)
	if !ok || got.ID != "u2" {
		t.Fatalf("got %+v ok=%v, want u2 via case-insensitive email", got, ok)
	}
}

func TestResolveExactNameWhenNoEmailMatch(t *testing.T) {
	r := NewTeacherResolver(rosterConfig())
	users := []model.User{
		{ID: "u1", Name: "박민수"},
	}

	got, ok := r.Resolve("박민수", users)
	if !ok || got.ID != "u1" {
		t.Fatalf("got %+v ok=%v", got, ok)
	}
}

func TestResolveToleratesSpacingDifferences(t *testing.T) {
	r := NewTeacherResolver(rosterConfig())
	users := []model.User{
		{ID: "u1", Name: "이서연"},
	}

	got, ok := r.Resolve("이 서연", users)
	if !ok || got.ID != "u1" {
		t.Fatalf("got %+v ok=%v", got, ok)
	}
}

func TestResolveMatchesReversedTwoPartName(t *testing.T) {
	r := NewTeacherResolver(rosterConfig())
	users := []model.User{
		{ID: "u1", Name: "민수 박"},
	}

	got, ok := r.Resolve("박민수", users)
	if !ok || got.ID != "u1" {
		t.Fatalf("got %+v ok=%v", got, ok)
	}
}

func TestResolveUnknownTeacherFails(t *testing.T) {
	r := NewTeacherResolver(rosterConfig())

	if _, ok := r.Resolve("등록되지 않은 선생님", []model.User{{ID: "u1", Name: "김지현"}}); ok {
		t.Fatal("a name outside the roster must not resolve")
	}
}

func TestResolveNoWorkspaceMatchFails(t *testing.T) {
	r := NewTeacherResolver(rosterConfig())

	if _, ok := r.Resolve("박민수", []model.User{{ID: "u1", Name: "김지현"}}); ok {
		t.Fatal("roster teacher without a workspace account must not resolve")
	}
}

func TestNamesPreservesRosterOrder(t *testing.T) {
	r := NewTeacherResolver(rosterConfig())

	names := r.Names()
	if len(names) != 3 || names[0] != "김지현" || names[2] != "이 서연" {
		t.Fatalf("names = %v", names)
	}
}
