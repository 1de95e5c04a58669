package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sampleConfig = `
app:
  name: windtest-entry
  version: 1.0.0
  env: test

database:
  host: localhost
  port: 3306
  user: app
  password: secret
  name: windtest
  charset: utf8mb4
  parse_time: true
  loc: Local

notion:
  students_db: db-students
  questions_db: db-questions
  results_db: db-results
  reports_db: db-reports
  admin_user_id: user-admin

entry:
  timed_test_prefixes: ["기초", "심화"]
  teachers:
    - name: 김지현
      email: jihyun.kim@windedu.kr
`

func loadSample(t *testing.T) *Config {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(sampleConfig), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg := loadSample(t)

	if cfg.Notion.BaseURL != "https://api.notion.com/v1" {
		t.Errorf("BaseURL = %s", cfg.Notion.BaseURL)
	}
	if cfg.Notion.Version != "2022-06-28" {
		t.Errorf("Version = %s", cfg.Notion.Version)
	}
	if cfg.Notion.Timeout != 10*time.Second {
		t.Errorf("Timeout = %s", cfg.Notion.Timeout)
	}
	if cfg.Notion.PageSize != 100 {
		t.Errorf("PageSize = %d", cfg.Notion.PageSize)
	}
	if cfg.Entry.StudentsCacheTTL != time.Hour {
		t.Errorf("StudentsCacheTTL = %s", cfg.Entry.StudentsCacheTTL)
	}
}

func TestLoadTokenFromEnvironment(t *testing.T) {
	t.Setenv("NOTION_TOKEN", "env-secret")
	cfg := loadSample(t)

	if cfg.Notion.Token != "env-secret" {
		t.Errorf("Token = %s, want env override", cfg.Notion.Token)
	}
}

func TestLoadParsesTeacherRoster(t *testing.T) {
	cfg := loadSample(t)

	if len(cfg.Entry.Teachers) != 1 {
		t.Fatalf("teachers = %d, want 1", len(cfg.Entry.Teachers))
	}
	if cfg.Entry.Teachers[0].Name != "김지현" || cfg.Entry.Teachers[0].Email != "jihyun.kim@windedu.kr" {
		t.Errorf("teacher = %+v", cfg.Entry.Teachers[0])
	}
}

func TestIsTimedTest(t *testing.T) {
	cfg := loadSample(t)

	cases := []struct {
		test string
		want bool
	}{
		{"기초 3회차", true},
		{"심화 1회차", true},
		{"모의고사 1회", false},
		{"", false},
	}
	for _, c := range cases {
		if got := cfg.IsTimedTest(c.test); got != c.want {
			t.Errorf("IsTimedTest(%q) = %v, want %v", c.test, got, c.want)
		}
	}
}

func TestDatabaseDSN(t *testing.T) {
	cfg := loadSample(t)

	want := "app:secret@tcp(localhost:3306)/windtest?charset=utf8mb4&parseTime=true&loc=Local"
	if got := cfg.DatabaseDSN(); got != want {
		t.Errorf("DSN = %s, want %s", got, want)
	}
}
