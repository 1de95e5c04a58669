package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App      AppConfig      `yaml:"app"`
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Storage  StorageConfig  `yaml:"storage"`
	Notion   NotionConfig   `yaml:"notion"`
	Entry    EntryConfig    `yaml:"entry"`
	Workers  WorkersConfig  `yaml:"workers"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type AppConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Env     string `yaml:"env"`
}

type ServerConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host               string        `yaml:"host"`
	Port               int           `yaml:"port"`
	User               string        `yaml:"user"`
	Password           string        `yaml:"password"`
	Name               string        `yaml:"name"`
	Charset            string        `yaml:"charset"`
	ParseTime          bool          `yaml:"parse_time"`
	Loc                string        `yaml:"loc"`
	MaxConnections     int           `yaml:"max_connections"`
	MaxIdleConnections int           `yaml:"max_idle_connections"`
	ConnectionLifetime time.Duration `yaml:"connection_lifetime"`
}

type RedisConfig struct {
	Host            string `yaml:"host"`
	Port            int    `yaml:"port"`
	Password        string `yaml:"password"`
	DB              int    `yaml:"db"`
	PoolSize        int    `yaml:"pool_size"`
	SubmissionQueue string `yaml:"submission_queue"`
	SheetQueue      string `yaml:"sheet_queue"`
	DLQSuffix       string `yaml:"dlq_suffix"`
}

type StorageConfig struct {
	S3 S3Config `yaml:"s3"`
}

type S3Config struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	UseSSL    bool   `yaml:"use_ssl"`
}

// NotionConfig holds remote store access settings. The four database IDs
// correspond to the Students, Questions, Results and Reports databases in the
// tutoring workspace.
type NotionConfig struct {
	BaseURL     string        `yaml:"base_url"`
	Token       string        `yaml:"token"`
	Version     string        `yaml:"version"`
	StudentsDB  string        `yaml:"students_db"`
	QuestionsDB string        `yaml:"questions_db"`
	ResultsDB   string        `yaml:"results_db"`
	ReportsDB   string        `yaml:"reports_db"`
	AdminUserID string        `yaml:"admin_user_id"`
	Timeout     time.Duration `yaml:"timeout"`
	PageSize    int           `yaml:"page_size"`
}

// EntryConfig holds score entry policy: which test names require a duration,
// the teacher roster used to resolve workspace users, and catalog cache TTLs.
type EntryConfig struct {
	TimedTestPrefixes []string        `yaml:"timed_test_prefixes"`
	Teachers          []TeacherConfig `yaml:"teachers"`
	StudentsCacheTTL  time.Duration   `yaml:"students_cache_ttl"`
	QuestionsCacheTTL time.Duration   `yaml:"questions_cache_ttl"`
}

type TeacherConfig struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

type WorkersConfig struct {
	Entry     EntryWorkerConfig     `yaml:"entry"`
	Ingestion IngestionWorkerConfig `yaml:"ingestion"`
	Refresh   RefreshWorkerConfig   `yaml:"refresh"`
}

type EntryWorkerConfig struct {
	Count int `yaml:"count"`
}

type IngestionWorkerConfig struct {
	Count int `yaml:"count"`
}

type RefreshWorkerConfig struct {
	Interval   time.Duration `yaml:"interval"`
	RunOnStart bool          `yaml:"run_on_start"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Load() (*Config, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Secrets may come from the environment instead of the file.
	if token := os.Getenv("NOTION_TOKEN"); token != "" {
		config.Notion.Token = token
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Notion.BaseURL == "" {
		c.Notion.BaseURL = "https://api.notion.com/v1"
	}
	if c.Notion.Version == "" {
		c.Notion.Version = "2022-06-28"
	}
	if c.Notion.Timeout == 0 {
		c.Notion.Timeout = 10 * time.Second
	}
	if c.Notion.PageSize == 0 {
		c.Notion.PageSize = 100
	}
	if c.Entry.StudentsCacheTTL == 0 {
		c.Entry.StudentsCacheTTL = time.Hour
	}
	if c.Entry.QuestionsCacheTTL == 0 {
		c.Entry.QuestionsCacheTTL = 10 * time.Minute
	}
}

// MySQL DSN format: [username[:password]@][protocol[(address)]]/dbname[?param1=value1&...&paramN=valueN]
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=%s",
		c.Database.User, c.Database.Password, c.Database.Host, c.Database.Port,
		c.Database.Name, c.Database.Charset, c.Database.ParseTime, c.Database.Loc)
}

func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

// IsTimedTest reports whether submissions for the named test must carry a
// positive time-taken value.
func (c *Config) IsTimedTest(testName string) bool {
	for _, prefix := range c.Entry.TimedTestPrefixes {
		if prefix != "" && strings.HasPrefix(testName, prefix) {
			return true
		}
	}
	return false
}
