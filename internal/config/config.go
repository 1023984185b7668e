package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed default.yml
var defaultYAML []byte

type RedisRemote struct {
	Addr     string `yaml:"addr" json:"addr"`
	Password string `yaml:"password" json:"password"`
	DB       int    `yaml:"db" json:"db"`
	Key      string `yaml:"key" json:"key"`
}

type Config struct {
	App struct {
		Port     int    `yaml:"port" json:"port"`
		DataDir  string `yaml:"data_dir" json:"data_dir"`
		LogLevel string `yaml:"log_level" json:"log_level"`
	} `yaml:"app" json:"app"`

	Remote struct {
		Kind           string      `yaml:"kind" json:"kind"` // http | redis | none
		URL            string      `yaml:"url" json:"url"`
		TimeoutSeconds int         `yaml:"timeout_seconds" json:"timeout_seconds"`
		KeyringAccount string      `yaml:"keyring_account" json:"keyring_account"`
		Redis          RedisRemote `yaml:"redis" json:"redis"`
	} `yaml:"remote" json:"remote"`

	Storage struct {
		CSVFile    string `yaml:"csv_file" json:"csv_file"`
		BackupFile string `yaml:"backup_file" json:"backup_file"`
		JournalDB  string `yaml:"journal_db" json:"journal_db"`
	} `yaml:"storage" json:"storage"`

	Alerts struct {
		DeadlineDays  int `yaml:"deadline_days" json:"deadline_days"`
		FollowUpDays  int `yaml:"follow_up_days" json:"follow_up_days"`
		InterviewDays int `yaml:"interview_days" json:"interview_days"`
		WeekDays      int `yaml:"week_days" json:"week_days"`
	} `yaml:"alerts" json:"alerts"`

	Calendar struct {
		Limit int `yaml:"limit" json:"limit"`
	} `yaml:"calendar" json:"calendar"`

	Logos struct {
		Enabled           bool    `yaml:"enabled" json:"enabled"`
		RequestsPerSecond float64 `yaml:"requests_per_second" json:"requests_per_second"`
		Burst             int     `yaml:"burst" json:"burst"`
		Concurrency       int     `yaml:"concurrency" json:"concurrency"`
	} `yaml:"logos" json:"logos"`

	Events struct {
		NATSURL string `yaml:"nats_url" json:"nats_url"`
		Subject string `yaml:"subject" json:"subject"`
	} `yaml:"events" json:"events"`
}

// Default returns the embedded default configuration.
func Default() Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		panic("config: embedded default.yml is invalid: " + err.Error())
	}
	return cfg
}

// Load reads path over the defaults so that missing keys keep default values.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

// RemoteTimeout is the bound applied to every remote store call.
func (c Config) RemoteTimeout() time.Duration {
	if c.Remote.TimeoutSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.Remote.TimeoutSeconds) * time.Second
}

// Path resolves a storage file name against the data dir.
func (c Config) Path(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	dir := c.App.DataDir
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, name)
}

// RestartRequired names the top-level sections that differ between a and b
// and are only read when the engine starts. Alerts and calendar apply live.
func RestartRequired(a, b Config) []string {
	out := []string{}
	add := func(name string, same bool) {
		if !same {
			out = append(out, name)
		}
	}
	add("app", a.App == b.App)
	add("remote", a.Remote == b.Remote)
	add("storage", a.Storage == b.Storage)
	add("logos", a.Logos == b.Logos)
	add("events", a.Events == b.Events)
	return out
}
