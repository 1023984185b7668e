package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

func Validate(cfg Config) error {
	var errs []string

	if cfg.App.Port <= 0 || cfg.App.Port > 65535 {
		errs = append(errs, "app.port must be 1..65535")
	}

	switch cfg.Remote.Kind {
	case "", "none":
	case "http":
		if strings.TrimSpace(cfg.Remote.URL) == "" {
			errs = append(errs, "remote.url is required when remote.kind=http")
		}
	case "redis":
		if strings.TrimSpace(cfg.Remote.Redis.Addr) == "" {
			errs = append(errs, "remote.redis.addr is required when remote.kind=redis")
		}
		if strings.TrimSpace(cfg.Remote.Redis.Key) == "" {
			errs = append(errs, "remote.redis.key is required when remote.kind=redis")
		}
	default:
		errs = append(errs, fmt.Sprintf("remote.kind %q must be one of http, redis, none", cfg.Remote.Kind))
	}
	if cfg.Remote.TimeoutSeconds < 0 {
		errs = append(errs, "remote.timeout_seconds must be >= 0")
	}

	if strings.TrimSpace(cfg.Storage.CSVFile) == "" {
		errs = append(errs, "storage.csv_file is required")
	}
	if strings.TrimSpace(cfg.Storage.BackupFile) == "" {
		errs = append(errs, "storage.backup_file is required")
	}

	checkDays := func(name string, v int) {
		if v < 0 {
			errs = append(errs, fmt.Sprintf("%s must be >= 0", name))
		}
	}
	checkDays("alerts.deadline_days", cfg.Alerts.DeadlineDays)
	checkDays("alerts.follow_up_days", cfg.Alerts.FollowUpDays)
	checkDays("alerts.interview_days", cfg.Alerts.InterviewDays)
	checkDays("alerts.week_days", cfg.Alerts.WeekDays)

	if cfg.Calendar.Limit <= 0 {
		errs = append(errs, "calendar.limit must be > 0")
	}

	if len(errs) > 0 {
		return errors.New("config validation failed:\n- " + joinLines(errs))
	}
	return nil
}

func SaveAtomic(path string, cfg Config) error {
	if err := Validate(cfg); err != nil {
		return err
	}

	b, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp := path + ".tmp"
	bak := path + ".bak"

	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}

	_ = os.Remove(bak)
	_ = os.Rename(path, bak)

	return os.Rename(tmp, path)
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n- ")
}
