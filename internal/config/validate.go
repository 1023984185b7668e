package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy together with hard errors and
// soft warnings.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	out.Remote.Kind = strings.ToLower(strings.TrimSpace(out.Remote.Kind))
	if out.Remote.Kind == "" {
		out.Remote.Kind = "none"
	}
	out.Remote.URL = strings.TrimSpace(out.Remote.URL)
	out.App.LogLevel = strings.ToLower(strings.TrimSpace(out.App.LogLevel))

	if err := Validate(out); err != nil {
		for _, line := range strings.Split(err.Error(), "\n- ") {
			line = strings.TrimPrefix(line, "config validation failed:")
			if line = strings.TrimSpace(line); line != "" {
				res.addErr("%s", line)
			}
		}
	}

	if out.Remote.Kind == "http" && strings.HasPrefix(out.Remote.URL, "http://") {
		res.addWarn("remote.url uses plain http; the access key would be sent unencrypted")
	}
	if out.Remote.Kind != "none" && out.Remote.TimeoutSeconds == 0 {
		res.addWarn("remote.timeout_seconds is 0; the default of 5 seconds applies")
	}
	if out.Remote.TimeoutSeconds > 60 {
		res.addWarn("remote.timeout_seconds is %d; a slow remote will stall every interaction", out.Remote.TimeoutSeconds)
	}
	if out.Alerts.FollowUpDays > out.Alerts.WeekDays {
		res.addWarn("alerts.follow_up_days (%d) exceeds alerts.week_days (%d)", out.Alerts.FollowUpDays, out.Alerts.WeekDays)
	}
	if out.Logos.Enabled && out.Logos.RequestsPerSecond <= 0 {
		res.addErr("logos.requests_per_second must be > 0 when logos.enabled=true")
	}
	if out.Logos.Enabled && out.Logos.Concurrency <= 0 {
		res.addErr("logos.concurrency must be > 0 when logos.enabled=true")
	}

	return out, res
}
