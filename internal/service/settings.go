package service

import (
	"sync/atomic"

	"jobtracker-engine/internal/config"
	"jobtracker-engine/internal/views"
)

// Settings are the view knobs read at the start of every cycle, so config
// edits to them apply without a restart.
type Settings struct {
	Windows       views.Windows
	CalendarLimit int
}

func SettingsOf(c config.Config) Settings {
	return Settings{
		Windows: views.Windows{
			DeadlineDays:  c.Alerts.DeadlineDays,
			FollowUpDays:  c.Alerts.FollowUpDays,
			InterviewDays: c.Alerts.InterviewDays,
			WeekDays:      c.Alerts.WeekDays,
		},
		CalendarLimit: c.Calendar.Limit,
	}
}

// LiveSettings follows the config.Config held in v.
func LiveSettings(v *atomic.Value) func() Settings {
	return func() Settings {
		c, ok := v.Load().(config.Config)
		if !ok {
			return Settings{}
		}
		return SettingsOf(c)
	}
}

func (s *Service) settings() Settings {
	out := Settings{Windows: s.windows, CalendarLimit: s.limit}
	if s.live != nil {
		out = s.live()
	}
	if out.Windows == (views.Windows{}) {
		out.Windows = views.DefaultWindows()
	}
	if out.CalendarLimit <= 0 {
		out.CalendarLimit = views.DefaultCalendarLimit
	}
	return out
}

// Windows returns the alert windows in effect for the next cycle.
func (s *Service) Windows() views.Windows { return s.settings().Windows }
