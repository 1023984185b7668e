package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the locale-independent calendar format used on disk and on the wire.
const DateLayout = "2006-01-02"

// Date is a calendar date with no time of day or zone.
type Date struct {
	t time.Time // always midnight UTC
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

func Today() Date { return DateOf(time.Now()) }

// accepted layouts, most specific first; the remote tier may hand back
// timestamps written by other tools.
var dateLayouts = []string{
	DateLayout,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999",
	"2006/01/02",
	"01/02/2006",
}

// ParseDate parses a serialized date. Blank and null-like values return ok=false
// with no error.
func ParseDate(s string) (d Date, ok bool, err error) {
	s = strings.TrimSpace(s)
	if isNullToken(s) {
		return Date{}, false, nil
	}
	for _, layout := range dateLayouts {
		if t, perr := time.Parse(layout, s); perr == nil {
			return DateOf(t), true, nil
		}
	}
	return Date{}, false, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// ParseDatePtr is ParseDate returning nil for blank input.
func ParseDatePtr(s string) (*Date, error) {
	d, ok, err := ParseDate(s)
	if err != nil || !ok {
		return nil, err
	}
	return &d, nil
}

func isNullToken(s string) bool {
	switch strings.ToLower(s) {
	case "", "nat", "nan", "none", "null":
		return true
	}
	return false
}

func (d Date) IsZero() bool { return d.t.IsZero() }

func (d Date) Time() time.Time { return d.t }

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(DateLayout)
}

func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }

// DaysSince returns d - other in whole days.
func (d Date) DaysSince(other Date) int {
	return int(d.t.Sub(other.t).Hours() / 24)
}

func (d Date) Before(o Date) bool { return d.t.Before(o.t) }
func (d Date) After(o Date) bool  { return d.t.After(o.t) }
func (d Date) Equal(o Date) bool  { return d.t.Equal(o.t) }

// Within reports whether d falls in [from, to], both ends inclusive.
func (d Date) Within(from, to Date) bool {
	return !d.Before(from) && !d.After(to)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s *string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidDate, string(b))
	}
	if s == nil {
		*d = Date{}
		return nil
	}
	parsed, _, err := ParseDate(*s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// FormatDate renders a nullable date, empty for nil.
func FormatDate(d *Date) string {
	if d == nil {
		return ""
	}
	return d.String()
}
