package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02T15:04:05"
	microLayout    = "2006-01-02T15:04:05.000000"
)

// Accepted ISO-8601 input forms. Fractional seconds are accepted after the
// seconds field by time.Parse even when the layout omits them.
var isoLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02T15Z07:00",
	"2006-01-02T15",
	dateLayout,
}

// DateTime is a zone-less UTC timestamp rendered as YYYY-MM-DDTHH:MM:SS with
// microseconds only when present.
type DateTime struct {
	time.Time
}

// Date is a calendar date rendered as YYYY-MM-DD.
type Date struct {
	time.Time
}

// NewDateTime normalizes t to UTC at microsecond precision.
func NewDateTime(t time.Time) DateTime {
	return DateTime{Time: t.UTC().Truncate(time.Microsecond)}
}

// NewDate keeps only the calendar part of t as seen in t's own location.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current UTC date.
func Today() Date {
	return NewDate(time.Now().UTC())
}

func parseISO(s string) (time.Time, error) {
	if len(s) > 10 && s[10] == ' ' {
		s = s[:10] + "T" + s[11:]
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid ISO datetime %q", s)
}

// ParseDateTime parses an ISO-8601 date or datetime. Offsets are converted to
// UTC; values without one are taken as UTC.
func ParseDateTime(s string) (DateTime, error) {
	t, err := parseISO(s)
	if err != nil {
		return DateTime{}, err
	}
	return NewDateTime(t), nil
}

// ParseDate parses an ISO-8601 date. A full datetime is accepted and reduced
// to its date part.
func ParseDate(s string) (Date, error) {
	t, err := parseISO(s)
	if err != nil {
		return Date{}, err
	}
	return NewDate(t), nil
}

func (d DateTime) String() string {
	if d.Nanosecond()/int(time.Microsecond) != 0 {
		return d.UTC().Format(microLayout)
	}
	return d.UTC().Format(dateTimeLayout)
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *DateTime) UnmarshalJSON(b []byte) error {
	t, err := ParseDateTime(strings.Trim(string(b), `"`))
	if err != nil {
		return err
	}
	*d = t
	return nil
}

func (d *DateTime) Scan(src interface{}) error {
	t, err := scanTime(src)
	if err != nil {
		return err
	}
	*d = NewDateTime(t)
	return nil
}

func (d DateTime) Value() (driver.Value, error) {
	return d.UTC(), nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	t, err := ParseDate(strings.Trim(string(b), `"`))
	if err != nil {
		return err
	}
	*d = t
	return nil
}

func (d *Date) Scan(src interface{}) error {
	t, err := scanTime(src)
	if err != nil {
		return err
	}
	*d = NewDate(t)
	return nil
}

func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}

// scanTime accepts what the postgres and mysql drivers hand back for DATE,
// DATETIME and TIMESTAMP columns.
func scanTime(src interface{}) (time.Time, error) {
	switch v := src.(type) {
	case time.Time:
		return v, nil
	case []byte:
		return parseISO(string(v))
	case string:
		return parseISO(v)
	default:
		return time.Time{}, fmt.Errorf("cannot scan %T into time", src)
	}
}
