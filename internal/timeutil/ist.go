package timeutil

import (
	"time"
)

// IST is the Indian Standard Time location (UTC+5:30).
var IST *time.Location

func init() {
	var err error
	IST, err = time.LoadLocation("Asia/Kolkata")
	if err != nil {
		IST = time.FixedZone("IST", 5*60*60+30*60)
	}
}

const (
	// DateLayout is the wire format for invoice dates.
	DateLayout = "2006-01-02"
	// LongDateLayout is the printed format, e.g. "29 June 2025".
	LongDateLayout = "2 January 2006"
)

// ParseDate parses a YYYY-MM-DD date as midnight IST.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, value, IST)
}

// LongDate renders the calendar date of t, in t's own location, as
// "29 June 2025". The zero time renders as "".
func LongDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(LongDateLayout)
}

// ShortDate renders the calendar date of t as YYYY-MM-DD, or "" for the zero time.
func ShortDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}
