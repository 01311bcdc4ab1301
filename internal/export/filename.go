package export

import (
	"regexp"
	"strings"
	"time"

	"gstdesk/internal/timeutil"
)

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		s = "invoice"
	}
	return s
}

// BuildFilename returns "{sanitized_name}.{ext}".
func BuildFilename(name, ext string) string {
	return SanitizeFilename(name) + "." + ext
}

// BuildDatedFilename returns "{sanitized_name}_{YYYY-MM-DD}.{ext}" for date on.
func BuildDatedFilename(name, ext string, on time.Time) string {
	return SanitizeFilename(name) + "_" + on.Format(timeutil.DateLayout) + "." + ext
}
