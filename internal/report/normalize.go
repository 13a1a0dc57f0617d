package report

import (
	"regexp"
	"strings"

	"github.com/fcsolar/pos/internal/activity"
)

// Volatile substrings stripped before comparing activity details: retried
// system actions differ only in embedded times, dates and record ids, and
// should collapse to one entry for human review.
var (
	timePattern = regexp.MustCompile(`\d{2}:\d{2}:\d{2}`)
	datePattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
	refPattern  = regexp.MustCompile(`[A-Z]+-\d+`)
)

func normalizeDetails(details string) string {
	s := timePattern.ReplaceAllString(details, "")
	s = datePattern.ReplaceAllString(s, "")
	s = refPattern.ReplaceAllString(s, "")

	return strings.TrimSpace(s)
}

// dedupKey is the normalization key two near-duplicate records share.
func dedupKey(rec *activity.Record) string {
	return string(rec.Action) + "-" + normalizeDetails(rec.Details)
}
