// Package timenorm turns Mandarin relative-time expressions into calendar dates.
package timenorm

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// Normalizer resolves time expressions against a reference instant, preferring
// future dates whenever an expression is ambiguous.
type Normalizer struct {
	parser *when.Parser
}

func New() *Normalizer {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return &Normalizer{parser: w}
}

// Normalize returns the resolved date as YYYY-MM-DD, or nil when the
// expression cannot be resolved.
func (n *Normalizer) Normalize(expr string, ref time.Time) *string {
	t, ok := n.Resolve(expr, ref)
	if !ok {
		return nil
	}
	s := t.Format(time.DateOnly)
	return &s
}

// Resolve returns midnight of the resolved day in ref's location.
func (n *Normalizer) Resolve(expr string, ref time.Time) (time.Time, bool) {
	translated := Translate(expr)
	if translated == "" {
		return time.Time{}, false
	}

	if t, ok := resolveRelative(translated, ref); ok {
		return t, true
	}
	// A literal month and day that resolveRelative rejected is an impossible
	// date; the fallback parser would roll it into the next month.
	if monthDayWords.MatchString(translated) {
		return time.Time{}, false
	}

	r, err := n.parser.Parse(translated, ref)
	if err != nil || r == nil {
		return time.Time{}, false
	}
	t := dateOf(r.Time.In(ref.Location()))
	if t.Before(dateOf(ref)) {
		return time.Time{}, false
	}
	return t, true
}

var (
	weekdayNames = map[string]time.Weekday{
		"sunday":    time.Sunday,
		"monday":    time.Monday,
		"tuesday":   time.Tuesday,
		"wednesday": time.Wednesday,
		"thursday":  time.Thursday,
		"friday":    time.Friday,
		"saturday":  time.Saturday,
	}

	monthDayWords = regexp.MustCompile(`(?i)\b(january|february|march|april|may|june|july|august|september|october|november|december)\s+(\d{1,2})\b`)
)

// resolveRelative handles the vocabulary Translate produces. A bare weekday is
// its next occurrence on or after the reference day; weeks start on Monday. A
// weekday named with "this week" is that day of the current week even when it
// has already passed.
func resolveRelative(text string, ref time.Time) (time.Time, bool) {
	today := dateOf(ref)
	padded := " " + strings.ToLower(text) + " "

	switch {
	case strings.Contains(padded, " in 3 days "):
		return today.AddDate(0, 0, 3), true
	case strings.Contains(padded, " day after tomorrow "):
		return today.AddDate(0, 0, 2), true
	case strings.Contains(padded, " tomorrow "):
		return today.AddDate(0, 0, 1), true
	case strings.Contains(padded, " today "):
		return today, true
	}

	if m := monthDayWords.FindStringSubmatch(padded); m != nil {
		return resolveMonthDay(m[1], m[2], today)
	}

	// Weekends start on Saturday. A weekend already underway resolves to today.
	switch {
	case strings.Contains(padded, " next weekend "):
		return startOfWeek(today).AddDate(0, 0, 7+mondayOffset(time.Saturday)), true
	case strings.Contains(padded, " weekend "):
		saturday := startOfWeek(today).AddDate(0, 0, mondayOffset(time.Saturday))
		if saturday.Before(today) {
			return today, true
		}
		return saturday, true
	}

	wd, hasWeekday := findWeekday(padded)
	switch {
	case strings.Contains(padded, " next week "):
		if !hasWeekday {
			return today.AddDate(0, 0, 7), true
		}
		return startOfWeek(today).AddDate(0, 0, 7+mondayOffset(wd)), true
	case strings.Contains(padded, " this week "):
		if !hasWeekday {
			return today, true
		}
		return startOfWeek(today).AddDate(0, 0, mondayOffset(wd)), true
	case hasWeekday:
		delta := (int(wd) - int(today.Weekday()) + 7) % 7
		return today.AddDate(0, 0, delta), true
	}

	return time.Time{}, false
}

func resolveMonthDay(monthName, dayStr string, today time.Time) (time.Time, bool) {
	month, err := time.Parse("January", strings.ToUpper(monthName[:1])+strings.ToLower(monthName[1:]))
	if err != nil {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(dayStr)
	if err != nil {
		return time.Time{}, false
	}

	year := today.Year()
	t := time.Date(year, month.Month(), day, 0, 0, 0, 0, today.Location())
	if t.Before(today) {
		year++
		t = time.Date(year, month.Month(), day, 0, 0, 0, 0, today.Location())
	}
	if t.Month() != month.Month() || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

func findWeekday(padded string) (time.Weekday, bool) {
	for _, word := range strings.Fields(padded) {
		if wd, ok := weekdayNames[word]; ok {
			return wd, true
		}
	}
	return 0, false
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func startOfWeek(day time.Time) time.Time {
	return day.AddDate(0, 0, -mondayOffset(day.Weekday()))
}

// mondayOffset counts days from Monday: Monday 0 ... Sunday 6.
func mondayOffset(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}
