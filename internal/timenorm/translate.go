package timenorm

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

type pair struct{ zh, en string }

var (
	weekUnits = []string{"禮拜", "礼拜", "星期", "週", "周"}

	weekModifiers = []pair{
		{"下", "next week"},
		{"下個", "next week"},
		{"下个", "next week"},
		{"這", "this week"},
		{"这", "this week"},
		{"這個", "this week"},
		{"本", "this week"},
	}

	weekendUnits = []string{"週末", "周末", "禮拜末", "礼拜末"}

	weekdays = []pair{
		{"一", "Monday"},
		{"二", "Tuesday"},
		{"三", "Wednesday"},
		{"四", "Thursday"},
		{"五", "Friday"},
		{"六", "Saturday"},
		{"日", "Sunday"},
		{"天", "Sunday"},
	}

	phrases = []pair{
		{"大後天", "in 3 days"},
		{"大后天", "in 3 days"},
		{"後天", "day after tomorrow"},
		{"后天", "day after tomorrow"},
		{"明天", "tomorrow"},
		{"今天", "today"},
		{"早上", "morning"},
		{"上午", "morning"},
		{"中午", "noon"},
		{"下午", "afternoon"},
		{"晚上", "evening"},
	}

	monthDay = regexp.MustCompile(`(\d{1,2})\s*月\s*(\d{1,2})\s*[日號号]?`)

	replacer = newReplacer()
)

// newReplacer builds the substitution table. strings.Replacer matches at each
// position the earliest listed key, so longer phrases are listed first: the
// "下禮拜" of "下禮拜三" must win over any shorter key starting at the same rune.
// Weekday numerals are only mapped after a week unit so that "三點" stays a time
// of day.
func newReplacer() *strings.Replacer {
	var table []pair
	for _, unit := range weekUnits {
		for _, mod := range weekModifiers {
			for _, d := range weekdays {
				table = append(table, pair{mod.zh + unit + d.zh, mod.en + " " + d.en})
			}
			table = append(table, pair{mod.zh + unit, mod.en})
		}
		for _, d := range weekdays {
			table = append(table, pair{unit + d.zh, d.en})
		}
	}
	for _, unit := range weekendUnits {
		for _, mod := range weekModifiers {
			table = append(table, pair{mod.zh + unit, mod.en + "end"})
		}
		table = append(table, pair{unit, "weekend"})
	}
	table = append(table, phrases...)

	sort.SliceStable(table, func(i, j int) bool {
		return utf8.RuneCountInString(table[i].zh) > utf8.RuneCountInString(table[j].zh)
	})

	oldnew := make([]string, 0, len(table)*2)
	for _, p := range table {
		oldnew = append(oldnew, p.zh, " "+p.en+" ")
	}
	return strings.NewReplacer(oldnew...)
}

// Translate rewrites the Mandarin relative-time vocabulary of expr into English
// words a date parser understands. Unknown text is left in place.
func Translate(expr string) string {
	s := monthDay.ReplaceAllStringFunc(expr, func(m string) string {
		parts := monthDay.FindStringSubmatch(m)
		month, _ := strconv.Atoi(parts[1])
		day, _ := strconv.Atoi(parts[2])
		if month < 1 || month > 12 {
			return m
		}
		return fmt.Sprintf(" %s %d ", time.Month(month), day)
	})
	return strings.Join(strings.Fields(replacer.Replace(s)), " ")
}
