package query

import "strings"

// Marker starts every query typed into the chat loop.
const Marker = "查"

// Usage is shown when a query command names no collection.
const Usage = "無法辨識查詢指令，試試：查今天的安排 / 查廚房的物品"

// Collection names which store a Command reads.
type Collection string

const (
	Items     Collection = "items"
	Schedules Collection = "schedules"
)

// Command is a parsed query request.
type Command struct {
	Collection Collection
	Filter     Filter
}

// IsQuery reports whether a line typed into the chat loop is a query.
func IsQuery(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), Marker)
}

// ParseCommand turns a line such as "查廚房的物品" or "查今天的安排" into a
// Command. The second result is false when the line names no collection.
func ParseCommand(text string) (Command, bool) {
	text = strings.TrimSpace(text)
	switch {
	case strings.Contains(text, "今天") && (strings.Contains(text, "安排") || strings.Contains(text, "行程")):
		return Command{Collection: Schedules, Filter: Filter{TodayOnly: true}}, true
	case strings.Contains(text, "今天") && strings.Contains(text, "物品"):
		return Command{Collection: Items, Filter: Filter{TodayOnly: true}}, true
	case strings.Contains(text, "物品"):
		kw := strip(text, Marker, "的物品", "物品")
		return Command{Collection: Items, Filter: Filter{Keyword: kw}}, true
	case strings.Contains(text, "行程") || strings.Contains(text, "安排"):
		kw := strip(text, Marker, "的行程", "的安排", "行程", "安排")
		return Command{Collection: Schedules, Filter: Filter{Keyword: kw}}, true
	default:
		return Command{}, false
	}
}

func strip(text string, markers ...string) string {
	for _, m := range markers {
		text = strings.ReplaceAll(text, m, "")
	}
	return strings.TrimSpace(text)
}
