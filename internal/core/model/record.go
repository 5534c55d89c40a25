package model

import "time"

// Kind names a record collection.
type Kind string

const (
	KindItem     Kind = "item"
	KindSchedule Kind = "schedule"
)

// Fallback values written when the model leaves a field empty.
const (
	UnknownPlace = "未知"
	DefaultOwner = "我"
)

// Record is anything the record store can append.
type Record interface {
	Kind() Kind
}

type ItemRecord struct {
	ID            string    `json:"id"`
	Item          string    `json:"item"`
	Location      string    `json:"location"`
	PlaceCategory string    `json:"place_category"`
	Owner         string    `json:"owner"`
	RawText       string    `json:"raw_text"`
	CreatedAt     time.Time `json:"created_at"`
}

func (ItemRecord) Kind() Kind { return KindItem }

type ScheduleRecord struct {
	ID             string    `json:"id"`
	Task           string    `json:"task"`
	Location       string    `json:"location"`
	PlaceCategory  string    `json:"place_category"`
	TimeExpression string    `json:"time_expression"`
	ResolvedDate   *string   `json:"resolved_date"` // YYYY-MM-DD, null when unresolved
	Person         string    `json:"person"`
	RawText        string    `json:"raw_text"`
	CreatedAt      time.Time `json:"created_at"`
}

func (ScheduleRecord) Kind() Kind { return KindSchedule }

// Turn is one entry of the persisted conversation history.
type Turn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

const (
	RoleUser  = "user"
	RoleModel = "model"
)
