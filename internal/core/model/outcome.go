package model

// Intent is the coarse category assigned to an utterance.
type Intent string

const (
	IntentRecord   Intent = "record"
	IntentSchedule Intent = "schedule"
	IntentChat     Intent = "chat"
)

// OutcomeKind tells the caller which branch the router took and how it ended.
type OutcomeKind string

const (
	OutcomeRecorded         OutcomeKind = "recorded"
	OutcomeExtractionFailed OutcomeKind = "extraction_failed"
	OutcomeChatReply        OutcomeKind = "chat_reply"
)

// Outcome is the result of routing one utterance. Exactly one of Item,
// Schedule or Reply is set depending on Kind and Intent.
type Outcome struct {
	Kind     OutcomeKind     `json:"kind"`
	Intent   Intent          `json:"intent"`
	Item     *ItemRecord     `json:"item,omitempty"`
	Schedule *ScheduleRecord `json:"schedule,omitempty"`
	Reply    string          `json:"reply,omitempty"`
}
