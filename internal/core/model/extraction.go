package model

// ItemFields is the JSON object the extractor asks the model for on an
// item-location statement.
type ItemFields struct {
	Item     string `json:"item"`
	Location string `json:"location"`
	Owner    string `json:"owner"`
}

// ScheduleFields is the JSON object the extractor asks the model for on a
// schedule statement. Place is the model's own guess at a place category.
type ScheduleFields struct {
	Task     string `json:"task"`
	Location string `json:"location"`
	Place    string `json:"place"`
	Time     string `json:"time"`
	Person   string `json:"person"`
}

// Complete reports whether the fields required to persist an item are present.
func (f ItemFields) Complete() bool {
	return f.Item != "" && f.Location != ""
}

// Complete reports whether the fields required to persist a schedule are present.
// Location is optional.
func (f ScheduleFields) Complete() bool {
	return f.Task != "" && f.Time != ""
}
