package models

// Recommendation strategy tags.
const (
	RecAlternativeRoom = "alternative_room"
	RecSmartScheduling = "smart_scheduling"
	RecProactive       = "proactive"
)

// SlotSuggestion is a candidate booking window offered to the user.
type SlotSuggestion struct {
	RoomName string `json:"room_name"`
	Date     string `json:"date"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
}

// Recommendation is a derived suggestion produced when a requested slot is
// rejected. Recommendations are never persisted.
type Recommendation struct {
	Type       string         `json:"type"`  // one of the Rec* constants
	Score      float64        `json:"score"` // 0.0–1.0 fit confidence
	Reason     string         `json:"reason"`
	Suggestion SlotSuggestion `json:"suggestion"`
	DataSource string         `json:"data_source"` // which backing query produced it
}
