package models

// Assistant intents produced by the extractor.
const (
	IntentBook   = "book"
	IntentCheck  = "check"
	IntentCancel = "cancel"
	IntentChat   = "chat"
)

// AssistantRequest is the payload coming from the frontend into /api/assistant/chat.
type AssistantRequest struct {
	UserID string `json:"user_id"`
	Text   string `json:"text"` // user's typed message
}

// AssistantResponse is what the chat handler returns to the frontend.
type AssistantResponse struct {
	Intent          string           `json:"intent"`
	ResponseText    string           `json:"response"`
	Booking         *Booking         `json:"booking,omitempty"`         // set when a booking was committed
	Recommendations []Recommendation `json:"recommendations,omitempty"` // set when the slot was rejected
	MissingFields   []string         `json:"missing_fields,omitempty"`  // set when re-prompting
}

// ExtractedRequest is the structured output of the intent/entity extractor.
// Any field of the embedded request may be absent.
type ExtractedRequest struct {
	Intent    string         `json:"intent"`
	Request   BookingRequest `json:"request"`
	BookingID string         `json:"booking_id,omitempty"` // for cancel
}

// ChatContext carries the pending, partially-filled booking request across
// chat turns. Stored in Redis with a TTL.
type ChatContext struct {
	Intent  string         `json:"intent,omitempty"`
	Pending BookingRequest `json:"pending"`
}

// Empty reports whether the context holds no pending state.
func (c ChatContext) Empty() bool {
	return c.Intent == "" && c.Pending == (BookingRequest{})
}
