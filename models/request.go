package models

// BookingRequest is assembled per user turn and never persisted. Start and End
// are pointers because the extractor fills fields unpredictably; a nil pointer
// or empty string means the field was not supplied yet.
type BookingRequest struct {
	RoomName    string `json:"room_name,omitempty"`
	Date        string `json:"date,omitempty"` // "YYYY-MM-DD"
	Start       *int   `json:"start,omitempty"`
	End         *int   `json:"end,omitempty"`
	Requester   string `json:"requester_name,omitempty"`
	RequesterID string `json:"requester_id,omitempty"` // account id of the requester
	ModuleCode  string `json:"module_code,omitempty"`
	GroupSize   int    `json:"group_size,omitempty"` // 0 when not stated
}

// Merge fills the request's absent fields from another partial request.
// Present fields win; the assistant uses this to accumulate parameters across
// chat turns.
func (r BookingRequest) Merge(other BookingRequest) BookingRequest {
	if r.RoomName == "" {
		r.RoomName = other.RoomName
	}
	if r.Date == "" {
		r.Date = other.Date
	}
	if r.Start == nil {
		r.Start = other.Start
	}
	if r.End == nil {
		r.End = other.End
	}
	if r.Requester == "" {
		r.Requester = other.Requester
	}
	if r.RequesterID == "" {
		r.RequesterID = other.RequesterID
	}
	if r.ModuleCode == "" {
		r.ModuleCode = other.ModuleCode
	}
	if r.GroupSize == 0 {
		r.GroupSize = other.GroupSize
	}
	return r
}

// MissingFields lists the required parameters the request still lacks, in a
// stable order. A degenerate window (start >= end) invalidates both bounds
// rather than being treated as merely unavailable.
func (r BookingRequest) MissingFields() []string {
	var missing []string
	if r.RoomName == "" {
		missing = append(missing, "room_name")
	}
	if r.Date == "" {
		missing = append(missing, "date")
	}
	if r.Start == nil {
		missing = append(missing, "start_time")
	}
	if r.End == nil {
		missing = append(missing, "end_time")
	}
	if r.Start != nil && r.End != nil && *r.Start >= *r.End {
		missing = append(missing, "start_time", "end_time")
	}
	return missing
}
