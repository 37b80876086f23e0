package models

import "time"

// Booking represents a confirmed hall booking record.
//
// Times are stored as minutes from midnight on Date ("YYYY-MM-DD"), with a
// half-open [Start, End) window: a booking ending at the minute another one
// starts does not conflict with it.
type Booking struct {
	ID          string    `bson:"id" json:"id"`                                             // Unique booking identifier (UUID)
	RoomName    string    `bson:"room_name" json:"room_name"`                               // Hall that was booked
	Requester   string    `bson:"requester_name" json:"requester_name"`                     // Lecturer name or module code
	RequesterID string    `bson:"requester_id,omitempty" json:"requester_id,omitempty"`     // Account id of the requester
	Date        string    `bson:"date" json:"date"`                                         // Booking date in "YYYY-MM-DD" format
	Start       int       `bson:"start" json:"start"`                                       // Start time (minutes from midnight)
	End         int       `bson:"end" json:"end"`                                           // End time (minutes from midnight)
	ModuleCode  string    `bson:"module_code,omitempty" json:"module_code,omitempty"`       // Associated teaching module, if any
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`                             // Timestamp when booking was created
}

// Overlaps reports whether the booking's window intersects [start, end) on the
// same date, under half-open interval semantics.
func (b Booking) Overlaps(date string, start, end int) bool {
	return b.Date == date && start < b.End && b.Start < end
}
