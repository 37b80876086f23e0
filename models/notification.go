package models

// ReminderPayload is the asynq task body for a booking reminder push.
type ReminderPayload struct {
	BookingID   string `json:"booking_id"`
	RequesterID string `json:"requester_id"`
	RoomName    string `json:"room_name"`
	Date        string `json:"date"`
	Start       int    `json:"start"`
	End         int    `json:"end"`
}
