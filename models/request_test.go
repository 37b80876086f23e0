package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestMergePresentFieldsWin(t *testing.T) {
	turn := BookingRequest{Start: intPtr(9 * 60), End: intPtr(11 * 60)}
	pending := BookingRequest{
		RoomName: "LT1",
		Date:     "2026-06-25",
		Start:    intPtr(14 * 60), // superseded by this turn
	}

	merged := turn.Merge(pending)
	assert.Equal(t, "LT1", merged.RoomName)
	assert.Equal(t, "2026-06-25", merged.Date)
	assert.Equal(t, 9*60, *merged.Start)
	assert.Equal(t, 11*60, *merged.End)
}

func TestMissingFieldsOrder(t *testing.T) {
	assert.Equal(t,
		[]string{"room_name", "date", "start_time", "end_time"},
		BookingRequest{}.MissingFields())

	assert.Equal(t,
		[]string{"end_time"},
		BookingRequest{RoomName: "LT1", Date: "2026-06-25", Start: intPtr(9 * 60)}.MissingFields())

	assert.Empty(t,
		BookingRequest{RoomName: "LT1", Date: "2026-06-25", Start: intPtr(9 * 60), End: intPtr(10 * 60)}.MissingFields())
}

func TestMissingFieldsInvertedWindow(t *testing.T) {
	missing := BookingRequest{
		RoomName: "LT1",
		Date:     "2026-06-25",
		Start:    intPtr(11 * 60),
		End:      intPtr(9 * 60),
	}.MissingFields()
	assert.Equal(t, []string{"start_time", "end_time"}, missing)
}

func TestOverlapsHalfOpen(t *testing.T) {
	b := Booking{RoomName: "LT1", Date: "2026-06-25", Start: 9 * 60, End: 10 * 60}

	assert.True(t, b.Overlaps("2026-06-25", 9*60+30, 10*60+30))
	assert.True(t, b.Overlaps("2026-06-25", 8*60, 12*60))
	assert.False(t, b.Overlaps("2026-06-25", 10*60, 11*60), "back-to-back is not a conflict")
	assert.False(t, b.Overlaps("2026-06-25", 8*60, 9*60), "back-to-back is not a conflict")
	assert.False(t, b.Overlaps("2026-06-26", 9*60, 10*60), "different date never conflicts")
}
