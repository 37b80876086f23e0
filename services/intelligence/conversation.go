// File: services/intelligence/conversation.go
package ai

import (
	"fmt"
	"strings"

	"campuspilot/models"
	"campuspilot/utils"
)

// Response rendering is deterministic templating; no LLM call is involved in
// turning verdicts into text.

func renderGreeting() string {
	return "Hi! I can check hall availability, make bookings, or cancel them. " +
		"Try something like: book LT1 on 2025-06-25 from 09:00 to 11:00."
}

func renderExtractionFailure() string {
	return "Sorry, I couldn't work out what you need. Tell me the hall, date and " +
		"time, for example: is LT1 free tomorrow from 10:00 to 12:00?"
}

var fieldPrompts = map[string]string{
	"room_name":  "which hall",
	"date":       "the date",
	"start_time": "the start time",
	"end_time":   "the end time",
}

func renderMissing(missing []string) string {
	seen := make(map[string]bool)
	var asks []string
	for _, f := range missing {
		prompt, ok := fieldPrompts[f]
		if !ok || seen[f] {
			continue
		}
		seen[f] = true
		asks = append(asks, prompt)
	}
	if len(asks) == 0 {
		return "I need a valid time window to continue. What time should the booking start and end?"
	}
	return fmt.Sprintf("Almost there. Could you tell me %s?", strings.Join(asks, ", "))
}

func renderRoomNotFound(roomName string) string {
	if roomName == "" {
		return "I don't recognise that hall. Which hall did you mean?"
	}
	return fmt.Sprintf("I don't know a hall called %s. Could you check the name?", roomName)
}

func renderAvailable(req models.BookingRequest) string {
	return fmt.Sprintf("%s is free on %s from %s to %s.",
		req.RoomName, req.Date, utils.FormatClock(*req.Start), utils.FormatClock(*req.End))
}

func renderUnavailable(req models.BookingRequest, conflict *models.Booking, recs []models.Recommendation) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s is already booked on %s from %s to %s",
		req.RoomName, req.Date,
		utils.FormatClock(conflict.Start), utils.FormatClock(conflict.End))
	if conflict.Requester != "" {
		fmt.Fprintf(&sb, " by %s", conflict.Requester)
	}
	sb.WriteString(".")

	if len(recs) == 0 {
		sb.WriteString(" I couldn't find an alternative nearby.")
		return sb.String()
	}

	sb.WriteString(" Here's what I found instead:")
	for i, rec := range recs {
		fmt.Fprintf(&sb, "\n%d. %s", i+1, rec.Reason)
	}
	return sb.String()
}

func renderBooked(b *models.Booking) string {
	return fmt.Sprintf("Done! %s is booked on %s from %s to %s. Your booking ID is %s.",
		b.RoomName, b.Date, utils.FormatClock(b.Start), utils.FormatClock(b.End), b.ID)
}

func renderLostRace(req models.BookingRequest) string {
	return fmt.Sprintf("Someone else just took %s at that time on %s. "+
		"Ask me again and I'll suggest alternatives.", req.RoomName, req.Date)
}
