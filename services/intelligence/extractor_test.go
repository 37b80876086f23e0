package ai

import (
	"context"
	"testing"
	"time"

	"campuspilot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedNow pins the extractor's clock so "today"/"tomorrow" are stable.
var fixedNow = time.Date(2026, 6, 24, 10, 0, 0, 0, time.UTC)

func newTestExtractor() *RuleBasedExtractor {
	return &RuleBasedExtractor{now: func() time.Time { return fixedNow }}
}

func TestExtractFullBookingPhrase(t *testing.T) {
	ex := newTestExtractor()

	out, err := ex.Extract(context.Background(), "Book LT1 on 2026-06-25 from 09:00 to 11:00 for CS2030")
	require.NoError(t, err)

	assert.Equal(t, models.IntentBook, out.Intent)
	assert.Equal(t, "LT1", out.Request.RoomName)
	assert.Equal(t, "2026-06-25", out.Request.Date)
	require.NotNil(t, out.Request.Start)
	require.NotNil(t, out.Request.End)
	assert.Equal(t, 9*60, *out.Request.Start)
	assert.Equal(t, 11*60, *out.Request.End)
	assert.Equal(t, "CS2030", out.Request.ModuleCode)
}

func TestExtractIntentClassification(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"book LT1 tomorrow at 9am", models.IntentBook},
		{"reserve sr-4 for the seminar", models.IntentBook},
		{"is LT2 free on 2026-07-01?", models.IntentCheck},
		{"check availability for lab 3", models.IntentCheck},
		{"cancel my booking", models.IntentCancel},
		{"please delete 1b4e28ba-2fa1-11d2-883f-0016d3cca427", models.IntentCancel},
	}

	ex := newTestExtractor()
	for _, tc := range tests {
		t.Run(tc.text, func(t *testing.T) {
			out, err := ex.Extract(context.Background(), tc.text)
			require.NoError(t, err)
			assert.Equal(t, tc.want, out.Intent)
		})
	}
}

func TestExtractRoomNormalization(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"book LT1", "LT1"},
		{"book lt 1", "LT1"},
		{"book sr-4", "SR4"},
		{"reserve Hall 12", "HALL12"},
		{"book lab3", "LAB3"},
	}

	ex := newTestExtractor()
	for _, tc := range tests {
		t.Run(tc.text, func(t *testing.T) {
			out, err := ex.Extract(context.Background(), tc.text)
			require.NoError(t, err)
			assert.Equal(t, tc.want, out.Request.RoomName)
		})
	}
}

func TestExtractRelativeDates(t *testing.T) {
	ex := newTestExtractor()

	out, err := ex.Extract(context.Background(), "is LT1 free today?")
	require.NoError(t, err)
	assert.Equal(t, "2026-06-24", out.Request.Date)

	out, err = ex.Extract(context.Background(), "book LT1 tomorrow")
	require.NoError(t, err)
	assert.Equal(t, "2026-06-25", out.Request.Date)
}

func TestExtractTimes(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		start, end int
	}{
		{"24h clock", "book LT1 from 14:00 to 16:30", 14 * 60, 16*60 + 30},
		{"meridiem clock", "book LT1 from 9:30am to 2:00pm", 9*60 + 30, 14 * 60},
		{"bare hours", "book LT1 from 9am to 11am", 9 * 60, 11 * 60},
		{"mixed", "book LT1 from 9am to 11:15", 9 * 60, 11*60 + 15},
		{"noon and midnight", "book LT1 from 12am to 12pm", 0, 12 * 60},
	}

	ex := newTestExtractor()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := ex.Extract(context.Background(), tc.text)
			require.NoError(t, err)
			require.NotNil(t, out.Request.Start)
			require.NotNil(t, out.Request.End)
			assert.Equal(t, tc.start, *out.Request.Start)
			assert.Equal(t, tc.end, *out.Request.End)
		})
	}
}

func TestExtractSingleTimeLeavesEndNil(t *testing.T) {
	ex := newTestExtractor()

	out, err := ex.Extract(context.Background(), "book LT1 tomorrow at 9:00")
	require.NoError(t, err)
	require.NotNil(t, out.Request.Start)
	assert.Equal(t, 9*60, *out.Request.Start)
	assert.Nil(t, out.Request.End)
}

func TestExtractGroupSize(t *testing.T) {
	ex := newTestExtractor()

	out, err := ex.Extract(context.Background(), "book a hall tomorrow for 45 students")
	require.NoError(t, err)
	assert.Equal(t, 45, out.Request.GroupSize)
}

func TestExtractBookingID(t *testing.T) {
	ex := newTestExtractor()

	out, err := ex.Extract(context.Background(), "cancel 1B4E28BA-2FA1-11D2-883F-0016D3CCA427 please")
	require.NoError(t, err)
	assert.Equal(t, models.IntentCancel, out.Intent)
	assert.Equal(t, "1b4e28ba-2fa1-11d2-883f-0016d3cca427", out.BookingID)
}

func TestExtractGibberishFails(t *testing.T) {
	ex := newTestExtractor()

	_, err := ex.Extract(context.Background(), "purple monkey dishwasher")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExtractionFailure)
}
