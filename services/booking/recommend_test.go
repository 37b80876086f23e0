package booking

import (
	"context"
	"testing"

	"campuspilot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unavailableResult(conflict models.Booking) AvailabilityResult {
	return AvailabilityResult{Status: StatusUnavailable, Conflict: &conflict}
}

func TestRecommendNothingWhenAvailable(t *testing.T) {
	svc, _ := newTestService(testRooms)

	recs, err := svc.Recommend(context.Background(), models.BookingRequest{
		RoomName: "LT1", Date: "2026-09-01", Start: intPtr(9 * 60), End: intPtr(10 * 60),
	}, AvailabilityResult{Status: StatusAvailable})
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestRecommendAlternativeRooms(t *testing.T) {
	svc, repo := newTestService(testRooms)
	conflict := seedBooking(t, repo, "LT1", "2026-09-01", 9*60, 10*60)

	req := models.BookingRequest{
		RoomName: "LT1", Date: "2026-09-01", Start: intPtr(9 * 60), End: intPtr(10 * 60),
	}
	recs, err := svc.Recommend(context.Background(), req, unavailableResult(conflict))
	require.NoError(t, err)
	require.NotEmpty(t, recs)

	var altRooms []string
	for _, r := range recs {
		if r.Type == models.RecAlternativeRoom {
			altRooms = append(altRooms, r.Suggestion.RoomName)
			assert.Equal(t, 9*60, r.Suggestion.Start)
			assert.Equal(t, 10*60, r.Suggestion.End)
			assert.Equal(t, "2026-09-01", r.Suggestion.Date)
			assert.Equal(t, "room_catalogue_scan", r.DataSource)
			assert.NotContains(t, altRooms, "LT1")
		}
	}
	assert.NotEmpty(t, altRooms)
}

func TestRecommendCapAndOrdering(t *testing.T) {
	svc, repo := newTestService(testRooms)
	conflict := seedBooking(t, repo, "LT1", "2026-09-01", 9*60, 10*60)

	req := models.BookingRequest{
		RoomName: "LT1", Date: "2026-09-01", Start: intPtr(9 * 60), End: intPtr(10 * 60),
	}
	recs, err := svc.Recommend(context.Background(), req, unavailableResult(conflict))
	require.NoError(t, err)
	require.NotEmpty(t, recs)
	assert.LessOrEqual(t, len(recs), svc.Policy.RecommendationCap)

	for i := 1; i < len(recs); i++ {
		assert.GreaterOrEqual(t, recs[i-1].Score, recs[i].Score, "recommendations must be sorted by score desc")
	}
}

func TestRecommendGroupSizeFiltersAndScores(t *testing.T) {
	svc, repo := newTestService(testRooms)
	conflict := seedBooking(t, repo, "LT1", "2026-09-01", 9*60, 10*60)

	req := models.BookingRequest{
		RoomName:  "LT1",
		Date:      "2026-09-01",
		Start:     intPtr(9 * 60),
		End:       intPtr(10 * 60),
		GroupSize: 60, // SR-4 (24 seats) must be excluded
	}
	recs, err := svc.Recommend(context.Background(), req, unavailableResult(conflict))
	require.NoError(t, err)

	for _, r := range recs {
		if r.Type != models.RecAlternativeRoom {
			continue
		}
		assert.NotEqual(t, "SR-4", r.Suggestion.RoomName)
		if r.Suggestion.RoomName == "LT2" {
			// 0.6 + 0.35*60/80
			assert.InDelta(t, 0.8625, r.Score, 1e-9)
		}
	}
}

func TestRecommendShiftedWindows(t *testing.T) {
	// Only one room: no alternatives, so shifts must fill the slate.
	svc, repo := newTestService([]models.Room{{Name: "LT1", Capacity: 120}})
	conflict := seedBooking(t, repo, "LT1", "2026-09-01", 9*60, 10*60)

	req := models.BookingRequest{
		RoomName: "LT1", Date: "2026-09-01", Start: intPtr(9 * 60), End: intPtr(10 * 60),
	}
	recs, err := svc.Recommend(context.Background(), req, unavailableResult(conflict))
	require.NoError(t, err)
	require.NotEmpty(t, recs)

	for _, r := range recs {
		assert.Equal(t, models.RecSmartScheduling, r.Type)
		assert.Equal(t, "LT1", r.Suggestion.RoomName)
		assert.Equal(t, 60, r.Suggestion.End-r.Suggestion.Start, "duration preserved")
		assert.Equal(t, "same_room_shift_scan", r.DataSource)
		assert.False(t, conflict.Overlaps("2026-09-01", r.Suggestion.Start, r.Suggestion.End),
			"suggested window must not overlap the conflict")
	}
	// The two closest shifts score equally; the earlier start wins the tie.
	assert.Equal(t, 8*60, recs[0].Suggestion.Start)
}

func TestRecommendShiftRespectsDayBounds(t *testing.T) {
	svc, repo := newTestService([]models.Room{{Name: "LT1", Capacity: 120}})
	conflict := seedBooking(t, repo, "LT1", "2026-09-01", 8*60, 9*60)

	// Requested window starts at the day boundary; earlier shifts are invalid.
	req := models.BookingRequest{
		RoomName: "LT1", Date: "2026-09-01", Start: intPtr(8 * 60), End: intPtr(9 * 60),
	}
	recs, err := svc.Recommend(context.Background(), req, unavailableResult(conflict))
	require.NoError(t, err)

	for _, r := range recs {
		assert.GreaterOrEqual(t, r.Suggestion.Start, svc.Policy.DayStartMinute)
		assert.LessOrEqual(t, r.Suggestion.End, svc.Policy.DayEndMinute)
	}
}

func TestRecommendProactiveFallback(t *testing.T) {
	svc, repo := newTestService([]models.Room{{Name: "LT1", Capacity: 120}})
	// Fill the whole bookable day plus all shiftable windows.
	conflict := seedBooking(t, repo, "LT1", "2026-09-01", 8*60, 22*60)

	req := models.BookingRequest{
		RoomName: "LT1", Date: "2026-09-01", Start: intPtr(9 * 60), End: intPtr(10 * 60),
	}
	recs, err := svc.Recommend(context.Background(), req, unavailableResult(conflict))
	require.NoError(t, err)
	require.Len(t, recs, 1)

	rec := recs[0]
	assert.Equal(t, models.RecProactive, rec.Type)
	assert.Equal(t, "2026-09-02", rec.Suggestion.Date)
	assert.Equal(t, 9*60, rec.Suggestion.Start)
	assert.Equal(t, "free_day_scan", rec.DataSource)
	assert.InDelta(t, svc.Policy.ProactiveScore, rec.Score, 1e-9)
}

func TestRecommendProactiveSkipsBusyDays(t *testing.T) {
	svc, repo := newTestService([]models.Room{{Name: "LT1", Capacity: 120}})
	conflict := seedBooking(t, repo, "LT1", "2026-09-01", 8*60, 22*60)
	seedBooking(t, repo, "LT1", "2026-09-02", 8*60, 22*60)

	req := models.BookingRequest{
		RoomName: "LT1", Date: "2026-09-01", Start: intPtr(9 * 60), End: intPtr(10 * 60),
	}
	recs, err := svc.Recommend(context.Background(), req, unavailableResult(conflict))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "2026-09-03", recs[0].Suggestion.Date)
}
