package booking

import (
	"context"
	"sync"
	"testing"

	"campuspilot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndGetBooking(t *testing.T) {
	svc, _ := newTestService(testRooms)

	created, err := svc.CreateBooking(context.Background(), models.BookingRequest{
		RoomName:   "LT1",
		Date:       "2026-09-01",
		Start:      intPtr(9 * 60),
		End:        intPtr(10 * 60),
		Requester:  "Dr. Okafor",
		ModuleCode: "CS2040",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := svc.GetBooking(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "LT1", got.RoomName)
	assert.Equal(t, 9*60, got.Start)
	assert.Equal(t, "CS2040", got.ModuleCode)
}

func TestCreateBookingRejectsConflict(t *testing.T) {
	svc, repo := newTestService(testRooms)
	seedBooking(t, repo, "LT1", "2026-09-01", 9*60, 10*60)

	_, err := svc.CreateBooking(context.Background(), models.BookingRequest{
		RoomName: "LT1",
		Date:     "2026-09-01",
		Start:    intPtr(9 * 60 + 30),
		End:      intPtr(10 * 60 + 30),
	})
	require.Error(t, err)
	assert.Equal(t, CodeUnavailable, ErrorCode(err))
}

func TestCreateBookingMissingFields(t *testing.T) {
	svc, _ := newTestService(testRooms)

	_, err := svc.CreateBooking(context.Background(), models.BookingRequest{
		RoomName: "LT1",
		Date:     "2026-09-01",
	})
	require.Error(t, err)
	assert.Equal(t, CodeMissingParameters, ErrorCode(err))
}

func TestCreateBookingUnknownRoom(t *testing.T) {
	svc, _ := newTestService(testRooms)

	_, err := svc.CreateBooking(context.Background(), models.BookingRequest{
		RoomName: "LT99",
		Date:     "2026-09-01",
		Start:    intPtr(9 * 60),
		End:      intPtr(10 * 60),
	})
	require.Error(t, err)
	assert.Equal(t, CodeRoomNotFound, ErrorCode(err))
}

// Two identical requests raced concurrently: exactly one may commit.
func TestConcurrentCreateSameSlot(t *testing.T) {
	svc, repo := newTestService(testRooms)

	const racers = 8
	var wg sync.WaitGroup
	errs := make([]error, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.CreateBooking(context.Background(), models.BookingRequest{
				RoomName: "LT1",
				Date:     "2026-09-01",
				Start:    intPtr(9 * 60),
				End:      intPtr(10 * 60),
			})
		}(i)
	}
	wg.Wait()

	var successes, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case ErrorCode(err) == CodeUnavailable:
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, racers-1, conflicts)

	stored, err := repo.ListByRoomAndDate(context.Background(), "LT1", "2026-09-01")
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestUpdateBookingMovesSlot(t *testing.T) {
	svc, repo := newTestService(testRooms)
	b := seedBooking(t, repo, "LT1", "2026-09-01", 9*60, 10*60)

	updated, err := svc.UpdateBooking(context.Background(), b.ID, map[string]interface{}{
		"start": 14 * 60,
		"end":   15 * 60,
	})
	require.NoError(t, err)
	assert.Equal(t, 14*60, updated.Start)
	assert.Equal(t, 15*60, updated.End)
}

func TestUpdateBookingIgnoresOwnSlot(t *testing.T) {
	svc, repo := newTestService(testRooms)
	b := seedBooking(t, repo, "LT1", "2026-09-01", 9*60, 10*60)

	// Shrinking within its own window must not conflict with itself.
	updated, err := svc.UpdateBooking(context.Background(), b.ID, map[string]interface{}{
		"start": 9*60 + 15,
	})
	require.NoError(t, err)
	assert.Equal(t, 9*60+15, updated.Start)
}

func TestUpdateBookingRejectsConflictWithOther(t *testing.T) {
	svc, repo := newTestService(testRooms)
	b := seedBooking(t, repo, "LT1", "2026-09-01", 9*60, 10*60)
	seedBooking(t, repo, "LT1", "2026-09-01", 11*60, 12*60)

	_, err := svc.UpdateBooking(context.Background(), b.ID, map[string]interface{}{
		"start": 11*60 + 30,
		"end":   12*60 + 30,
	})
	require.Error(t, err)
	assert.Equal(t, CodeUnavailable, ErrorCode(err))
}

func TestUpdateBookingInvertedWindow(t *testing.T) {
	svc, repo := newTestService(testRooms)
	b := seedBooking(t, repo, "LT1", "2026-09-01", 9*60, 10*60)

	_, err := svc.UpdateBooking(context.Background(), b.ID, map[string]interface{}{
		"start": 16 * 60,
		"end":   15 * 60,
	})
	require.Error(t, err)
	assert.Equal(t, CodeMissingParameters, ErrorCode(err))
}

func TestUpdateBookingNotFound(t *testing.T) {
	svc, _ := newTestService(testRooms)

	_, err := svc.UpdateBooking(context.Background(), "no-such-id", map[string]interface{}{
		"start": 9 * 60,
	})
	require.Error(t, err)
	assert.Equal(t, CodeNotFound, ErrorCode(err))
}

func TestDeleteBooking(t *testing.T) {
	svc, repo := newTestService(testRooms)
	b := seedBooking(t, repo, "LT1", "2026-09-01", 9*60, 10*60)

	require.NoError(t, svc.DeleteBooking(context.Background(), b.ID))

	_, err := svc.GetBooking(context.Background(), b.ID)
	require.Error(t, err)
	assert.Equal(t, CodeNotFound, ErrorCode(err))

	err = svc.DeleteBooking(context.Background(), b.ID)
	require.Error(t, err)
	assert.Equal(t, CodeNotFound, ErrorCode(err))
}

func TestListBookingsByRoomAndModule(t *testing.T) {
	svc, repo := newTestService(testRooms)
	seedBooking(t, repo, "LT1", "2026-09-01", 9*60, 10*60)
	seedBooking(t, repo, "LT1", "2026-09-02", 9*60, 10*60)
	seedBooking(t, repo, "LT2", "2026-09-01", 9*60, 10*60)

	all, err := svc.ListBookings(context.Background(), "LT1", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	day, err := svc.ListBookings(context.Background(), "LT1", "2026-09-01")
	require.NoError(t, err)
	assert.Len(t, day, 1)

	created, err := svc.CreateBooking(context.Background(), models.BookingRequest{
		RoomName:   "SR-4",
		Date:       "2026-09-01",
		Start:      intPtr(13 * 60),
		End:        intPtr(14 * 60),
		ModuleCode: "EE3001",
	})
	require.NoError(t, err)

	byModule, err := svc.ListBookingsByModule(context.Background(), "EE3001")
	require.NoError(t, err)
	require.Len(t, byModule, 1)
	assert.Equal(t, created.ID, byModule[0].ID)
}
