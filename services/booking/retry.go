package booking

import (
	"context"
	"time"

	"campuspilot/models"
	"campuspilot/utils"

	"go.uber.org/zap"
)

// storeRetryBackoff is the pause before the single retry of a failed store call.
const storeRetryBackoff = 200 * time.Millisecond

// listBookingsWithRetry fetches a room's bookings for a date, retrying once on
// a store failure. Validation failures never reach this path; only I/O errors
// are retried.
func (s *DefaultBookingService) listBookingsWithRetry(ctx context.Context, roomName, date string) ([]models.Booking, error) {
	bookings, err := s.BookingRepo.ListByRoomAndDate(ctx, roomName, date)
	if err == nil {
		return bookings, nil
	}
	utils.GetLogger().Warn("calendar store list failed, retrying",
		zap.String("room", roomName), zap.String("date", date), zap.Error(err))

	select {
	case <-ctx.Done():
		return nil, NewStoreError("list bookings", ctx.Err())
	case <-time.After(storeRetryBackoff):
	}

	bookings, err = s.BookingRepo.ListByRoomAndDate(ctx, roomName, date)
	if err != nil {
		return nil, NewStoreError("list bookings", err)
	}
	return bookings, nil
}
