package booking

import (
	"context"

	"campuspilot/models"
	"campuspilot/utils"

	"go.uber.org/zap"
)

// Check determines whether the requested slot is free. Parameter validation
// happens before any store access; a request with absent fields never touches
// the calendar. Overlap uses half-open [start, end) semantics, so back-to-back
// bookings do not conflict.
func (s *DefaultBookingService) Check(ctx context.Context, req models.BookingRequest) (AvailabilityResult, error) {
	if missing := req.MissingFields(); len(missing) > 0 {
		return AvailabilityResult{Status: StatusMissingParameters, Missing: missing}, nil
	}
	return s.checkExcluding(ctx, req, "")
}

// checkExcluding runs the availability scan ignoring the booking with the
// given id, so updates can re-validate against the other bookings only.
func (s *DefaultBookingService) checkExcluding(ctx context.Context, req models.BookingRequest, excludeID string) (AvailabilityResult, error) {
	logger := utils.GetLogger()

	room, err := s.RoomRepo.GetByName(ctx, req.RoomName)
	if err != nil {
		return AvailabilityResult{}, NewStoreError("room lookup", err)
	}
	if room == nil {
		return AvailabilityResult{Status: StatusRoomNotFound}, nil
	}

	existing, err := s.listBookingsWithRetry(ctx, req.RoomName, req.Date)
	if err != nil {
		return AvailabilityResult{}, err
	}

	for i := range existing {
		if existing[i].ID == excludeID {
			continue
		}
		if existing[i].Overlaps(req.Date, *req.Start, *req.End) {
			conflict := existing[i]
			logger.Debug("slot conflict",
				zap.String("room", req.RoomName),
				zap.String("date", req.Date),
				zap.String("conflictingBooking", conflict.ID))
			return AvailabilityResult{Status: StatusUnavailable, Conflict: &conflict}, nil
		}
	}
	return AvailabilityResult{Status: StatusAvailable}, nil
}

// isSlotFree reports whether [start, end) on date is free in room, ignoring
// excludeID. Used by the recommendation scans.
func (s *DefaultBookingService) isSlotFree(ctx context.Context, roomName, date string, start, end int, excludeID string) (bool, error) {
	existing, err := s.listBookingsWithRetry(ctx, roomName, date)
	if err != nil {
		return false, err
	}
	for i := range existing {
		if existing[i].ID == excludeID {
			continue
		}
		if existing[i].Overlaps(date, start, end) {
			return false, nil
		}
	}
	return true, nil
}
