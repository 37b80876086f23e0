package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"campuspilot/models"
	"campuspilot/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// CreateBooking validates the request, re-checks availability, and persists
// the booking. The per-room lock is held across check and write so two
// concurrent requests for the same slot cannot both commit.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, req models.BookingRequest) (*models.Booking, error) {
	if missing := req.MissingFields(); len(missing) > 0 {
		return nil, NewBookingError(CodeMissingParameters,
			fmt.Sprintf("missing required fields: %s", strings.Join(missing, ", ")))
	}

	lock := mutationLocks.forRoom(req.RoomName)
	lock.Lock()
	defer lock.Unlock()

	result, err := s.checkExcluding(ctx, req, "")
	if err != nil {
		return nil, err
	}
	switch result.Status {
	case StatusRoomNotFound:
		return nil, NewBookingError(CodeRoomNotFound, fmt.Sprintf("unknown room %q", req.RoomName))
	case StatusUnavailable:
		return nil, &BookingError{
			Code: CodeUnavailable,
			Message: fmt.Sprintf("%s is already booked on %s from %s to %s",
				req.RoomName, req.Date,
				utils.FormatClock(result.Conflict.Start), utils.FormatClock(result.Conflict.End)),
		}
	}

	booking := models.Booking{
		RoomName:    req.RoomName,
		Requester:   req.Requester,
		RequesterID: req.RequesterID,
		Date:        req.Date,
		Start:       *req.Start,
		End:         *req.End,
		ModuleCode:  req.ModuleCode,
		CreatedAt:   time.Now(),
	}

	id, err := s.BookingRepo.Create(ctx, booking)
	if err != nil {
		return nil, NewStoreError("create booking", err)
	}
	booking.ID = id

	utils.GetLogger().Info("booking created",
		zap.String("bookingID", id),
		zap.String("room", booking.RoomName),
		zap.String("date", booking.Date))
	return &booking, nil
}

// UpdateBooking applies field changes after re-running the availability check
// against the other bookings, excluding the booking being moved.
func (s *DefaultBookingService) UpdateBooking(ctx context.Context, bookingID string, fields map[string]interface{}) (*models.Booking, error) {
	current, err := s.BookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, NewStoreError("get booking", err)
	}
	if current == nil {
		return nil, NewBookingError(CodeNotFound, fmt.Sprintf("booking %q not found", bookingID))
	}

	proposed := *current
	if v, ok := fields["room_name"].(string); ok {
		proposed.RoomName = v
	}
	if v, ok := fields["date"].(string); ok {
		proposed.Date = v
	}
	if v, ok := fields["start"].(int); ok {
		proposed.Start = v
	}
	if v, ok := fields["end"].(int); ok {
		proposed.End = v
	}
	if v, ok := fields["module_code"].(string); ok {
		proposed.ModuleCode = v
	}
	if proposed.Start >= proposed.End {
		return nil, NewBookingError(CodeMissingParameters, "start_time must be before end_time")
	}

	// Lock the destination room; when moving rooms this also covers the scan
	// of the target calendar.
	lock := mutationLocks.forRoom(proposed.RoomName)
	lock.Lock()
	defer lock.Unlock()

	req := models.BookingRequest{
		RoomName: proposed.RoomName,
		Date:     proposed.Date,
		Start:    &proposed.Start,
		End:      &proposed.End,
	}
	result, err := s.checkExcluding(ctx, req, bookingID)
	if err != nil {
		return nil, err
	}
	switch result.Status {
	case StatusRoomNotFound:
		return nil, NewBookingError(CodeRoomNotFound, fmt.Sprintf("unknown room %q", proposed.RoomName))
	case StatusUnavailable:
		return nil, &BookingError{
			Code: CodeUnavailable,
			Message: fmt.Sprintf("%s is already booked on %s from %s to %s",
				proposed.RoomName, proposed.Date,
				utils.FormatClock(result.Conflict.Start), utils.FormatClock(result.Conflict.End)),
		}
	}

	updated, err := s.BookingRepo.Update(ctx, bookingID, fields)
	if err != nil {
		return nil, NewStoreError("update booking", err)
	}
	if updated == nil {
		return nil, NewBookingError(CodeNotFound, fmt.Sprintf("booking %q not found", bookingID))
	}

	utils.GetLogger().Info("booking updated", zap.String("bookingID", bookingID))
	return updated, nil
}

// DeleteBooking removes the booking unconditionally.
func (s *DefaultBookingService) DeleteBooking(ctx context.Context, bookingID string) error {
	err := s.BookingRepo.Delete(ctx, bookingID)
	if err == mongo.ErrNoDocuments {
		return NewBookingError(CodeNotFound, fmt.Sprintf("booking %q not found", bookingID))
	}
	if err != nil {
		return NewStoreError("delete booking", err)
	}
	utils.GetLogger().Info("booking deleted", zap.String("bookingID", bookingID))
	return nil
}

func (s *DefaultBookingService) GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	booking, err := s.BookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, NewStoreError("get booking", err)
	}
	if booking == nil {
		return nil, NewBookingError(CodeNotFound, fmt.Sprintf("booking %q not found", bookingID))
	}
	return booking, nil
}

// ListBookings returns a room's bookings, optionally narrowed to a date.
func (s *DefaultBookingService) ListBookings(ctx context.Context, roomName, date string) ([]models.Booking, error) {
	var (
		bookings []models.Booking
		err      error
	)
	if date != "" {
		bookings, err = s.BookingRepo.ListByRoomAndDate(ctx, roomName, date)
	} else {
		bookings, err = s.BookingRepo.ListByRoom(ctx, roomName)
	}
	if err != nil {
		return nil, NewStoreError("list bookings", err)
	}
	return bookings, nil
}

func (s *DefaultBookingService) ListRooms(ctx context.Context) ([]models.Room, error) {
	rooms, err := s.RoomRepo.List(ctx)
	if err != nil {
		return nil, NewStoreError("list rooms", err)
	}
	return rooms, nil
}

func (s *DefaultBookingService) ListBookingsByModule(ctx context.Context, moduleCode string) ([]models.Booking, error) {
	bookings, err := s.BookingRepo.ListByModuleCode(ctx, moduleCode)
	if err != nil {
		return nil, NewStoreError("list bookings by module", err)
	}
	return bookings, nil
}
