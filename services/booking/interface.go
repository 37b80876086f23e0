package booking

import (
	"context"

	bookingRepo "campuspilot/database/repository/booking"
	roomRepo "campuspilot/database/repository/room"
	"campuspilot/models"
)

// Availability statuses returned by Check.
const (
	StatusAvailable         = "available"
	StatusUnavailable       = "unavailable"
	StatusRoomNotFound      = "room_not_found"
	StatusMissingParameters = "missing_parameters"
)

// AvailabilityResult is the structured verdict for a booking request.
type AvailabilityResult struct {
	Status   string          `json:"status"`
	Conflict *models.Booking `json:"conflict,omitempty"` // set when unavailable
	Missing  []string        `json:"missing,omitempty"`  // set when parameters are absent
}

// BookingService is the booking engine: availability checking, alternative
// recommendation, and the mutation path against the calendar store.
type BookingService interface {
	Check(ctx context.Context, req models.BookingRequest) (AvailabilityResult, error)
	Recommend(ctx context.Context, req models.BookingRequest, result AvailabilityResult) ([]models.Recommendation, error)

	CreateBooking(ctx context.Context, req models.BookingRequest) (*models.Booking, error)
	UpdateBooking(ctx context.Context, bookingID string, fields map[string]interface{}) (*models.Booking, error)
	DeleteBooking(ctx context.Context, bookingID string) error

	GetBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	ListBookings(ctx context.Context, roomName, date string) ([]models.Booking, error)
	ListRooms(ctx context.Context) ([]models.Room, error)
	ListBookingsByModule(ctx context.Context, moduleCode string) ([]models.Booking, error)
}

// Policy carries the recommendation tuning knobs. The defaults mirror the
// config defaults; tests construct their own.
type Policy struct {
	RecommendationCap  int     // max recommendations returned
	ShiftStepMinutes   int     // smart-scheduling shift increment
	ShiftHorizonMins   int     // bounded search horizon around the requested window
	AlternativeScore   float64 // flat score for alternative rooms when group size unknown
	ProactiveScore     float64 // flat score for the next-free-day fallback
	FreeDayScanDays    int     // how far ahead the proactive scan looks
	DayStartMinute     int     // earliest slot start considered
	DayEndMinute       int     // latest slot end considered
}

// DefaultBookingService is the production implementation backed by Mongo
// repositories.
type DefaultBookingService struct {
	RoomRepo    roomRepo.RoomRepository
	BookingRepo bookingRepo.BookingRepository
	Policy      Policy
}
