// File: database/repository/booking/interface.go
package bookingRepo

import (
	"context"

	"campuspilot/database"
	"campuspilot/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// BookingRepository is the persistence boundary for booking records.
// Implementations may fail with store-level errors (network/serialization);
// callers map those to a store-unavailable result.
type BookingRepository interface {
	Create(ctx context.Context, booking models.Booking) (string, error)
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) (*models.Booking, error)
	Delete(ctx context.Context, id string) error
	ListByRoomAndDate(ctx context.Context, roomName, date string) ([]models.Booking, error)
	ListByRoom(ctx context.Context, roomName string) ([]models.Booking, error)
	ListByModuleCode(ctx context.Context, moduleCode string) ([]models.Booking, error)
	ListByDate(ctx context.Context, date string) ([]models.Booking, error)
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a new MongoDB BookingRepository.
func NewMongoBookingRepo() BookingRepository {
	return &mongoBookingRepo{
		coll: database.Database().Collection("bookings"),
	}
}
