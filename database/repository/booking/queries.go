// File: database/repository/booking/queries.go
package bookingRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"campuspilot/models"
)

var listSort = options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "start", Value: 1}})

func (r *mongoBookingRepo) list(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, listSort)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *mongoBookingRepo) ListByRoomAndDate(ctx context.Context, roomName, date string) ([]models.Booking, error) {
	return r.list(ctx, bson.M{"room_name": roomName, "date": date})
}

func (r *mongoBookingRepo) ListByRoom(ctx context.Context, roomName string) ([]models.Booking, error) {
	return r.list(ctx, bson.M{"room_name": roomName})
}

func (r *mongoBookingRepo) ListByModuleCode(ctx context.Context, moduleCode string) ([]models.Booking, error) {
	return r.list(ctx, bson.M{"module_code": moduleCode})
}

func (r *mongoBookingRepo) ListByDate(ctx context.Context, date string) ([]models.Booking, error) {
	return r.list(ctx, bson.M{"date": date})
}
