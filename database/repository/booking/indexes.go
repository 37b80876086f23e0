// File: database/repository/booking/indexes.go
package bookingRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"campuspilot/database"
	"campuspilot/utils"

	"go.uber.org/zap"
)

// EnsureBookingIndexes creates the indexes the booking queries depend on:
// a unique index on the booking id and a compound index on (room_name, date)
// backing the availability scan.
func EnsureBookingIndexes() {
	coll := database.Database().Collection("bookings")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "room_name", Value: 1}, {Key: "date", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "module_code", Value: 1}},
		},
	}
	if _, err := coll.Indexes().CreateMany(ctx, indexes); err != nil {
		utils.GetLogger().Error("failed to create booking indexes", zap.Error(err))
	}
}
