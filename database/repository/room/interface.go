// File: database/repository/room/interface.go
package roomRepo

import (
	"context"

	"campuspilot/database"
	"campuspilot/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// RoomRepository is the read-only hall catalogue. Rooms are provisioned by an
// admin import, never by the booking engine.
type RoomRepository interface {
	List(ctx context.Context) ([]models.Room, error)
	GetByName(ctx context.Context, name string) (*models.Room, error)
}

type mongoRoomRepo struct {
	coll *mongo.Collection
}

// NewMongoRoomRepo constructs a new MongoDB RoomRepository.
func NewMongoRoomRepo() RoomRepository {
	return &mongoRoomRepo{
		coll: database.Database().Collection("rooms"),
	}
}
