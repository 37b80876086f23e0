// File: database/repository/user/interface.go
package userRepo

import (
	"context"

	"campuspilot/database"
	"campuspilot/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// UserRepository persists staff accounts.
type UserRepository interface {
	Create(ctx context.Context, user models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
}

type mongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepo constructs a new MongoDB UserRepository.
func NewMongoUserRepo() UserRepository {
	return &mongoUserRepo{
		coll: database.Database().Collection("users"),
	}
}
