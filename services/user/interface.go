// File: services/user/interface.go
package user

import (
	"context"

	userRepo "campuspilot/database/repository/user"
	"campuspilot/models"
	"campuspilot/utils"
)

// UserService manages staff accounts and the OTP-backed auth flow.
type UserService interface {
	Register(ctx context.Context, name, email, phone, password string) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (string, *models.User, error)
	VerifyOTP(ctx context.Context, userID, otp string) error
	ResetPassword(ctx context.Context, email, otp, newPassword string) error
	RequestPasswordReset(ctx context.Context, email string) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	RevokeToken(ctx context.Context, userID string) error
	UpdateFCMToken(ctx context.Context, userID, fcmToken string) error
}

// DefaultUserService implements UserService.
type DefaultUserService struct {
	Repo    userRepo.UserRepository
	SendOTP utils.OTPSender
}
