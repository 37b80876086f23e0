// File: services/user/service.go
package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"campuspilot/models"
	"campuspilot/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 72 * time.Hour

// Register creates an unverified account and kicks off the OTP flow.
func (s *DefaultUserService) Register(ctx context.Context, name, email, phone, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required")
	}

	existing, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("an account with email %s already exists", email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	usr := models.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := s.Repo.Create(ctx, usr); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	if err := utils.InitiateOTP(usr.ID, usr.Email, s.sender()); err != nil {
		utils.GetLogger().Error("failed to initiate registration OTP", zap.Error(err))
	}
	return &usr, nil
}

// Authenticate checks credentials and issues a JWT. The token hash is stored
// on the account and cached so middleware can validate without a DB hit.
func (s *DefaultUserService) Authenticate(ctx context.Context, email, password string) (string, *models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	usr, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, fmt.Errorf("failed to look up account: %w", err)
	}
	if usr == nil {
		return "", nil, fmt.Errorf("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(password)); err != nil {
		return "", nil, fmt.Errorf("invalid email or password")
	}
	if !usr.Verified {
		if err := utils.InitiateOTP(usr.ID, usr.Email, s.sender()); err != nil {
			utils.GetLogger().Error("failed to re-send verification OTP", zap.Error(err))
		}
		return "", nil, fmt.Errorf("account not verified; a new code has been sent")
	}

	token, err := utils.GenerateToken(usr.ID, usr.Email, tokenTTL)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}
	tokenHash := utils.HashToken(token)

	if err := s.Repo.UpdateFields(ctx, usr.ID, map[string]interface{}{"token_hash": tokenHash}); err != nil {
		return "", nil, fmt.Errorf("failed to persist session: %w", err)
	}
	cacheKey := utils.AuthCachePrefix + usr.ID
	if err := utils.GetAuthCacheClient().Set(ctx, cacheKey, tokenHash, utils.AuthCacheTTL).Err(); err != nil {
		utils.GetLogger().Warn("failed to cache auth token", zap.Error(err))
	}

	usr.TokenHash = tokenHash
	return token, usr, nil
}

// VerifyOTP marks the account as verified when the code matches.
func (s *DefaultUserService) VerifyOTP(ctx context.Context, userID, otp string) error {
	if err := utils.VerifyOTPRecord(userID, otp); err != nil {
		return err
	}
	if err := s.Repo.UpdateFields(ctx, userID, map[string]interface{}{"verified": true}); err != nil {
		return fmt.Errorf("failed to mark account verified: %w", err)
	}
	return nil
}

// RequestPasswordReset sends a reset code to a known account. Unknown emails
// are not distinguishable from known ones in the response.
func (s *DefaultUserService) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	usr, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to look up account: %w", err)
	}
	if usr == nil {
		return nil
	}
	return utils.InitiateOTP(usr.ID, usr.Email, s.sender())
}

// ResetPassword verifies the reset code and swaps the password hash, revoking
// any active session.
func (s *DefaultUserService) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	usr, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to look up account: %w", err)
	}
	if usr == nil {
		return fmt.Errorf("invalid reset request")
	}
	if err := utils.VerifyOTPRecord(usr.ID, otp); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	fields := map[string]interface{}{"password_hash": string(hash), "token_hash": ""}
	if err := s.Repo.UpdateFields(ctx, usr.ID, fields); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	utils.GetAuthCacheClient().Del(ctx, utils.AuthCachePrefix+usr.ID)
	return nil
}

func (s *DefaultUserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	usr, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}
	if usr == nil {
		return nil, fmt.Errorf("user %q not found", id)
	}
	return usr, nil
}

// RevokeToken invalidates the active session.
func (s *DefaultUserService) RevokeToken(ctx context.Context, userID string) error {
	if err := s.Repo.UpdateFields(ctx, userID, map[string]interface{}{"token_hash": ""}); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	utils.GetAuthCacheClient().Del(ctx, utils.AuthCachePrefix+userID)
	return nil
}

// UpdateFCMToken stores the device token used for pushes.
func (s *DefaultUserService) UpdateFCMToken(ctx context.Context, userID, fcmToken string) error {
	if err := s.Repo.UpdateFields(ctx, userID, map[string]interface{}{"fcm_token": fcmToken}); err != nil {
		return fmt.Errorf("failed to update FCM token: %w", err)
	}
	return nil
}

func (s *DefaultUserService) sender() utils.OTPSender {
	if s.SendOTP != nil {
		return s.SendOTP
	}
	return utils.LogOTPSender
}
