package utils

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// generateSecureOTP generates a secure random OTP of the specified length.
// It returns a base32 encoded string (without padding) truncated to the desired length.
func generateSecureOTP(length int) (string, error) {
	numBytes := (length*5 + 7) / 8
	randomBytes := make([]byte, numBytes)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	otp := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(randomBytes)
	if len(otp) > length {
		otp = otp[:length]
	}
	return otp, nil
}

// OTPSender delivers a one-time code to a user out of band (email, SMS).
// The default sender only logs; deployments plug in a real channel.
type OTPSender func(email, message string) error

// LogOTPSender logs the outgoing message instead of delivering it.
func LogOTPSender(email, message string) error {
	GetLogger().Sugar().Infof("Sending OTP message to %s: %s", email, message)
	return nil
}

// InitiateOTP generates an OTP, stores it in Redis keyed by user with a
// 5-minute TTL, and hands it to the sender. Storage is an explicit keyed store
// with TTL eviction rather than process-lifetime state, so verification works
// across instances.
func InitiateOTP(userID, email string, send OTPSender) error {
	otp, err := generateSecureOTP(6)
	if err != nil {
		return fmt.Errorf("failed to generate OTP: %w", err)
	}
	otpKey := fmt.Sprintf("otp:%s", userID)

	ctx := context.Background()
	client := GetOTPCacheClient()
	if client == nil {
		return fmt.Errorf("OTP cache client not initialized")
	}

	if err := client.Set(ctx, otpKey, otp, OTPTTL).Err(); err != nil {
		GetLogger().Error("Failed to cache OTP", zap.Error(err))
		return fmt.Errorf("failed to initiate OTP")
	}

	message := fmt.Sprintf("Your CampusPilot verification code is: %s. It expires in 5 minutes.", otp)
	if err := send(email, message); err != nil {
		GetLogger().Error("Failed to send OTP", zap.Error(err))
		return fmt.Errorf("failed to send OTP")
	}

	GetLogger().Sugar().Infof("Sent OTP to %s for user %s (expires in %v)", email, userID, OTPTTL)
	return nil
}

// VerifyOTPRecord retrieves the stored OTP from Redis and compares it to the
// provided OTP. If they match, it deletes the OTP from the cache.
func VerifyOTPRecord(userID, providedOTP string) error {
	otpKey := fmt.Sprintf("otp:%s", userID)
	ctx := context.Background()
	client := GetOTPCacheClient()
	if client == nil {
		return fmt.Errorf("OTP cache client not initialized")
	}

	storedOTP, err := client.Get(ctx, otpKey).Result()
	if err != nil {
		if err == redis.Nil {
			return fmt.Errorf("OTP not found or expired")
		}
		return fmt.Errorf("failed to retrieve OTP: %w", err)
	}

	if storedOTP != providedOTP {
		return fmt.Errorf("OTP does not match")
	}

	if err := client.Del(ctx, otpKey).Err(); err != nil {
		GetLogger().Error("Failed to delete OTP after verification", zap.Error(err))
	}
	return nil
}
