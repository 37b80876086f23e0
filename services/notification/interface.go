package notification

import (
	"context"
	"fmt"

	"campuspilot/models"
	"campuspilot/services/user"
	"campuspilot/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// NotificationService sends FCM pushes to staff accounts.
type NotificationService interface {
	SendUserPush(ctx context.Context, userID, title, body string, data map[string]string) error
	NotifyBookingConfirmed(ctx context.Context, booking models.Booking) error
	NotifyBookingReminder(ctx context.Context, payload models.ReminderPayload) error
}

// DefaultNotificationService is the production implementation. When FCM is not
// configured the pushes degrade to log lines so the booking path never blocks
// on notification delivery.
type DefaultNotificationService struct {
	Users user.UserService
}

func NewDefaultNotificationService(userSvc user.UserService) (*DefaultNotificationService, error) {
	if userSvc == nil {
		return nil, fmt.Errorf("notification service initialization error: user service is nil")
	}
	return &DefaultNotificationService{Users: userSvc}, nil
}

// SendUserPush looks up a user's FCM token and sends a push.
func (s *DefaultNotificationService) SendUserPush(ctx context.Context, userID, title, body string, data map[string]string) error {
	logger := utils.GetLogger()

	if utils.FCMClient == nil {
		logger.Info("push skipped, FCM not configured",
			zap.String("userID", userID), zap.String("title", title))
		return nil
	}

	usr, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("SendUserPush: could not find user %s: %w", userID, err)
	}
	if usr.FCMToken == "" {
		logger.Debug("push skipped, user has no FCM token", zap.String("userID", userID))
		return nil
	}

	msg := &messaging.Message{
		Token: usr.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}
	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("SendUserPush: send failed for user %s: %w", userID, err)
	}
	return nil
}

// NotifyBookingConfirmed pushes a confirmation right after a booking commits.
func (s *DefaultNotificationService) NotifyBookingConfirmed(ctx context.Context, booking models.Booking) error {
	if booking.RequesterID == "" {
		return nil
	}
	body := fmt.Sprintf("%s booked on %s from %s to %s",
		booking.RoomName, booking.Date,
		utils.FormatClock(booking.Start), utils.FormatClock(booking.End))
	return s.SendUserPush(ctx, booking.RequesterID, "Booking confirmed", body, map[string]string{
		"booking_id": booking.ID,
		"type":       "booking_confirmed",
	})
}

// NotifyBookingReminder pushes the day-before reminder enqueued by the sweep.
func (s *DefaultNotificationService) NotifyBookingReminder(ctx context.Context, payload models.ReminderPayload) error {
	if payload.RequesterID == "" {
		return nil
	}
	body := fmt.Sprintf("Reminder: %s is booked for you on %s from %s to %s",
		payload.RoomName, payload.Date,
		utils.FormatClock(payload.Start), utils.FormatClock(payload.End))
	return s.SendUserPush(ctx, payload.RequesterID, "Upcoming booking", body, map[string]string{
		"booking_id": payload.BookingID,
		"type":       "booking_reminder",
	})
}
