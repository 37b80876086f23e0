package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"campuspilot/config"
	bookingRepo "campuspilot/database/repository/booking"
	"campuspilot/models"
	"campuspilot/services/notification"
	"campuspilot/services/tasks"
	"campuspilot/utils"

	"github.com/hibiken/asynq"
	robfig "github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderDB,
	}
}

// InitReminderWorker runs the async worker in background.
func InitReminderWorker(notifSvc notification.NotificationService) {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendReminder, handleReminderTask(notifSvc))

	go func() {
		log.Println("[ReminderWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleReminderTask(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] invalid payload: %v", err)
			return err
		}

		if err := notifSvc.NotifyBookingReminder(ctx, p); err != nil {
			log.Printf("[ReminderHandler] failed to send reminder for booking %s: %v", p.BookingID, err)
			return err
		}
		return nil
	}
}

// StartReminderSweep schedules the nightly job that enqueues reminder tasks
// for the next day's bookings. Reminders fire one hour before the slot start.
func StartReminderSweep(repo bookingRepo.BookingRepository) {
	client := asynq.NewClient(redisOpts())

	c := robfig.New()
	if _, err := c.AddFunc("0 18 * * *", func() { enqueueTomorrowReminders(client, repo) }); err != nil {
		log.Fatalf("[ReminderSweep] failed to schedule: %v", err)
	}
	c.Start()
}

func enqueueTomorrowReminders(client *asynq.Client, repo bookingRepo.BookingRepository) {
	logger := utils.GetLogger()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tomorrow := time.Now().AddDate(0, 0, 1)
	date := tomorrow.Format(utils.DateLayout)

	bookings, err := repo.ListByDate(ctx, date)
	if err != nil {
		logger.Error("[ReminderSweep] failed to list bookings", zap.String("date", date), zap.Error(err))
		return
	}

	midnight := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 0, 0, 0, 0, tomorrow.Location())
	for _, b := range bookings {
		if b.RequesterID == "" {
			continue
		}
		payload := models.ReminderPayload{
			BookingID:   b.ID,
			RequesterID: b.RequesterID,
			RoomName:    b.RoomName,
			Date:        b.Date,
			Start:       b.Start,
			End:         b.End,
		}
		fireAt := midnight.Add(time.Duration(b.Start-60) * time.Minute)

		task, opts, err := tasks.NewReminderTask(payload, fireAt)
		if err != nil {
			logger.Error("[ReminderSweep] failed to build task", zap.String("bookingID", b.ID), zap.Error(err))
			continue
		}
		if _, err := client.Enqueue(task, opts...); err != nil {
			logger.Error("[ReminderSweep] failed to enqueue task", zap.String("bookingID", b.ID), zap.Error(err))
		}
	}
	logger.Info("[ReminderSweep] enqueued reminders", zap.String("date", date), zap.Int("count", len(bookings)))
}
