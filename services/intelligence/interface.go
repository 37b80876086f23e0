// File: services/intelligence/interface.go
package ai

import (
	"context"
	"errors"
	"fmt"

	"campuspilot/models"
	"campuspilot/services/booking"
	"campuspilot/utils"

	"go.uber.org/zap"
)

// ErrExtractionFailure means the extractor produced no usable fields. It is
// recoverable: the assistant re-prompts instead of failing the request.
var ErrExtractionFailure = errors.New("extraction produced no usable fields")

// IntentExtractor turns free-form user text into a structured, possibly
// partial booking request.
type IntentExtractor interface {
	Extract(ctx context.Context, text string) (models.ExtractedRequest, error)
}

// AssistantService is the chat entry point wiring extraction, availability
// checking, mutation and response rendering together.
type AssistantService interface {
	ProcessUserInput(ctx context.Context, req models.AssistantRequest) (*models.AssistantResponse, error)
}

// DefaultAssistantService implements AssistantService.
type DefaultAssistantService struct {
	Extractor  IntentExtractor
	CtxStore   ContextStore
	BookingSvc booking.BookingService
}

func NewDefaultAssistantService(
	extractor IntentExtractor,
	ctxStore ContextStore,
	bookingSvc booking.BookingService,
) *DefaultAssistantService {
	return &DefaultAssistantService{
		Extractor:  extractor,
		CtxStore:   ctxStore,
		BookingSvc: bookingSvc,
	}
}

// ProcessUserInput runs one chat turn: extract, merge with the pending
// context, check availability, then either mutate or recommend.
func (s *DefaultAssistantService) ProcessUserInput(ctx context.Context, req models.AssistantRequest) (*models.AssistantResponse, error) {
	logger := utils.GetLogger()

	chatCtx, err := s.CtxStore.Get(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("load chat context: %w", err)
	}

	extracted, err := s.Extractor.Extract(ctx, req.Text)
	if err != nil {
		if !errors.Is(err, ErrExtractionFailure) {
			logger.Warn("extractor failed, re-prompting", zap.Error(err))
		}
		if chatCtx.Empty() {
			return &models.AssistantResponse{
				Intent:       models.IntentChat,
				ResponseText: renderExtractionFailure(),
			}, nil
		}
		// Mid-flow: keep the pending request and ask again for what is missing.
		extracted = models.ExtractedRequest{Intent: chatCtx.Intent}
	}

	intent := extracted.Intent
	if intent == "" || intent == models.IntentChat {
		if chatCtx.Intent != "" {
			intent = chatCtx.Intent
		} else {
			intent = models.IntentChat
		}
	}

	merged := extracted.Request.Merge(chatCtx.Pending)
	if merged.RequesterID == "" {
		merged.RequesterID = req.UserID
	}

	switch intent {
	case models.IntentCancel:
		return s.handleCancel(ctx, req.UserID, extracted.BookingID)
	case models.IntentCheck:
		return s.handleCheck(ctx, req.UserID, merged)
	case models.IntentBook:
		return s.handleBook(ctx, req.UserID, merged)
	default:
		return &models.AssistantResponse{
			Intent:       models.IntentChat,
			ResponseText: renderGreeting(),
		}, nil
	}
}

func (s *DefaultAssistantService) handleCheck(ctx context.Context, userID string, merged models.BookingRequest) (*models.AssistantResponse, error) {
	result, err := s.BookingSvc.Check(ctx, merged)
	if err != nil {
		return s.storeFailureResponse(models.IntentCheck, err)
	}

	switch result.Status {
	case booking.StatusMissingParameters:
		if err := s.CtxStore.Set(ctx, userID, &models.ChatContext{Intent: models.IntentCheck, Pending: merged}); err != nil {
			return nil, fmt.Errorf("save chat context: %w", err)
		}
		return &models.AssistantResponse{
			Intent:        models.IntentCheck,
			ResponseText:  renderMissing(result.Missing),
			MissingFields: result.Missing,
		}, nil
	case booking.StatusRoomNotFound:
		return &models.AssistantResponse{
			Intent:       models.IntentCheck,
			ResponseText: renderRoomNotFound(merged.RoomName),
		}, nil
	case booking.StatusUnavailable:
		recs, err := s.BookingSvc.Recommend(ctx, merged, result)
		if err != nil {
			return s.storeFailureResponse(models.IntentCheck, err)
		}
		return &models.AssistantResponse{
			Intent:          models.IntentCheck,
			ResponseText:    renderUnavailable(merged, result.Conflict, recs),
			Recommendations: recs,
		}, nil
	default:
		_ = s.CtxStore.Clear(ctx, userID)
		return &models.AssistantResponse{
			Intent:       models.IntentCheck,
			ResponseText: renderAvailable(merged),
		}, nil
	}
}

func (s *DefaultAssistantService) handleBook(ctx context.Context, userID string, merged models.BookingRequest) (*models.AssistantResponse, error) {
	result, err := s.BookingSvc.Check(ctx, merged)
	if err != nil {
		return s.storeFailureResponse(models.IntentBook, err)
	}

	switch result.Status {
	case booking.StatusMissingParameters:
		if err := s.CtxStore.Set(ctx, userID, &models.ChatContext{Intent: models.IntentBook, Pending: merged}); err != nil {
			return nil, fmt.Errorf("save chat context: %w", err)
		}
		return &models.AssistantResponse{
			Intent:        models.IntentBook,
			ResponseText:  renderMissing(result.Missing),
			MissingFields: result.Missing,
		}, nil
	case booking.StatusRoomNotFound:
		if err := s.CtxStore.Set(ctx, userID, &models.ChatContext{Intent: models.IntentBook, Pending: merged}); err != nil {
			return nil, fmt.Errorf("save chat context: %w", err)
		}
		return &models.AssistantResponse{
			Intent:       models.IntentBook,
			ResponseText: renderRoomNotFound(merged.RoomName),
		}, nil
	case booking.StatusUnavailable:
		recs, err := s.BookingSvc.Recommend(ctx, merged, result)
		if err != nil {
			return s.storeFailureResponse(models.IntentBook, err)
		}
		return &models.AssistantResponse{
			Intent:          models.IntentBook,
			ResponseText:    renderUnavailable(merged, result.Conflict, recs),
			Recommendations: recs,
		}, nil
	}

	created, err := s.BookingSvc.CreateBooking(ctx, merged)
	if err != nil {
		// The create can still lose a race to a concurrent request.
		if booking.ErrorCode(err) == booking.CodeUnavailable {
			return &models.AssistantResponse{
				Intent:       models.IntentBook,
				ResponseText: renderLostRace(merged),
			}, nil
		}
		return s.storeFailureResponse(models.IntentBook, err)
	}

	_ = s.CtxStore.Clear(ctx, userID)
	return &models.AssistantResponse{
		Intent:       models.IntentBook,
		ResponseText: renderBooked(created),
		Booking:      created,
	}, nil
}

func (s *DefaultAssistantService) handleCancel(ctx context.Context, userID, bookingID string) (*models.AssistantResponse, error) {
	if bookingID == "" {
		return &models.AssistantResponse{
			Intent:        models.IntentCancel,
			ResponseText:  "Which booking should I cancel? Please give me the booking ID.",
			MissingFields: []string{"booking_id"},
		}, nil
	}
	if err := s.BookingSvc.DeleteBooking(ctx, bookingID); err != nil {
		if booking.ErrorCode(err) == booking.CodeNotFound {
			return &models.AssistantResponse{
				Intent:       models.IntentCancel,
				ResponseText: fmt.Sprintf("I couldn't find a booking with ID %s.", bookingID),
			}, nil
		}
		return s.storeFailureResponse(models.IntentCancel, err)
	}
	_ = s.CtxStore.Clear(ctx, userID)
	return &models.AssistantResponse{
		Intent:       models.IntentCancel,
		ResponseText: fmt.Sprintf("Booking %s has been cancelled.", bookingID),
	}, nil
}

// storeFailureResponse converts a store outage into a retry-later reply after
// the engine has already retried once. Anything else bubbles up.
func (s *DefaultAssistantService) storeFailureResponse(intent string, err error) (*models.AssistantResponse, error) {
	if booking.ErrorCode(err) == booking.CodeStoreUnavailable {
		utils.GetLogger().Error("calendar store unavailable", zap.Error(err))
		return &models.AssistantResponse{
			Intent:       intent,
			ResponseText: "The booking calendar is unreachable right now. Please try again in a moment.",
		}, nil
	}
	return nil, err
}
