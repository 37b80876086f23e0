package booking

import (
	"context"
	"fmt"
	"sort"
	"time"

	"campuspilot/models"
	"campuspilot/utils"

	"go.uber.org/zap"
)

// Recommend proposes alternatives for a rejected request. Strategies run in
// priority order until the configured cap is reached: other rooms for the same
// window, then the same room at nearby times, then the next fully free day as
// a low-confidence fallback. The scores are policy values, not a contract.
func (s *DefaultBookingService) Recommend(ctx context.Context, req models.BookingRequest, result AvailabilityResult) ([]models.Recommendation, error) {
	if result.Status == StatusAvailable || result.Status == StatusMissingParameters {
		return nil, nil
	}
	if req.Start == nil || req.End == nil || req.Date == "" {
		return nil, nil
	}

	limit := s.Policy.RecommendationCap
	if limit <= 0 {
		limit = 3
	}

	recs, err := s.alternativeRooms(ctx, req, limit)
	if err != nil {
		return nil, err
	}

	// Shifted windows only make sense when the requested room exists.
	if len(recs) < limit && result.Status == StatusUnavailable {
		shifted, err := s.shiftedWindows(ctx, req, limit-len(recs))
		if err != nil {
			return nil, err
		}
		recs = append(recs, shifted...)
	}

	if len(recs) == 0 && result.Status == StatusUnavailable {
		proactive, err := s.nextFreeDay(ctx, req)
		if err != nil {
			return nil, err
		}
		recs = append(recs, proactive...)
	}

	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Score != recs[j].Score {
			return recs[i].Score > recs[j].Score
		}
		if recs[i].Suggestion.Date != recs[j].Suggestion.Date {
			return recs[i].Suggestion.Date < recs[j].Suggestion.Date
		}
		return recs[i].Suggestion.Start < recs[j].Suggestion.Start
	})
	if len(recs) > limit {
		recs = recs[:limit]
	}
	return recs, nil
}

// alternativeRooms scans other rooms for the same date and window. When the
// requester stated a group size, undersized rooms are skipped and the score
// rises with capacity closeness; otherwise a flat policy score applies.
func (s *DefaultBookingService) alternativeRooms(ctx context.Context, req models.BookingRequest, limit int) ([]models.Recommendation, error) {
	rooms, err := s.RoomRepo.List(ctx)
	if err != nil {
		return nil, NewStoreError("list rooms", err)
	}

	var recs []models.Recommendation
	for _, room := range rooms {
		if len(recs) >= limit {
			break
		}
		if room.Name == req.RoomName {
			continue
		}
		if req.GroupSize > 0 && room.Capacity < req.GroupSize {
			continue
		}

		free, err := s.isSlotFree(ctx, room.Name, req.Date, *req.Start, *req.End, "")
		if err != nil {
			return nil, err
		}
		if !free {
			continue
		}

		score := s.Policy.AlternativeScore
		if req.GroupSize > 0 && room.Capacity > 0 {
			// Capacity closeness: a room barely above the group size scores
			// near 0.95, a far oversized one decays toward 0.6.
			score = 0.6 + 0.35*float64(req.GroupSize)/float64(room.Capacity)
		}

		recs = append(recs, models.Recommendation{
			Type:  models.RecAlternativeRoom,
			Score: score,
			Reason: fmt.Sprintf("%s is free on %s from %s to %s",
				room.Name, req.Date, utils.FormatClock(*req.Start), utils.FormatClock(*req.End)),
			Suggestion: models.SlotSuggestion{
				RoomName: room.Name,
				Date:     req.Date,
				Start:    *req.Start,
				End:      *req.End,
			},
			DataSource: "room_catalogue_scan",
		})
	}
	return recs, nil
}

// shiftedWindows slides the requested window earlier and later in fixed
// increments within the bounded horizon. Scores decay with shift magnitude so
// the closest free window ranks first.
func (s *DefaultBookingService) shiftedWindows(ctx context.Context, req models.BookingRequest, limit int) ([]models.Recommendation, error) {
	step := s.Policy.ShiftStepMinutes
	if step <= 0 {
		step = 30
	}
	horizon := s.Policy.ShiftHorizonMins
	if horizon <= 0 {
		horizon = 180
	}
	duration := *req.End - *req.Start

	var recs []models.Recommendation
	for shift := step; shift <= horizon && len(recs) < limit; shift += step {
		for _, delta := range []int{shift, -shift} {
			if len(recs) >= limit {
				break
			}
			start := *req.Start + delta
			end := start + duration
			if start < s.Policy.DayStartMinute || end > s.Policy.DayEndMinute {
				continue
			}

			free, err := s.isSlotFree(ctx, req.RoomName, req.Date, start, end, "")
			if err != nil {
				return nil, err
			}
			if !free {
				continue
			}

			score := 0.65 * (1.0 - float64(shift)/float64(horizon+step))
			recs = append(recs, models.Recommendation{
				Type:  models.RecSmartScheduling,
				Score: score,
				Reason: fmt.Sprintf("%s is free on %s from %s to %s",
					req.RoomName, req.Date, utils.FormatClock(start), utils.FormatClock(end)),
				Suggestion: models.SlotSuggestion{
					RoomName: req.RoomName,
					Date:     req.Date,
					Start:    start,
					End:      end,
				},
				DataSource: "same_room_shift_scan",
			})
		}
	}
	return recs, nil
}

// nextFreeDay finds the next day with no bookings at all for the room and
// proposes the originally requested window there, with a low flat score.
func (s *DefaultBookingService) nextFreeDay(ctx context.Context, req models.BookingRequest) ([]models.Recommendation, error) {
	day, err := time.Parse(utils.DateLayout, req.Date)
	if err != nil {
		utils.GetLogger().Warn("nextFreeDay: unparseable request date", zap.String("date", req.Date))
		return nil, nil
	}

	scanDays := s.Policy.FreeDayScanDays
	if scanDays <= 0 {
		scanDays = 14
	}

	for offset := 1; offset <= scanDays; offset++ {
		candidate := day.AddDate(0, 0, offset).Format(utils.DateLayout)
		existing, err := s.listBookingsWithRetry(ctx, req.RoomName, candidate)
		if err != nil {
			return nil, err
		}
		if len(existing) > 0 {
			continue
		}

		return []models.Recommendation{{
			Type:  models.RecProactive,
			Score: s.Policy.ProactiveScore,
			Reason: fmt.Sprintf("%s has no bookings on %s; the same time is open there",
				req.RoomName, candidate),
			Suggestion: models.SlotSuggestion{
				RoomName: req.RoomName,
				Date:     candidate,
				Start:    *req.Start,
				End:      *req.End,
			},
			DataSource: "free_day_scan",
		}}, nil
	}
	return nil, nil
}
