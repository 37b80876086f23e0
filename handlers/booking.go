package handlers

import (
	"context"
	"net/http"
	"time"

	"campuspilot/models"
	"campuspilot/services/booking"
	"campuspilot/services/notification"
	"campuspilot/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking engine over REST.
type BookingHandler struct {
	Svc   booking.BookingService
	Notif notification.NotificationService
}

func NewBookingHandler(svc booking.BookingService, notif notification.NotificationService) *BookingHandler {
	return &BookingHandler{Svc: svc, Notif: notif}
}

// bookingInput is the wire shape shared by add and update; times come in as
// "HH:MM" strings and are converted to minutes internally.
type bookingInput struct {
	RoomName   string `json:"room_name"`
	Date       string `json:"date"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Requester  string `json:"requester_name"`
	ModuleCode string `json:"module_code"`
	GroupSize  int    `json:"group_size"`
}

func (in bookingInput) toRequest(c *gin.Context) (models.BookingRequest, bool) {
	req := models.BookingRequest{
		RoomName:   in.RoomName,
		Requester:  in.Requester,
		ModuleCode: in.ModuleCode,
		GroupSize:  in.GroupSize,
	}
	if uid, exists := c.Get("userID"); exists {
		if s, ok := uid.(string); ok {
			req.RequesterID = s
		}
	}
	if in.Date != "" {
		date, err := utils.ParseDate(in.Date)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid date", err.Error())
			return req, false
		}
		req.Date = date
	}
	if in.StartTime != "" {
		start, err := utils.ParseClock(in.StartTime)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid start_time", err.Error())
			return req, false
		}
		req.Start = &start
	}
	if in.EndTime != "" {
		end, err := utils.ParseClock(in.EndTime)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid end_time", err.Error())
			return req, false
		}
		req.End = &end
	}
	return req, true
}

// bookingErrorStatus maps engine error codes onto HTTP statuses.
func bookingErrorStatus(err error) int {
	switch booking.ErrorCode(err) {
	case booking.CodeMissingParameters:
		return http.StatusBadRequest
	case booking.CodeRoomNotFound, booking.CodeNotFound:
		return http.StatusNotFound
	case booking.CodeUnavailable:
		return http.StatusConflict
	case booking.CodeStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// AddBooking handles POST /booking/add.
func (h *BookingHandler) AddBooking(c *gin.Context) {
	var in bookingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	req, ok := in.toRequest(c)
	if !ok {
		return
	}

	created, err := h.Svc.CreateBooking(c.Request.Context(), req)
	if err != nil {
		if booking.ErrorCode(err) == booking.CodeUnavailable {
			recs, recErr := h.Svc.Recommend(c.Request.Context(), req, booking.AvailabilityResult{Status: booking.StatusUnavailable})
			if recErr == nil && len(recs) > 0 {
				c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "recommendations": recs})
				return
			}
		}
		utils.JSONError(c, bookingErrorStatus(err), "Failed to add booking", err.Error())
		return
	}

	if h.Notif != nil {
		b := *created
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := h.Notif.NotifyBookingConfirmed(ctx, b); err != nil {
				utils.GetLogger().Warn("confirmation push failed", zap.Error(err))
			}
		}()
	}
	c.JSON(http.StatusCreated, gin.H{"booking": created})
}

// UpdateBooking handles PUT /booking/update_booking.
func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	var in struct {
		BookingID string `json:"booking_id" binding:"required"`
		bookingInput
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	fields := map[string]interface{}{}
	if in.RoomName != "" {
		fields["room_name"] = in.RoomName
	}
	if in.Date != "" {
		date, err := utils.ParseDate(in.Date)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid date", err.Error())
			return
		}
		fields["date"] = date
	}
	if in.StartTime != "" {
		start, err := utils.ParseClock(in.StartTime)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid start_time", err.Error())
			return
		}
		fields["start"] = start
	}
	if in.EndTime != "" {
		end, err := utils.ParseClock(in.EndTime)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid end_time", err.Error())
			return
		}
		fields["end"] = end
	}
	if in.ModuleCode != "" {
		fields["module_code"] = in.ModuleCode
	}
	if len(fields) == 0 {
		utils.JSONError(c, http.StatusBadRequest, "Nothing to update", "provide at least one field")
		return
	}

	updated, err := h.Svc.UpdateBooking(c.Request.Context(), in.BookingID, fields)
	if err != nil {
		utils.JSONError(c, bookingErrorStatus(err), "Failed to update booking", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": updated})
}

// DeleteBooking handles DELETE /booking/delete?booking_id=.
func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	bookingID := c.Query("booking_id")
	if bookingID == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing booking_id", "booking_id query parameter is required")
		return
	}
	if err := h.Svc.DeleteBooking(c.Request.Context(), bookingID); err != nil {
		utils.JSONError(c, bookingErrorStatus(err), "Failed to delete booking", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking deleted", "booking_id": bookingID})
}

// FetchBookings handles GET /fetch_bookings?room_name=&date=.
func (h *BookingHandler) FetchBookings(c *gin.Context) {
	roomName := c.Query("room_name")
	if roomName == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing room_name", "room_name query parameter is required")
		return
	}
	bookings, err := h.Svc.ListBookings(c.Request.Context(), roomName, c.Query("date"))
	if err != nil {
		utils.JSONError(c, bookingErrorStatus(err), "Failed to fetch bookings", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// FetchBookingByID handles GET /booking/fetch_booking_by_id?booking_id=.
func (h *BookingHandler) FetchBookingByID(c *gin.Context) {
	bookingID := c.Query("booking_id")
	if bookingID == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing booking_id", "booking_id query parameter is required")
		return
	}
	b, err := h.Svc.GetBooking(c.Request.Context(), bookingID)
	if err != nil {
		utils.JSONError(c, bookingErrorStatus(err), "Failed to fetch booking", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

// AllHalls handles GET /booking/all_halls.
func (h *BookingHandler) AllHalls(c *gin.Context) {
	rooms, err := h.Svc.ListRooms(c.Request.Context())
	if err != nil {
		utils.JSONError(c, bookingErrorStatus(err), "Failed to fetch halls", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"halls": rooms})
}

// HallsByModuleCode handles GET /booking/fetch_halls_by_moduleCode?module_code=.
func (h *BookingHandler) HallsByModuleCode(c *gin.Context) {
	moduleCode := c.Query("module_code")
	if moduleCode == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing module_code", "module_code query parameter is required")
		return
	}
	bookings, err := h.Svc.ListBookingsByModule(c.Request.Context(), moduleCode)
	if err != nil {
		utils.JSONError(c, bookingErrorStatus(err), "Failed to fetch bookings", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// CheckAvailability handles POST /booking/check.
func (h *BookingHandler) CheckAvailability(c *gin.Context) {
	var in bookingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	req, ok := in.toRequest(c)
	if !ok {
		return
	}

	result, err := h.Svc.Check(c.Request.Context(), req)
	if err != nil {
		utils.JSONError(c, bookingErrorStatus(err), "Failed to check availability", err.Error())
		return
	}

	resp := gin.H{"result": result}
	if result.Status == booking.StatusUnavailable || result.Status == booking.StatusRoomNotFound {
		recs, err := h.Svc.Recommend(c.Request.Context(), req, result)
		if err == nil {
			resp["recommendations"] = recs
		}
	}
	c.JSON(http.StatusOK, resp)
}
