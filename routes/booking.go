package routes

import "github.com/gin-gonic/gin"

func registerBookingRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.GET("/fetch_bookings", hb.AuthMW, hb.Booking.FetchBookings)

	api := r.Group("/booking")
	api.Use(hb.AuthMW)
	{
		api.POST("/add", hb.Booking.AddBooking)
		api.POST("/check", hb.Booking.CheckAvailability)
		api.PUT("/update_booking", hb.Booking.UpdateBooking)
		api.DELETE("/delete", hb.Booking.DeleteBooking)
		api.GET("/fetch_booking_by_id", hb.Booking.FetchBookingByID)
		api.GET("/all_halls", hb.Booking.AllHalls)
		api.GET("/fetch_halls_by_moduleCode", hb.Booking.HallsByModuleCode)
	}
}
