package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ignitefit/class-booking/internal/model"
	"github.com/ignitefit/class-booking/internal/response"
	"github.com/ignitefit/class-booking/internal/service"
	"github.com/ignitefit/class-booking/internal/validator"
)

// BookingHandler handles member bookings.
type BookingHandler struct {
	bookingService *service.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(bookingService *service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// CreateBooking godoc
// POST /bookings
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req model.CreateBookingRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	booking, err := h.bookingService.BookSession(c.Request.Context(), req.Input())
	if err != nil {
		failWithError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message": "Booking created successfully",
		"booking": booking,
	})
}

// ListBookings godoc
// GET /bookings?userName=&startDate=&endDate=
func (h *BookingHandler) ListBookings(c *gin.Context) {
	var q model.BookingQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	views, err := h.bookingService.QueryBookings(q)
	if err != nil {
		failWithError(c, err)
		return
	}

	response.Success(c, http.StatusOK, views)
}
