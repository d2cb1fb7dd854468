package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ignitefit/class-booking/internal/model"
	"github.com/ignitefit/class-booking/internal/response"
	"github.com/ignitefit/class-booking/internal/service"
	"github.com/ignitefit/class-booking/internal/validator"
)

// ClassHandler handles class session scheduling.
type ClassHandler struct {
	bookingService *service.BookingService
}

// NewClassHandler creates a new ClassHandler.
func NewClassHandler(bookingService *service.BookingService) *ClassHandler {
	return &ClassHandler{bookingService: bookingService}
}

// ListClasses godoc
// GET /classes
// Lists all scheduled sessions in id order.
func (h *ClassHandler) ListClasses(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"classes": h.bookingService.ListSessions()})
}

// GetClass godoc
// GET /classes/:id
func (h *ClassHandler) GetClass(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	session, err := h.bookingService.GetSession(id)
	if err != nil {
		failWithError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"class": session})
}

// CreateClasses godoc
// POST /classes
// Creates one session per day between startDate and endDate inclusive.
func (h *ClassHandler) CreateClasses(c *gin.Context) {
	var req model.CreateClassesRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	created, err := h.bookingService.CreateSessions(c.Request.Context(), req.Input())
	if err != nil {
		failWithError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message": "Classes created successfully",
		"classes": created,
	})
}
