package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ignitefit/class-booking/internal/response"
	"github.com/ignitefit/class-booking/internal/service"
)

type failure struct {
	status int
	code   response.ErrCode
}

// domainFailures maps service errors to their HTTP representation.
var domainFailures = []struct {
	err error
	failure
}{
	{service.ErrMissingFields, failure{http.StatusBadRequest, response.ErrMissingFields}},
	{service.ErrInvalidCapacity, failure{http.StatusBadRequest, response.ErrInvalidCapacity}},
	{service.ErrInvalidDate, failure{http.StatusBadRequest, response.ErrInvalidDate}},
	{service.ErrEndDateInPast, failure{http.StatusBadRequest, response.ErrEndDateInPast}},
	{service.ErrEndDateBeforeStart, failure{http.StatusBadRequest, response.ErrEndDateBeforeStart}},
	{service.ErrRangeTooLong, failure{http.StatusBadRequest, response.ErrRangeTooLong}},
	{service.ErrDateAlreadyScheduled, failure{http.StatusBadRequest, response.ErrDateAlreadyScheduled}},
	{service.ErrParticipationDateInPast, failure{http.StatusBadRequest, response.ErrParticipationDateInPast}},
	{service.ErrSessionNotFound, failure{http.StatusNotFound, response.ErrSessionNotFound}},
	{service.ErrDateMismatch, failure{http.StatusBadRequest, response.ErrDateMismatch}},
	{service.ErrCapacityExceeded, failure{http.StatusBadRequest, response.ErrCapacityExceeded}},
	{service.ErrRangeIncomplete, failure{http.StatusBadRequest, response.ErrRangeIncomplete}},
	{service.ErrAuditDisabled, failure{http.StatusServiceUnavailable, response.ErrServiceUnavailable}},
}

// failWithError writes the response for err. Unknown errors become 500 and are
// attached to the gin context for the access log.
func failWithError(c *gin.Context, err error) {
	for _, df := range domainFailures {
		if errors.Is(err, df.err) {
			response.Fail(c, df.status, df.code)
			return
		}
	}
	_ = c.Error(err)
	response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
}
