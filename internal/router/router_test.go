package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ignitefit/class-booking/internal/config"
	"github.com/ignitefit/class-booking/internal/handler"
	"github.com/ignitefit/class-booking/internal/model"
	"github.com/ignitefit/class-booking/internal/response"
	"github.com/ignitefit/class-booking/internal/router"
	"github.com/ignitefit/class-booking/internal/service"
	"github.com/ignitefit/class-booking/internal/validator"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Data  json.RawMessage     `json:"data"`
	Error *response.ErrorBody `json:"error"`
}

func day(offset int) string {
	return time.Now().UTC().AddDate(0, 0, offset).Format(model.DateLayout)
}

func newServer(t *testing.T, rateLimit int) *gin.Engine {
	t.Helper()
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	log := zerolog.Nop()
	bookingService := service.NewBookingService(nil, 30, log)
	handlers := &router.Handlers{
		Class:   handler.NewClassHandler(bookingService),
		Booking: handler.NewBookingHandler(bookingService),
		Event:   handler.NewEventHandler(service.NewAuditService(nil, log)),
		System:  handler.NewSystemHandler(bookingService, nil, nil, log),
	}
	cfg := &config.Config{GinMode: gin.TestMode, RateLimitPerMinute: rateLimit}
	return router.SetupRouter(ctx, handlers, cfg, log)
}

func do(t *testing.T, r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func createClasses(start, end string, capacity int) gin.H {
	return gin.H{
		"name": "Yoga", "startDate": start, "endDate": end,
		"startTime": "09:00", "duration": 1, "capacity": capacity,
	}
}

func TestCreateClasses(t *testing.T) {
	r := newServer(t, 0)

	w, env := do(t, r, http.MethodPost, "/classes", createClasses(day(1), day(3), 10))
	require.Equal(t, http.StatusCreated, w.Code)

	var data struct {
		Message string               `json:"message"`
		Classes []model.ClassSession `json:"classes"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "Classes created successfully", data.Message)
	require.Len(t, data.Classes, 3)
	assert.Equal(t, 1, data.Classes[0].ID)
	assert.Equal(t, day(3), data.Classes[2].Date)

	w, env = do(t, r, http.MethodPost, "/classes", createClasses(day(3), day(4), 10))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, response.ErrDateAlreadyScheduled, env.Error.Code)

	w, env = do(t, r, http.MethodGet, "/classes", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Len(t, data.Classes, 3)
}

func TestCreateClassesErrors(t *testing.T) {
	cases := []struct {
		name string
		body gin.H
		code response.ErrCode
	}{
		{"missing fields", gin.H{"name": "Yoga"}, response.ErrMissingFields},
		{"capacity zero", createClasses(day(1), day(1), 0), response.ErrInvalidCapacity},
		{"capacity wrong type", gin.H{"name": "Yoga", "capacity": "ten"}, response.ErrValidation},
		{"bad date", createClasses("2025/08/01", day(1), 1), response.ErrInvalidDate},
		{"end in past", createClasses(day(-3), day(-1), 1), response.ErrEndDateInPast},
		{"end before start", createClasses(day(5), day(2), 1), response.ErrEndDateBeforeStart},
		{"range too long", createClasses(day(1), day(40), 1), response.ErrRangeTooLong},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newServer(t, 0)
			w, env := do(t, r, http.MethodPost, "/classes", tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			require.NotNil(t, env.Error)
			assert.Equal(t, tc.code, env.Error.Code)
		})
	}
}

func TestEmptyBodyIsMissingFields(t *testing.T) {
	r := newServer(t, 0)
	for _, path := range []string{"/classes", "/bookings"} {
		t.Run(path, func(t *testing.T) {
			w, env := do(t, r, http.MethodPost, path, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			require.NotNil(t, env.Error)
			assert.Equal(t, response.ErrMissingFields, env.Error.Code)
		})
	}
}

func TestBookingFlow(t *testing.T) {
	r := newServer(t, 0)
	w, _ := do(t, r, http.MethodPost, "/classes", createClasses(day(1), day(2), 2))
	require.Equal(t, http.StatusCreated, w.Code)

	book := func(classID int, user, date string) (*httptest.ResponseRecorder, envelope) {
		return do(t, r, http.MethodPost, "/bookings", gin.H{"classId": classID, "userName": user, "participationDate": date})
	}

	w, env := book(1, "Alice", day(1))
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Message string        `json:"message"`
		Booking model.Booking `json:"booking"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "Booking created successfully", created.Message)
	assert.Equal(t, model.Booking{ClassID: 1, UserName: "Alice", Date: day(1)}, created.Booking)

	w, _ = book(1, "Bob", day(1))
	require.Equal(t, http.StatusCreated, w.Code)

	w, env = book(1, "Carol", day(1))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, response.ErrCapacityExceeded, env.Error.Code)

	w, env = book(2, "Alice", day(1))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, response.ErrDateMismatch, env.Error.Code)

	w, env = book(9, "Alice", day(1))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, response.ErrSessionNotFound, env.Error.Code)

	w, env = book(2, "Alice", day(-1))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, response.ErrParticipationDateInPast, env.Error.Code)

	w, env = do(t, r, http.MethodPost, "/bookings", gin.H{"userName": "Alice"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, response.ErrMissingFields, env.Error.Code)

	w, _ = book(2, "Alice", day(2))
	require.Equal(t, http.StatusCreated, w.Code)

	w, env = do(t, r, http.MethodGet, "/bookings?userName=Alice&startDate="+day(1)+"&endDate="+day(1), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))

	var views []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &views))
	require.Len(t, views, 1)
	assert.Equal(t, map[string]interface{}{
		"className":      "Yoga",
		"classStartTime": "09:00",
		"bookingDate":    day(1),
		"member":         "Alice",
	}, views[0])

	w, env = do(t, r, http.MethodGet, "/bookings", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &views))
	assert.Len(t, views, 3)
}

func TestListBookingsErrors(t *testing.T) {
	r := newServer(t, 0)

	w, env := do(t, r, http.MethodGet, "/bookings?startDate="+day(1), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, response.ErrRangeIncomplete, env.Error.Code)

	w, env = do(t, r, http.MethodGet, "/bookings?endDate="+day(1), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, response.ErrRangeIncomplete, env.Error.Code)

	w, env = do(t, r, http.MethodGet, "/bookings?startDate=yesterday&endDate="+day(1), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, response.ErrInvalidDate, env.Error.Code)

	w, env = do(t, r, http.MethodGet, "/bookings", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, string(env.Data))
}

func TestGetClass(t *testing.T) {
	r := newServer(t, 0)
	do(t, r, http.MethodPost, "/classes", createClasses(day(1), day(1), 4))

	w, _ := do(t, r, http.MethodGet, "/classes/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, env := do(t, r, http.MethodGet, "/classes/2", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, response.ErrSessionNotFound, env.Error.Code)

	w, env = do(t, r, http.MethodGet, "/classes/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, response.ErrInvalidID, env.Error.Code)
}

func TestEventsUnavailableWithoutStore(t *testing.T) {
	r := newServer(t, 0)

	w, env := do(t, r, http.MethodGet, "/events", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, response.ErrServiceUnavailable, env.Error.Code)

	w, env = do(t, r, http.MethodGet, "/events?limit=-1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, response.ErrValidation, env.Error.Code)
}

func TestHealth(t *testing.T) {
	r := newServer(t, 0)
	w, env := do(t, r, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var report struct {
		Status string `json:"status"`
		Store  struct {
			Sessions int `json:"sessions"`
		} `json:"store"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &report))
	assert.Equal(t, "ok", report.Status)
	assert.Equal(t, 0, report.Store.Sessions)
}

func TestRateLimitOnWrites(t *testing.T) {
	r := newServer(t, 1)

	w, _ := do(t, r, http.MethodPost, "/bookings", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env := do(t, r, http.MethodPost, "/bookings", gin.H{})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, response.ErrRateLimitExceeded, env.Error.Code)

	// Reads are not limited.
	w, _ = do(t, r, http.MethodGet, "/bookings", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUnknownRoute(t *testing.T) {
	r := newServer(t, 0)
	w, env := do(t, r, http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, response.ErrNotFound, env.Error.Code)
}
