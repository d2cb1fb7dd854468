package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ignitefit/class-booking/internal/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubReader struct {
	gotLimit int
	evts     []model.BookingEvent
	err      error
}

func (r *stubReader) Recent(_ context.Context, limit int) ([]model.BookingEvent, error) {
	r.gotLimit = limit
	return r.evts, r.err
}

func TestAuditService_Disabled(t *testing.T) {
	svc := NewAuditService(nil, zerolog.Nop())
	_, err := svc.Recent(context.Background(), 10)
	require.ErrorIs(t, err, ErrAuditDisabled)
}

func TestAuditService_ClampsLimit(t *testing.T) {
	reader := &stubReader{}
	svc := NewAuditService(reader, zerolog.Nop())

	evts, err := svc.Recent(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultAuditLimit, reader.gotLimit)
	assert.NotNil(t, evts)

	_, err = svc.Recent(context.Background(), 10_000)
	require.NoError(t, err)
	assert.Equal(t, MaxAuditLimit, reader.gotLimit)
}

func TestAuditService_PassesThrough(t *testing.T) {
	e := model.NewBookingEvent(model.EventBookingCreated, 1, "Alice", "2025-08-01", 1, time.Now())
	reader := &stubReader{evts: []model.BookingEvent{e}}
	svc := NewAuditService(reader, zerolog.Nop())

	evts, err := svc.Recent(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, []model.BookingEvent{e}, evts)

	reader.err = errors.New("db down")
	_, err = svc.Recent(context.Background(), 5)
	require.Error(t, err)
}
