package service

import (
	"context"
	"errors"

	"github.com/ignitefit/class-booking/internal/model"
	"github.com/rs/zerolog"
)

// ErrAuditDisabled is returned when no audit store is configured.
var ErrAuditDisabled = errors.New("audit trail is not configured")

const (
	DefaultAuditLimit = 50
	MaxAuditLimit     = 500
)

// EventReader is the read side of the audit store.
type EventReader interface {
	Recent(ctx context.Context, limit int) ([]model.BookingEvent, error)
}

// AuditService exposes the recorded booking events.
type AuditService struct {
	reader EventReader
	log    zerolog.Logger
}

// NewAuditService creates an AuditService. A nil reader means auditing is off.
func NewAuditService(reader EventReader, log zerolog.Logger) *AuditService {
	return &AuditService{
		reader: reader,
		log:    log.With().Str("component", "audit_service").Logger(),
	}
}

// Recent returns up to limit events, newest first. Out-of-range limits are clamped.
func (s *AuditService) Recent(ctx context.Context, limit int) ([]model.BookingEvent, error) {
	if s.reader == nil {
		return nil, ErrAuditDisabled
	}
	if limit <= 0 {
		limit = DefaultAuditLimit
	}
	if limit > MaxAuditLimit {
		limit = MaxAuditLimit
	}

	evts, err := s.reader.Recent(ctx, limit)
	if err != nil {
		s.log.Error().Err(err).Int("limit", limit).Msg("failed to list booking events")
		return nil, err
	}
	if evts == nil {
		evts = []model.BookingEvent{}
	}
	return evts, nil
}
