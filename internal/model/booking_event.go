package model

import (
	"time"

	"github.com/google/uuid"
)

// EventType identifies what happened in the booking domain.
type EventType string

const (
	EventSessionsCreated EventType = "sessions.created"
	EventBookingCreated  EventType = "booking.created"
)

// BookingEvent is an audit record emitted after a successful mutation.
type BookingEvent struct {
	ID         uuid.UUID `json:"id"`
	Type       EventType `json:"type"`
	ClassID    int       `json:"class_id"`
	UserName   string    `json:"user_name,omitempty"`
	Date       string    `json:"date"`
	Count      int       `json:"count"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewBookingEvent stamps a fresh id and time on an event.
func NewBookingEvent(typ EventType, classID int, userName, date string, count int, at time.Time) BookingEvent {
	return BookingEvent{
		ID:         uuid.New(),
		Type:       typ,
		ClassID:    classID,
		UserName:   userName,
		Date:       date,
		Count:      count,
		OccurredAt: at.UTC(),
	}
}
