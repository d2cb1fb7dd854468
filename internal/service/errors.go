package service

import "errors"

// Domain failures. Each one is an expected, recoverable outcome of a booking
// operation; callers branch on them with errors.Is.
var (
	ErrMissingFields           = errors.New("missing required fields")
	ErrInvalidCapacity         = errors.New("capacity must be at least 1")
	ErrInvalidDate             = errors.New("invalid date format")
	ErrEndDateInPast           = errors.New("end date must not be in the past")
	ErrEndDateBeforeStart      = errors.New("end date must not be before start date")
	ErrRangeTooLong            = errors.New("date range is too long")
	ErrDateAlreadyScheduled    = errors.New("only one class per day allowed")
	ErrParticipationDateInPast = errors.New("participation date must not be in the past")
	ErrSessionNotFound         = errors.New("class not found")
	ErrDateMismatch            = errors.New("participation date does not match class date")
	ErrCapacityExceeded        = errors.New("class is already at full capacity for this date")
	ErrRangeIncomplete         = errors.New("both startDate and endDate must be provided together")
)
