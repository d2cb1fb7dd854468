package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation      ErrCode = "VALIDATION_ERROR"
	ErrInvalidID       ErrCode = "INVALID_ID"
	ErrMissingFields   ErrCode = "MISSING_FIELDS"
	ErrInvalidCapacity ErrCode = "INVALID_CAPACITY"
	ErrInvalidDate     ErrCode = "INVALID_DATE"
	ErrRangeIncomplete ErrCode = "RANGE_INCOMPLETE"
	ErrRangeTooLong    ErrCode = "RANGE_TOO_LONG"

	// ─── Scheduling ────────────────────────────────────────────────────
	ErrEndDateInPast        ErrCode = "END_DATE_IN_PAST"
	ErrEndDateBeforeStart   ErrCode = "END_DATE_BEFORE_START"
	ErrDateAlreadyScheduled ErrCode = "DATE_ALREADY_SCHEDULED"

	// ─── Booking ───────────────────────────────────────────────────────
	ErrParticipationDateInPast ErrCode = "PARTICIPATION_DATE_IN_PAST"
	ErrSessionNotFound         ErrCode = "SESSION_NOT_FOUND"
	ErrDateMismatch            ErrCode = "DATE_MISMATCH"
	ErrCapacityExceeded        ErrCode = "CAPACITY_EXCEEDED"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrServiceUnavailable ErrCode = "SERVICE_UNAVAILABLE"
	ErrInternal           ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid ID format."
	case ErrMissingFields:
		return "Missing required fields."
	case ErrInvalidCapacity:
		return "Capacity must be at least 1."
	case ErrInvalidDate:
		return "Invalid date format, expected YYYY-MM-DD."
	case ErrRangeIncomplete:
		return "Both startDate and endDate must be provided together."
	case ErrRangeTooLong:
		return "The requested date range is too long."

	// ─── Scheduling ────────────────────────────────────────────────────
	case ErrEndDateInPast:
		return "End date must not be in the past."
	case ErrEndDateBeforeStart:
		return "End date must be after start date."
	case ErrDateAlreadyScheduled:
		return "Only one class per day allowed."

	// ─── Booking ───────────────────────────────────────────────────────
	case ErrParticipationDateInPast:
		return "Participation date must not be in the past."
	case ErrSessionNotFound:
		return "Class not found."
	case ErrDateMismatch:
		return "Participation date does not match class date."
	case ErrCapacityExceeded:
		return "Class is already at full capacity for this date."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Resource not found."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrServiceUnavailable:
		return "This feature is not available on this server."
	case ErrInternal:
		return "Internal server error."
	default:
		return "An unexpected error occurred."
	}
}
