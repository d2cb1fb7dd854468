package model

// DateLayout is the calendar-date format used at every boundary.
const DateLayout = "2006-01-02"

// ClassSession is one scheduled occurrence of a named class on a single date.
type ClassSession struct {
	ID        int     `json:"class_id"`
	Name      string  `json:"name"`
	Date      string  `json:"date"`
	StartTime string  `json:"start_time"`
	Duration  float64 `json:"duration"`
	Capacity  int     `json:"capacity"`
}

// CreateSessionsInput carries the createSessions fields after transport decoding.
// Nil pointers mean the field was absent from the request.
type CreateSessionsInput struct {
	Name      string
	StartDate string
	EndDate   string
	StartTime string
	Duration  *float64
	Capacity  *int
}

// CreateClassesRequest is the POST /classes payload.
type CreateClassesRequest struct {
	Name      string   `json:"name" binding:"max=200"`
	StartDate string   `json:"startDate"`
	EndDate   string   `json:"endDate"`
	StartTime string   `json:"startTime" binding:"max=50"`
	Duration  *float64 `json:"duration"`
	Capacity  *int     `json:"capacity"`
}

// Input converts the request into the service input.
func (r *CreateClassesRequest) Input() CreateSessionsInput {
	return CreateSessionsInput{
		Name:      r.Name,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		StartTime: r.StartTime,
		Duration:  r.Duration,
		Capacity:  r.Capacity,
	}
}
