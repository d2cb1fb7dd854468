package model

// Booking is a member's reservation of one seat in a session on its date.
// ClassID refers to a ClassSession by id only.
type Booking struct {
	ClassID  int    `json:"class_id"`
	UserName string `json:"user_name"`
	Date     string `json:"date"`
}

// BookSessionInput carries the bookSession fields. Zero values mean absent.
type BookSessionInput struct {
	ClassID           int
	UserName          string
	ParticipationDate string
}

// CreateBookingRequest is the POST /bookings payload.
type CreateBookingRequest struct {
	ClassID           int    `json:"classId" binding:"omitempty,min=1"`
	UserName          string `json:"userName" binding:"max=200"`
	ParticipationDate string `json:"participationDate"`
}

// Input converts the request into the service input.
func (r *CreateBookingRequest) Input() BookSessionInput {
	return BookSessionInput{
		ClassID:           r.ClassID,
		UserName:          r.UserName,
		ParticipationDate: r.ParticipationDate,
	}
}

// BookingQuery holds the optional GET /bookings filters. Empty means not given.
type BookingQuery struct {
	UserName  string `form:"userName"`
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
}

// BookingView is a booking joined with its session. Session fields are nil
// when the referenced session cannot be found.
type BookingView struct {
	ClassName      *string `json:"className"`
	ClassStartTime *string `json:"classStartTime"`
	BookingDate    string  `json:"bookingDate"`
	Member         string  `json:"member"`
}
