package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ignitefit/class-booking/internal/events"
	"github.com/ignitefit/class-booking/internal/model"
	"github.com/rs/zerolog"
)

type slotKey struct {
	classID int
	date    string
}

// BookingService owns the class sessions, the bookings and the session id counter.
// Every operation holds mu for its whole read-check-write sequence, so the
// one-session-per-day and capacity rules hold under concurrent requests.
type BookingService struct {
	mu       sync.Mutex
	nextID   int
	sessions []model.ClassSession
	byID     map[int]int // session id -> index in sessions
	byDate   map[string]int
	bookings []model.Booking
	booked   map[slotKey]int

	publisher    events.Publisher
	maxRangeDays int
	now          func() time.Time
	log          zerolog.Logger
}

// NewBookingService creates an empty BookingService. maxRangeDays <= 0 disables
// the range length guard; a nil publisher discards events.
func NewBookingService(publisher events.Publisher, maxRangeDays int, log zerolog.Logger) *BookingService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &BookingService{
		nextID:       1,
		byID:         make(map[int]int),
		byDate:       make(map[string]int),
		booked:       make(map[slotKey]int),
		publisher:    publisher,
		maxRangeDays: maxRangeDays,
		now:          time.Now,
		log:          log.With().Str("component", "booking_service").Logger(),
	}
}

// CreateSessions schedules one session per calendar day from StartDate to EndDate
// inclusive. The batch is all-or-nothing: if any day already has a session,
// nothing is created.
func (s *BookingService) CreateSessions(ctx context.Context, in model.CreateSessionsInput) ([]model.ClassSession, error) {
	if in.Name == "" || in.StartDate == "" || in.EndDate == "" || in.StartTime == "" ||
		in.Duration == nil || *in.Duration == 0 || in.Capacity == nil {
		return nil, ErrMissingFields
	}
	if *in.Capacity < 1 {
		return nil, ErrInvalidCapacity
	}

	start, err := parseDate(in.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(in.EndDate)
	if err != nil {
		return nil, err
	}
	if end.Before(s.today()) {
		return nil, ErrEndDateInPast
	}
	if end.Before(start) {
		return nil, ErrEndDateBeforeStart
	}

	if days := int(end.Sub(start).Hours()/24) + 1; s.maxRangeDays > 0 && days > s.maxRangeDays {
		return nil, fmt.Errorf("%w: %d days requested, at most %d allowed", ErrRangeTooLong, days, s.maxRangeDays)
	}
	dates := datesInRange(start, end)

	s.mu.Lock()
	for _, d := range dates {
		if idx, taken := s.byDate[d]; taken {
			existing := s.sessions[idx].ID
			s.mu.Unlock()
			s.log.Debug().Str("date", d).Int("class_id", existing).Msg("Rejected batch, date already scheduled")
			return nil, ErrDateAlreadyScheduled
		}
	}

	created := make([]model.ClassSession, 0, len(dates))
	for _, d := range dates {
		session := model.ClassSession{
			ID:        s.nextID,
			Name:      in.Name,
			Date:      d,
			StartTime: in.StartTime,
			Duration:  *in.Duration,
			Capacity:  *in.Capacity,
		}
		s.nextID++
		s.byID[session.ID] = len(s.sessions)
		s.byDate[d] = len(s.sessions)
		s.sessions = append(s.sessions, session)
		created = append(created, session)
	}
	s.mu.Unlock()

	s.log.Info().
		Str("name", in.Name).
		Str("start_date", in.StartDate).
		Str("end_date", in.EndDate).
		Int("count", len(created)).
		Msg("Class sessions created")

	now := s.now()
	evts := make([]model.BookingEvent, 0, len(created))
	for _, c := range created {
		evts = append(evts, model.NewBookingEvent(model.EventSessionsCreated, c.ID, "", c.Date, c.Capacity, now))
	}
	s.publish(ctx, evts...)

	return created, nil
}

// BookSession reserves one seat in a session on its date. The same member may
// hold several bookings for one session.
func (s *BookingService) BookSession(ctx context.Context, in model.BookSessionInput) (*model.Booking, error) {
	if in.ClassID == 0 || in.UserName == "" || in.ParticipationDate == "" {
		return nil, ErrMissingFields
	}

	date, err := parseDate(in.ParticipationDate)
	if err != nil {
		return nil, err
	}
	if date.Before(s.today()) {
		return nil, ErrParticipationDateInPast
	}
	day := date.Format(model.DateLayout)

	s.mu.Lock()
	idx, ok := s.byID[in.ClassID]
	if !ok {
		s.mu.Unlock()
		return nil, ErrSessionNotFound
	}
	session := s.sessions[idx]
	if session.Date != day {
		s.mu.Unlock()
		return nil, ErrDateMismatch
	}

	key := slotKey{classID: in.ClassID, date: day}
	if s.booked[key] >= session.Capacity {
		s.mu.Unlock()
		s.log.Debug().Int("class_id", in.ClassID).Str("date", day).Msg("Rejected booking, session full")
		return nil, ErrCapacityExceeded
	}

	booking := model.Booking{ClassID: in.ClassID, UserName: in.UserName, Date: day}
	s.bookings = append(s.bookings, booking)
	s.booked[key]++
	taken := s.booked[key]
	s.mu.Unlock()

	s.log.Info().
		Int("class_id", booking.ClassID).
		Str("user_name", booking.UserName).
		Str("date", day).
		Int("seats_taken", taken).
		Msg("Booking created")

	s.publish(ctx, model.NewBookingEvent(model.EventBookingCreated, booking.ClassID, booking.UserName, day, taken, s.now()))

	return &booking, nil
}

// QueryBookings filters bookings by member and/or an inclusive date range and
// joins each one with its session. Results keep booking insertion order.
func (s *BookingService) QueryBookings(q model.BookingQuery) ([]model.BookingView, error) {
	if (q.StartDate == "") != (q.EndDate == "") {
		return nil, ErrRangeIncomplete
	}

	var from, to time.Time
	ranged := q.StartDate != ""
	if ranged {
		var err error
		if from, err = parseDate(q.StartDate); err != nil {
			return nil, err
		}
		if to, err = parseDate(q.EndDate); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	views := make([]model.BookingView, 0)
	for _, b := range s.bookings {
		if q.UserName != "" && b.UserName != q.UserName {
			continue
		}
		if ranged {
			d, err := time.Parse(model.DateLayout, b.Date)
			if err != nil || d.Before(from) || d.After(to) {
				continue
			}
		}

		view := model.BookingView{BookingDate: b.Date, Member: b.UserName}
		if idx, ok := s.byID[b.ClassID]; ok {
			name, startTime := s.sessions[idx].Name, s.sessions[idx].StartTime
			view.ClassName = &name
			view.ClassStartTime = &startTime
		}
		views = append(views, view)
	}
	return views, nil
}

// ListSessions returns every session in id order.
func (s *BookingService) ListSessions() []model.ClassSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.ClassSession, len(s.sessions))
	copy(out, s.sessions)
	return out
}

// GetSession returns a single session by id.
func (s *BookingService) GetSession(id int) (*model.ClassSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.byID[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	session := s.sessions[idx]
	return &session, nil
}

// Stats is a point-in-time count of the service state.
type Stats struct {
	Sessions int `json:"sessions"`
	Bookings int `json:"bookings"`
}

// Stats reports how many sessions and bookings are held.
func (s *BookingService) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{Sessions: len(s.sessions), Bookings: len(s.bookings)}
}

func (s *BookingService) publish(ctx context.Context, evts ...model.BookingEvent) {
	if err := s.publisher.Publish(ctx, evts...); err != nil {
		s.log.Warn().Err(err).Int("events", len(evts)).Msg("Failed to publish booking events")
	}
}

// today is the current calendar date at UTC midnight.
func (s *BookingService) today() time.Time {
	now := s.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func parseDate(raw string) (time.Time, error) {
	d, err := time.Parse(model.DateLayout, raw)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}

func datesInRange(start, end time.Time) []string {
	var dates []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(model.DateLayout))
	}
	return dates
}
