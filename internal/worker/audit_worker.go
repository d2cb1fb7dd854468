package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/ignitefit/class-booking/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// EventWriter persists a single booking event.
type EventWriter interface {
	Insert(ctx context.Context, e *model.BookingEvent) error
}

// AuditWorker consumes the booking events queue and stores each event.
type AuditWorker struct {
	rdb        *redis.Client
	store      EventWriter
	queue      string
	retryDelay time.Duration
	log        zerolog.Logger
}

// NewAuditWorker creates a new AuditWorker.
func NewAuditWorker(rdb *redis.Client, store EventWriter, queue string, log zerolog.Logger) *AuditWorker {
	return &AuditWorker{
		rdb:        rdb,
		store:      store,
		queue:      queue,
		retryDelay: 5 * time.Second,
		log:        log.With().Str("component", "audit_worker").Logger(),
	}
}

// Start begins the worker loop and returns once ctx is cancelled and the queue
// has been drained. Call in a goroutine.
func (w *AuditWorker) Start(ctx context.Context) {
	w.log.Info().Str("queue", w.queue).Msg("Worker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopping...")
			w.drain(context.Background())
			w.log.Info().Msg("Worker stopped")
			return
		default:
			w.processNext(ctx)
		}
	}
}

func (w *AuditWorker) processNext(ctx context.Context) {
	// BLPop blocks until an item is available or the 1s timeout elapses.
	result, err := w.rdb.BLPop(ctx, time.Second, w.queue).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
			w.log.Error().Err(err).Msg("BLPop error")
			w.wait(ctx, time.Second)
		}
		return
	}
	if len(result) < 2 {
		return
	}

	if err := w.handle(ctx, result[1]); err != nil {
		w.log.Error().Err(err).Dur("retry_in", w.retryDelay).Msg("Persist error, requeueing")
		w.requeue(ctx, result[1])
		w.wait(ctx, w.retryDelay)
	}
}

// requeue puts raw back on the queue. It must survive ctx being cancelled
// while the insert was in flight, otherwise the popped event is lost.
func (w *AuditWorker) requeue(ctx context.Context, raw string) {
	if err := w.rdb.RPush(context.WithoutCancel(ctx), w.queue, raw).Err(); err != nil {
		w.log.Error().Err(err).Str("payload", raw).Msg("Requeue failed, event lost")
	}
}

// wait pauses for d or until ctx is done.
func (w *AuditWorker) wait(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// handle decodes and stores one raw queue item. Undecodable items are logged
// and dropped since retrying cannot fix them.
func (w *AuditWorker) handle(ctx context.Context, raw string) error {
	e, err := decodeEvent(raw)
	if err != nil {
		w.log.Error().Err(err).Str("payload", raw).Msg("Dropping malformed event")
		return nil
	}
	return w.store.Insert(ctx, e)
}

// drain stores whatever is left in the queue before shutdown.
func (w *AuditWorker) drain(ctx context.Context) {
	drained := 0
	for {
		raw, err := w.rdb.LPop(ctx, w.queue).Result()
		if err != nil {
			break
		}
		if err := w.handle(ctx, raw); err != nil {
			w.log.Error().Err(err).Msg("Drain persist error")
			w.requeue(ctx, raw)
			break
		}
		drained++
	}

	if drained > 0 {
		w.log.Info().Int("count", drained).Msg("Drained remaining events")
	}
}

func decodeEvent(raw string) (*model.BookingEvent, error) {
	var e model.BookingEvent
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		return nil, err
	}
	if e.Type == "" || e.Date == "" {
		return nil, errors.New("event missing type or date")
	}
	return &e, nil
}
