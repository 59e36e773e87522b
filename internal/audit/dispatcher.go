package audit

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type Event struct {
	UserID   *models.UserID
	Action   string
	Entity   string
	EntityID *uuid.UUID
	Metadata any
}

// Sink persists one event.
type Sink interface {
	Log(ctx context.Context, ev Event) error
}

// DropCounter is satisfied by a prometheus counter.
type DropCounter interface {
	Inc()
}

type Dispatcher struct {
	sink    Sink
	log     *zap.Logger
	dropped DropCounter
	queue   chan Event

	wg   sync.WaitGroup
	once sync.Once
}

func NewDispatcher(sink Sink, log *zap.Logger, dropped DropCounter) *Dispatcher {
	d := &Dispatcher{
		sink:    sink,
		log:     log,
		dropped: dropped,
		queue:   make(chan Event, 100),
	}

	d.wg.Add(1)
	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for ev := range d.queue {
		if err := d.sink.Log(context.Background(), ev); err != nil {
			d.log.Warn("audit write failed",
				zap.String("action", ev.Action),
				zap.Error(err),
			)
		}
	}
}

// Dispatch never blocks: a full queue drops the event.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}

	select {
	case d.queue <- ev:
	default:
		if d.dropped != nil {
			d.dropped.Inc()
		}
		d.log.Warn("audit queue full, dropping event", zap.String("action", ev.Action))
	}
}

// Close stops accepting events and waits for the queue to drain.
func (d *Dispatcher) Close() {
	d.once.Do(func() {
		close(d.queue)
	})
	d.wg.Wait()
}
