package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/taskhive/task-system/internal/core/domain"
	"github.com/taskhive/task-system/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// notification pairs a lifecycle event with its target rooms.
type notification struct {
	event domain.LifecycleEvent
	rooms []domain.RoomKey
}

// Dispatcher routes lifecycle events to a fixed set of workers using
// consistent hashing on the task id: events for one task are always delivered
// in the order their store mutations committed, while different tasks fan out
// concurrently. It sits between the task service and the hub and satisfies
// ports.Notifier itself.
type Dispatcher struct {
	workers []chan notification
	sink    ports.Notifier
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers in front
// of sink. If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, sink ports.Notifier, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan notification, numWorkers),
		sink:    sink,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan notification, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Publish enqueues the event for ordered delivery. Fire-and-forget: when the
// shard's buffer is full the event is dropped with a warning rather than
// blocking the caller's request.
func (d *Dispatcher) Publish(event domain.LifecycleEvent, rooms ...domain.RoomKey) {
	n := notification{event: event, rooms: rooms}
	select {
	case d.workers[d.shardIndex(event.TaskID)] <- n:
	default:
		d.log.Warn().Str("task_id", event.TaskID).Str("event", event.Kind.EventName()).Msg("dispatcher shard full, notification dropped")
	}
}

// shardIndex maps a task id deterministically to a worker index.
func (d *Dispatcher) shardIndex(taskID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(taskID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan notification) {
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-ch:
			if !ok {
				return
			}
			d.sink.Publish(n.event, n.rooms...)
			d.log.Debug().
				Str("task_id", n.event.TaskID).
				Str("event", n.event.Kind.EventName()).
				Int("worker_id", id).
				Msg("notification dispatched")
		}
	}
}
