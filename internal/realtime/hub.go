package realtime

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskhive/task-system/internal/api/metrics"
	"github.com/taskhive/task-system/internal/core/domain"
)

const presenceTimeout = 2 * time.Second

// PresenceTracker records which users currently hold open connections.
// Calls are best-effort: a tracker failure never affects delivery.
type PresenceTracker interface {
	Connected(ctx context.Context, userID string) error
	Disconnected(ctx context.Context, userID string) error
}

// envelope is the wire frame pushed to clients.
type envelope struct {
	Event string       `json:"event"`
	Data  eventPayload `json:"data"`
}

type eventPayload struct {
	Task    *domain.Task `json:"task,omitempty"`
	TaskID  string       `json:"taskId,omitempty"`
	Message string       `json:"message"`
}

// Hub is the room-keyed broadcast table. A message published to a room
// reaches every session currently joined to it and no others. Delivery is
// fire-and-forget: sessions with a full send buffer lose the message rather
// than blocking the publisher.
type Hub struct {
	mu       sync.RWMutex
	rooms    map[domain.RoomKey]map[*Session]struct{}
	presence PresenceTracker // optional
	log      zerolog.Logger
}

func NewHub(presence PresenceTracker, log zerolog.Logger) *Hub {
	return &Hub{
		rooms:    make(map[domain.RoomKey]map[*Session]struct{}),
		presence: presence,
		log:      log,
	}
}

// Register joins the session to the rooms derived from its identity.
func (h *Hub) Register(s *Session) {
	rooms := DeriveRooms(s.identity)

	h.mu.Lock()
	for _, key := range rooms {
		members, ok := h.rooms[key]
		if !ok {
			members = make(map[*Session]struct{})
			h.rooms[key] = members
		}
		members[s] = struct{}{}
	}
	h.mu.Unlock()

	metrics.ConnectedClients.Inc()
	h.log.Debug().Str("user_id", s.identity.UserID).Str("role", string(s.identity.Role)).Msg("client connected")

	if h.presence != nil {
		ctx, cancel := context.WithTimeout(context.Background(), presenceTimeout)
		defer cancel()
		if err := h.presence.Connected(ctx, s.identity.UserID); err != nil {
			h.log.Warn().Err(err).Str("user_id", s.identity.UserID).Msg("presence tracking failed")
		}
	}
}

// Unregister removes the session from every room and closes its send channel.
// Safe to call once per session; closing the connection removes it from all
// rooms immediately.
func (h *Hub) Unregister(s *Session) {
	h.mu.Lock()
	removed := false
	for _, key := range DeriveRooms(s.identity) {
		if members, ok := h.rooms[key]; ok {
			if _, present := members[s]; present {
				delete(members, s)
				removed = true
			}
			if len(members) == 0 {
				delete(h.rooms, key)
			}
		}
	}
	if removed {
		// Closed under the write lock so Publish, which sends under the read
		// lock, can never hit a closed channel.
		close(s.send)
	}
	h.mu.Unlock()

	if !removed {
		return
	}
	metrics.ConnectedClients.Dec()
	h.log.Debug().Str("user_id", s.identity.UserID).Msg("client disconnected")

	if h.presence != nil {
		ctx, cancel := context.WithTimeout(context.Background(), presenceTimeout)
		defer cancel()
		if err := h.presence.Disconnected(ctx, s.identity.UserID); err != nil {
			h.log.Warn().Err(err).Str("user_id", s.identity.UserID).Msg("presence tracking failed")
		}
	}
}

// Publish delivers the event to every session in the target rooms. A session
// joined to more than one target room still receives the event once. Empty
// rooms are a normal, silent outcome.
func (h *Hub) Publish(event domain.LifecycleEvent, rooms ...domain.RoomKey) {
	frame := envelope{
		Event: event.Kind.EventName(),
		Data: eventPayload{
			Task:    event.Task,
			TaskID:  event.TaskID,
			Message: event.Message,
		},
	}
	// Deleted events carry only the task id.
	if event.Task != nil {
		frame.Data.TaskID = ""
	}

	metrics.EventsPublishedTotal.WithLabelValues(frame.Event).Inc()

	h.mu.RLock()
	defer h.mu.RUnlock()

	targets := make(map[*Session]struct{})
	for _, key := range rooms {
		for s := range h.rooms[key] {
			targets[s] = struct{}{}
		}
	}

	for s := range targets {
		select {
		case s.send <- frame:
		default:
			metrics.NotificationsDroppedTotal.Inc()
			h.log.Warn().Str("user_id", s.identity.UserID).Str("event", frame.Event).Msg("send buffer full, notification dropped")
		}
	}
}

// members returns the current size of a room. Used by tests.
func (h *Hub) members(key domain.RoomKey) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[key])
}
