package domain

// EventKind identifies a task lifecycle transition.
type EventKind string

const (
	EventTaskCreated EventKind = "created"
	EventTaskUpdated EventKind = "updated"
	EventTaskDeleted EventKind = "deleted"
)

// EventName returns the wire-level event name pushed to connected clients.
func (k EventKind) EventName() string {
	switch k {
	case EventTaskCreated:
		return "newTask"
	case EventTaskUpdated:
		return "taskUpdated"
	case EventTaskDeleted:
		return "taskDeleted"
	}
	return string(k)
}

// RoomKey names a broadcast group. Every connection is a member of exactly two
// rooms: its user id and its role.
type RoomKey string

// RoomForUser returns the room private to a single user id.
func RoomForUser(userID string) RoomKey { return RoomKey(userID) }

// RoomForRole returns the room shared by every connection of a role.
func RoomForRole(role Role) RoomKey { return RoomKey(role) }

// LifecycleEvent is the transient value handed to the notification fan-out
// after a task mutation commits. It is never persisted. Deleted events carry
// only the task id; created/updated events carry a full snapshot.
type LifecycleEvent struct {
	Kind    EventKind
	Task    *Task
	TaskID  string
	Message string
}
