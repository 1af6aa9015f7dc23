package ports

import "github.com/taskhive/task-system/internal/core/domain"

// Notifier delivers a lifecycle event to every connection currently joined to
// any of the target rooms. Delivery is best-effort and fire-and-forget: an
// empty room is a normal, silent outcome, and a failed delivery never rolls
// back the store mutation that produced the event.
type Notifier interface {
	Publish(event domain.LifecycleEvent, rooms ...domain.RoomKey)
}
