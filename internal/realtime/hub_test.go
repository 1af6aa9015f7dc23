package realtime

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/taskhive/task-system/internal/core/domain"
)

func testSession(userID string, role domain.Role) *Session {
	return newSession(Identity{UserID: userID, Role: role}, nil)
}

func drain(s *Session) []envelope {
	var out []envelope
	for {
		select {
		case frame := <-s.send:
			out = append(out, frame)
		default:
			return out
		}
	}
}

func sampleEvent() domain.LifecycleEvent {
	return domain.LifecycleEvent{
		Kind:    domain.EventTaskCreated,
		Task:    &domain.Task{ID: "task_1", Title: "Write report", AssignedTo: "user_e1"},
		TaskID:  "task_1",
		Message: "You have been assigned a new task",
	}
}

func TestHub_Publish_RoomScoped(t *testing.T) {
	hub := NewHub(nil, zerolog.Nop())
	assignee := testSession("user_e1", domain.RoleEmployee)
	bystander := testSession("user_e2", domain.RoleEmployee)
	boss := testSession("user_m1", domain.RoleManager)
	hub.Register(assignee)
	hub.Register(bystander)
	hub.Register(boss)

	hub.Publish(sampleEvent(), domain.RoomForUser("user_e1"))

	got := drain(assignee)
	if len(got) != 1 {
		t.Fatalf("assignee expected 1 frame, got %d", len(got))
	}
	if got[0].Event != "newTask" {
		t.Errorf("expected newTask, got %s", got[0].Event)
	}
	if got[0].Data.Task == nil || got[0].Data.Task.ID != "task_1" {
		t.Errorf("expected task snapshot, got %+v", got[0].Data)
	}
	if frames := drain(bystander); len(frames) != 0 {
		t.Errorf("unrelated employee must receive nothing, got %d frames", len(frames))
	}
	if frames := drain(boss); len(frames) != 0 {
		t.Errorf("manager not in target room must receive nothing, got %d frames", len(frames))
	}
}

func TestHub_Publish_RoleRoomReachesEveryMember(t *testing.T) {
	hub := NewHub(nil, zerolog.Nop())
	m1 := testSession("user_m1", domain.RoleManager)
	m2 := testSession("user_m2", domain.RoleManager)
	hub.Register(m1)
	hub.Register(m2)

	event := sampleEvent()
	event.Kind = domain.EventTaskUpdated
	hub.Publish(event, domain.RoomForRole(domain.RoleManager))

	for _, s := range []*Session{m1, m2} {
		frames := drain(s)
		if len(frames) != 1 || frames[0].Event != "taskUpdated" {
			t.Fatalf("manager %s expected one taskUpdated frame, got %v", s.identity.UserID, frames)
		}
	}
}

func TestHub_Publish_MultiRoomDeliversOnce(t *testing.T) {
	hub := NewHub(nil, zerolog.Nop())
	// A manager session is a member of both its user-id room and the role room.
	boss := testSession("user_m1", domain.RoleManager)
	hub.Register(boss)

	hub.Publish(sampleEvent(), domain.RoomForRole(domain.RoleManager), domain.RoomForUser("user_m1"))

	if frames := drain(boss); len(frames) != 1 {
		t.Fatalf("expected a single delivery across overlapping rooms, got %d", len(frames))
	}
}

func TestHub_Publish_DeletedEventCarriesOnlyTaskID(t *testing.T) {
	hub := NewHub(nil, zerolog.Nop())
	s := testSession("user_e1", domain.RoleEmployee)
	hub.Register(s)

	hub.Publish(domain.LifecycleEvent{
		Kind:    domain.EventTaskDeleted,
		TaskID:  "task_1",
		Message: `Task "Write report" has been deleted`,
	}, domain.RoomForUser("user_e1"))

	frames := drain(s)
	if len(frames) != 1 {
		t.Fatalf("expected 1 frame, got %d", len(frames))
	}
	if frames[0].Event != "taskDeleted" || frames[0].Data.TaskID != "task_1" || frames[0].Data.Task != nil {
		t.Fatalf("unexpected frame: %+v", frames[0])
	}
}

func TestHub_Unregister_RemovesFromAllRooms(t *testing.T) {
	hub := NewHub(nil, zerolog.Nop())
	s := testSession("user_e1", domain.RoleEmployee)
	hub.Register(s)
	hub.Unregister(s)

	if n := hub.members(domain.RoomForUser("user_e1")); n != 0 {
		t.Errorf("user room still has %d members", n)
	}
	if n := hub.members(domain.RoomForRole(domain.RoleEmployee)); n != 0 {
		t.Errorf("role room still has %d members", n)
	}

	// Publishing after unregister must be a silent no-op.
	hub.Publish(sampleEvent(), domain.RoomForUser("user_e1"))

	if _, open := <-s.send; open {
		t.Error("send channel must be closed after unregister")
	}
}

func TestHub_Unregister_Idempotent(t *testing.T) {
	hub := NewHub(nil, zerolog.Nop())
	s := testSession("user_e1", domain.RoleEmployee)
	hub.Register(s)
	hub.Unregister(s)
	hub.Unregister(s) // must not panic on double close
}

func TestHub_Publish_DropsWhenBufferFull(t *testing.T) {
	hub := NewHub(nil, zerolog.Nop())
	s := testSession("user_e1", domain.RoleEmployee)
	hub.Register(s)

	for i := 0; i < sendBuffer+5; i++ {
		hub.Publish(sampleEvent(), domain.RoomForUser("user_e1"))
	}

	if got := len(drain(s)); got != sendBuffer {
		t.Fatalf("expected buffer-sized backlog of %d, got %d", sendBuffer, got)
	}
}
