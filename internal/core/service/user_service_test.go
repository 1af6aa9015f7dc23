package service

import (
	"context"
	"errors"
	"testing"

	"github.com/taskhive/task-system/internal/core/domain"
)

func TestUserService_ListEmployees_FiltersByRole(t *testing.T) {
	svc := NewUserService(fixtureUsers())

	employees, err := svc.ListEmployees(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(employees) != 2 {
		t.Fatalf("expected 2 employees, got %d", len(employees))
	}
	for _, u := range employees {
		if u.Role != domain.RoleEmployee {
			t.Errorf("expected Employee, got %s", u.Role)
		}
	}
}

func TestUserService_Get_ManagerReadsAnyone(t *testing.T) {
	svc := NewUserService(fixtureUsers())

	u, err := svc.Get(context.Background(), manager, "user_e2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.ID != "user_e2" {
		t.Errorf("expected user_e2, got %s", u.ID)
	}
}

func TestUserService_Get_EmployeeReadsOnlySelf(t *testing.T) {
	svc := NewUserService(fixtureUsers())

	if _, err := svc.Get(context.Background(), employee, employee.ID); err != nil {
		t.Fatalf("self read: %v", err)
	}
	if _, err := svc.Get(context.Background(), employee, "user_e2"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestUserService_Get_NotFound(t *testing.T) {
	svc := NewUserService(fixtureUsers())

	if _, err := svc.Get(context.Background(), manager, "user_ghost"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
