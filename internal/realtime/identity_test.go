package realtime

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taskhive/task-system/internal/core/domain"
)

const testSecret = "secret"

func signToken(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func validClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"sub":  "user_e1",
		"role": "Employee",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
}

func TestVerifyToken_Valid(t *testing.T) {
	id, err := VerifyToken(signToken(t, validClaims(), testSecret), testSecret)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id.UserID != "user_e1" || id.Role != domain.RoleEmployee {
		t.Fatalf("unexpected identity: %+v", id)
	}
}

func TestVerifyToken_Rejections(t *testing.T) {
	expired := validClaims()
	expired["exp"] = time.Now().Add(-time.Minute).Unix()

	noSub := validClaims()
	delete(noSub, "sub")

	badRole := validClaims()
	badRole["role"] = "Admin"

	cases := []struct {
		name  string
		token string
	}{
		{"malformed", "not-a-token"},
		{"empty", ""},
		{"wrong secret", signToken(t, validClaims(), "other")},
		{"expired", signToken(t, expired, testSecret)},
		{"missing subject", signToken(t, noSub, testSecret)},
		{"unknown role", signToken(t, badRole, testSecret)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := VerifyToken(tc.token, testSecret); !errors.Is(err, domain.ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestDeriveRooms(t *testing.T) {
	rooms := DeriveRooms(Identity{UserID: "user_e1", Role: domain.RoleEmployee})
	if len(rooms) != 2 {
		t.Fatalf("expected exactly 2 rooms, got %d", len(rooms))
	}
	got := map[domain.RoomKey]bool{rooms[0]: true, rooms[1]: true}
	if !got[domain.RoomForUser("user_e1")] {
		t.Error("missing user-id room")
	}
	if !got[domain.RoomForRole(domain.RoleEmployee)] {
		t.Error("missing role room")
	}
}
