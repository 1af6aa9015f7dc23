package realtime

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/taskhive/task-system/internal/core/domain"
)

// Identity is the authenticated subject of a realtime connection.
type Identity struct {
	UserID string
	Role   domain.Role
}

// VerifyToken validates the handshake credential: HS256 signature, expiry,
// and the presence of a subject id and a known role. Any failure maps to
// domain.ErrInvalidCredentials so the connection is rejected before any room
// join.
func VerifyToken(token, secret string) (Identity, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !tkn.Valid {
		return Identity{}, domain.ErrInvalidCredentials
	}

	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	id := Identity{UserID: sub, Role: domain.Role(role)}
	if id.UserID == "" || !id.Role.Valid() {
		return Identity{}, domain.ErrInvalidCredentials
	}
	return id, nil
}

// DeriveRooms maps an identity to its room memberships: one room keyed by
// user id, one keyed by role. Kept separate from the transport so routing is
// testable without a connection.
func DeriveRooms(id Identity) []domain.RoomKey {
	return []domain.RoomKey{
		domain.RoomForUser(id.UserID),
		domain.RoomForRole(id.Role),
	}
}
