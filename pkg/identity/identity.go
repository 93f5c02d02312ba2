// Package identity gates access to a session with the staff-ID scheme:
// an ID is "SI" followed by four characters, upper-cased on entry. One
// well-known ID carries super-admin elevation, which unlocks manual
// editing of the engine instruction text.
package identity

import (
	"errors"
	"regexp"
	"strings"
)

// ErrInvalidID is returned for credentials that do not match the staff-ID
// format. It is user-visible and never affects an active session.
var ErrInvalidID = errors.New("identity: invalid ID format, must start with SI followed by 4 characters")

// superAdminID is the elevated operator identity.
const superAdminID = "SI0000"

var idPattern = regexp.MustCompile(`^SI.{4}$`)

// User is an authenticated session operator.
type User struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	SuperAdmin bool   `json:"superAdmin"`
}

// SignIn validates a staff ID and returns the authenticated user. Input is
// upper-cased before validation, matching the entry form behavior.
func SignIn(id string) (User, error) {
	id = strings.ToUpper(strings.TrimSpace(id))
	if !idPattern.MatchString(id) {
		return User{}, ErrInvalidID
	}
	return User{
		ID:         id,
		Email:      id + "@eburon.ai",
		SuperAdmin: id == superAdminID,
	}, nil
}
