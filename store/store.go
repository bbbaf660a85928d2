// Package store holds one repository per entity. Methods are named for the
// access pattern they serve; query construction stays behind the interface.
package store

import "errors"

var (
	ErrNotFound        = errors.New("record not found")
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	ErrNoIdentity      = errors.New("identity must carry a user id or a session key")
)

// Identity names the owner of a cart: an authenticated user or an anonymous
// session. Exactly one field is set on a valid identity.
type Identity struct {
	UserID     string
	SessionKey string
}

func UserIdentity(userID string) Identity { return Identity{UserID: userID} }
func SessionIdentity(key string) Identity { return Identity{SessionKey: key} }
func (id Identity) Valid() bool           { return (id.UserID == "") != (id.SessionKey == "") }
func (id Identity) IsAuthenticated() bool { return id.UserID != "" }
