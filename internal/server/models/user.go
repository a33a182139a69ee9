// Package models holds the records persisted by the server repositories.
package models

import "time"

// User is a stored credential. PasswordHash is the bcrypt encoding of the
// password; the plaintext is never kept.
type User struct {
	ID           string
	UserName     string
	PasswordHash string
	CreatedAt    time.Time
}
