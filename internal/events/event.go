package events

import "time"

// ProfileChanged is emitted after a profile-store write commits. It carries
// the minimal field set the analytics projection mirrors.
type ProfileChanged struct {
	UserID    string
	FirstName string
	LastName  string
	Skills    []string
	UpdatedAt time.Time
}
