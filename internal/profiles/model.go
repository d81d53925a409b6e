package profiles

import "time"

// UserProfile is the canonical profile aggregate in the primary store. Its ID
// equals the owning auth principal's identity id (1:1); the analytics side
// never mutates it directly.
type UserProfile struct {
	ID        string
	FirstName string
	LastName  string
	Username  string
	Email     string
	Bio       string
	Country   string
	City      string
	Address   string
	AvatarURL string
	CoverURL  string
	JobTitle  string
	Skills    []string
	CreatedAt time.Time
	UpdatedAt time.Time
}
