package domain

import "time"

// Member is a person who can be assigned tasks. Members are global — they
// exist independently of any trip and may be linked to many trips via the
// membership association. Name is required; Role and Email are free text.
type Member struct {
	ID        string    `json:"member_id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Email     string    `json:"email"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}
