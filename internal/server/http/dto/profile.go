package dto

import "time"

// ProfileRequest describes profile create/update payloads.
type ProfileRequest struct {
	Name        string     `json:"name"`
	State       string     `json:"state"`
	District    string     `json:"district"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
}

// ProfileResponse describes one profile.
type ProfileResponse struct {
	ID          int64      `json:"id"`
	Type        string     `json:"type"`
	Name        string     `json:"name"`
	State       string     `json:"state,omitempty"`
	District    string     `json:"district,omitempty"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
