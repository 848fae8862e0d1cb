package model

import "time"

// ProfileType distinguishes the account holder's own profile from gift
// recipient profiles created under the same account.
type ProfileType string

const (
	ProfileTypeUser  ProfileType = "user"
	ProfileTypeBuyer ProfileType = "buyer"
)

// Profile is a sub-identity under one account. Every account has exactly one
// "user" profile and any number of "buyer" profiles acting as delivery
// targets for mug units.
type Profile struct {
	ID          int64
	UserID      int64
	Type        ProfileType
	Name        string
	State       string
	District    string
	DateOfBirth *time.Time
	CreatedAt   time.Time
}
