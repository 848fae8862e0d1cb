package model

import "time"

// Address is a saved delivery address belonging to an account.
type Address struct {
	ID           int64
	UserID       int64
	FullName     string
	Phone        string
	AddressLine1 string
	City         string
	State        string
	District     string
	PostalCode   string
	Country      string
	Landmark     string
	CreatedAt    time.Time
}
