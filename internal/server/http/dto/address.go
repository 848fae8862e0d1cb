package dto

import "time"

// AddressRequest describes address create/update payloads.
type AddressRequest struct {
	FullName     string `json:"full_name"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"address_line1"`
	City         string `json:"city"`
	State        string `json:"state"`
	District     string `json:"district"`
	PostalCode   string `json:"postal_code"`
	Country      string `json:"country"`
	Landmark     string `json:"landmark"`
}

// AddressResponse describes one saved address.
type AddressResponse struct {
	ID           int64     `json:"id"`
	FullName     string    `json:"full_name"`
	Phone        string    `json:"phone"`
	AddressLine1 string    `json:"address_line1"`
	City         string    `json:"city,omitempty"`
	State        string    `json:"state"`
	District     string    `json:"district"`
	PostalCode   string    `json:"postal_code"`
	Country      string    `json:"country"`
	Landmark     string    `json:"landmark,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
