package model

import "time"

// Contact is an address book entry
type Contact struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Tag       *uint32   `json:"tag,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ContactRequest represents request for POST /xrp/contacts
type ContactRequest struct {
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Tag     *uint32 `json:"tag,omitempty"`
}
