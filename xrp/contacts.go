package xrp

import "github.com/AlexZinkM/xrp-wallet/internal/model"

// SaveContact adds an address book entry.
func (s *Service) SaveContact(req *model.ContactRequest) (*model.Contact, error) {
	return s.contacts.Save(req.Name, req.Address, req.Tag)
}

// Contacts returns the address book.
func (s *Service) Contacts() ([]model.Contact, error) {
	return s.contacts.List()
}

// RemoveContact deletes contact id and reports whether it existed.
func (s *Service) RemoveContact(id string) (bool, error) {
	return s.contacts.Remove(id)
}
