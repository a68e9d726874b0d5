// Package contacts is the local address book of payment destinations.
package contacts

import (
	"strings"
	"time"

	"github.com/AlexZinkM/xrp-wallet/internal/codec"
	"github.com/AlexZinkM/xrp-wallet/internal/errs"
	"github.com/AlexZinkM/xrp-wallet/internal/model"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store is the persistence the book needs; *storage.Store implements it.
type Store interface {
	AddContact(c *model.Contact) error
	Contacts() ([]model.Contact, error)
	DeleteContact(id string) (bool, error)
}

// Book validates and stores contacts.
type Book struct {
	store Store
	log   *zap.Logger
}

// New creates a Book over store.
func New(store Store, log *zap.Logger) *Book {
	if log == nil {
		log = zap.NewNop()
	}
	return &Book{store: store, log: log.Named("contacts")}
}

// Save appends a contact. The address must pass codec.IsValidAddress.
func (b *Book) Save(name, address string, tag *uint32) (*model.Contact, error) {
	name = strings.TrimSpace(name)
	address = strings.TrimSpace(address)
	if name == "" {
		return nil, errs.ErrInvalidName
	}
	if !codec.IsValidAddress(address) {
		return nil, errs.New(errs.InvalidAddress, "invalid XRP address %q", address)
	}

	c := &model.Contact{
		ID:        uuid.NewString(),
		Name:      name,
		Address:   address,
		Tag:       tag,
		CreatedAt: time.Now().UTC(),
	}
	if err := b.store.AddContact(c); err != nil {
		return nil, err
	}
	b.log.Info("contact saved", zap.String("id", c.ID), zap.String("address", c.Address))
	return c, nil
}

// List returns all contacts in insertion order.
func (b *Book) List() ([]model.Contact, error) {
	return b.store.Contacts()
}

// Remove deletes contact id. Removing an absent id returns false and no error.
func (b *Book) Remove(id string) (bool, error) {
	removed, err := b.store.DeleteContact(id)
	if err != nil {
		return false, err
	}
	if removed {
		b.log.Info("contact removed", zap.String("id", id))
	}
	return removed, nil
}
