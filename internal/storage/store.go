// Package storage persists the wallet catalog, encrypted blobs, contacts and settings in a
// single bbolt file. Every mutating call is one durable transaction.
package storage

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/AlexZinkM/xrp-wallet/internal/errs"
	"github.com/AlexZinkM/xrp-wallet/internal/model"

	bolt "go.etcd.io/bbolt"
)

var (
	bucketWallets    = []byte("wallets")     // seq -> WalletRecord
	bucketWalletIDs  = []byte("wallet_ids")  // id -> seq
	bucketBlobs      = []byte("blobs")       // id -> EncryptedBlob
	bucketContacts   = []byte("contacts")    // seq -> Contact
	bucketContactIDs = []byte("contact_ids") // id -> seq
	bucketSettings   = []byte("settings")

	keySettings = []byte("user")
)

var allBuckets = [][]byte{
	bucketWallets, bucketWalletIDs, bucketBlobs,
	bucketContacts, bucketContactIDs, bucketSettings,
}

// Store is the on-disk state of the wallet.
type Store struct {
	db *bolt.DB
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create data dir: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range allBuckets {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("create bucket %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the database file lock.
func (s *Store) Close() error {
	return s.db.Close()
}

// AddWallet writes record and blob atomically. It fails with errs.DuplicateWallet when a
// record with the same address exists.
func (s *Store) AddWallet(rec *model.WalletRecord, blob *model.EncryptedBlob) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		wallets := tx.Bucket(bucketWallets)

		err := wallets.ForEach(func(_, v []byte) error {
			var existing model.WalletRecord
			if err := json.Unmarshal(v, &existing); err != nil {
				return fmt.Errorf("failed to unmarshal wallet record: %w", err)
			}
			if existing.Address == rec.Address {
				return errs.New(errs.DuplicateWallet, "wallet %s already exists as %q", rec.Address, existing.Name)
			}
			return nil
		})
		if err != nil {
			return err
		}

		if err := appendIndexed(wallets, tx.Bucket(bucketWalletIDs), rec.ID, rec); err != nil {
			return err
		}
		return putJSON(tx.Bucket(bucketBlobs), []byte(rec.ID), blob)
	})
}

// Wallets returns every catalog record in insertion order.
func (s *Store) Wallets() ([]model.WalletRecord, error) {
	out := make([]model.WalletRecord, 0)
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketWallets).ForEach(func(_, v []byte) error {
			var rec model.WalletRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("failed to unmarshal wallet record: %w", err)
			}
			out = append(out, rec)
			return nil
		})
	})
	return out, err
}

// Wallet returns the record and blob stored under id.
func (s *Store) Wallet(id string) (*model.WalletRecord, *model.EncryptedBlob, error) {
	var (
		rec  model.WalletRecord
		blob model.EncryptedBlob
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		found, err := getIndexed(tx.Bucket(bucketWallets), tx.Bucket(bucketWalletIDs), id, &rec)
		if err != nil {
			return err
		}
		if !found {
			return errs.New(errs.NotFound, "wallet %s not found", id)
		}
		raw := tx.Bucket(bucketBlobs).Get([]byte(id))
		if raw == nil {
			return errs.New(errs.NotFound, "encrypted data for wallet %s not found", id)
		}
		return json.Unmarshal(raw, &blob)
	})
	if err != nil {
		return nil, nil, err
	}
	return &rec, &blob, nil
}

// ReplaceBlob overwrites the blob of an existing wallet.
func (s *Store) ReplaceBlob(id string, blob *model.EncryptedBlob) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket(bucketWalletIDs).Get([]byte(id)) == nil {
			return errs.New(errs.NotFound, "wallet %s not found", id)
		}
		return putJSON(tx.Bucket(bucketBlobs), []byte(id), blob)
	})
}

// DeleteWallet removes the record and blob of id and reports whether it existed.
func (s *Store) DeleteWallet(id string) (bool, error) {
	var removed bool
	err := s.db.Update(func(tx *bolt.Tx) error {
		var err error
		removed, err = deleteIndexed(tx.Bucket(bucketWallets), tx.Bucket(bucketWalletIDs), id)
		if err != nil {
			return err
		}
		return tx.Bucket(bucketBlobs).Delete([]byte(id))
	})
	return removed, err
}

// ClearWallets drops every record and blob. Sequence numbers keep counting.
func (s *Store) ClearWallets() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bucketWallets, bucketWalletIDs, bucketBlobs} {
			if err := clearBucket(tx.Bucket(name)); err != nil {
				return err
			}
		}
		return nil
	})
}

// AddContact appends c to the address book.
func (s *Store) AddContact(c *model.Contact) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return appendIndexed(tx.Bucket(bucketContacts), tx.Bucket(bucketContactIDs), c.ID, c)
	})
}

// Contacts returns the address book in insertion order.
func (s *Store) Contacts() ([]model.Contact, error) {
	out := make([]model.Contact, 0)
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketContacts).ForEach(func(_, v []byte) error {
			var c model.Contact
			if err := json.Unmarshal(v, &c); err != nil {
				return fmt.Errorf("failed to unmarshal contact: %w", err)
			}
			out = append(out, c)
			return nil
		})
	})
	return out, err
}

// DeleteContact removes contact id and reports whether it existed.
func (s *Store) DeleteContact(id string) (bool, error) {
	var removed bool
	err := s.db.Update(func(tx *bolt.Tx) error {
		var err error
		removed, err = deleteIndexed(tx.Bucket(bucketContacts), tx.Bucket(bucketContactIDs), id)
		return err
	})
	return removed, err
}

// Settings returns the persisted settings, or the zero value when none were saved.
func (s *Store) Settings() (model.Settings, error) {
	var settings model.Settings
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(bucketSettings).Get(keySettings)
		if raw == nil {
			return nil
		}
		return json.Unmarshal(raw, &settings)
	})
	return settings, err
}

// SaveSettings persists settings.
func (s *Store) SaveSettings(settings model.Settings) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return putJSON(tx.Bucket(bucketSettings), keySettings, settings)
	})
}

// appendIndexed stores v under the next bucket sequence and maps id to that sequence, so
// ForEach over data yields insertion order.
func appendIndexed(data, index *bolt.Bucket, id string, v any) error {
	if id == "" {
		return errors.New("empty id")
	}
	if index.Get([]byte(id)) != nil {
		return fmt.Errorf("id %s already in use", id)
	}
	seq, err := data.NextSequence()
	if err != nil {
		return fmt.Errorf("failed to allocate sequence: %w", err)
	}
	key := seqKey(seq)
	if err := putJSON(data, key, v); err != nil {
		return err
	}
	return index.Put([]byte(id), key)
}

func getIndexed(data, index *bolt.Bucket, id string, out any) (bool, error) {
	key := index.Get([]byte(id))
	if key == nil {
		return false, nil
	}
	raw := data.Get(key)
	if raw == nil {
		return false, nil
	}
	return true, json.Unmarshal(raw, out)
}

func deleteIndexed(data, index *bolt.Bucket, id string) (bool, error) {
	key := index.Get([]byte(id))
	if key == nil {
		return false, nil
	}
	// copy: key points into the mmap and is invalid after Delete
	key = append([]byte(nil), key...)
	if err := data.Delete(key); err != nil {
		return false, err
	}
	return true, index.Delete([]byte(id))
}

func clearBucket(b *bolt.Bucket) error {
	var keys [][]byte
	err := b.ForEach(func(k, _ []byte) error {
		keys = append(keys, append([]byte(nil), k...))
		return nil
	})
	if err != nil {
		return err
	}
	for _, k := range keys {
		if err := b.Delete(k); err != nil {
			return err
		}
	}
	return nil
}

func putJSON(b *bolt.Bucket, key []byte, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal: %w", err)
	}
	return b.Put(key, raw)
}

func seqKey(seq uint64) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, seq)
	return k
}
