// Package txn builds, serializes and signs ledger transactions. Payment is the only kind.
package txn

import (
	"github.com/AlexZinkM/xrp-wallet/internal/codec"
	"github.com/AlexZinkM/xrp-wallet/internal/common"
	"github.com/AlexZinkM/xrp-wallet/internal/errs"
)

// Type is the ledger TransactionType code.
type Type uint16

const (
	TypePayment Type = 0
)

func (t Type) String() string {
	switch t {
	case TypePayment:
		return "Payment"
	default:
		return "Unknown"
	}
}

// Payment is a direct XRP payment. Amount and Fee are in drops.
// Sequence, Fee and LastLedgerSequence are filled by the network client before signing.
type Payment struct {
	Account            string
	Destination        string
	Amount             uint64
	DestinationTag     *uint32
	Flags              uint32
	Sequence           uint32
	Fee                uint64
	LastLedgerSequence uint32
}

// NewPayment validates the caller supplied fields of a payment.
func NewPayment(account, destination string, drops uint64, destinationTag *uint32) (*Payment, error) {
	if !codec.IsValidAddress(account) {
		return nil, errs.New(errs.InvalidAddress, "invalid sender address")
	}
	if !codec.IsValidAddress(destination) {
		return nil, errs.New(errs.InvalidAddress, "invalid XRP address")
	}
	if drops == 0 || drops > common.MaxDrops {
		return nil, errs.New(errs.InvalidAmount, "amount must be positive and within supply")
	}
	return &Payment{
		Account:        account,
		Destination:    destination,
		Amount:         drops,
		DestinationTag: destinationTag,
	}, nil
}

// Kind returns the transaction type tag.
func (p *Payment) Kind() Type {
	return TypePayment
}

// Autofilled reports whether the network fields have been set.
func (p *Payment) Autofilled() bool {
	return p.Sequence != 0 && p.Fee != 0 && p.LastLedgerSequence != 0
}
