package txn

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/AlexZinkM/xrp-wallet/internal/codec"
	"github.com/AlexZinkM/xrp-wallet/internal/keys"
)

// Serialized type codes of the canonical binary format.
const (
	typeUInt16    = 1
	typeUInt32    = 2
	typeAmount    = 6
	typeBlob      = 7
	typeAccountID = 8
)

var (
	prefixSigning     = []byte{0x53, 0x54, 0x58, 0x00} // "STX\0"
	prefixTransaction = []byte{0x54, 0x58, 0x4E, 0x00} // "TXN\0"
)

// amountNative marks a positive XRP amount; the low 62 bits carry drops.
const amountNative = 0x4000000000000000

// Signed is a signed transaction ready for submission.
type Signed struct {
	Blob string // upper case hex
	Hash string // upper case hex

	LastLedgerSequence uint32
}

type field struct {
	typeCode  int
	fieldCode int
	value     []byte
}

// Sign autofilled payment p with kp and returns the submission blob and its hash.
// The account of p must be the keypair's address.
func Sign(p *Payment, kp *keys.KeyPair) (*Signed, error) {
	if !p.Autofilled() {
		return nil, errors.New("payment is missing network fields")
	}
	if p.Account != kp.Address {
		return nil, errors.New("signing key does not match payment account")
	}

	fields, err := p.fields(kp.PublicKey)
	if err != nil {
		return nil, err
	}

	signingData := append(append([]byte{}, prefixSigning...), serialize(fields)...)
	signature := kp.Sign(signingData)

	fields = append(fields, field{typeBlob, 4, vl(signature)})
	blob := serialize(fields)

	hash := codec.SHA512Half(prefixTransaction, blob)
	return &Signed{
		Blob: strings.ToUpper(hex.EncodeToString(blob)),
		Hash: strings.ToUpper(hex.EncodeToString(hash[:])),

		LastLedgerSequence: p.LastLedgerSequence,
	}, nil
}

// SigningData returns the bytes a signer commits to for p with the given public key.
func SigningData(p *Payment, publicKey []byte) ([]byte, error) {
	fields, err := p.fields(publicKey)
	if err != nil {
		return nil, err
	}
	return append(append([]byte{}, prefixSigning...), serialize(fields)...), nil
}

func (p *Payment) fields(publicKey []byte) ([]field, error) {
	account, err := codec.DecodeAddress(p.Account)
	if err != nil {
		return nil, fmt.Errorf("account: %w", err)
	}
	destination, err := codec.DecodeAddress(p.Destination)
	if err != nil {
		return nil, fmt.Errorf("destination: %w", err)
	}

	fields := []field{
		{typeUInt16, 2, u16(uint16(p.Kind()))}, // TransactionType
		{typeUInt32, 2, u32(p.Flags)},          // Flags
		{typeUInt32, 4, u32(p.Sequence)},       // Sequence
		{typeUInt32, 27, u32(p.LastLedgerSequence)},
		{typeAmount, 1, nativeAmount(p.Amount)}, // Amount
		{typeAmount, 8, nativeAmount(p.Fee)},    // Fee
		{typeBlob, 3, vl(publicKey)},            // SigningPubKey
		{typeAccountID, 1, vl(account)},         // Account
		{typeAccountID, 3, vl(destination)},     // Destination
	}
	if p.DestinationTag != nil {
		fields = append(fields, field{typeUInt32, 14, u32(*p.DestinationTag)})
	}
	return fields, nil
}

// serialize writes fields in canonical order: by type code, then field code.
func serialize(fields []field) []byte {
	sorted := append([]field(nil), fields...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].typeCode != sorted[j].typeCode {
			return sorted[i].typeCode < sorted[j].typeCode
		}
		return sorted[i].fieldCode < sorted[j].fieldCode
	})

	var buf bytes.Buffer
	for _, f := range sorted {
		buf.Write(fieldID(f.typeCode, f.fieldCode))
		buf.Write(f.value)
	}
	return buf.Bytes()
}

func fieldID(typeCode, fieldCode int) []byte {
	switch {
	case typeCode < 16 && fieldCode < 16:
		return []byte{byte(typeCode<<4 | fieldCode)}
	case typeCode < 16:
		return []byte{byte(typeCode << 4), byte(fieldCode)}
	case fieldCode < 16:
		return []byte{byte(fieldCode), byte(typeCode)}
	default:
		return []byte{0, byte(typeCode), byte(fieldCode)}
	}
}

func nativeAmount(drops uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, drops|amountNative)
	return b
}

// vl prefixes b with its variable length header; payloads here never exceed 192 bytes.
func vl(b []byte) []byte {
	out := make([]byte, 0, len(b)+1)
	out = append(out, byte(len(b)))
	return append(out, b...)
}

func u16(v uint16) []byte {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, v)
	return b
}

func u32(v uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, v)
	return b
}
