// Package codec encodes the ledger's base58 identifiers: account addresses and family seeds.
package codec

import (
	"bytes"
	"crypto/sha256"
	"crypto/sha512"
	"errors"
	"fmt"
	"strings"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ripemd160"
)

const (
	AccountIDLen = 20
	EntropyLen   = 16

	// AddressPrefix is the first character of every classic address.
	AddressPrefix    = "r"
	MinAddressLength = 25
	MaxAddressLength = 35

	checksumLen = 4
)

// Alphabet is the ledger's base58 dictionary; it differs from Bitcoin's ordering.
var Alphabet = base58.NewAlphabet("rpshnaf39wBUDNEGHJKLM4PQRST7VWXYZ2bcdeCg65jkm8oFqi1tuvAxyz")

var (
	accountVersion   = []byte{0x00}
	secp256k1Version = []byte{0x21}
	ed25519Version   = []byte{0x01, 0xE1, 0x4B}
)

var (
	ErrChecksum = errors.New("checksum mismatch")
	ErrVersion  = errors.New("unexpected version prefix")
	ErrLength   = errors.New("unexpected payload length")
)

// Algorithm is the signing scheme encoded in a family seed.
type Algorithm string

const (
	Ed25519   Algorithm = "ed25519"
	Secp256k1 Algorithm = "secp256k1"
)

// SHA512Half is the first 32 bytes of SHA-512, the ledger's general purpose hash.
func SHA512Half(data ...[]byte) [32]byte {
	h := sha512.New()
	for _, d := range data {
		h.Write(d)
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// AccountID hashes a public key into the 20 byte account identifier.
func AccountID(publicKey []byte) []byte {
	sha := sha256.Sum256(publicKey)
	r := ripemd160.New()
	r.Write(sha[:])
	return r.Sum(nil)
}

// EncodeCheck base58check encodes version||payload.
func EncodeCheck(version, payload []byte) string {
	buf := make([]byte, 0, len(version)+len(payload)+checksumLen)
	buf = append(buf, version...)
	buf = append(buf, payload...)
	buf = append(buf, checksum(buf)...)
	return base58.EncodeAlphabet(buf, Alphabet)
}

// DecodeCheck decodes s, verifies its checksum and strips version.
func DecodeCheck(s string, version []byte, payloadLen int) ([]byte, error) {
	raw, err := base58.DecodeAlphabet(s, Alphabet)
	if err != nil {
		return nil, fmt.Errorf("base58: %w", err)
	}
	if len(raw) != len(version)+payloadLen+checksumLen {
		return nil, ErrLength
	}
	body, sum := raw[:len(raw)-checksumLen], raw[len(raw)-checksumLen:]
	if !bytes.Equal(checksum(body), sum) {
		return nil, ErrChecksum
	}
	if !bytes.Equal(body[:len(version)], version) {
		return nil, ErrVersion
	}
	return body[len(version):], nil
}

func checksum(b []byte) []byte {
	first := sha256.Sum256(b)
	second := sha256.Sum256(first[:])
	return second[:checksumLen]
}

// EncodeAddress renders a 20 byte account id as an r-address.
func EncodeAddress(accountID []byte) (string, error) {
	if len(accountID) != AccountIDLen {
		return "", ErrLength
	}
	return EncodeCheck(accountVersion, accountID), nil
}

// DecodeAddress returns the account id behind an r-address.
func DecodeAddress(address string) ([]byte, error) {
	return DecodeCheck(address, accountVersion, AccountIDLen)
}

// AddressFromPublicKey derives the classic address of a 33 byte public key.
func AddressFromPublicKey(publicKey []byte) (string, error) {
	return EncodeAddress(AccountID(publicKey))
}

// IsValidAddress reports whether address has the shape of a classic address and decodes
// with a valid checksum.
func IsValidAddress(address string) bool {
	if address == "" || !strings.HasPrefix(address, AddressPrefix) {
		return false
	}
	if len(address) < MinAddressLength || len(address) > MaxAddressLength {
		return false
	}
	_, err := DecodeAddress(address)
	return err == nil
}

// EncodeSeed renders 16 bytes of entropy as a family seed for alg.
func EncodeSeed(entropy []byte, alg Algorithm) (string, error) {
	if len(entropy) != EntropyLen {
		return "", ErrLength
	}
	switch alg {
	case Ed25519:
		return EncodeCheck(ed25519Version, entropy), nil
	case Secp256k1:
		return EncodeCheck(secp256k1Version, entropy), nil
	default:
		return "", fmt.Errorf("unknown algorithm %q", alg)
	}
}

// DecodeSeed returns the entropy and algorithm of a family seed.
func DecodeSeed(seed string) ([]byte, Algorithm, error) {
	if entropy, err := DecodeCheck(seed, ed25519Version, EntropyLen); err == nil {
		return entropy, Ed25519, nil
	}
	entropy, err := DecodeCheck(seed, secp256k1Version, EntropyLen)
	if err != nil {
		return nil, "", err
	}
	return entropy, Secp256k1, nil
}
