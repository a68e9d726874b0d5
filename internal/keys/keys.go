// Package keys generates and reconstructs ledger keypairs from family seeds.
package keys

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/AlexZinkM/xrp-wallet/internal/codec"
	"github.com/AlexZinkM/xrp-wallet/internal/errs"
	"github.com/AlexZinkM/xrp-wallet/internal/model"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

const ed25519Prefix = 0xED

// KeyPair holds the signing material of one account. Callers must call Wipe when done.
type KeyPair struct {
	Algorithm codec.Algorithm
	Seed      string
	Address   string
	PublicKey []byte // 33 bytes, ed25519 keys are prefixed with 0xED

	ed  ed25519.PrivateKey
	sec *secp256k1.PrivateKey
}

// Generate creates a new ed25519 wallet from 16 bytes of CSPRNG entropy.
func Generate() *model.Wallet {
	return GenerateWithAlgorithm(codec.Ed25519)
}

// GenerateWithAlgorithm creates a new wallet for alg.
func GenerateWithAlgorithm(alg codec.Algorithm) *model.Wallet {
	entropy := make([]byte, codec.EntropyLen)
	if _, err := rand.Read(entropy); err != nil {
		panic(fmt.Sprintf("crypto/rand failed: %v", err))
	}
	defer clear(entropy)

	kp, err := FromEntropy(entropy, alg)
	if err != nil {
		// entropy length and algorithm are fixed here, derivation cannot fail
		panic(err)
	}
	defer kp.Wipe()
	return kp.Wallet()
}

// ImportFromSecret reconstructs the wallet behind a family seed.
func ImportFromSecret(secret string) (*model.Wallet, error) {
	kp, err := FromSecret(secret)
	if err != nil {
		return nil, err
	}
	defer kp.Wipe()
	return kp.Wallet(), nil
}

// FromSecret decodes a family seed into a signing keypair.
func FromSecret(secret string) (*KeyPair, error) {
	entropy, alg, err := codec.DecodeSeed(strings.TrimSpace(secret))
	if err != nil {
		return nil, errs.Wrap(errs.InvalidSecret, err, "invalid secret key")
	}
	defer clear(entropy)
	return FromEntropy(entropy, alg)
}

// FromEntropy derives the account keypair for alg from seed entropy.
func FromEntropy(entropy []byte, alg codec.Algorithm) (*KeyPair, error) {
	seed, err := codec.EncodeSeed(entropy, alg)
	if err != nil {
		return nil, errs.Wrap(errs.InvalidSecret, err, "invalid secret key")
	}

	kp := &KeyPair{Algorithm: alg, Seed: seed}
	switch alg {
	case codec.Ed25519:
		raw := codec.SHA512Half(entropy)
		kp.ed = ed25519.NewKeyFromSeed(raw[:])
		clear(raw[:])
		kp.PublicKey = append([]byte{ed25519Prefix}, kp.ed.Public().(ed25519.PublicKey)...)
	case codec.Secp256k1:
		kp.sec = deriveSecp256k1(entropy)
		kp.PublicKey = kp.sec.PubKey().SerializeCompressed()
	}

	kp.Address, err = codec.AddressFromPublicKey(kp.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to derive address: %w", err)
	}
	return kp, nil
}

// deriveSecp256k1 follows the ledger's family generator scheme: a root key from the seed,
// then the first account key (index 0) derived from the root public key.
func deriveSecp256k1(entropy []byte) *secp256k1.PrivateKey {
	root := firstValidScalar(func(seq uint32) [32]byte {
		return codec.SHA512Half(entropy, be32(seq))
	})
	rootPub := secp256k1.NewPrivateKey(root).PubKey().SerializeCompressed()

	tweak := firstValidScalar(func(seq uint32) [32]byte {
		return codec.SHA512Half(rootPub, be32(0), be32(seq))
	})

	var k secp256k1.ModNScalar
	k.Add2(root, tweak)
	return secp256k1.NewPrivateKey(&k)
}

func firstValidScalar(candidate func(seq uint32) [32]byte) *secp256k1.ModNScalar {
	for seq := uint32(0); ; seq++ {
		h := candidate(seq)
		var s secp256k1.ModNScalar
		overflow := s.SetByteSlice(h[:])
		clear(h[:])
		if !overflow && !s.IsZero() {
			return &s
		}
	}
}

func be32(v uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, v)
	return b
}

// Sign signs message the way the ledger expects for the key type: ed25519 over the raw
// message, secp256k1 ECDSA (DER, canonical low-S) over its SHA512Half.
func (k *KeyPair) Sign(message []byte) []byte {
	if k.ed != nil {
		return ed25519.Sign(k.ed, message)
	}
	digest := codec.SHA512Half(message)
	return ecdsa.Sign(k.sec, digest[:]).Serialize()
}

// Verify checks a signature produced by Sign.
func (k *KeyPair) Verify(message, signature []byte) bool {
	return VerifySignature(k.PublicKey, message, signature)
}

// VerifySignature checks signature over message against a 33 byte ledger public key.
func VerifySignature(publicKey, message, signature []byte) bool {
	if len(publicKey) == 33 && publicKey[0] == ed25519Prefix {
		return ed25519.Verify(ed25519.PublicKey(publicKey[1:]), message, signature)
	}
	pub, err := secp256k1.ParsePubKey(publicKey)
	if err != nil {
		return false
	}
	sig, err := ecdsa.ParseDERSignature(signature)
	if err != nil {
		return false
	}
	digest := codec.SHA512Half(message)
	return sig.Verify(digest[:], pub)
}

// PrivateKeyHex renders the private key with its type prefix (ED or 00).
func (k *KeyPair) PrivateKeyHex() string {
	if k.ed != nil {
		return "ED" + strings.ToUpper(hex.EncodeToString(k.ed.Seed()))
	}
	b := k.sec.Serialize()
	defer clear(b)
	return "00" + strings.ToUpper(hex.EncodeToString(b))
}

// Wallet exports the keypair as a storable wallet.
func (k *KeyPair) Wallet() *model.Wallet {
	return &model.Wallet{
		Address:    k.Address,
		Secret:     k.Seed,
		PublicKey:  strings.ToUpper(hex.EncodeToString(k.PublicKey)),
		PrivateKey: k.PrivateKeyHex(),
	}
}

// Wipe zeroes private material held by the keypair.
func (k *KeyPair) Wipe() {
	if k.ed != nil {
		clear(k.ed)
	}
	if k.sec != nil {
		k.sec.Zero()
	}
}
