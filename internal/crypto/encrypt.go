package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"github.com/AlexZinkM/xrp-wallet/internal/model"

	"golang.org/x/crypto/scrypt"
)

const (
	blobVersion = 1
	kdfScrypt   = "scrypt"

	// scrypt parameters for local wallet
	// Security is prioritized over performance
	//
	// N=2^18 (~256MB RAM, 0.5-2s) - optimal balance:
	//   - Maximum security while remaining compatible with mobile devices
	//   - Works on phones (4-16GB RAM) and desktops alike
	//   - Brute-force attacks remain extremely expensive
	DefaultScryptN = 1 << 18
	scryptR        = 8
	scryptP        = 1
	scryptKeyLen   = 32
	saltLen        = 32
	nonceLen       = 12
)

// Params are the KDF cost parameters used when sealing new blobs.
// Opening always uses the parameters recorded in the blob.
type Params struct {
	N int
	R int
	P int
}

// DefaultParams returns the production scrypt cost.
func DefaultParams() Params {
	return Params{N: DefaultScryptN, R: scryptR, P: scryptP}
}

// EncryptWallet seals wallet under password.
// aad is authenticated but not encrypted; the vault passes the wallet id so a blob copied
// under another id will not open.
// password must be []byte for security (caller should zero it after use)
func EncryptWallet(wallet *model.Wallet, password, aad []byte, params Params) (*model.EncryptedBlob, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	// Generate salt and nonce
	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	nonce := make([]byte, nonceLen)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	aesGCM, err := newGCM(password, salt, params)
	if err != nil {
		return nil, err
	}

	// Serialize wallet data
	plaintext, err := json.Marshal(wallet)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal wallet data: %w", err)
	}
	defer clear(plaintext) // wipe plaintext bytes from memory

	ciphertext := aesGCM.Seal(nil, nonce, plaintext, aad)

	return &model.EncryptedBlob{
		Version:    blobVersion,
		KDF:        kdfScrypt,
		N:          params.N,
		R:          params.R,
		P:          params.P,
		Salt:       base64.StdEncoding.EncodeToString(salt),
		Nonce:      base64.StdEncoding.EncodeToString(nonce),
		CipherText: base64.StdEncoding.EncodeToString(ciphertext),
	}, nil
}

// newGCM derives the AES-256 key from password and returns the AEAD.
func newGCM(password, salt []byte, params Params) (cipher.AEAD, error) {
	key, err := scrypt.Key(password, salt, params.N, params.R, params.P, scryptKeyLen)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	defer clear(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return aesGCM, nil
}

func (p Params) validate() error {
	// N must be a power of two; the upper bound keeps a tampered blob from exhausting memory
	if p.N < 2 || p.N&(p.N-1) != 0 || p.N > 1<<20 {
		return fmt.Errorf("invalid scrypt N: %d", p.N)
	}
	if p.R < 1 || p.R > 32 || p.P < 1 || p.P > 16 {
		return fmt.Errorf("invalid scrypt r/p: %d/%d", p.R, p.P)
	}
	return nil
}
