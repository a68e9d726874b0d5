package crypto

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/AlexZinkM/xrp-wallet/internal/errs"
	"github.com/AlexZinkM/xrp-wallet/internal/model"
)

// DecryptWallet opens blob with password and the same aad used to seal it.
// Every authentication failure yields errs.ErrWrongPassword; nothing partial is returned.
// password must be []byte for security (caller should zero it after use)
func DecryptWallet(blob *model.EncryptedBlob, password, aad []byte) (*model.Wallet, error) {
	if blob.Version != blobVersion || blob.KDF != kdfScrypt {
		return nil, fmt.Errorf("unsupported blob version %d (%s)", blob.Version, blob.KDF)
	}
	params := Params{N: blob.N, R: blob.R, P: blob.P}
	if err := params.validate(); err != nil {
		return nil, err
	}

	// Decode salt and nonce
	salt, err := base64.StdEncoding.DecodeString(blob.Salt)
	if err != nil {
		return nil, fmt.Errorf("failed to decode salt: %w", err)
	}

	nonce, err := base64.StdEncoding.DecodeString(blob.Nonce)
	if err != nil {
		return nil, fmt.Errorf("failed to decode nonce: %w", err)
	}
	if len(nonce) != nonceLen {
		return nil, fmt.Errorf("invalid nonce length: %d", len(nonce))
	}

	ciphertext, err := base64.StdEncoding.DecodeString(blob.CipherText)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ciphertext: %w", err)
	}

	aesGCM, err := newGCM(password, salt, params)
	if err != nil {
		return nil, err
	}

	plaintext, err := aesGCM.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, errs.ErrWrongPassword
	}
	defer clear(plaintext) // wipe decrypted bytes from memory

	var wallet model.Wallet
	if err := json.Unmarshal(plaintext, &wallet); err != nil {
		return nil, fmt.Errorf("failed to unmarshal wallet data: %w", err)
	}

	return &wallet, nil
}
