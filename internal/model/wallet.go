package model

import "time"

// Wallet is a decrypted keypair. Only keys.Generate and keys.ImportFromSecret produce it.
type Wallet struct {
	Address    string `json:"address"`
	Secret     string `json:"secret"`
	PublicKey  string `json:"publicKey"`
	PrivateKey string `json:"privateKey"`
}

// WalletRecord is the cleartext catalog entry stored next to the encrypted blob
type WalletRecord struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
}

// EncryptedBlob is the sealed form of a Wallet.
// Only the KDF parameters, salt and nonce are stored in the clear.
type EncryptedBlob struct {
	Version    int    `json:"version"`
	KDF        string `json:"kdf"`
	N          int    `json:"n"`
	R          int    `json:"r"`
	P          int    `json:"p"`
	Salt       string `json:"salt"`
	Nonce      string `json:"nonce"`
	CipherText string `json:"cipherText"`
}

// WalletSummary is a catalog entry with its balance, as shown in the wallet list
type WalletSummary struct {
	WalletRecord
	BalanceXRP string `json:"balanceXrp"`
}

// GenerateRequest represents request for POST /xrp/wallets/generate
type GenerateRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// ImportRequest represents request for POST /xrp/wallets/import
type ImportRequest struct {
	Name     string `json:"name"`
	Secret   string `json:"secret"`
	Password string `json:"password"`
}

// GenerateResponse represents response for POST .../generate and .../import
type GenerateResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
	Address string `json:"address,omitempty"`
}

// UnlockRequest represents request for POST /xrp/wallets/unlock
type UnlockRequest struct {
	ID       string `json:"id"`
	Password string `json:"password"`
}

// UnlockResponse carries the public half of an unlocked wallet
type UnlockResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	PublicKey string `json:"publicKey"`
}

// ReceiveResponse represents response for GET /xrp/wallets/receive
type ReceiveResponse struct {
	Address string `json:"address"`
	QR      string `json:"QR"` // base64 PNG
}
