// Package errs defines the wallet's error classes. Each error carries a Code that callers
// match with errors.Is against the exported sentinels or read back with CodeOf.
package errs

import (
	"errors"
	"fmt"
)

// Code identifies an error class the boundary layer can render on its own.
type Code string

const (
	InvalidSecret         Code = "InvalidSecret"
	InvalidAddress        Code = "InvalidAddress"
	InvalidAmount         Code = "InvalidAmount"
	InvalidDestinationTag Code = "InvalidDestinationTag"
	InvalidName           Code = "InvalidName"
	InsufficientBalance   Code = "InsufficientBalance"
	WalletUninitialized   Code = "WalletUninitialized"
	WrongPassword         Code = "WrongPassword"
	WeakPassword          Code = "WeakPassword"
	DuplicateWallet       Code = "DuplicateWallet"
	NotFound              Code = "NotFound"
	NetworkError          Code = "NetworkError"
	TransactionFailed     Code = "TransactionFailed"
	ConfirmationRequired  Code = "ConfirmationRequired"
	CooldownActive        Code = "CooldownActive"
	Unsupported           Code = "Unsupported"
)

// Error is a classified error with a human readable message.
// OutcomeCode is set only for TransactionFailed and keeps the raw ledger result.
type Error struct {
	Code        Code
	Message     string
	OutcomeCode string
	Err         error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error with the same code, so errors.Is(err, errs.ErrNotFound) works
// for wrapped and freshly built errors alike.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Sentinels for errors.Is.
var (
	ErrInvalidSecret         = &Error{Code: InvalidSecret, Message: "invalid secret key"}
	ErrInvalidAddress        = &Error{Code: InvalidAddress, Message: "invalid XRP address"}
	ErrInvalidAmount         = &Error{Code: InvalidAmount, Message: "invalid amount"}
	ErrInvalidDestinationTag = &Error{Code: InvalidDestinationTag, Message: "invalid destination tag"}
	ErrInvalidName           = &Error{Code: InvalidName, Message: "name is required"}
	ErrInsufficientBalance   = &Error{Code: InsufficientBalance, Message: "insufficient balance"}
	ErrWalletUninitialized   = &Error{Code: WalletUninitialized, Message: "wallet not initialized"}
	ErrWrongPassword         = &Error{Code: WrongPassword, Message: "invalid password"}
	ErrWeakPassword          = &Error{Code: WeakPassword, Message: "password must be at least 6 characters"}
	ErrDuplicateWallet       = &Error{Code: DuplicateWallet, Message: "wallet already exists"}
	ErrNotFound              = &Error{Code: NotFound, Message: "not found"}
	ErrNetwork               = &Error{Code: NetworkError, Message: "network error"}
	ErrTransactionFailed     = &Error{Code: TransactionFailed, Message: "transaction failed"}
	ErrConfirmationRequired  = &Error{Code: ConfirmationRequired, Message: "live network requires explicit confirmation"}
	ErrCooldownActive        = &Error{Code: CooldownActive, Message: "cooldown active"}
	ErrUnsupported           = &Error{Code: Unsupported, Message: "operation not supported on this network"}
)

// New builds an error of the given class.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap classifies err under code.
func Wrap(code Code, err error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Err: err}
}

// Network wraps a transport or ledger fault.
func Network(err error, format string, args ...any) *Error {
	return Wrap(NetworkError, err, format, args...)
}

// Failed reports a definitive non-success ledger outcome.
func Failed(outcomeCode string) *Error {
	return &Error{
		Code:        TransactionFailed,
		Message:     fmt.Sprintf("transaction failed: %s", outcomeCode),
		OutcomeCode: outcomeCode,
	}
}

// CodeOf returns the class of err, or "" when err is not classified.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// OutcomeOf returns the ledger outcome code carried by err, if any.
func OutcomeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.OutcomeCode
	}
	return ""
}
