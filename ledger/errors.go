package ledger

import (
	"errors"

	"github.com/nspcc-dev/token-contract/contracts/token/tokenconst"
)

// Errors returned by ledger operations. Messages match fault exceptions of the
// token contract.
var (
	// ErrUnauthorized is returned when the Authenticator rejects the sender.
	ErrUnauthorized = errors.New(tokenconst.ErrUnauthorized)
	// ErrInsufficientBalance is returned when the sender has fewer tokens than
	// requested to transfer.
	ErrInsufficientBalance = errors.New(tokenconst.ErrInsufficientBalance)
	// ErrUninitialized is returned on metadata read before initialization.
	ErrUninitialized = errors.New(tokenconst.ErrUninitialized)
	// ErrNegativeAmount is returned on transfer of a negative amount.
	ErrNegativeAmount = errors.New(tokenconst.ErrNegativeAmount)
	// ErrBalanceOverflow is returned when a transfer would push the receiver
	// balance out of the signed 128-bit range.
	ErrBalanceOverflow = errors.New(tokenconst.ErrBalanceOverflow)
	// ErrOutOfRange is returned when an argument does not fit its type width.
	ErrOutOfRange = errors.New(tokenconst.ErrOutOfRange)
	// ErrInvalidAccount is returned when account identity can't be parsed.
	ErrInvalidAccount = errors.New(tokenconst.ErrInvalidAccount)
	// ErrAlreadyInitialized is returned by guarded ledgers (see WithInitGuard)
	// on repeated initialization.
	ErrAlreadyInitialized = errors.New("already initialized")
)
