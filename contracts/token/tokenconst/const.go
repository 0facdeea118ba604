// Package tokenconst contains storage layout and fault messages of the token
// contract. Values are shared with the off-chain ledger package, so both
// produce byte-identical storage.
package tokenconst

const (
	// MetadataKey is a storage key of the serialized token metadata.
	MetadataKey = "META"
	// TotalSupplyKey is a storage key of the total supply integer.
	TotalSupplyKey = "TOTAL"
	// BalancesPrefix prefixes account script hash in balance storage keys.
	BalancesPrefix = "BAL"
)

// Fault messages.
const (
	ErrUnauthorized        = "unauthorized"
	ErrInsufficientBalance = "insufficient balance"
	ErrUninitialized       = "uninitialized metadata"
	ErrNegativeAmount      = "negative amount"
	ErrBalanceOverflow     = "balance overflow"
	ErrOutOfRange          = "value out of range"
	ErrInvalidAccount      = "invalid account"
)
