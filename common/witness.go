package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
)

// IsOwner checks whether the current call is authorized to act as addr:
// either the transaction carries a witness of addr or addr is the script hash
// of the calling contract.
func IsOwner(addr interop.Hash160) bool {
	if len(addr) != interop.Hash160Len {
		return false
	}

	if runtime.CheckWitness(addr) {
		return true
	}

	return runtime.GetCallingScriptHash().Equals(addr)
}

// CheckOwnerWitness checks that the call is authorized to act as addr.
// It panics with the given message on fail.
func CheckOwnerWitness(addr interop.Hash160, panicMsg string) {
	if !IsOwner(addr) {
		panic(panicMsg)
	}
}
