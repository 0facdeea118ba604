package token

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/math"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/nspcc-dev/token-contract/common"
	"github.com/nspcc-dev/token-contract/contracts/token/tokenconst"
)

// Metadata holds descriptive token info.
type Metadata struct {
	// Token name
	Name string
	// Ticker symbol
	Symbol string
	// Amount of decimals
	Decimals int
}

const maxUint32 = 1<<32 - 1

// nolint:unused
func _deploy(data any, isUpdate bool) {
	if isUpdate {
		args := data.([]any)
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	runtime.Log("token contract deployed")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(nefFile, manifest []byte, data any) {
	if !common.HasUpdateAccess() {
		panic("only committee can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, nefFile, manifest, common.AppendVersion(data))
	runtime.Log("token contract updated")
}

// Initialize sets token metadata and total supply and credits the whole
// supply to the owner account. The method is not guarded: repeated calls
// overwrite metadata, total supply and owner balance while balances of other
// accounts stay as they are.
func Initialize(name, symbol string, decimals, initialSupply int, owner interop.Hash160) {
	if len(owner) != interop.Hash160Len {
		panic(tokenconst.ErrInvalidAccount)
	}
	if decimals < 0 || decimals > maxUint32 || !inRange(initialSupply) {
		panic(tokenconst.ErrOutOfRange)
	}

	ctx := storage.GetContext()

	common.SetSerialized(ctx, tokenconst.MetadataKey, Metadata{
		Name:     name,
		Symbol:   symbol,
		Decimals: decimals,
	})
	storage.Put(ctx, tokenconst.TotalSupplyKey, initialSupply)
	storage.Put(ctx, balanceKey(owner), initialSupply)

	runtime.Log("token initialized")
}

// BalanceOf returns token balance of the specified account. Accounts that
// never held tokens have zero balance.
func BalanceOf(account interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	return balanceOf(ctx, account)
}

// TotalSupply returns total amount of tokens set on initialization.
func TotalSupply() int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, tokenconst.TotalSupplyKey)
}

// GetMetadata returns token metadata. It panics if the token has not been
// initialized yet.
func GetMetadata() Metadata {
	ctx := storage.GetReadOnlyContext()

	data := storage.Get(ctx, tokenconst.MetadataKey)
	if data == nil {
		panic(tokenconst.ErrUninitialized)
	}

	return std.Deserialize(data.([]byte)).(Metadata)
}

// Transfer moves amount of tokens from one account to another. It can be
// invoked only by the owner of the from account (transaction witness or
// calling contract).
func Transfer(from, to interop.Hash160, amount int) {
	if len(from) != interop.Hash160Len || len(to) != interop.Hash160Len {
		panic(tokenconst.ErrInvalidAccount)
	}

	common.CheckOwnerWitness(from, tokenconst.ErrUnauthorized)

	if amount < 0 {
		panic(tokenconst.ErrNegativeAmount)
	}

	ctx := storage.GetContext()

	fromBalance := balanceOf(ctx, from)
	if fromBalance < amount {
		panic(tokenconst.ErrInsufficientBalance)
	}

	if from.Equals(to) {
		return
	}

	toBalance := balanceOf(ctx, to) + amount
	if !inRange(toBalance) {
		panic(tokenconst.ErrBalanceOverflow)
	}

	storage.Put(ctx, balanceKey(from), fromBalance-amount)
	storage.Put(ctx, balanceKey(to), toBalance)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func balanceKey(account interop.Hash160) []byte {
	return append([]byte(tokenconst.BalancesPrefix), account...)
}

func balanceOf(ctx storage.Context, account interop.Hash160) int {
	return common.GetInt(ctx, balanceKey(account))
}

// inRange checks that v fits signed 128-bit integer.
func inRange(v int) bool {
	limit := math.Pow(2, 127)
	return v >= -limit && v < limit
}
