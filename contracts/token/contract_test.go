package token_test

import (
	"math/big"
	"path"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/storage"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/neotest/chain"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/nspcc-dev/token-contract/common"
	"github.com/nspcc-dev/token-contract/contracts/token/tokenconst"
	"github.com/nspcc-dev/token-contract/ledger"
	"github.com/stretchr/testify/require"
)

const tokenPath = "."

func newTokenInvoker(t *testing.T) *neotest.ContractInvoker {
	bc, acc := chain.NewSingle(t)
	e := neotest.NewExecutor(t, bc, acc, acc)

	c := neotest.CompileFile(t, e.CommitteeHash, tokenPath, path.Join(tokenPath, "config.yml"))
	e.DeployContract(t, c, nil)

	return e.CommitteeInvoker(c.Hash)
}

func checkBalance(t *testing.T, inv *neotest.ContractInvoker, acc util.Uint160, expected int64) {
	inv.Invoke(t, expected, "balanceOf", acc)
}

func checkMetadata(t *testing.T, inv *neotest.ContractInvoker, expected ledger.Metadata) {
	s, err := inv.TestInvoke(t, "getMetadata")
	require.NoError(t, err)
	require.Equal(t, 1, s.Len())

	data, err := stackitem.Serialize(s.Pop().Item())
	require.NoError(t, err)

	m, err := ledger.DecodeMetadata(data)
	require.NoError(t, err)
	require.Equal(t, expected, m)
}

func TestToken_Scenario(t *testing.T) {
	inv := newTokenInvoker(t)
	owner := inv.NewAccount(t)
	bob := inv.NewAccount(t)

	inv.Invoke(t, stackitem.Null{}, "initialize", "TokenA", "TKA", 7, 1000, owner.ScriptHash())
	checkBalance(t, inv, owner.ScriptHash(), 1000)
	checkBalance(t, inv, bob.ScriptHash(), 0)

	ownerInv := inv.WithSigners(owner)
	ownerInv.Invoke(t, stackitem.Null{}, "transfer", owner.ScriptHash(), bob.ScriptHash(), 300)
	checkBalance(t, inv, owner.ScriptHash(), 700)
	checkBalance(t, inv, bob.ScriptHash(), 300)

	ownerInv.InvokeFail(t, tokenconst.ErrInsufficientBalance, "transfer", owner.ScriptHash(), bob.ScriptHash(), 800)
	checkBalance(t, inv, owner.ScriptHash(), 700)
	checkBalance(t, inv, bob.ScriptHash(), 300)

	inv.Invoke(t, 1000, "totalSupply")
}

func TestToken_Transfer(t *testing.T) {
	inv := newTokenInvoker(t)
	owner := inv.NewAccount(t)
	bob := inv.NewAccount(t)
	from, to := owner.ScriptHash(), bob.ScriptHash()

	inv.Invoke(t, stackitem.Null{}, "initialize", "TokenA", "TKA", 7, 1000, from)

	ownerInv := inv.WithSigners(owner)

	t.Run("unauthorized", func(t *testing.T) {
		bobInv := inv.WithSigners(bob)
		bobInv.InvokeFail(t, tokenconst.ErrUnauthorized, "transfer", from, to, 1)
		bobInv.InvokeFail(t, tokenconst.ErrUnauthorized, "transfer", from, to, 1_000_000)
		// committee is not the owner either
		inv.InvokeFail(t, tokenconst.ErrUnauthorized, "transfer", from, to, 1)

		checkBalance(t, inv, from, 1000)
		checkBalance(t, inv, to, 0)
	})

	t.Run("negative amount", func(t *testing.T) {
		ownerInv.InvokeFail(t, tokenconst.ErrNegativeAmount, "transfer", from, to, -1)
		checkBalance(t, inv, from, 1000)
		checkBalance(t, inv, to, 0)
	})

	t.Run("invalid account", func(t *testing.T) {
		ownerInv.InvokeFail(t, tokenconst.ErrInvalidAccount, "transfer", from, []byte{1, 2, 3}, 1)
		ownerInv.InvokeFail(t, tokenconst.ErrInvalidAccount, "transfer", []byte{1, 2, 3}, to, 1)
	})

	t.Run("conservation", func(t *testing.T) {
		for _, amount := range []int64{0, 1, 99, 400} {
			ownerInv.Invoke(t, stackitem.Null{}, "transfer", from, to, amount)
		}
		checkBalance(t, inv, from, 500)
		checkBalance(t, inv, to, 500)
	})

	t.Run("to self", func(t *testing.T) {
		ownerInv.Invoke(t, stackitem.Null{}, "transfer", from, from, 500)
		checkBalance(t, inv, from, 500)

		ownerInv.InvokeFail(t, tokenconst.ErrInsufficientBalance, "transfer", from, from, 501)
		checkBalance(t, inv, from, 500)
	})

	inv.Invoke(t, 1000, "totalSupply")
}

func TestToken_TransferOverflow(t *testing.T) {
	inv := newTokenInvoker(t)
	owner := inv.NewAccount(t)
	bob := inv.NewAccount(t)

	inv.Invoke(t, stackitem.Null{}, "initialize", "TokenA", "TKA", 7, ledger.MaxBalance, owner.ScriptHash())
	inv.Invoke(t, stackitem.Null{}, "initialize", "TokenA", "TKA", 7, 1, bob.ScriptHash())

	inv.WithSigners(bob).InvokeFail(t, tokenconst.ErrBalanceOverflow, "transfer", bob.ScriptHash(), owner.ScriptHash(), 1)
	inv.Invoke(t, ledger.MaxBalance, "balanceOf", owner.ScriptHash())
	checkBalance(t, inv, bob.ScriptHash(), 1)
}

func TestToken_Initialize(t *testing.T) {
	inv := newTokenInvoker(t)
	owner := inv.NewAccount(t)
	bob := inv.NewAccount(t)

	inv.InvokeFail(t, tokenconst.ErrUninitialized, "getMetadata")
	inv.Invoke(t, 0, "totalSupply")

	inv.InvokeFail(t, tokenconst.ErrInvalidAccount, "initialize", "TokenA", "TKA", 7, 1000, []byte{1})
	inv.InvokeFail(t, tokenconst.ErrOutOfRange, "initialize", "TokenA", "TKA", -1, 1000, owner.ScriptHash())
	inv.InvokeFail(t, tokenconst.ErrOutOfRange, "initialize", "TokenA", "TKA", int64(1)<<32, 1000, owner.ScriptHash())
	inv.InvokeFail(t, tokenconst.ErrOutOfRange, "initialize", "TokenA", "TKA", 7,
		new(big.Int).Add(ledger.MaxBalance, big.NewInt(1)), owner.ScriptHash())
	inv.InvokeFail(t, tokenconst.ErrUninitialized, "getMetadata")

	inv.Invoke(t, stackitem.Null{}, "initialize", "TokenA", "TKA", 7, 1000, owner.ScriptHash())
	checkMetadata(t, inv, ledger.Metadata{Name: "TokenA", Symbol: "TKA", Decimals: 7})

	inv.WithSigners(owner).Invoke(t, stackitem.Null{}, "transfer", owner.ScriptHash(), bob.ScriptHash(), 300)

	t.Run("anyone can reinitialize", func(t *testing.T) {
		inv.WithSigners(bob).Invoke(t, stackitem.Null{}, "initialize", "TokenB", "TKB", 2, 50, owner.ScriptHash())

		checkMetadata(t, inv, ledger.Metadata{Name: "TokenB", Symbol: "TKB", Decimals: 2})
		inv.Invoke(t, 50, "totalSupply")
		checkBalance(t, inv, owner.ScriptHash(), 50)
		checkBalance(t, inv, bob.ScriptHash(), 300)
	})
}

func TestToken_StorageMatchesLedger(t *testing.T) {
	inv := newTokenInvoker(t)
	owner := inv.NewAccount(t)
	bob := inv.NewAccount(t)
	meta := ledger.Metadata{Name: "TokenA", Symbol: "TKA", Decimals: 7}

	inv.Invoke(t, stackitem.Null{}, "initialize", meta.Name, meta.Symbol, int64(meta.Decimals), 1000, owner.ScriptHash())
	inv.WithSigners(owner).Invoke(t, stackitem.Null{}, "transfer", owner.ScriptHash(), bob.ScriptHash(), 300)

	st := storage.NewMemCachedStore(storage.NewMemoryStore())
	l := ledger.NewState(st)
	require.NoError(t, l.Initialize(meta, big.NewInt(1000), owner.ScriptHash()))
	require.NoError(t, l.Transfer(ledger.Witnesses{owner.ScriptHash()}, owner.ScriptHash(), bob.ScriptHash(), big.NewInt(300)))

	cs := inv.Chain.GetContractState(inv.Hash)
	require.NotNil(t, cs)

	for _, key := range [][]byte{
		[]byte(tokenconst.MetadataKey),
		[]byte(tokenconst.TotalSupplyKey),
		ledger.BalanceKey(owner.ScriptHash()),
		ledger.BalanceKey(bob.ScriptHash()),
	} {
		v, err := st.Get(key)
		require.NoError(t, err)
		require.Equal(t, v, []byte(inv.Chain.GetStorageItem(cs.ID, key)), string(key))
	}
}

func TestToken_Version(t *testing.T) {
	inv := newTokenInvoker(t)
	inv.Invoke(t, common.Version, "version")
}
