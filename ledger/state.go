package ledger

import (
	"errors"
	"fmt"
	"math"
	"math/big"

	"github.com/nspcc-dev/neo-go/pkg/core/storage"
	"github.com/nspcc-dev/neo-go/pkg/encoding/bigint"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/nspcc-dev/token-contract/contracts/token/tokenconst"
)

// Metadata is descriptive token record set on initialization.
type Metadata struct {
	Name     string
	Symbol   string
	Decimals uint32
}

// Store is a key-value storage State works over. Get must return
// storage.ErrKeyNotFound for missing keys. storage.MemCachedStore implements
// Store.
type Store interface {
	Get(key []byte) ([]byte, error)
	Put(key, value []byte)
}

// State is the token ledger state: account balances, total supply and
// metadata. State performs no locking and no rollback, it must be used inside
// a single call boundary (see Ledger).
type State struct {
	store Store
}

var (
	metadataKey    = []byte(tokenconst.MetadataKey)
	totalSupplyKey = []byte(tokenconst.TotalSupplyKey)

	// MaxBalance is the greatest integer balances and supply can hold.
	MaxBalance = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	// MinBalance is the least integer balances and supply can hold.
	MinBalance = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
)

// NewState returns State working over st.
func NewState(st Store) *State {
	return &State{store: st}
}

// BalanceKey returns storage key of the account balance.
func BalanceKey(account util.Uint160) []byte {
	return append([]byte(tokenconst.BalancesPrefix), account.BytesBE()...)
}

// Balance returns account balance. Accounts without an entry have zero balance.
func (s *State) Balance(account util.Uint160) (*big.Int, error) {
	return s.getInt(BalanceKey(account))
}

// SetBalance overwrites account balance. It doesn't check any invariant.
func (s *State) SetBalance(account util.Uint160, value *big.Int) {
	s.store.Put(BalanceKey(account), bigint.ToBytes(value))
}

// TotalSupply returns total token supply, zero before initialization.
func (s *State) TotalSupply() (*big.Int, error) {
	return s.getInt(totalSupplyKey)
}

// Metadata returns token metadata or ErrUninitialized if the token has not been
// initialized yet.
func (s *State) Metadata() (Metadata, error) {
	data, err := s.store.Get(metadataKey)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return Metadata{}, ErrUninitialized
		}
		return Metadata{}, fmt.Errorf("read metadata: %w", err)
	}

	return DecodeMetadata(data)
}

// Initialized checks whether metadata has been set.
func (s *State) Initialized() (bool, error) {
	_, err := s.Metadata()
	if errors.Is(err, ErrUninitialized) {
		return false, nil
	}
	return err == nil, err
}

// Initialize sets metadata and total supply and credits initialSupply to the
// owner. Repeated calls overwrite all three and leave other balances intact.
func (s *State) Initialize(meta Metadata, initialSupply *big.Int, owner util.Uint160) error {
	if !inRange(initialSupply) {
		return fmt.Errorf("%w: initial supply %s", ErrOutOfRange, initialSupply)
	}

	data, err := EncodeMetadata(meta)
	if err != nil {
		return err
	}

	s.store.Put(metadataKey, data)
	s.store.Put(totalSupplyKey, bigint.ToBytes(initialSupply))
	s.SetBalance(owner, initialSupply)

	return nil
}

// Transfer moves amount from one account to another. The sender must be
// approved by auth. On error State is left untouched.
func (s *State) Transfer(auth Authenticator, from, to util.Uint160, amount *big.Int) error {
	if auth == nil || !auth.Verify(from) {
		return fmt.Errorf("%w: %s", ErrUnauthorized, from.StringLE())
	}

	if amount == nil {
		return fmt.Errorf("%w: missing amount", ErrOutOfRange)
	}
	if amount.Sign() < 0 {
		return ErrNegativeAmount
	}

	fromBalance, err := s.Balance(from)
	if err != nil {
		return err
	}

	if fromBalance.Cmp(amount) < 0 {
		return fmt.Errorf("%w: have %s, need %s", ErrInsufficientBalance, fromBalance, amount)
	}

	if from.Equals(to) {
		return nil
	}

	toBalance, err := s.Balance(to)
	if err != nil {
		return err
	}

	toBalance.Add(toBalance, amount)
	if !inRange(toBalance) {
		return ErrBalanceOverflow
	}

	s.SetBalance(from, fromBalance.Sub(fromBalance, amount))
	s.SetBalance(to, toBalance)

	return nil
}

func (s *State) getInt(key []byte) (*big.Int, error) {
	data, err := s.store.Get(key)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return new(big.Int), nil
		}
		return nil, fmt.Errorf("read %q: %w", key, err)
	}

	return bigint.FromBytes(data), nil
}

func inRange(v *big.Int) bool {
	return v != nil && v.Cmp(MinBalance) >= 0 && v.Cmp(MaxBalance) <= 0
}

// EncodeMetadata serializes metadata the same way the contract does with
// std.Serialize.
func EncodeMetadata(m Metadata) ([]byte, error) {
	data, err := stackitem.Serialize(stackitem.NewStruct([]stackitem.Item{
		stackitem.NewByteArray([]byte(m.Name)),
		stackitem.NewByteArray([]byte(m.Symbol)),
		stackitem.NewBigInteger(new(big.Int).SetUint64(uint64(m.Decimals))),
	}))
	if err != nil {
		return nil, fmt.Errorf("serialize metadata: %w", err)
	}

	return data, nil
}

// DecodeMetadata is the opposite of EncodeMetadata.
func DecodeMetadata(data []byte) (Metadata, error) {
	var m Metadata

	item, err := stackitem.Deserialize(data)
	if err != nil {
		return m, fmt.Errorf("deserialize metadata: %w", err)
	}

	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return m, errors.New("metadata is not a struct")
	}
	if len(arr) != 3 {
		return m, fmt.Errorf("wrong number of metadata fields: %d", len(arr))
	}

	name, err := arr[0].TryBytes()
	if err != nil {
		return m, fmt.Errorf("field Name: %w", err)
	}

	symbol, err := arr[1].TryBytes()
	if err != nil {
		return m, fmt.Errorf("field Symbol: %w", err)
	}

	decimals, err := arr[2].TryInteger()
	if err != nil {
		return m, fmt.Errorf("field Decimals: %w", err)
	}
	if !decimals.IsUint64() || decimals.Uint64() > math.MaxUint32 {
		return m, fmt.Errorf("field Decimals: %w: %s", ErrOutOfRange, decimals)
	}

	m.Name = string(name)
	m.Symbol = string(symbol)
	m.Decimals = uint32(decimals.Uint64())

	return m, nil
}
