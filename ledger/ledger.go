package ledger

import (
	"fmt"
	"math/big"
	"sync"

	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/core/storage"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Ledger executes token operations one by one, each one atomically over the
// backing storage.
//
// Ledger instances must be constructed using New.
type Ledger struct {
	mtx sync.Mutex

	store storage.Store

	log     *zap.Logger
	metrics *metrics

	initGuard bool
	registry  prometheus.Registerer
}

// Option configures Ledger.
type Option func(*Ledger)

// WithLogger sets logger of the ledger calls. Nop logger is used by default.
func WithLogger(l *zap.Logger) Option {
	return func(x *Ledger) {
		x.log = l
	}
}

// WithInitGuard makes Initialize fail with ErrAlreadyInitialized if the token
// has already been initialized. Without this option the ledger repeats the
// contract: every Initialize resets metadata, total supply and the owner
// balance.
func WithInitGuard() Option {
	return func(x *Ledger) {
		x.initGuard = true
	}
}

// WithMetrics registers ledger call counters in reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(x *Ledger) {
		x.registry = reg
	}
}

// New returns Ledger working over st. The caller keeps ownership of st and
// closes it when the ledger is no longer used.
func New(st storage.Store, opts ...Option) *Ledger {
	l := &Ledger{
		store: st,
		log:   zap.NewNop(),
	}

	for _, o := range opts {
		o(l)
	}

	l.metrics = newMetrics(l.registry)

	return l
}

// Initialize sets token metadata and total supply and credits the whole
// supply to the owner.
func (l *Ledger) Initialize(meta Metadata, initialSupply *big.Int, owner util.Uint160) error {
	return l.call("initialize", func(s *State) error {
		if l.initGuard {
			ok, err := s.Initialized()
			if err != nil {
				return err
			}
			if ok {
				return ErrAlreadyInitialized
			}
		}

		return s.Initialize(meta, initialSupply, owner)
	})
}

// BalanceOf returns account balance, zero for unknown accounts.
func (l *Ledger) BalanceOf(account util.Uint160) (*big.Int, error) {
	var res *big.Int
	err := l.view("balanceOf", func(s *State) error {
		var err error
		res, err = s.Balance(account)
		return err
	})
	return res, err
}

// TotalSupply returns total token supply, zero before initialization.
func (l *Ledger) TotalSupply() (*big.Int, error) {
	var res *big.Int
	err := l.view("totalSupply", func(s *State) error {
		var err error
		res, err = s.TotalSupply()
		return err
	})
	return res, err
}

// Metadata returns token metadata or ErrUninitialized.
func (l *Ledger) Metadata() (Metadata, error) {
	var res Metadata
	err := l.view("getMetadata", func(s *State) error {
		var err error
		res, err = s.Metadata()
		return err
	})
	return res, err
}

// Initialized checks whether the token has been initialized.
func (l *Ledger) Initialized() (bool, error) {
	var res bool
	err := l.view("initialized", func(s *State) error {
		var err error
		res, err = s.Initialized()
		return err
	})
	return res, err
}

// Transfer moves amount of tokens between accounts. auth must confirm the call
// acts on behalf of from. Nothing is written on error.
func (l *Ledger) Transfer(auth Authenticator, from, to util.Uint160, amount *big.Int) error {
	return l.call("transfer", func(s *State) error {
		return s.Transfer(auth, from, to, amount)
	})
}

// call executes f inside an atomic boundary: changes are persisted only if f
// succeeds.
func (l *Ledger) call(method string, f func(*State) error) error {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	log := l.log.With(zap.String("method", method), zap.Stringer("call", uuid.New()))

	cache := storage.NewMemCachedStore(l.store)

	err := f(NewState(cache))
	if err == nil {
		var n int
		n, err = cache.Persist()
		if err != nil {
			err = fmt.Errorf("persist changes: %w", err)
		} else {
			log.Debug("call committed", zap.Int("items", n))
		}
	}

	if err != nil {
		log.Debug("call aborted, changes discarded", zap.Error(err))
	}

	l.metrics.observe(method, err)

	return err
}

// view executes read-only f.
func (l *Ledger) view(method string, f func(*State) error) error {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	err := f(NewState(storage.NewMemCachedStore(l.store)))

	l.metrics.observe(method, err)

	return err
}
