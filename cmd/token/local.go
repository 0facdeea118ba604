package main

import (
	"errors"
	"fmt"
	"math"
	"math/big"

	"github.com/nspcc-dev/neo-go/pkg/core/storage"
	"github.com/nspcc-dev/neo-go/pkg/crypto/keys"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/token-contract/internal/config"
	"github.com/nspcc-dev/token-contract/ledger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli"
	"go.uber.org/zap"
)

var (
	accountFlag = cli.StringFlag{
		Name:     "account, a",
		Usage:    "Neo address or script hash of the account",
		Required: true,
	}
	wifFlag = cli.StringFlag{
		Name:     "wif, w",
		Usage:    "WIF-encoded private key of the sender",
		Required: true,
	}
	fromFlag = cli.StringFlag{
		Name:  "from",
		Usage: "Sender account (defaults to the account of the WIF key)",
	}
	toFlag = cli.StringFlag{
		Name:     "to",
		Usage:    "Recipient account",
		Required: true,
	}
	amountFlag = cli.StringFlag{
		Name:     "amount",
		Usage:    "Amount in the smallest token units",
		Required: true,
	}
	initFlags = []cli.Flag{
		cli.StringFlag{Name: "name", Usage: "Token name"},
		cli.StringFlag{Name: "symbol", Usage: "Token symbol"},
		cli.UintFlag{Name: "decimals", Usage: "Number of decimals"},
		cli.StringFlag{Name: "supply", Usage: "Initial supply in the smallest token units", Required: true},
		cli.StringFlag{Name: "owner", Usage: "Account receiving the initial supply", Required: true},
	}
)

func localCommands() []cli.Command {
	return []cli.Command{
		{
			Name:   "init",
			Usage:  "Initialize token and issue the initial supply to the owner",
			Flags:  initFlags,
			Action: initLocal,
		},
		{
			Name:   "balance",
			Usage:  "Print account balance",
			Flags:  []cli.Flag{accountFlag},
			Action: balanceLocal,
		},
		{
			Name:   "transfer",
			Usage:  "Transfer tokens signed by the sender key",
			Flags:  []cli.Flag{wifFlag, fromFlag, toFlag, amountFlag},
			Action: transferLocal,
		},
		{
			Name:   "metadata",
			Usage:  "Print token metadata",
			Action: metadataLocal,
		},
		{
			Name:   "supply",
			Usage:  "Print total supply",
			Action: supplyLocal,
		},
	}
}

// withLedger opens the ledger configured for the command and passes it to f.
func withLedger(c *cli.Context, f func(*ledger.Ledger) error) error {
	cfg, err := config.Load(c.GlobalString("config"))
	if err != nil {
		return err
	}

	log, err := newLogger(cfg.Logger)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	st, err := storage.NewStore(cfg.Ledger.DB)
	if err != nil {
		return fmt.Errorf("open ledger DB: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Warn("failed to close ledger DB", zap.Error(err))
		}
	}()

	opts := []ledger.Option{ledger.WithLogger(log)}
	if cfg.Ledger.InitGuard {
		opts = append(opts, ledger.WithInitGuard())
	}
	if cfg.Metrics.PushGateway != "" {
		reg := prometheus.NewRegistry()
		opts = append(opts, ledger.WithMetrics(reg))
		defer pushMetrics(cfg.Metrics, reg, log)
	}

	return f(ledger.New(st, opts...))
}

type initArgs struct {
	meta   ledger.Metadata
	supply *big.Int
	owner  util.Uint160
}

func parseInitArgs(c *cli.Context) (initArgs, error) {
	var (
		res initArgs
		err error
	)

	decimals := c.Uint("decimals")
	if uint64(decimals) > math.MaxUint32 {
		return res, fmt.Errorf("decimals %d: %w", decimals, ledger.ErrOutOfRange)
	}

	res.meta = ledger.Metadata{
		Name:     c.String("name"),
		Symbol:   c.String("symbol"),
		Decimals: uint32(decimals),
	}

	res.supply, err = parseAmount(c.String("supply"))
	if err != nil {
		return res, fmt.Errorf("invalid supply: %w", err)
	}

	res.owner, err = ledger.ParseAccount(c.String("owner"))
	if err != nil {
		return res, fmt.Errorf("invalid owner: %w", err)
	}

	return res, nil
}

func initLocal(c *cli.Context) error {
	args, err := parseInitArgs(c)
	if err != nil {
		return err
	}

	return withLedger(c, func(l *ledger.Ledger) error {
		err := l.Initialize(args.meta, args.supply, args.owner)
		if err != nil {
			return fmt.Errorf("initialize token: %w", err)
		}

		fmt.Fprintf(c.App.Writer, "Token %s (%s) initialized, %s issued to %s\n",
			args.meta.Name, args.meta.Symbol, args.supply, args.owner.StringLE())

		return nil
	})
}

func balanceLocal(c *cli.Context) error {
	acc, err := ledger.ParseAccount(c.String("account"))
	if err != nil {
		return fmt.Errorf("invalid account: %w", err)
	}

	return withLedger(c, func(l *ledger.Ledger) error {
		b, err := l.BalanceOf(acc)
		if err != nil {
			return fmt.Errorf("get balance: %w", err)
		}

		meta, err := l.Metadata()
		switch {
		case errors.Is(err, ledger.ErrUninitialized):
			fmt.Fprintln(c.App.Writer, b)
			return nil
		case err != nil:
			return fmt.Errorf("get metadata: %w", err)
		}

		fmt.Fprintln(c.App.Writer, formatAmount(b, meta))

		return nil
	})
}

func transferLocal(c *cli.Context) error {
	key, err := keys.NewPrivateKeyFromWIF(c.String("wif"))
	if err != nil {
		return fmt.Errorf("invalid WIF: %w", err)
	}

	from := key.GetScriptHash()
	if s := c.String("from"); s != "" {
		from, err = ledger.ParseAccount(s)
		if err != nil {
			return fmt.Errorf("invalid sender: %w", err)
		}
	}

	to, err := ledger.ParseAccount(c.String("to"))
	if err != nil {
		return fmt.Errorf("invalid recipient: %w", err)
	}

	amount, err := parseAmount(c.String("amount"))
	if err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}

	msg := ledger.TransferMessage(from, to, amount)

	witnesses, err := ledger.VerifySignatures(msg, ledger.Sign(key, msg))
	if err != nil {
		return err
	}

	return withLedger(c, func(l *ledger.Ledger) error {
		err := l.Transfer(witnesses, from, to, amount)
		if err != nil {
			return fmt.Errorf("transfer: %w", err)
		}

		fmt.Fprintf(c.App.Writer, "Transferred %s from %s to %s\n", amount, from.StringLE(), to.StringLE())

		return nil
	})
}

func metadataLocal(c *cli.Context) error {
	return withLedger(c, func(l *ledger.Ledger) error {
		meta, err := l.Metadata()
		if err != nil {
			return fmt.Errorf("get metadata: %w", err)
		}

		printMetadata(c, meta)

		return nil
	})
}

func supplyLocal(c *cli.Context) error {
	return withLedger(c, func(l *ledger.Ledger) error {
		s, err := l.TotalSupply()
		if err != nil {
			return fmt.Errorf("get total supply: %w", err)
		}

		fmt.Fprintln(c.App.Writer, s)

		return nil
	})
}

func printMetadata(c *cli.Context, meta ledger.Metadata) {
	fmt.Fprintf(c.App.Writer, "Name:     %s\n", meta.Name)
	fmt.Fprintf(c.App.Writer, "Symbol:   %s\n", meta.Symbol)
	fmt.Fprintf(c.App.Writer, "Decimals: %d\n", meta.Decimals)
}

func parseAmount(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("not a decimal integer: %q", s)
	}

	return v, nil
}
