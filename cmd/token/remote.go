package main

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/invoker"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"github.com/nspcc-dev/token-contract/contracts/token/tokenconst"
	"github.com/nspcc-dev/token-contract/internal/config"
	"github.com/nspcc-dev/token-contract/ledger"
	"github.com/nspcc-dev/token-contract/rpc/token"
	"github.com/urfave/cli"
)

var rpcFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "rpc-endpoint, r",
		Usage: "Neo RPC server address (overrides config)",
	},
	cli.StringFlag{
		Name:  "contract",
		Usage: "Address or script hash of the token contract (overrides config)",
	},
}

func withRPCFlags(fs ...cli.Flag) []cli.Flag {
	return append(append([]cli.Flag{}, rpcFlags...), fs...)
}

func remoteCommand() cli.Command {
	return cli.Command{
		Name:  "remote",
		Usage: "Operate token contract deployed to Neo network",
		Subcommands: []cli.Command{
			{
				Name:   "init",
				Usage:  "Send contract initialization transaction",
				Flags:  withRPCFlags(append([]cli.Flag{wifFlag}, initFlags...)...),
				Action: initRemote,
			},
			{
				Name:   "balance",
				Usage:  "Print account balance",
				Flags:  withRPCFlags(accountFlag),
				Action: balanceRemote,
			},
			{
				Name:   "transfer",
				Usage:  "Send transfer transaction signed by the sender key",
				Flags:  withRPCFlags(wifFlag, fromFlag, toFlag, amountFlag),
				Action: transferRemote,
			},
			{
				Name:   "metadata",
				Usage:  "Print token metadata",
				Flags:  withRPCFlags(),
				Action: metadataRemote,
			},
			{
				Name:   "supply",
				Usage:  "Print total supply",
				Flags:  withRPCFlags(),
				Action: supplyRemote,
			},
		},
	}
}

// remoteToken wraps RPC connection to the Neo node serving the token contract.
type remoteToken struct {
	rpc *rpcclient.Client

	reader *token.ContractReader
	// nil for read-only connections
	contract *token.Contract
	acc      *wallet.Account
}

// rpcConfig reads RPC settings from the config and command flags.
func rpcConfig(c *cli.Context) (config.RPC, error) {
	cfg, err := config.Load(c.GlobalString("config"))
	if err != nil {
		return config.RPC{}, err
	}

	res := cfg.RPC
	if s := c.String("rpc-endpoint"); s != "" {
		res.Endpoint = s
	}
	if s := c.String("contract"); s != "" {
		res.Contract = s
	}

	switch {
	case res.Endpoint == "":
		return res, errors.New("missing Neo RPC endpoint")
	case res.Contract == "":
		return res, errors.New("missing token contract")
	}

	return res, nil
}

// newRemoteToken dials Neo RPC server and binds the token contract. Non-nil
// acc signs transactions, otherwise only test invocations are possible.
func newRemoteToken(ctx *cli.Context, acc *wallet.Account) (*remoteToken, error) {
	cfg, err := rpcConfig(ctx)
	if err != nil {
		return nil, err
	}

	hash, err := ledger.ParseAccount(cfg.Contract)
	if err != nil {
		return nil, fmt.Errorf("invalid contract: %w", err)
	}

	c, err := rpcclient.New(context.Background(), cfg.Endpoint, rpcclient.Options{
		DialTimeout:    cfg.DialTimeout,
		RequestTimeout: cfg.RequestTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("RPC client dial: %w", err)
	}

	err = c.Init()
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("RPC client init: %w", err)
	}

	res := &remoteToken{rpc: c, acc: acc}

	if acc == nil {
		res.reader = token.NewReader(invoker.New(c, nil), hash)
		return res, nil
	}

	act, err := actor.NewSimple(c, acc)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("init actor: %w", err)
	}

	res.contract = token.New(act, hash)
	res.reader = &res.contract.ContractReader

	return res, nil
}

func (x *remoteToken) close() {
	x.rpc.Close()
}

func withRemote(c *cli.Context, wif string, f func(*remoteToken) error) error {
	var acc *wallet.Account

	if wif != "" {
		var err error

		acc, err = wallet.NewAccountFromWIF(wif)
		if err != nil {
			return fmt.Errorf("invalid WIF: %w", err)
		}
	}

	r, err := newRemoteToken(c, acc)
	if err != nil {
		return err
	}
	defer r.close()

	return f(r)
}

func printSent(c *cli.Context, txHash util.Uint256, vub uint32) {
	fmt.Fprintf(c.App.Writer, "Transaction %s sent, valid until block %d\n", txHash.StringLE(), vub)
}

func initRemote(c *cli.Context) error {
	args, err := parseInitArgs(c)
	if err != nil {
		return err
	}

	return withRemote(c, c.String("wif"), func(r *remoteToken) error {
		txHash, vub, err := r.contract.Initialize(args.meta.Name, args.meta.Symbol,
			new(big.Int).SetUint64(uint64(args.meta.Decimals)), args.supply, args.owner)
		if err != nil {
			return fmt.Errorf("send initialize transaction: %w", err)
		}

		printSent(c, txHash, vub)

		return nil
	})
}

func balanceRemote(c *cli.Context) error {
	acc, err := ledger.ParseAccount(c.String("account"))
	if err != nil {
		return fmt.Errorf("invalid account: %w", err)
	}

	return withRemote(c, "", func(r *remoteToken) error {
		b, err := r.reader.BalanceOf(acc)
		if err != nil {
			return fmt.Errorf("get balance: %w", err)
		}

		meta, err := r.reader.GetMetadata()
		switch {
		case isUninitialized(err):
			fmt.Fprintln(c.App.Writer, b)
			return nil
		case err != nil:
			return fmt.Errorf("get metadata: %w", err)
		}

		fmt.Fprintln(c.App.Writer, formatAmount(b, ledger.Metadata{
			Name:     meta.Name,
			Symbol:   meta.Symbol,
			Decimals: uint32(meta.Decimals.Uint64()),
		}))

		return nil
	})
}

// isUninitialized checks whether err is a FAULT of the contract method
// requiring initialized metadata.
func isUninitialized(err error) bool {
	return err != nil && strings.Contains(err.Error(), tokenconst.ErrUninitialized)
}

func transferRemote(c *cli.Context) error {
	to, err := ledger.ParseAccount(c.String("to"))
	if err != nil {
		return fmt.Errorf("invalid recipient: %w", err)
	}

	amount, err := parseAmount(c.String("amount"))
	if err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}

	return withRemote(c, c.String("wif"), func(r *remoteToken) error {
		from := r.acc.ScriptHash()
		if s := c.String("from"); s != "" {
			from, err = ledger.ParseAccount(s)
			if err != nil {
				return fmt.Errorf("invalid sender: %w", err)
			}
		}

		txHash, vub, err := r.contract.Transfer(from, to, amount)
		if err != nil {
			return fmt.Errorf("send transfer transaction: %w", err)
		}

		printSent(c, txHash, vub)

		return nil
	})
}

func metadataRemote(c *cli.Context) error {
	return withRemote(c, "", func(r *remoteToken) error {
		meta, err := r.reader.GetMetadata()
		if err != nil {
			return fmt.Errorf("get metadata: %w", err)
		}

		printMetadata(c, ledger.Metadata{
			Name:     meta.Name,
			Symbol:   meta.Symbol,
			Decimals: uint32(meta.Decimals.Uint64()),
		})

		return nil
	})
}

func supplyRemote(c *cli.Context) error {
	return withRemote(c, "", func(r *remoteToken) error {
		s, err := r.reader.TotalSupply()
		if err != nil {
			return fmt.Errorf("get total supply: %w", err)
		}

		fmt.Fprintln(c.App.Writer, s)

		return nil
	})
}
