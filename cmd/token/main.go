package main

import (
	"fmt"
	"os"

	"github.com/nspcc-dev/token-contract/common"
	"github.com/urfave/cli"
)

func main() {
	err := newApp().Run(os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "token"
	app.Usage = "Operate fungible token ledger locally or through Neo RPC"
	app.Version = fmt.Sprintf("%d.%d.%d", common.Version/1_000_000, common.Version/1_000%1_000, common.Version%1_000)
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Usage: "Path to YAML configuration file",
		},
	}
	app.Commands = append(localCommands(), remoteCommand())

	return app
}
