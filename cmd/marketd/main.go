package main

import (
	"os"

	logging "github.com/ipfs/go-log/v2"
	"github.com/urfave/cli/v2"

	cli2 "github.com/heart-network/marketplace/cli"
	"github.com/heart-network/marketplace/version"
)

var mainLog = logging.Logger("main")

var repoFlag = &cli.StringFlag{
	Name:    "repo",
	EnvVars: []string{"MARKETPLACE_PATH"},
	Value:   cli2.DefMarketRepoPath,
}

func main() {
	app := &cli.App{
		Name:                 "marketd",
		Usage:                "digital asset marketplace daemon",
		Version:              version.UserVersion(),
		EnableBashCompletion: true,
		Flags: []cli.Flag{
			repoFlag,
		},
		Commands: []*cli.Command{
			initCmd,
			runCmd,
			cli2.AsksCmd,
			cli2.BidsCmd,
			cli2.MarketCmds,
		},
	}

	if err := app.Run(os.Args); err != nil {
		mainLog.Fatal(err)
	}
}
