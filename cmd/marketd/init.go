package main

import (
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/urfave/cli/v2"

	"github.com/heart-network/marketplace/config"
)

var initCmd = &cli.Command{
	Name:  "init",
	Usage: "create a repo with a default config",
	Action: func(cctx *cli.Context) error {
		repoPath, err := homedir.Expand(cctx.String("repo"))
		if err != nil {
			return err
		}

		cfg := *config.DefaultMarketConfig
		cfg.HomeDir = repoPath

		cfgPath, err := cfg.ConfigPath()
		if err != nil {
			return err
		}
		if _, err := os.Stat(cfgPath); err == nil {
			return fmt.Errorf("repo at %s already initialized", repoPath)
		}

		if err := config.SaveConfig(&cfg); err != nil {
			return err
		}
		fmt.Printf("initialized repo at %s\n", repoPath)
		return nil
	},
}
