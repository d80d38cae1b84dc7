package cli

import (
	"fmt"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/urfave/cli/v2"

	"github.com/heart-network/marketplace/types"
)

var MarketCmds = &cli.Command{
	Name:  "market",
	Usage: "marketplace parameters and hook registries",
	Subcommands: []*cli.Command{
		initParamsCmd,
		paramsCmd,
		hooksListCmd,
		versionCmd,
	},
}

var initParamsCmd = &cli.Command{
	Name:  "init-params",
	Usage: "store the initial parameter singleton",
	Flags: []cli.Flag{
		&cli.Uint64Flag{Name: "ask-expiry-min", Value: 86400},
		&cli.Uint64Flag{Name: "ask-expiry-max", Value: 15552000},
		&cli.Uint64Flag{Name: "bid-expiry-min", Value: 86400},
		&cli.Uint64Flag{Name: "bid-expiry-max", Value: 15552000},
		&cli.StringFlag{Name: "min-price", Value: "1"},
		&cli.StringFlag{Name: "listing-fee", Value: "0"},
		&cli.StringSliceFlag{Name: "operator", Usage: "operator address, repeatable", Required: true},
		&cli.StringFlag{Name: "sale-hook", Usage: "optional initial sale hook subscriber"},
	},
	Action: func(cctx *cli.Context) error {
		minPrice, err := big.FromString(cctx.String("min-price"))
		if err != nil {
			return fmt.Errorf("parse min-price: %w", err)
		}
		listingFee, err := big.FromString(cctx.String("listing-fee"))
		if err != nil {
			return fmt.Errorf("parse listing-fee: %w", err)
		}

		var operators []address.Address
		for _, s := range cctx.StringSlice("operator") {
			op, err := address.NewFromString(s)
			if err != nil {
				return fmt.Errorf("parse operator %q: %w", s, err)
			}
			operators = append(operators, op)
		}

		var saleHook *address.Address
		if cctx.IsSet("sale-hook") {
			h, err := address.NewFromString(cctx.String("sale-hook"))
			if err != nil {
				return fmt.Errorf("parse sale-hook: %w", err)
			}
			saleHook = &h
		}

		node, closer, err := NewMarketNode(cctx)
		if err != nil {
			return err
		}
		defer closer()

		return node.MarketInit(cctx.Context, &types.Params{
			AskExpiry:  types.ExpiryRange{Min: cctx.Uint64("ask-expiry-min"), Max: cctx.Uint64("ask-expiry-max")},
			BidExpiry:  types.ExpiryRange{Min: cctx.Uint64("bid-expiry-min"), Max: cctx.Uint64("bid-expiry-max")},
			Operators:  operators,
			MinPrice:   minPrice,
			ListingFee: listingFee,
		}, saleHook)
	},
}

var paramsCmd = &cli.Command{
	Name:  "params",
	Usage: "show the parameter singleton",
	Action: func(cctx *cli.Context) error {
		node, closer, err := NewMarketNode(cctx)
		if err != nil {
			return err
		}
		defer closer()

		params, err := node.MarketParams(cctx.Context)
		if err != nil {
			return err
		}
		return printJson(params)
	},
}

var hooksListCmd = &cli.Command{
	Name:      "hooks",
	Usage:     "list hook subscribers of one class",
	ArgsUsage: "<ask|bid|sale>",
	Action: func(cctx *cli.Context) error {
		class := types.HookClass(cctx.Args().First())
		if !class.Valid() {
			return fmt.Errorf("invalid hook class %q", cctx.Args().First())
		}

		node, closer, err := NewMarketNode(cctx)
		if err != nil {
			return err
		}
		defer closer()

		hooks, err := node.MarketListHooks(cctx.Context, class)
		if err != nil {
			return err
		}
		for _, h := range hooks {
			fmt.Println(h.String())
		}
		return nil
	},
}

var versionCmd = &cli.Command{
	Name:  "version",
	Usage: "show the daemon version",
	Action: func(cctx *cli.Context) error {
		node, closer, err := NewMarketNode(cctx)
		if err != nil {
			return err
		}
		defer closer()

		ver, err := node.Version(cctx.Context)
		if err != nil {
			return err
		}
		fmt.Println(ver)
		return nil
	},
}
