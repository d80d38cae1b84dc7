package cli

import (
	"encoding/json"
	"fmt"

	"github.com/filecoin-project/go-address"
	"github.com/urfave/cli/v2"

	"github.com/heart-network/marketplace/types"
)

var AsksCmd = &cli.Command{
	Name:  "asks",
	Usage: "inspect listings",
	Subcommands: []*cli.Command{
		askGetCmd,
		askListCmd,
		askListPricedCmd,
		askListSellerCmd,
		askCountCmd,
		askCollectionsCmd,
	},
}

var askGetCmd = &cli.Command{
	Name:      "get",
	Usage:     "show one listing",
	ArgsUsage: "<collection> <token-id>",
	Action: func(cctx *cli.Context) error {
		if cctx.NArg() != 2 {
			return fmt.Errorf("expect collection and token id")
		}
		collection, err := address.NewFromString(cctx.Args().Get(0))
		if err != nil {
			return err
		}

		node, closer, err := NewMarketNode(cctx)
		if err != nil {
			return err
		}
		defer closer()

		ask, err := node.MarketGetAsk(cctx.Context, types.NewAskKey(collection, cctx.Args().Get(1)))
		if err != nil {
			return err
		}
		return printJson(ask)
	},
}

var limitFlag = &cli.IntFlag{
	Name:  "limit",
	Usage: "page size",
	Value: 10,
}

var startAfterFlag = &cli.StringFlag{
	Name:  "start-after",
	Usage: "exclusive token id to resume listing from",
}

var askListCmd = &cli.Command{
	Name:      "list",
	Usage:     "list a collection's listings in token-id order",
	ArgsUsage: "<collection>",
	Flags: []cli.Flag{
		limitFlag,
		startAfterFlag,
		&cli.BoolFlag{
			Name:  "descending",
			Usage: "highest token id first",
		},
	},
	Action: func(cctx *cli.Context) error {
		collection, err := address.NewFromString(cctx.Args().First())
		if err != nil {
			return err
		}

		node, closer, err := NewMarketNode(cctx)
		if err != nil {
			return err
		}
		defer closer()

		asks, err := node.MarketListAsks(cctx.Context, collection, cctx.Bool("descending"), cctx.String("start-after"), cctx.Int("limit"))
		if err != nil {
			return err
		}
		return printJson(asks)
	},
}

var askListPricedCmd = &cli.Command{
	Name:      "list-priced",
	Usage:     "list a collection's listings in price order",
	ArgsUsage: "<collection>",
	Flags: []cli.Flag{
		limitFlag,
		&cli.BoolFlag{
			Name:  "descending",
			Usage: "highest price first",
		},
	},
	Action: func(cctx *cli.Context) error {
		collection, err := address.NewFromString(cctx.Args().First())
		if err != nil {
			return err
		}

		node, closer, err := NewMarketNode(cctx)
		if err != nil {
			return err
		}
		defer closer()

		asks, err := node.MarketListAsksByPrice(cctx.Context, collection, cctx.Bool("descending"), nil, cctx.Int("limit"))
		if err != nil {
			return err
		}
		return printJson(asks)
	},
}

var askListSellerCmd = &cli.Command{
	Name:      "list-seller",
	Usage:     "list a seller's listings across collections",
	ArgsUsage: "<seller>",
	Flags:     []cli.Flag{limitFlag},
	Action: func(cctx *cli.Context) error {
		seller, err := address.NewFromString(cctx.Args().First())
		if err != nil {
			return err
		}

		node, closer, err := NewMarketNode(cctx)
		if err != nil {
			return err
		}
		defer closer()

		asks, err := node.MarketListAsksBySeller(cctx.Context, seller, nil, cctx.Int("limit"))
		if err != nil {
			return err
		}
		return printJson(asks)
	},
}

var askCountCmd = &cli.Command{
	Name:      "count",
	Usage:     "count a collection's live listings",
	ArgsUsage: "<collection>",
	Action: func(cctx *cli.Context) error {
		collection, err := address.NewFromString(cctx.Args().First())
		if err != nil {
			return err
		}

		node, closer, err := NewMarketNode(cctx)
		if err != nil {
			return err
		}
		defer closer()

		count, err := node.MarketAskCount(cctx.Context, collection)
		if err != nil {
			return err
		}
		fmt.Println(count)
		return nil
	},
}

var askCollectionsCmd = &cli.Command{
	Name:  "collections",
	Usage: "list collections with live listings",
	Flags: []cli.Flag{
		limitFlag,
		&cli.StringFlag{
			Name:  "start-after",
			Usage: "exclusive collection address to resume listing from",
		},
	},
	Action: func(cctx *cli.Context) error {
		startAfter := address.Undef
		if after := cctx.String("start-after"); after != "" {
			var err error
			startAfter, err = address.NewFromString(after)
			if err != nil {
				return err
			}
		}

		node, closer, err := NewMarketNode(cctx)
		if err != nil {
			return err
		}
		defer closer()

		collections, err := node.MarketListCollections(cctx.Context, startAfter, cctx.Int("limit"))
		if err != nil {
			return err
		}
		for _, collection := range collections {
			fmt.Println(collection)
		}
		return nil
	},
}

var BidsCmd = &cli.Command{
	Name:  "bids",
	Usage: "inspect bid records",
	Subcommands: []*cli.Command{
		bidListTokenCmd,
		bidListBidderCmd,
	},
}

var bidListTokenCmd = &cli.Command{
	Name:      "list",
	Usage:     "list bid records on one token",
	ArgsUsage: "<collection> <token-id>",
	Action: func(cctx *cli.Context) error {
		if cctx.NArg() != 2 {
			return fmt.Errorf("expect collection and token id")
		}
		collection, err := address.NewFromString(cctx.Args().Get(0))
		if err != nil {
			return err
		}

		node, closer, err := NewMarketNode(cctx)
		if err != nil {
			return err
		}
		defer closer()

		bids, err := node.MarketListBidsByToken(cctx.Context, types.NewAskKey(collection, cctx.Args().Get(1)))
		if err != nil {
			return err
		}
		return printJson(bids)
	},
}

var bidListBidderCmd = &cli.Command{
	Name:      "list-bidder",
	Usage:     "list a bidder's bid records",
	ArgsUsage: "<bidder>",
	Action: func(cctx *cli.Context) error {
		bidder, err := address.NewFromString(cctx.Args().First())
		if err != nil {
			return err
		}

		node, closer, err := NewMarketNode(cctx)
		if err != nil {
			return err
		}
		defer closer()

		bids, err := node.MarketListBidsByBidder(cctx.Context, bidder)
		if err != nil {
			return err
		}
		return printJson(bids)
	},
}

func printJson(obj interface{}) error {
	data, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
