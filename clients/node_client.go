// Package clients holds the RPC clients the daemon dials on startup.
package clients

import (
	"context"
	"net/http"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-jsonrpc"
	"go.uber.org/fx"

	"github.com/heart-network/marketplace/config"
	"github.com/heart-network/marketplace/ledger"
	"github.com/heart-network/marketplace/types"
)

// ChainNodeStruct is the typed RPC proxy of the chain node endpoints the
// marketplace consumes.
type ChainNodeStruct struct {
	Internal struct {
		ChainTime    func(ctx context.Context) (uint64, error)
		QueryRoyalty func(ctx context.Context, collection address.Address) (*types.RoyaltyInfo, error)
	}
}

var _ ledger.Node = (*ChainNodeStruct)(nil)

func (s *ChainNodeStruct) ChainTime(ctx context.Context) (uint64, error) {
	return s.Internal.ChainTime(ctx)
}

func (s *ChainNodeStruct) QueryRoyalty(ctx context.Context, collection address.Address) (*types.RoyaltyInfo, error) {
	return s.Internal.QueryRoyalty(ctx, collection)
}

// NodeClient dials the chain node configured in cfg and closes the
// connection on daemon shutdown.
func NodeClient(lc fx.Lifecycle, nodeCfg *config.Node) (ledger.Node, error) {
	node := ChainNodeStruct{}

	header := http.Header{}
	if nodeCfg.Token != "" {
		header.Set("Authorization", "Bearer "+nodeCfg.Token)
	}

	closer, err := jsonrpc.NewMergeClient(context.Background(), nodeCfg.Url, "Chain",
		[]interface{}{&node.Internal}, header)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			closer()
			return nil
		},
	})
	return &node, nil
}
