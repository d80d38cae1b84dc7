package main

import (
	"context"
	"net/http"

	"github.com/filecoin-project/go-jsonrpc"
	"github.com/multiformats/go-multiaddr"
	manet "github.com/multiformats/go-multiaddr/net"
	"go.uber.org/fx"

	"github.com/heart-network/marketplace/api"
	"github.com/heart-network/marketplace/config"
)

func serveRPC(lc fx.Lifecycle, cfg *config.MarketConfig, marketAPI api.MarketAPI) error {
	rpcServer := jsonrpc.NewServer()
	rpcServer.Register("Marketplace", marketAPI)

	mux := http.NewServeMux()
	mux.Handle("/rpc/v0", rpcServer)
	srv := &http.Server{Handler: mux}

	addr, err := multiaddr.NewMultiaddr(cfg.API.ListenAddress)
	if err != nil {
		return err
	}

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			nl, err := manet.Listen(addr)
			if err != nil {
				return err
			}
			if err := writeAPIFile(cfg); err != nil {
				return err
			}
			mainLog.Infof("rpc listening on %s", cfg.API.ListenAddress)
			go func() {
				if err := srv.Serve(manet.NetListener(nl)); err != nil && err != http.ErrServerClosed {
					mainLog.Errorf("rpc server exited: %s", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
	return nil
}
