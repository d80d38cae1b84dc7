package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path"
	"syscall"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	"github.com/filecoin-project/go-address"

	"github.com/heart-network/marketplace/api"
	"github.com/heart-network/marketplace/clients"
	"github.com/heart-network/marketplace/config"
	"github.com/heart-network/marketplace/journal"
	"github.com/heart-network/marketplace/ledger"
	"github.com/heart-network/marketplace/marketprovider"
	metrics2 "github.com/heart-network/marketplace/metrics"
	"github.com/heart-network/marketplace/models/badger"
	"github.com/heart-network/marketplace/models/mysql"
	"github.com/heart-network/marketplace/models/repo"
)

var runCmd = &cli.Command{
	Name:  "run",
	Usage: "run the marketplace daemon",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "listen",
			Usage: "override the rpc listen address from config",
		},
		&cli.StringFlag{
			Name:  "mysql-dsn",
			Usage: "override the mysql connection string from config",
		},
		&cli.StringFlag{
			Name:  "node-url",
			Usage: "override the chain node endpoint from config",
		},
	},
	Action: run,
}

func loadConfig(cctx *cli.Context) (*config.MarketConfig, error) {
	repoPath, err := homedir.Expand(cctx.String("repo"))
	if err != nil {
		return nil, err
	}

	cfg := *config.DefaultMarketConfig
	cfg.HomeDir = repoPath
	cfgPath, err := cfg.ConfigPath()
	if err != nil {
		return nil, err
	}
	if err := config.LoadConfig(cfgPath, &cfg); err != nil {
		return nil, fmt.Errorf("load config at %s (run init first?): %w", cfgPath, err)
	}

	if cctx.IsSet("listen") {
		cfg.API.ListenAddress = cctx.String("listen")
	}
	if cctx.IsSet("mysql-dsn") {
		cfg.Mysql.ConnectionString = cctx.String("mysql-dsn")
	}
	if cctx.IsSet("node-url") {
		cfg.Node.Url = cctx.String("node-url")
	}
	return &cfg, nil
}

func newRepo(lc fx.Lifecycle, cfg *config.MarketConfig) (repo.Repo, error) {
	var r repo.Repo
	if cfg.Mysql.ConnectionString != "" {
		maxLifeTime, err := time.ParseDuration(cfg.Mysql.ConnMaxLifeTime)
		if err != nil {
			return nil, fmt.Errorf("parse ConnMaxLifeTime: %w", err)
		}
		r, err = mysql.OpenMysql(&mysql.MysqlConfig{
			ConnectionString: cfg.Mysql.ConnectionString,
			MaxOpenConn:      cfg.Mysql.MaxOpenConn,
			MaxIdleConn:      cfg.Mysql.MaxIdleConn,
			ConnMaxLifeTime:  maxLifeTime,
			Debug:            cfg.Mysql.Debug,
		})
		if err != nil {
			return nil, err
		}
	} else {
		dsPath, err := cfg.HomeJoin("datastore")
		if err != nil {
			return nil, err
		}
		r, err = badger.OpenBadgerRepo(dsPath)
		if err != nil {
			return nil, err
		}
	}

	if err := r.Migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return r.Close()
		},
	})
	return r, nil
}

func newJournal(lc fx.Lifecycle, cfg *config.MarketConfig) (journal.Journal, error) {
	if cfg.Journal.Path == "" {
		return journal.NilJournal(), nil
	}
	jPath, err := cfg.HomeJoin(cfg.Journal.Path)
	if err != nil {
		return nil, err
	}
	j, err := journal.OpenFSJournal(jPath)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return j.Close()
		},
	})
	return j, nil
}

func newProvider(cfg *config.MarketConfig, r repo.Repo, node ledger.Node, j journal.Journal) (*marketprovider.MarketProvider, error) {
	self := cfg.SelfAddress.Unwrap()
	if self == address.Undef {
		return nil, fmt.Errorf("SelfAddress is not configured")
	}
	return marketprovider.NewMarketProvider(r, node, self, j), nil
}

func run(cctx *cli.Context) error {
	ctx := cctx.Context

	cfg, err := loadConfig(cctx)
	if err != nil {
		return err
	}

	if err := metrics2.SetupMetrics(ctx, &cfg.Metrics); err != nil {
		return err
	}

	app := fx.New(
		fx.Supply(cfg),
		fx.Provide(
			func(cfg *config.MarketConfig) *config.Node { return &cfg.Node },
			newRepo,
			clients.NodeClient,
			newJournal,
			newProvider,
			func(p *marketprovider.MarketProvider) api.MarketAPI { return api.NewMarketNodeImpl(p) },
		),
		fx.Invoke(serveRPC),
	)

	if err := app.Start(ctx); err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	<-sigCh
	mainLog.Warn("shutting down...")

	stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return app.Stop(stopCtx)
}

// writeAPIFile records the listen address so client commands can find the
// daemon.
func writeAPIFile(cfg *config.MarketConfig) error {
	home, err := cfg.HomePath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(string(home), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path.Join(string(home), "api"), []byte(cfg.API.ListenAddress), 0o644)
}
