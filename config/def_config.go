package config

import (
	"time"
)

var DefaultMarketConfig = &MarketConfig{
	Home: Home{HomeDir: "~/.marketplace"},
	API: API{
		ListenAddress: "/ip4/127.0.0.1/tcp/41235",
		Timeout:       Duration(30 * time.Second),
	},
	Node: Node{
		Url: "http://127.0.0.1:3453/rpc/v0",
	},
	Mysql: Mysql{
		MaxOpenConn:     100,
		MaxIdleConn:     100,
		ConnMaxLifeTime: "1m",
	},
	Journal: Journal{Path: "journal"},
}
