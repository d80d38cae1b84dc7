package config

import (
	"encoding"
	"path"
	"time"

	"github.com/filecoin-project/go-address"
	"github.com/ipfs-force-community/metrics"
	"github.com/mitchellh/go-homedir"
)

// API contains configs for the daemon's RPC endpoint.
type API struct {
	// Binding address, in multiaddress format.
	ListenAddress string
	Timeout       Duration
}

// Node is the connect config of the chain node the daemon follows for time
// and royalty queries.
type Node struct {
	Url   string
	Token string
}

type Mysql struct {
	ConnectionString string
	MaxOpenConn      int
	MaxIdleConn      int
	ConnMaxLifeTime  string
	Debug            bool
}

type Journal struct {
	Path string
}

// MarketConfig is the daemon's top-level config. Mysql.ConnectionString
// empty means state is kept in the badger store under the repo home.
type MarketConfig struct {
	Home `toml:"-"`

	API  API
	Node Node

	// SelfAddress is the marketplace actor address, used as the no-bid
	// sentinel on fresh auctions.
	SelfAddress Address

	Mysql   Mysql
	Journal Journal
	Metrics metrics.MetricsConfig
}

type Home struct {
	HomeDir string
}

type HomeDir string

// IHome is anything that can locate its own config file.
type IHome interface {
	ConfigPath() (string, error)
}

func (h Home) HomePath() (HomeDir, error) {
	p, err := homedir.Expand(h.HomeDir)
	if err != nil {
		return "", err
	}
	return HomeDir(p), nil
}

func (h Home) HomeJoin(sep ...string) (string, error) {
	p, err := homedir.Expand(h.HomeDir)
	if err != nil {
		return "", err
	}
	for _, s := range sep {
		p = path.Join(p, s)
	}
	return p, nil
}

func (h Home) ConfigPath() (string, error) {
	return h.HomeJoin("config.toml")
}

var (
	_ encoding.TextMarshaler   = (*Duration)(nil)
	_ encoding.TextUnmarshaler = (*Duration)(nil)
)

// Duration is a wrapper type for time.Duration
// for decoding and encoding from/to TOML
type Duration time.Duration

// UnmarshalText implements interface for TOML decoding
func (dur *Duration) UnmarshalText(text []byte) error {
	d, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*dur = Duration(d)
	return err
}

func (dur Duration) MarshalText() ([]byte, error) {
	d := time.Duration(dur)
	return []byte(d.String()), nil
}

// Address is a wrapper type for address.Address
// for decoding and encoding from/to TOML
type Address address.Address

// UnmarshalText implements interface for TOML decoding
func (addr *Address) UnmarshalText(text []byte) error {
	d, err := address.NewFromString(string(text))
	if err != nil {
		return err
	}
	*addr = Address(d)
	return err
}

func (addr Address) MarshalText() ([]byte, error) {
	if address.Address(addr) == address.Undef {
		return []byte{}, nil
	}
	return []byte(address.Address(addr).String()), nil
}

func (addr Address) Unwrap() address.Address {
	return address.Address(addr)
}
