package cli

import (
	"fmt"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/filecoin-project/go-jsonrpc"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/multiformats/go-multiaddr"
	manet "github.com/multiformats/go-multiaddr/net"
	"github.com/urfave/cli/v2"

	"github.com/heart-network/marketplace/api"
)

const DefMarketRepoPath = "~/.marketplace"

const apiNamespace = "Marketplace"

// NewMarketNode dials the daemon whose listen address is recorded in the
// repo's api file.
func NewMarketNode(cctx *cli.Context) (api.MarketAPI, jsonrpc.ClientCloser, error) {
	homePath, err := homedir.Expand(cctx.String("repo"))
	if err != nil {
		return nil, nil, err
	}
	apiUrl, err := os.ReadFile(path.Join(homePath, "api"))
	if err != nil {
		return nil, nil, errors.Wrap(err, "read api file, is the daemon running?")
	}

	addr, err := dialArgs(strings.TrimSpace(string(apiUrl)))
	if err != nil {
		return nil, nil, err
	}

	var node api.MarketAPIStruct
	closer, err := jsonrpc.NewMergeClient(cctx.Context, addr, apiNamespace,
		[]interface{}{&node.Internal}, http.Header{})
	if err != nil {
		return nil, nil, err
	}
	return &node, closer, nil
}

// dialArgs turns a multiaddress listen address into an http rpc endpoint;
// plain urls pass through.
func dialArgs(addr string) (string, error) {
	ma, err := multiaddr.NewMultiaddr(addr)
	if err == nil {
		_, dialAddr, err := manet.DialArgs(ma)
		if err != nil {
			return "", err
		}
		return "http://" + dialAddr + "/rpc/v0", nil
	}

	if strings.HasPrefix(addr, "http") {
		return addr, nil
	}
	return "", fmt.Errorf("cannot parse api address %q", addr)
}
