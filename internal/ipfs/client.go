package ipfs

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/artzone/artzone-indexer/internal/adapter"
	"github.com/artzone/artzone-indexer/internal/logger"
)

// DefaultGateways are well-known public IPFS gateways tried in order
var DefaultGateways = []string{
	"https://ipfs.io/ipfs/",
	"https://cloudflare-ipfs.com/ipfs/",
	"https://gateway.pinata.cloud/ipfs/",
	"https://dweb.link/ipfs/",
}

// Client fetches raw content from the content-addressed store
//
//go:generate mockgen -source=client.go -destination=../mocks/ipfs_client.go -package=mocks -mock_names=Client=MockIPFSClient
type Client interface {
	// Cat returns the raw bytes stored under the given content address
	Cat(ctx context.Context, contentAddress string) ([]byte, error)
}

type gatewayClient struct {
	gateways   []string
	httpClient adapter.HTTPClient
}

// NewGatewayClient creates an IPFS client backed by HTTP gateways. Gateways
// are tried sequentially; the first successful response wins.
func NewGatewayClient(gateways []string, httpClient adapter.HTTPClient) Client {
	if len(gateways) == 0 {
		gateways = DefaultGateways
	}
	return &gatewayClient{gateways: gateways, httpClient: httpClient}
}

// Cat returns the raw bytes stored under the given content address
func (c *gatewayClient) Cat(ctx context.Context, contentAddress string) ([]byte, error) {
	var lastErr error
	for _, gateway := range c.gateways {
		data, err := c.httpClient.GetBytes(ctx, gateway+contentAddress)
		if err == nil {
			return data, nil
		}
		lastErr = err
		logger.Debug("ipfs gateway fetch failed",
			zap.String("gateway", gateway),
			zap.String("cid", contentAddress),
			zap.Error(err))
	}

	return nil, fmt.Errorf("failed to fetch %s from all gateways: %w", contentAddress, lastErr)
}
