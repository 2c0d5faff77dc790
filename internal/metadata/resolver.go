package metadata

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/artzone/artzone-indexer/internal/adapter"
	"github.com/artzone/artzone-indexer/internal/domain"
	"github.com/artzone/artzone-indexer/internal/ipfs"
	"github.com/artzone/artzone-indexer/internal/logger"
	"github.com/artzone/artzone-indexer/internal/metrics"
	"github.com/artzone/artzone-indexer/internal/providers/ethereum"
)

// DisplayFields holds the four display attributes that are only ever set
// together. A document missing any one of them sets none.
type DisplayFields struct {
	Name        string
	Image       string
	Description string
	ExternalURL string
}

// TokenMetadata is the resolved metadata document for a token. Display is nil
// when the document was absent or incomplete; Artist is independent of the
// all-or-nothing display rule.
type TokenMetadata struct {
	Display *DisplayFields
	Artist  *string
}

// Resolver resolves a token's metadata document from the content-addressed store
//
//go:generate mockgen -source=resolver.go -destination=../mocks/metadata_resolver.go -package=mocks -mock_names=Resolver=MockMetadataResolver
type Resolver interface {
	// Resolve returns the token's metadata, (nil, nil) when the document is
	// absent or unreachable, and an error only for a malformed document.
	Resolve(ctx context.Context, contractAddress, tokenNumber string) (*TokenMetadata, error)
}

type resolver struct {
	reader     ethereum.Reader
	ipfsClient ipfs.Client
	json       adapter.JSON
}

// NewResolver creates a metadata resolver
func NewResolver(reader ethereum.Reader, ipfsClient ipfs.Client, jsonAdapter adapter.JSON) Resolver {
	return &resolver{
		reader:     reader,
		ipfsClient: ipfsClient,
		json:       jsonAdapter,
	}
}

// Resolve resolves the metadata document for a token. The token URI's
// trailing characters are assumed to be the document's IPFS content address;
// no other URI scheme is supported by the minter contract.
func (r *resolver) Resolve(ctx context.Context, contractAddress, tokenNumber string) (*TokenMetadata, error) {
	uri := r.reader.TokenURI(ctx, contractAddress, tokenNumber)
	if len(uri) < domain.IPFSHashLength {
		// Covers the "unknown" fallback from a reverted uri call
		metrics.MetadataResolutions.WithLabelValues("absent").Inc()
		return nil, nil
	}

	cid := uri[len(uri)-domain.IPFSHashLength:]

	data, err := r.ipfsClient.Cat(ctx, cid)
	if err != nil {
		// An unreachable store degrades to an absent document
		metrics.MetadataResolutions.WithLabelValues("absent").Inc()
		logger.Debug("metadata fetch failed",
			zap.String("contract", contractAddress),
			zap.String("token", tokenNumber),
			zap.String("cid", cid),
			zap.Error(err))
		return nil, nil
	}

	var doc map[string]interface{}
	if err := r.json.Unmarshal(data, &doc); err != nil {
		metrics.MetadataResolutions.WithLabelValues("malformed").Inc()
		return nil, fmt.Errorf("malformed metadata document %s: %w", cid, err)
	}

	result := &TokenMetadata{}

	name, hasName := stringField(doc, "name")
	image, hasImage := stringField(doc, "image")
	description, hasDescription := stringField(doc, "description")
	externalURL, hasExternalURL := stringField(doc, "external_url")

	if hasName && hasImage && hasDescription && hasExternalURL {
		result.Display = &DisplayFields{
			Name:        name,
			Image:       image,
			Description: description,
			ExternalURL: externalURL,
		}
	}

	if artist, ok := stringField(doc, "artist"); ok {
		result.Artist = &artist
	}

	metrics.MetadataResolutions.WithLabelValues("resolved").Inc()
	return result, nil
}

func stringField(doc map[string]interface{}, key string) (string, bool) {
	value, ok := doc[key].(string)
	return value, ok
}
