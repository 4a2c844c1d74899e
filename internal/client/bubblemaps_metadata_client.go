package client

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bubblemap_bot/internal/entity"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// MetadataClient defines the interface for the Bubblemaps map-metadata endpoint.
type MetadataClient interface {
	MapMetadata(ctx context.Context, chain entity.Chain, address entity.Address) (*entity.HolderMetadata, error)
}

// metadataClientImpl is the implementation of MetadataClient.
type metadataClientImpl struct {
	client  *fasthttp.Client
	baseURL string
	timeout time.Duration
	logger  *zap.Logger
}

// NewMetadataClient creates a new instance of metadataClientImpl.
func NewMetadataClient(baseURL string, timeout time.Duration, logger *zap.Logger) MetadataClient {
	return &metadataClientImpl{
		client:  &fasthttp.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		logger:  logger.Named("BubblemapsMetadataClient"),
	}
}

// MapMetadata fetches decentralization and supply-distribution statistics for
// a token. Callers treat any error as "no metadata available"; nothing here is
// fatal for a resolution run.
func (c *metadataClientImpl) MapMetadata(ctx context.Context, chain entity.Chain, address entity.Address) (*entity.HolderMetadata, error) {
	requestURL := fmt.Sprintf("%s/map-metadata?chain=%s&token=%s", c.baseURL, chain.InternalID(), address.String())

	c.logger.Debug("Requesting map metadata from Bubblemaps", zap.String("url", requestURL))

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	deadline, ok := ctx.Deadline()
	if ok {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, fmt.Errorf("failed to execute request to %s: %w", requestURL, err)
		}
	} else {
		if err := c.client.DoTimeout(req, resp, c.timeout); err != nil {
			return nil, fmt.Errorf("failed to execute request to %s with default timeout: %w", requestURL, err)
		}
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("Bubblemaps metadata request to %s failed with status %d", requestURL, resp.StatusCode())
	}

	var payload entity.MapMetadataResponse
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal Bubblemaps metadata response from %s: %w", requestURL, err)
	}

	metadata := &entity.HolderMetadata{
		DecentralisationScore: payload.DecentralisationScore,
	}
	if payload.IdentifiedSupply != nil {
		metadata.PercentInCEXs = payload.IdentifiedSupply.PercentInCEXs
		metadata.PercentInContracts = payload.IdentifiedSupply.PercentInContracts
	}

	c.logger.Debug("Successfully fetched map metadata",
		zap.String("chain", chain.InternalID()),
		zap.String("token", address.String()))
	return metadata, nil
}
