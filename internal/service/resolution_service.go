package service

import (
	"context"
	"errors"

	"bubblemap_bot/internal/client"
	"bubblemap_bot/internal/entity"
	"bubblemap_bot/pkg/metrics"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ResolutionService runs the resolution pipeline for a raw address: format
// validation, market lookup with canonical pair selection, chain mapping, and
// the follow-up fetches for holder metadata and the rendered map.
type ResolutionService interface {
	// Resolve validates the address and resolves its canonical pair and chain.
	// On failure the returned error is always a *entity.ResolveError.
	Resolve(ctx context.Context, rawAddress string) (*entity.ResolvedToken, error)

	// FetchMap retrieves the rendered bubble map for an already resolved
	// token and, concurrently, its holder metadata. Metadata failures only
	// leave token.Metadata nil; a render failure is returned for the caller
	// to fold into a degraded reply.
	FetchMap(ctx context.Context, token *entity.ResolvedToken) ([]byte, *entity.RenderError)
}

// resolutionServiceImpl implements the ResolutionService interface.
type resolutionServiceImpl struct {
	logger   *zap.Logger
	market   client.DEXScreenerClient
	metadata client.MetadataClient
	render   client.RenderClient
}

// NewResolutionService creates a new instance of resolutionServiceImpl.
func NewResolutionService(
	logger *zap.Logger,
	market client.DEXScreenerClient,
	metadata client.MetadataClient,
	render client.RenderClient,
) ResolutionService {
	return &resolutionServiceImpl{
		logger:   logger.Named("ResolutionService"),
		market:   market,
		metadata: metadata,
		render:   render,
	}
}

// Resolve implements the ResolutionService interface.
func (s *resolutionServiceImpl) Resolve(ctx context.Context, rawAddress string) (*entity.ResolvedToken, error) {
	address, err := entity.ParseAddress(rawAddress)
	if err != nil {
		metrics.ResolutionsTotal.WithLabelValues(string(entity.ResolveErrInvalidAddress)).Inc()
		return nil, err
	}

	pairs, err := s.market.SearchPairs(ctx, address.String())
	if err != nil {
		s.logger.Error("Market lookup failed", zap.String("address", address.String()), zap.Error(err))
		metrics.ResolutionsTotal.WithLabelValues(string(entity.ResolveErrMarketProvider)).Inc()
		return nil, entity.NewMarketProviderError(err)
	}

	if len(pairs) == 0 {
		s.logger.Info("No pairs found for address", zap.String("address", address.String()))
		metrics.ResolutionsTotal.WithLabelValues(string(entity.ResolveErrTokenNotFound)).Inc()
		return nil, entity.ErrTokenNotFound
	}

	pair := selectCanonicalPair(pairs)

	chain, ok := entity.ChainFromProviderID(pair.ChainID)
	if !ok {
		// A valid pair on a chain the rendering provider cannot draw is a
		// deliberate abort, not a lookup fault.
		s.logger.Info("Resolved pair is on an unsupported chain",
			zap.String("address", address.String()),
			zap.String("providerChainID", pair.ChainID))
		metrics.ResolutionsTotal.WithLabelValues(string(entity.ResolveErrUnsupportedChain)).Inc()
		return nil, entity.NewUnsupportedChainError(pair.ChainID)
	}

	token := &entity.ResolvedToken{
		Address:     address,
		Chain:       chain,
		Name:        pair.BaseToken.Name,
		Symbol:      pair.BaseToken.Symbol,
		PriceUsd:    pair.PriceUsd,
		PriceNative: pair.PriceNative,
		MarketCap:   pair.MarketCap,
		Fdv:         pair.Fdv,
		PairAddress: pair.PairAddress,
		DexID:       pair.DexID,
	}
	if pair.Liquidity != nil {
		token.LiquidityUsd = pair.Liquidity.Usd
	}
	if pair.Volume != nil {
		token.VolumeH24 = pair.Volume.H24
	}

	s.logger.Info("Token resolved",
		zap.String("address", address.String()),
		zap.String("symbol", token.Symbol),
		zap.String("chain", chain.InternalID()),
		zap.String("dex", token.DexID))
	metrics.ResolutionsTotal.WithLabelValues("resolved").Inc()
	return token, nil
}

// FetchMap implements the ResolutionService interface. The metadata and image
// fetches have no data dependency on each other, so they run concurrently;
// everything before them has already completed in Resolve.
func (s *resolutionServiceImpl) FetchMap(ctx context.Context, token *entity.ResolvedToken) ([]byte, *entity.RenderError) {
	var (
		holderMeta *entity.HolderMetadata
		image      []byte
		renderErr  *entity.RenderError
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		meta, err := s.metadata.MapMetadata(gctx, token.Chain, token.Address)
		if err != nil {
			// Best-effort: a missing metadata block never degrades the run.
			s.logger.Debug("Holder metadata unavailable",
				zap.String("address", token.Address.String()),
				zap.Error(err))
			return nil
		}
		holderMeta = meta
		return nil
	})

	g.Go(func() error {
		img, fetchErr := s.render.FetchMap(gctx, token.Chain, token.Address)
		if fetchErr != nil {
			renderErr = fetchErr
			return nil
		}
		image = img
		return nil
	})

	// Both goroutines swallow their failures, so Wait cannot return an error.
	_ = g.Wait()

	token.Metadata = holderMeta
	if holderMeta == nil {
		metrics.MetadataMisses.Inc()
	}
	if renderErr != nil {
		metrics.RenderFailuresTotal.WithLabelValues(string(renderErr.Kind)).Inc()
		return nil, renderErr
	}
	return image, nil
}

// selectCanonicalPair picks the single pair that represents the token for
// this request: the pair with the greatest reported 24h volume, first
// occurrence winning ties. When no pair reports a 24h volume at all, the
// provider's first pair is used.
func selectCanonicalPair(pairs []entity.PairData) entity.PairData {
	best := -1
	var bestVolume float64
	for i, pair := range pairs {
		if pair.Volume == nil || pair.Volume.H24 == nil {
			continue
		}
		if best == -1 || *pair.Volume.H24 > bestVolume {
			best = i
			bestVolume = *pair.Volume.H24
		}
	}
	if best == -1 {
		return pairs[0]
	}
	return pairs[best]
}

// AsResolveError extracts the typed resolution failure from an error chain.
func AsResolveError(err error) (*entity.ResolveError, bool) {
	var resolveErr *entity.ResolveError
	if errors.As(err, &resolveErr) {
		return resolveErr, true
	}
	return nil, false
}
