package service

import (
	"context"
	"errors"
	"testing"

	"bubblemap_bot/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testHexAddress = "0xc00e94cb662c3520282e6f5717214004a7f26888"

type fakeMarketClient struct {
	pairs []entity.PairData
	err   error
	calls int
}

func (f *fakeMarketClient) SearchPairs(_ context.Context, _ string) ([]entity.PairData, error) {
	f.calls++
	return f.pairs, f.err
}

type fakeMetadataClient struct {
	metadata *entity.HolderMetadata
	err      error
	calls    int
}

func (f *fakeMetadataClient) MapMetadata(_ context.Context, _ entity.Chain, _ entity.Address) (*entity.HolderMetadata, error) {
	f.calls++
	return f.metadata, f.err
}

type fakeRenderClient struct {
	image []byte
	err   *entity.RenderError
	calls int
}

func (f *fakeRenderClient) FetchMap(_ context.Context, _ entity.Chain, _ entity.Address) ([]byte, *entity.RenderError) {
	f.calls++
	return f.image, f.err
}

func newTestService(market *fakeMarketClient, metadata *fakeMetadataClient, render *fakeRenderClient) ResolutionService {
	return NewResolutionService(zap.NewNop(), market, metadata, render)
}

func pairOnChain(chainID string, volumeH24 *float64) entity.PairData {
	return entity.PairData{
		ChainID:   chainID,
		DexID:     "uniswap",
		BaseToken: entity.DEXToken{Name: "Compound", Symbol: "COMP"},
		PriceUsd:  "42.50",
		Volume:    &entity.PairVolume{H24: volumeH24},
	}
}

func TestResolve_InvalidAddress(t *testing.T) {
	market := &fakeMarketClient{}
	svc := newTestService(market, &fakeMetadataClient{}, &fakeRenderClient{})

	_, err := svc.Resolve(context.Background(), "not-an-address")

	require.Error(t, err)
	resolveErr, ok := AsResolveError(err)
	require.True(t, ok)
	assert.Equal(t, entity.ResolveErrInvalidAddress, resolveErr.Code)
	assert.Equal(t, 0, market.calls, "no network call before validation passes")
}

func TestResolve_TokenNotFound(t *testing.T) {
	market := &fakeMarketClient{pairs: nil}
	render := &fakeRenderClient{}
	svc := newTestService(market, &fakeMetadataClient{}, render)

	_, err := svc.Resolve(context.Background(), testHexAddress)

	require.Error(t, err)
	resolveErr, ok := AsResolveError(err)
	require.True(t, ok)
	assert.Equal(t, entity.ResolveErrTokenNotFound, resolveErr.Code)
	assert.Equal(t, "No token information found. Please verify the contract address.", resolveErr.UserMessage())
	assert.Equal(t, 0, render.calls, "no image request for an unresolved token")
}

func TestResolve_SelectsHighestVolumePair(t *testing.T) {
	market := &fakeMarketClient{pairs: []entity.PairData{
		pairOnChain("ethereum", floatPtr(100)),
		pairOnChain("bsc", floatPtr(5000)),
		pairOnChain("polygon", floatPtr(3000)),
	}}
	svc := newTestService(market, &fakeMetadataClient{}, &fakeRenderClient{})

	token, err := svc.Resolve(context.Background(), testHexAddress)

	require.NoError(t, err)
	assert.Equal(t, entity.ChainBSC, token.Chain)
	require.NotNil(t, token.VolumeH24)
	assert.Equal(t, float64(5000), *token.VolumeH24)
}

func TestResolve_VolumeTieKeepsFirstPair(t *testing.T) {
	market := &fakeMarketClient{pairs: []entity.PairData{
		pairOnChain("ethereum", floatPtr(5000)),
		pairOnChain("bsc", floatPtr(5000)),
	}}
	svc := newTestService(market, &fakeMetadataClient{}, &fakeRenderClient{})

	token, err := svc.Resolve(context.Background(), testHexAddress)

	require.NoError(t, err)
	assert.Equal(t, entity.ChainEthereum, token.Chain)
}

func TestResolve_NoVolumeFallsBackToFirstPair(t *testing.T) {
	noVolume := pairOnChain("polygon", nil)
	noVolume.Volume = nil
	market := &fakeMarketClient{pairs: []entity.PairData{
		noVolume,
		pairOnChain("bsc", nil),
	}}
	svc := newTestService(market, &fakeMetadataClient{}, &fakeRenderClient{})

	token, err := svc.Resolve(context.Background(), testHexAddress)

	require.NoError(t, err)
	assert.Equal(t, entity.ChainPolygon, token.Chain)
}

func TestResolve_UnsupportedChain(t *testing.T) {
	market := &fakeMarketClient{pairs: []entity.PairData{
		pairOnChain("osmosis", floatPtr(9000)),
	}}
	svc := newTestService(market, &fakeMetadataClient{}, &fakeRenderClient{})

	_, err := svc.Resolve(context.Background(), testHexAddress)

	require.Error(t, err)
	resolveErr, ok := AsResolveError(err)
	require.True(t, ok)
	assert.Equal(t, entity.ResolveErrUnsupportedChain, resolveErr.Code)
	assert.Equal(t, "Chain osmosis not supported for bubble maps.", resolveErr.UserMessage())
}

func TestResolve_MarketProviderFault(t *testing.T) {
	cause := errors.New("connection refused")
	market := &fakeMarketClient{err: cause}
	svc := newTestService(market, &fakeMetadataClient{}, &fakeRenderClient{})

	_, err := svc.Resolve(context.Background(), testHexAddress)

	require.Error(t, err)
	resolveErr, ok := AsResolveError(err)
	require.True(t, ok)
	assert.Equal(t, entity.ResolveErrMarketProvider, resolveErr.Code)
	assert.ErrorIs(t, err, cause)
}

func TestFetchMap_AttachesMetadataAndImage(t *testing.T) {
	market := &fakeMarketClient{pairs: []entity.PairData{pairOnChain("ethereum", floatPtr(100))}}
	metadata := &fakeMetadataClient{metadata: &entity.HolderMetadata{DecentralisationScore: floatPtr(80)}}
	render := &fakeRenderClient{image: []byte{0x89, 0x50, 0x4e, 0x47}}
	svc := newTestService(market, metadata, render)

	token, err := svc.Resolve(context.Background(), testHexAddress)
	require.NoError(t, err)

	image, renderErr := svc.FetchMap(context.Background(), token)

	require.Nil(t, renderErr)
	assert.Equal(t, render.image, image)
	require.NotNil(t, token.Metadata)
	assert.Equal(t, float64(80), *token.Metadata.DecentralisationScore)
	assert.Equal(t, 1, metadata.calls)
	assert.Equal(t, 1, render.calls)
}

func TestFetchMap_MetadataFailureIsSilent(t *testing.T) {
	market := &fakeMarketClient{pairs: []entity.PairData{pairOnChain("ethereum", floatPtr(100))}}
	metadata := &fakeMetadataClient{err: errors.New("status 500")}
	render := &fakeRenderClient{image: []byte{0x01}}
	svc := newTestService(market, metadata, render)

	token, err := svc.Resolve(context.Background(), testHexAddress)
	require.NoError(t, err)

	image, renderErr := svc.FetchMap(context.Background(), token)

	require.Nil(t, renderErr)
	assert.NotNil(t, image)
	assert.Nil(t, token.Metadata, "a failed metadata fetch leaves the token valid and unenriched")
}

func TestFetchMap_RenderFailurePreservesToken(t *testing.T) {
	market := &fakeMarketClient{pairs: []entity.PairData{pairOnChain("bsc", floatPtr(100))}}
	metadata := &fakeMetadataClient{metadata: &entity.HolderMetadata{}}
	render := &fakeRenderClient{err: &entity.RenderError{Kind: entity.RenderFailureTokenNotFound, Chain: entity.ChainBSC}}
	svc := newTestService(market, metadata, render)

	token, err := svc.Resolve(context.Background(), testHexAddress)
	require.NoError(t, err)

	image, renderErr := svc.FetchMap(context.Background(), token)

	assert.Nil(t, image)
	require.NotNil(t, renderErr)
	assert.Equal(t, "Token not found on Binance Smart Chain.", renderErr.UserMessage())
	assert.NotNil(t, token.Metadata, "metadata survives a render failure")
}
