package client

import (
	"strings"
	"testing"

	"bubblemap_bot/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyRenderFailure_MapNotComputed(t *testing.T) {
	body := []byte(`{"error": "Map not computed. API key required"}`)

	renderErr := classifyRenderFailure(entity.ChainEthereum, 403, body)

	require.NotNil(t, renderErr)
	assert.Equal(t, entity.RenderFailureNoMapData, renderErr.Kind)
	assert.Equal(t, "No bubble map data available for this token.", renderErr.UserMessage())
}

func TestClassifyRenderFailure_TokenNotFound(t *testing.T) {
	body := []byte(`{"error": "Token not found"}`)

	renderErr := classifyRenderFailure(entity.ChainBSC, 404, body)

	require.NotNil(t, renderErr)
	assert.Equal(t, entity.RenderFailureTokenNotFound, renderErr.Kind)
	assert.Equal(t, "Token not found on Binance Smart Chain.", renderErr.UserMessage())
}

func TestClassifyRenderFailure_ShortProviderError(t *testing.T) {
	body := []byte(`{"error": "Chain maintenance in progress"}`)

	renderErr := classifyRenderFailure(entity.ChainEthereum, 503, body)

	require.NotNil(t, renderErr)
	assert.Equal(t, entity.RenderFailureProviderMessage, renderErr.Kind)
	assert.Equal(t, "Chain maintenance in progress", renderErr.UserMessage())
}

func TestClassifyRenderFailure_ShortPlainText(t *testing.T) {
	renderErr := classifyRenderFailure(entity.ChainEthereum, 502, []byte("upstream unavailable"))

	require.NotNil(t, renderErr)
	assert.Equal(t, entity.RenderFailureProviderMessage, renderErr.Kind)
	assert.Equal(t, "upstream unavailable", renderErr.UserMessage())
}

func TestClassifyRenderFailure_LongBodyIsGeneric(t *testing.T) {
	longText := strings.Repeat("x", 500)

	renderErr := classifyRenderFailure(entity.ChainEthereum, 500, []byte(longText))

	require.NotNil(t, renderErr)
	assert.Equal(t, entity.RenderFailureGeneric, renderErr.Kind)
	assert.Equal(t, "Error generating bubble map.", renderErr.UserMessage())
}

func TestClassifyRenderFailure_EmptyBodyIsGeneric(t *testing.T) {
	renderErr := classifyRenderFailure(entity.ChainEthereum, 500, nil)

	require.NotNil(t, renderErr)
	assert.Equal(t, entity.RenderFailureGeneric, renderErr.Kind)
}
