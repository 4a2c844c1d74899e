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

// maxProviderErrorTextLen caps how long a plain-text provider error may be
// before it is replaced with a generic message.
const maxProviderErrorTextLen = 200

// RenderClient defines the interface for the bubble map rendering service.
type RenderClient interface {
	// FetchMap requests a pre-rendered bubble map image for (chain, address).
	// On failure it returns a *entity.RenderError describing the user-facing
	// flavor of the fault; the caller still delivers the token info text.
	FetchMap(ctx context.Context, chain entity.Chain, address entity.Address) ([]byte, *entity.RenderError)
}

// renderClientImpl is the implementation of RenderClient.
type renderClientImpl struct {
	client  *fasthttp.Client
	baseURL string
	timeout time.Duration
	logger  *zap.Logger
}

// NewRenderClient creates a new instance of renderClientImpl.
func NewRenderClient(baseURL string, timeout time.Duration, logger *zap.Logger) RenderClient {
	return &renderClientImpl{
		client:  &fasthttp.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		logger:  logger.Named("BubblemapsRenderClient"),
	}
}

// FetchMap implements the RenderClient interface.
func (c *renderClientImpl) FetchMap(ctx context.Context, chain entity.Chain, address entity.Address) ([]byte, *entity.RenderError) {
	requestURL := fmt.Sprintf("%s/bubble-map?token=%s&chain=%s", c.baseURL, address.String(), chain.InternalID())

	c.logger.Info("Requesting bubble map image", zap.String("url", requestURL))

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	deadline, ok := ctx.Deadline()
	if ok {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			c.logger.Error("Failed to execute request to rendering service", zap.String("url", requestURL), zap.Error(err))
			return nil, &entity.RenderError{Kind: entity.RenderFailureGeneric, Chain: chain, Cause: err}
		}
	} else {
		if err := c.client.DoTimeout(req, resp, c.timeout); err != nil {
			c.logger.Error("Failed to execute request to rendering service (with default timeout)", zap.String("url", requestURL), zap.Error(err))
			return nil, &entity.RenderError{Kind: entity.RenderFailureGeneric, Chain: chain, Cause: err}
		}
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		renderErr := classifyRenderFailure(chain, resp.StatusCode(), resp.Body())
		c.logger.Warn("Rendering service returned a failure",
			zap.String("url", requestURL),
			zap.Int("statusCode", resp.StatusCode()),
			zap.String("kind", string(renderErr.Kind)))
		return nil, renderErr
	}

	// The body buffer is pooled by fasthttp; copy before releasing.
	image := make([]byte, len(resp.Body()))
	copy(image, resp.Body())

	c.logger.Info("Bubble map image received",
		zap.String("chain", chain.InternalID()),
		zap.Int("imageBytes", len(image)))
	return image, nil
}

// classifyRenderFailure maps a non-success response body onto the user-facing
// failure flavors. A structured {"error": ...} body is inspected for the two
// known conditions; otherwise a short body is surfaced verbatim.
func classifyRenderFailure(chain entity.Chain, statusCode int, body []byte) *entity.RenderError {
	cause := fmt.Errorf("rendering service responded with status %d", statusCode)

	var payload entity.RenderErrorBody
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		switch {
		case strings.Contains(payload.Error, "Map not computed. API key required"):
			return &entity.RenderError{Kind: entity.RenderFailureNoMapData, Chain: chain, Cause: cause}
		case strings.Contains(payload.Error, "Token not found"):
			return &entity.RenderError{Kind: entity.RenderFailureTokenNotFound, Chain: chain, Cause: cause}
		case len(payload.Error) < maxProviderErrorTextLen:
			return &entity.RenderError{Kind: entity.RenderFailureProviderMessage, Chain: chain, ProviderMessage: payload.Error, Cause: cause}
		default:
			return &entity.RenderError{Kind: entity.RenderFailureGeneric, Chain: chain, Cause: cause}
		}
	}

	if text := strings.TrimSpace(string(body)); text != "" && len(text) < maxProviderErrorTextLen {
		return &entity.RenderError{Kind: entity.RenderFailureProviderMessage, Chain: chain, ProviderMessage: text, Cause: cause}
	}
	return &entity.RenderError{Kind: entity.RenderFailureGeneric, Chain: chain, Cause: cause}
}
