package junglescout

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ilkoid/junglescout-go/pkg/config"
)

// Client — клиент Jungle Scout API поверх HTTPSession.
//
// Методы эндпоинтов находятся в content.go.
type Client struct {
	*BaseClient[*HTTPSession]
}

// New создает клиент из конфигурации.
//
// Поля с нулевыми значениями используют дефолты через GetDefaults().
// Сессия создаётся и логинится сразу.
func New(ctx context.Context, cfg config.JungleScoutConfig) (*Client, error) {
	cfg = cfg.GetDefaults()

	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return nil, err
	}

	return NewWithHTTPClient(ctx, cfg, &http.Client{Timeout: timeout})
}

// NewWithHTTPClient создает клиент с заданным транспортом.
// Timeout из cfg в этом случае не применяется.
func NewWithHTTPClient(ctx context.Context, cfg config.JungleScoutConfig, httpClient HTTPClient) (*Client, error) {
	cfg = cfg.GetDefaults()

	apiType, err := ParseApiType(cfg.APIType)
	if err != nil {
		return nil, fmt.Errorf("junglescout.api_type: %w", err)
	}
	marketplace, err := ParseMarketplace(cfg.Marketplace)
	if err != nil {
		return nil, fmt.Errorf("junglescout.marketplace: %w", err)
	}

	base, err := NewBaseClient(ctx,
		Credentials{APIKeyName: cfg.APIKeyName, APIKey: cfg.APIKey},
		HTTPSessionFactory(httpClient),
		WithAPIType(apiType),
		WithMarketplace(marketplace),
		WithBaseURL(cfg.BaseURL),
	)
	if err != nil {
		return nil, err
	}

	return &Client{BaseClient: base}, nil
}
