// Package di provides dependency injection factories for creating application components.
package di

import (
	"company_backend/internal/platform/externalapi/polygon"
	infrahttp "company_backend/internal/platform/http"
)

// NewMarket creates a fully configured Polygon client with HTTP client.
func NewMarket() *polygon.Client {
	cfg := polygon.LoadConfig()
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	return polygon.NewClient(cfg, httpClient)
}
