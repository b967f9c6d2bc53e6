package polygon

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"company_backend/internal/domain"
	"company_backend/internal/feature/companies/usecase"
	"company_backend/internal/platform/externalapi/polygon/dto"
	"company_backend/internal/shared/ratelimiter"
)

// maxBodySize caps the aggregates payload read from upstream.
const maxBodySize = 4 << 20

// Client はPolygon外部APIから株価の集計データを取得するMarketDataProvider実装です。
type Client struct {
	cfg     Config
	client  *http.Client
	limiter ratelimiter.RateLimiterInterface
}

// ClientがMarketDataProviderを実装していることをコンパイル時に検証します。
var _ usecase.MarketDataProvider = (*Client)(nil)

// NewClient は指定された設定とHTTPクライアントでClientの新しいインスタンスを生成します。
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{
		cfg:     cfg,
		client:  client,
		limiter: ratelimiter.NewRateLimiter("polygon", cfg.RatePerMinute, time.Minute),
	}
}

// GetAggregates は symbol の from〜to（両端を含む）の集計バーを取得し、
// レスポンス本文をそのまま返します。
// 通信エラー、タイムアウト、HTTP 4xx/5xx、不正なJSON、エラーステータスは domain.ErrUpstreamUnavailable になります。
func (c *Client) GetAggregates(ctx context.Context, symbol string, multiplier int, timespan string, from, to time.Time) (json.RawMessage, error) {
	u := fmt.Sprintf("%s/v2/aggs/ticker/%s/range/%s/%s/%s/%s",
		strings.TrimRight(c.cfg.BaseURL, "/"),
		url.PathEscape(symbol),
		strconv.Itoa(multiplier),
		url.PathEscape(timespan),
		from.Format(openapi_types.DateFormat),
		to.Format(openapi_types.DateFormat),
	)

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: polygon rate limit: %v", domain.ErrUpstreamUnavailable, err)
	}

	// リクエストオブジェクトを作成
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build polygon request: %v", domain.ErrUpstreamUnavailable, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Accept", "application/json")

	// リクエストを実行
	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: polygon request: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: read polygon response: %v", domain.ErrUpstreamUnavailable, err)
	}
	if res.StatusCode >= 400 {
		slog.Warn("polygon returned an error status", "symbol", symbol, "status", res.StatusCode)
		return nil, fmt.Errorf("%w: polygon http %d", domain.ErrUpstreamUnavailable, res.StatusCode)
	}

	// 本文はそのまま返すが、エンベロープだけは検証する
	var envelope dto.AggregatesResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: decode polygon response: %v", domain.ErrUpstreamUnavailable, err)
	}
	if envelope.Failed() {
		return nil, fmt.Errorf("%w: polygon %s: %s", domain.ErrUpstreamUnavailable, envelope.Status, envelope.Reason())
	}
	return json.RawMessage(body), nil
}
