// Package usecase は企業操作のビジネスロジックを提供します。
// 株価履歴付きの詳細取得とページキャッシュの無効化を含みます。
package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"company_backend/internal/domain"
	"company_backend/internal/feature/companies/domain/entity"
	tickerentity "company_backend/internal/feature/tickers/domain/entity"
)

const (
	// CacheLabel はキャッシュされた企業ページをまとめるラベルです。1回の書き込みで全ページを破棄します。
	CacheLabel = "company-view"

	// detailTimeout は共有された詳細取得の上限時間です。
	detailTimeout = 30 * time.Second

	historyDays       = 7
	historyMultiplier = 1
	historyTimespan   = "day"
)

// ListOptions は一覧のページングを表します。Limitが0の場合は全件を返します。
type ListOptions struct {
	Limit  int
	Offset int
}

// CompanyRepository は企業の永続化層を抽象化します。
// Goの慣習に従い、インターフェースは提供側（adapters）ではなく利用側（usecase）で定義します。
type CompanyRepository interface {
	List(ctx context.Context, opts ListOptions) ([]entity.Company, error)
	Count(ctx context.Context) (int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Company, error)
	Create(ctx context.Context, c *entity.Company) error
	Update(ctx context.Context, c *entity.Company) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TickerFinder はシンボルからティッカーを取得します。
type TickerFinder interface {
	FindBySymbol(ctx context.Context, symbol string) (*tickerentity.Ticker, error)
}

// MarketDataProvider はシンボルの過去の足データを提供元のJSONのまま取得します。
type MarketDataProvider interface {
	GetAggregates(ctx context.Context, symbol string, multiplier int, timespan string, from, to time.Time) (json.RawMessage, error)
}

// CacheInvalidator はラベルに紐づくキャッシュ済みレスポンスをすべて破棄します。
type CacheInvalidator interface {
	Invalidate(ctx context.Context, label string) error
}

// Detail は企業とそのティッカーの直近の株価履歴です。
type Detail struct {
	Company entity.Company
	History json.RawMessage
}

// CreateInput は企業作成時に受け付ける項目です。
type CreateInput struct {
	Name        string
	Description string
	Symbol      string
}

// UpdateInput は部分更新の内容です。nilの項目は変更しません。
type UpdateInput struct {
	Name        *string
	Description *string
	Symbol      *string
}

// Option はCompanyUsecaseの設定を変更します。
type Option func(*CompanyUsecase)

// WithLocation は履歴期間の「今日」を計算するタイムゾーンを設定します。
func WithLocation(loc *time.Location) Option {
	return func(u *CompanyUsecase) {
		if loc != nil {
			u.loc = loc
		}
	}
}

// WithClock はtime.Nowを差し替えます。
func WithClock(now func() time.Time) Option {
	return func(u *CompanyUsecase) {
		if now != nil {
			u.now = now
		}
	}
}

// CompanyUsecase は企業操作のビジネスロジックを提供します。
// 書き込みが成功すると、戻る前にキャッシュ済みの企業ページをすべて破棄します。
type CompanyUsecase struct {
	repo    CompanyRepository
	tickers TickerFinder
	market  MarketDataProvider
	cache   CacheInvalidator

	loc   *time.Location
	now   func() time.Time
	group singleflight.Group
}

// NewCompanyUsecase は新しいCompanyUsecaseを作成します。ページキャッシュを使わない場合cacheはnilで構いません。
func NewCompanyUsecase(repo CompanyRepository, tickers TickerFinder, market MarketDataProvider, cache CacheInvalidator, opts ...Option) *CompanyUsecase {
	u := &CompanyUsecase{
		repo:    repo,
		tickers: tickers,
		market:  market,
		cache:   cache,
		loc:     time.UTC,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// ListAll はティッカー付きで全企業を返します。
func (u *CompanyUsecase) ListAll(ctx context.Context) ([]entity.Company, error) {
	return u.repo.List(ctx, ListOptions{})
}

// List は企業の1ページ分と総件数を返します。
func (u *CompanyUsecase) List(ctx context.Context, opts ListOptions) ([]entity.Company, int64, error) {
	if opts.Limit <= 0 || opts.Offset < 0 {
		return nil, 0, fmt.Errorf("%w: invalid pagination limit=%d offset=%d", domain.ErrValidation, opts.Limit, opts.Offset)
	}
	total, err := u.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	companies, err := u.repo.List(ctx, opts)
	if err != nil {
		return nil, 0, err
	}
	return companies, total, nil
}

// GetDetail は今日を含む直近7日間の日足付きで企業を返します。
// 同じ企業への同時呼び出しは上流へのリクエストを1回に共有します。
// 共有処理は呼び出し元のキャンセルから切り離され、各呼び出し元は自身のctxが終了した時点で離脱します。
func (u *CompanyUsecase) GetDetail(ctx context.Context, id uuid.UUID) (*Detail, error) {
	ch := u.group.DoChan(id.String(), func() (any, error) {
		sharedCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), detailTimeout)
		defer cancel()
		return u.loadDetail(sharedCtx, id)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			slog.Debug("company detail shared with concurrent request", "company_id", id)
		}
		return res.Val.(*Detail), nil
	}
}

func (u *CompanyUsecase) loadDetail(ctx context.Context, id uuid.UUID) (*Detail, error) {
	c, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	from, to := HistoryWindow(u.now(), u.loc)
	history, err := u.market.GetAggregates(ctx, c.Ticker.Symbol, historyMultiplier, historyTimespan, from, to)
	if err != nil {
		slog.Warn("market data unavailable", "company_id", id, "symbol", c.Ticker.Symbol, "error", err)
		return nil, err
	}
	return &Detail{Company: *c, History: history}, nil
}

// HistoryWindow はlocにおけるnowの日付を基準に [今日-7日, 今日] を返します。
func HistoryWindow(now time.Time, loc *time.Location) (from, to time.Time) {
	local := now.In(loc)
	to = time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return to.AddDate(0, 0, -historyDays), to
}

// Create はティッカーを解決して企業を保存し、企業ページのキャッシュを破棄します。
func (u *CompanyUsecase) Create(ctx context.Context, in CreateInput) (*entity.Company, error) {
	if err := validateText(in.Name, in.Description); err != nil {
		return nil, err
	}
	t, err := u.resolveTicker(ctx, in.Symbol)
	if err != nil {
		return nil, err
	}
	c := &entity.Company{
		TickerID:    t.ID,
		Ticker:      *t,
		Name:        in.Name,
		Description: in.Description,
		Status:      domain.StatusActive,
	}
	if err := u.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	u.invalidate(ctx, "create", c.ID)
	return c, nil
}

// Update は部分更新を適用します。シンボルが指定された場合はそのティッカーに紐づけ直します。
func (u *CompanyUsecase) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*entity.Company, error) {
	if err := validateText(deref(in.Name), deref(in.Description)); err != nil {
		return nil, err
	}
	c, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Symbol != nil {
		t, err := u.resolveTicker(ctx, *in.Symbol)
		if err != nil {
			return nil, err
		}
		c.TickerID = t.ID
		c.Ticker = *t
	}
	if in.Name != nil {
		c.Name = *in.Name
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	if err := u.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	u.invalidate(ctx, "update", c.ID)
	return c, nil
}

// Delete は企業を削除し、企業ページのキャッシュを破棄します。
func (u *CompanyUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	if err := u.repo.Delete(ctx, id); err != nil {
		return err
	}
	u.invalidate(ctx, "delete", id)
	return nil
}

func (u *CompanyUsecase) resolveTicker(ctx context.Context, symbol string) (*tickerentity.Ticker, error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return nil, fmt.Errorf("%w: ticker symbol is required", domain.ErrValidation)
	}
	t, err := u.tickers.FindBySymbol(ctx, symbol)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("%w: ticker %q does not exist", domain.ErrValidation, symbol)
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// invalidate は企業ページを破棄します。書き込みは確定済みのため、失敗はログ出力のみ行います。
func (u *CompanyUsecase) invalidate(ctx context.Context, op string, id uuid.UUID) {
	if u.cache == nil {
		return
	}
	if err := u.cache.Invalidate(ctx, CacheLabel); err != nil {
		slog.Error("company cache invalidation failed", "op", op, "company_id", id, "error", err)
	}
}

func validateText(name, description string) error {
	if utf8.RuneCountInString(name) > entity.MaxFieldLength {
		return fmt.Errorf("%w: name exceeds %d characters", domain.ErrValidation, entity.MaxFieldLength)
	}
	if utf8.RuneCountInString(description) > entity.MaxFieldLength {
		return fmt.Errorf("%w: description exceeds %d characters", domain.ErrValidation, entity.MaxFieldLength)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
