package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"company_backend/internal/domain"
	exchangeentity "company_backend/internal/feature/exchanges/domain/entity"
	"company_backend/internal/feature/tickers/domain/entity"
)

// ExchangeStore は取り込み対象の取引所を検索・作成・削除するインターフェイスです。
type ExchangeStore interface {
	FindByMIC(ctx context.Context, mic string) (*exchangeentity.Exchange, error)
	Create(ctx context.Context, e *exchangeentity.Exchange) error
	DeleteByMIC(ctx context.Context, mic string) (int64, error)
}

// TickerWriter はティッカーを一括で永続化するインターフェイスです。
type TickerWriter interface {
	CreateBatch(ctx context.Context, tickers []entity.Ticker) error
}

// TickerSource は取り込み元のレコード（会社名, シンボル）を返すインターフェイスです。
// CSVファイルなど外部の実装を抽象化します。
type TickerSource interface {
	Records(ctx context.Context) ([][]string, error)
}

// IngestOptions は取り込み処理の挙動を制御します。
type IngestOptions struct {
	// Reset が true の場合、既存の取引所を削除（ティッカーと会社もカスケード削除）してから取り込みます。
	Reset bool
}

// IngestResult は取引所ごとの取り込み結果です。
type IngestResult struct {
	MIC             string
	ExchangeID      uuid.UUID
	ExchangeCreated bool
	Processed       int
	Skipped         int
}

// IngestUsecase は外部ソースからティッカーを読み込み、取引所ごとに登録するユースケースです。
type IngestUsecase struct {
	exchanges ExchangeStore
	tickers   TickerWriter
	source    TickerSource
}

// NewIngestUsecase は新しい IngestUsecase を作成します。
func NewIngestUsecase(exchanges ExchangeStore, tickers TickerWriter, source TickerSource) *IngestUsecase {
	return &IngestUsecase{exchanges: exchanges, tickers: tickers, source: source}
}

// SplitMICs はコマンド引数をMICのリストに分解します。
// 引数はスペース区切りでもカンマ区切りでもよく、空要素は無視されます。
func SplitMICs(args []string) []string {
	var mics []string
	for _, a := range args {
		for _, m := range strings.FieldsFunc(a, func(r rune) bool {
			return r == ',' || unicode.IsSpace(r)
		}) {
			mics = append(mics, m)
		}
	}
	return mics
}

// Ingest は指定された各MICについて取引所を確保し、ソースの全レコードをティッカーとして登録します。
// 最初に発生したストアまたはソースのエラーで処理を中断します。
func (iu *IngestUsecase) Ingest(ctx context.Context, mics []string, opts IngestOptions) ([]IngestResult, error) {
	if len(mics) == 0 {
		return nil, fmt.Errorf("%w: at least one exchange MIC is required", domain.ErrValidation)
	}
	results := make([]IngestResult, 0, len(mics))
	for _, mic := range mics {
		res, err := iu.ingestOne(ctx, mic, opts)
		if err != nil {
			return results, fmt.Errorf("ingest %s: %w", mic, err)
		}
		slog.Info("successfully finished extracting tickers",
			"mic", mic, "processed", res.Processed, "skipped", res.Skipped)
		results = append(results, res)
	}
	return results, nil
}

func (iu *IngestUsecase) ingestOne(ctx context.Context, mic string, opts IngestOptions) (IngestResult, error) {
	res := IngestResult{MIC: mic}

	ex, created, err := iu.ensureExchange(ctx, mic, opts.Reset)
	if err != nil {
		return res, err
	}
	res.ExchangeID = ex.ID
	res.ExchangeCreated = created

	records, err := iu.source.Records(ctx)
	if err != nil {
		return res, err
	}

	tickers := make([]entity.Ticker, 0, len(records))
	for i, rec := range records {
		t, ok := tickerFromRecord(rec)
		if !ok {
			slog.Warn("skipping malformed ticker record", "mic", mic, "line", i+1, "record", rec)
			res.Skipped++
			continue
		}
		t.ExchangeID = ex.ID
		tickers = append(tickers, t)
	}
	if err := iu.tickers.CreateBatch(ctx, tickers); err != nil {
		return res, err
	}
	res.Processed = len(tickers)
	return res, nil
}

// ensureExchange はMICに対応する取引所を返します。存在しなければ警告を出して作成します。
// resetが指定された場合は同じMICの取引所をすべて削除してから作り直します。
func (iu *IngestUsecase) ensureExchange(ctx context.Context, mic string, reset bool) (*exchangeentity.Exchange, bool, error) {
	if reset {
		n, err := iu.exchanges.DeleteByMIC(ctx, mic)
		if err != nil {
			return nil, false, err
		}
		if n > 0 {
			slog.Warn("reset exchanges, their tickers and companies were deleted", "mic", mic, "deleted", n)
		} else {
			slog.Warn("exchange does not exist, creating", "mic", mic)
		}
		return iu.createExchange(ctx, mic)
	}

	existing, err := iu.exchanges.FindByMIC(ctx, mic)
	switch {
	case err == nil:
		return existing, false, nil
	case errors.Is(err, domain.ErrNotFound):
		slog.Warn("exchange does not exist, creating", "mic", mic)
		return iu.createExchange(ctx, mic)
	default:
		return nil, false, err
	}
}

func (iu *IngestUsecase) createExchange(ctx context.Context, mic string) (*exchangeentity.Exchange, bool, error) {
	ex := &exchangeentity.Exchange{MIC: mic, Status: domain.StatusActive}
	if err := iu.exchanges.Create(ctx, ex); err != nil {
		return nil, false, err
	}
	return ex, true, nil
}

// tickerFromRecord は1レコードをティッカーに変換します。
// 会社名とシンボルはそれぞれ先頭50文字に切り詰め、シンボルは前後の空白を除去します。
func tickerFromRecord(rec []string) (entity.Ticker, bool) {
	if len(rec) < 2 {
		return entity.Ticker{}, false
	}
	symbol := strings.TrimSpace(truncate(rec[1], entity.MaxFieldLength))
	if symbol == "" {
		return entity.Ticker{}, false
	}
	return entity.Ticker{
		CompanyName: truncate(rec[0], entity.MaxFieldLength),
		Symbol:      symbol,
		Status:      domain.StatusActive,
	}, true
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
