// Package adapters はtickersフィーチャーのリポジトリ実装と取り込み元の実装を提供します。
package adapters

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"company_backend/internal/feature/tickers/domain/entity"
	"company_backend/internal/feature/tickers/usecase"
	"company_backend/internal/platform/db"
)

// createBatchSize は一括登録時に1回のINSERTで送るレコード数です。
const createBatchSize = 500

// tickerRepository はTickerRepositoryインターフェースのGORM実装です。
type tickerRepository struct {
	db *gorm.DB
}

var (
	_ usecase.TickerRepository = (*tickerRepository)(nil)
	_ usecase.TickerWriter     = (*tickerRepository)(nil)
)

// NewTickerRepository は指定されたDB接続でtickerRepositoryの新しいインスタンスを生成します。
func NewTickerRepository(db *gorm.DB) *tickerRepository {
	return &tickerRepository{db: db}
}

// List はフィルタに一致するティッカーを取引所付きでシンボル順に返します。
func (r *tickerRepository) List(ctx context.Context, f usecase.ListFilter) ([]entity.Ticker, error) {
	q := r.db.WithContext(ctx).Preload("Exchange")
	if f.Symbol != "" {
		q = q.Where("tickers.symbol = ?", f.Symbol)
	}
	if f.ExchangeMIC != "" {
		q = q.Joins("JOIN exchanges ON exchanges.id = tickers.exchange_id").
			Where("exchanges.mic = ?", f.ExchangeMIC)
	}
	var tickers []entity.Ticker
	if err := q.
		Order("tickers.symbol ASC").
		Order("tickers.created_at ASC").
		Find(&tickers).Error; err != nil {
		return nil, err
	}
	return tickers, nil
}

// FindBySymbol はシンボルでティッカーを取得します。
// シンボルは一意ではないため、最も古いレコードを返します。存在しない場合はdomain.ErrNotFoundを返します。
func (r *tickerRepository) FindBySymbol(ctx context.Context, symbol string) (*entity.Ticker, error) {
	var t entity.Ticker
	if err := r.db.WithContext(ctx).
		Where("symbol = ?", symbol).
		Order("created_at ASC").
		First(&t).Error; err != nil {
		return nil, db.TranslateError(err, "ticker")
	}
	return &t, nil
}

// CreateBatch はティッカーを一括で登録します。関連する取引所は保存しません。
func (r *tickerRepository) CreateBatch(ctx context.Context, tickers []entity.Ticker) error {
	if len(tickers) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		CreateInBatches(&tickers, createBatchSize).Error; err != nil {
		return db.TranslateError(err, "ticker")
	}
	return nil
}
