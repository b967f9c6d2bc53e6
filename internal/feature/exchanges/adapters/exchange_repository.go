// Package adapters はexchangesフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"company_backend/internal/feature/exchanges/domain/entity"
	"company_backend/internal/feature/exchanges/usecase"
	"company_backend/internal/platform/db"
)

// exchangeRepository はExchangeRepositoryインターフェースのGORM実装です。
type exchangeRepository struct {
	db *gorm.DB
}

var _ usecase.ExchangeRepository = (*exchangeRepository)(nil)

// NewExchangeRepository は指定されたDB接続でexchangeRepositoryの新しいインスタンスを生成します。
func NewExchangeRepository(db *gorm.DB) *exchangeRepository {
	return &exchangeRepository{db: db}
}

// List はMIC順にすべての取引所を返します。
func (r *exchangeRepository) List(ctx context.Context) ([]entity.Exchange, error) {
	var exchanges []entity.Exchange
	if err := r.db.WithContext(ctx).
		Order("mic ASC").
		Order("created_at ASC").
		Find(&exchanges).Error; err != nil {
		return nil, err
	}
	return exchanges, nil
}

// FindByID はIDで取引所を取得します。存在しない場合はdomain.ErrNotFoundを返します。
func (r *exchangeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Exchange, error) {
	var e entity.Exchange
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&e).Error; err != nil {
		return nil, db.TranslateError(err, "exchange")
	}
	return &e, nil
}

// FindByMIC はMICで取引所を取得します。
// MICは一意ではないため、最も古いレコードを返します。
func (r *exchangeRepository) FindByMIC(ctx context.Context, mic string) (*entity.Exchange, error) {
	var e entity.Exchange
	if err := r.db.WithContext(ctx).
		Where("mic = ?", mic).
		Order("created_at ASC").
		First(&e).Error; err != nil {
		return nil, db.TranslateError(err, "exchange")
	}
	return &e, nil
}

// Create は取引所を永続化します。
func (r *exchangeRepository) Create(ctx context.Context, e *entity.Exchange) error {
	return db.TranslateError(r.db.WithContext(ctx).Create(e).Error, "exchange")
}

// Update は取引所の全フィールドを保存します。
func (r *exchangeRepository) Update(ctx context.Context, e *entity.Exchange) error {
	res := r.db.WithContext(ctx).
		Model(e).
		Select("mic", "description", "city", "website", "status", "updated_at").
		Updates(e)
	if res.Error != nil {
		return db.TranslateError(res.Error, "exchange")
	}
	if res.RowsAffected == 0 {
		return db.TranslateError(gorm.ErrRecordNotFound, "exchange")
	}
	return nil
}

// Delete は取引所を削除します。
// 外部キーのON DELETE CASCADEにより、所属するティッカーと企業も削除されます。
func (r *exchangeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Exchange{})
	if res.Error != nil {
		return db.TranslateError(res.Error, "exchange")
	}
	if res.RowsAffected == 0 {
		return db.TranslateError(gorm.ErrRecordNotFound, "exchange")
	}
	return nil
}

// DeleteByMIC はMICが一致するすべての取引所を削除し、削除件数を返します。
// 一致する取引所がなくてもエラーにはなりません。
func (r *exchangeRepository) DeleteByMIC(ctx context.Context, mic string) (int64, error) {
	res := r.db.WithContext(ctx).Where("mic = ?", mic).Delete(&entity.Exchange{})
	if res.Error != nil {
		return 0, db.TranslateError(res.Error, "exchange")
	}
	return res.RowsAffected, nil
}
