// Package adapters はcompaniesフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"company_backend/internal/feature/companies/domain/entity"
	"company_backend/internal/feature/companies/usecase"
	"company_backend/internal/platform/db"
)

// companyRepository はCompanyRepositoryインターフェースのGORM実装です。
type companyRepository struct {
	db *gorm.DB
}

var _ usecase.CompanyRepository = (*companyRepository)(nil)

// NewCompanyRepository は指定されたDB接続でcompanyRepositoryの新しいインスタンスを生成します。
func NewCompanyRepository(db *gorm.DB) *companyRepository {
	return &companyRepository{db: db}
}

// List は作成順に企業をティッカー付きで返します。Limit が0の場合は全件を返します。
func (r *companyRepository) List(ctx context.Context, opts usecase.ListOptions) ([]entity.Company, error) {
	q := r.db.WithContext(ctx).
		Preload("Ticker").
		Order("created_at ASC").
		Order("id ASC")
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit).Offset(opts.Offset)
	}
	var companies []entity.Company
	if err := q.Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

// Count は企業の総数を返します。
func (r *companyRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&entity.Company{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// FindByID はIDで企業をティッカー付きで取得します。存在しない場合はdomain.ErrNotFoundを返します。
func (r *companyRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Company, error) {
	var c entity.Company
	if err := r.db.WithContext(ctx).
		Preload("Ticker").
		Where("id = ?", id).
		First(&c).Error; err != nil {
		return nil, db.TranslateError(err, "company")
	}
	return &c, nil
}

// Create は企業を永続化します。関連するティッカーは保存しません。
func (r *companyRepository) Create(ctx context.Context, c *entity.Company) error {
	return db.TranslateError(r.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error, "company")
}

// Update は企業の可変フィールドとティッカーの紐付けを保存します。
func (r *companyRepository) Update(ctx context.Context, c *entity.Company) error {
	res := r.db.WithContext(ctx).
		Model(c).
		Omit(clause.Associations).
		Select("ticker_id", "name", "description", "status", "updated_at").
		Updates(c)
	if res.Error != nil {
		return db.TranslateError(res.Error, "company")
	}
	if res.RowsAffected == 0 {
		return db.TranslateError(gorm.ErrRecordNotFound, "company")
	}
	return nil
}

// Delete は企業を削除します。ティッカーは削除しません。
func (r *companyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Company{})
	if res.Error != nil {
		return db.TranslateError(res.Error, "company")
	}
	if res.RowsAffected == 0 {
		return db.TranslateError(gorm.ErrRecordNotFound, "company")
	}
	return nil
}
