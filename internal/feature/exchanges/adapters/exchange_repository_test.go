package adapters

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"company_backend/internal/domain"
	"company_backend/internal/feature/exchanges/domain/entity"
	tickerentity "company_backend/internal/feature/tickers/domain/entity"
	"company_backend/internal/platform/db/dbtest"
)

// seedExchange はテスト用の取引所データをデータベースに作成します。
func seedExchange(t *testing.T, db *gorm.DB, mic, description string) *entity.Exchange {
	t.Helper()

	e := &entity.Exchange{MIC: mic, Description: description}
	require.NoError(t, db.Create(e).Error, "failed to seed exchange")
	return e
}

// TestNewExchangeRepository はコンストラクタが正しくインスタンスを生成することを検証します。
func TestNewExchangeRepository(t *testing.T) {
	t.Parallel()

	db := dbtest.Open(t)
	repo := NewExchangeRepository(db)

	assert.NotNil(t, repo)
	assert.NotNil(t, repo.db)
}

// TestExchangeRepository_CreateAssignsDefaults は作成時にUUIDとactiveステータスが付与されることを検証します。
func TestExchangeRepository_CreateAssignsDefaults(t *testing.T) {
	t.Parallel()

	repo := NewExchangeRepository(dbtest.Open(t))
	e := &entity.Exchange{
		MIC:         "XNY",
		Description: "New York Stock Exchange",
		City:        "New York City",
		Website:     "https://www.nyse.com/",
	}

	require.NoError(t, repo.Create(context.Background(), e))

	assert.NotEqual(t, uuid.Nil, e.ID)
	assert.Equal(t, domain.StatusActive, e.Status)
	assert.False(t, e.CreatedAt.IsZero())
	assert.Equal(t, "XNY - New York Stock Exchange", e.String())

	got, err := repo.FindByID(context.Background(), e.ID)
	require.NoError(t, err)
	assert.Equal(t, "XNY", got.MIC)
	assert.Equal(t, "New York City", got.City)
	assert.Equal(t, "https://www.nyse.com/", got.Website)
}

// TestExchangeRepository_FindByID_NotFound は存在しないIDでErrNotFoundが返ることを検証します。
func TestExchangeRepository_FindByID_NotFound(t *testing.T) {
	t.Parallel()

	repo := NewExchangeRepository(dbtest.Open(t))

	_, err := repo.FindByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestExchangeRepository_FindByMIC はMICが重複する場合に最も古いレコードが返ることを検証します。
func TestExchangeRepository_FindByMIC(t *testing.T) {
	t.Parallel()

	db := dbtest.Open(t)
	repo := NewExchangeRepository(db)

	first := seedExchange(t, db, "XNY", "first")
	seedExchange(t, db, "XNY", "second")
	seedExchange(t, db, "XNAS", "nasdaq")

	got, err := repo.FindByMIC(context.Background(), "XNY")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)

	_, err = repo.FindByMIC(context.Background(), "XLON")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestExchangeRepository_List はMIC順に一覧が返ることを検証します。
func TestExchangeRepository_List(t *testing.T) {
	t.Parallel()

	db := dbtest.Open(t)
	repo := NewExchangeRepository(db)

	seedExchange(t, db, "XNY", "")
	seedExchange(t, db, "XASE", "")
	seedExchange(t, db, "XNAS", "")

	exchanges, err := repo.List(context.Background())
	require.NoError(t, err)

	mics := make([]string, 0, len(exchanges))
	for _, e := range exchanges {
		mics = append(mics, e.MIC)
	}
	assert.Equal(t, []string{"XASE", "XNAS", "XNY"}, mics)
}

// TestExchangeRepository_Update は更新が永続化されることを検証します。
func TestExchangeRepository_Update(t *testing.T) {
	t.Parallel()

	db := dbtest.Open(t)
	repo := NewExchangeRepository(db)
	e := seedExchange(t, db, "XNY", "New York Stock Exchange")

	e.MIC = "XNYY"
	e.Description = "Updated New York Stock Exchange"
	e.Status = domain.StatusDisabled
	require.NoError(t, repo.Update(context.Background(), e))

	got, err := repo.FindByID(context.Background(), e.ID)
	require.NoError(t, err)
	assert.Equal(t, "XNYY", got.MIC)
	assert.Equal(t, "Updated New York Stock Exchange", got.Description)
	assert.Equal(t, domain.StatusDisabled, got.Status)
}

// TestExchangeRepository_Update_NotFound は存在しない取引所の更新でErrNotFoundが返ることを検証します。
func TestExchangeRepository_Update_NotFound(t *testing.T) {
	t.Parallel()

	repo := NewExchangeRepository(dbtest.Open(t))

	err := repo.Update(context.Background(), &entity.Exchange{ID: uuid.New(), MIC: "XNY"})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestExchangeRepository_Delete_CascadesToTickers は取引所の削除で所属ティッカーも削除されることを検証します。
func TestExchangeRepository_Delete_CascadesToTickers(t *testing.T) {
	t.Parallel()

	db := dbtest.Open(t)
	repo := NewExchangeRepository(db)
	keep := seedExchange(t, db, "XNAS", "")
	drop := seedExchange(t, db, "XNY", "")

	require.NoError(t, db.Create(&tickerentity.Ticker{ExchangeID: drop.ID, Symbol: "ACME"}).Error)
	require.NoError(t, db.Create(&tickerentity.Ticker{ExchangeID: drop.ID, Symbol: "WIDG"}).Error)
	require.NoError(t, db.Create(&tickerentity.Ticker{ExchangeID: keep.ID, Symbol: "KEEP"}).Error)

	require.NoError(t, repo.Delete(context.Background(), drop.ID))

	var symbols []string
	require.NoError(t, db.Model(&tickerentity.Ticker{}).Pluck("symbol", &symbols).Error)
	assert.Equal(t, []string{"KEEP"}, symbols)

	assert.ErrorIs(t, repo.Delete(context.Background(), drop.ID), domain.ErrNotFound)
}

// TestExchangeRepository_DeleteByMIC は同じMICの取引所がすべて削除され、所属ティッカーも削除されることを検証します。
func TestExchangeRepository_DeleteByMIC(t *testing.T) {
	t.Parallel()

	db := dbtest.Open(t)
	repo := NewExchangeRepository(db)
	first := seedExchange(t, db, "XNY", "first")
	second := seedExchange(t, db, "XNY", "duplicate")
	keep := seedExchange(t, db, "XNAS", "")

	require.NoError(t, db.Create(&tickerentity.Ticker{ExchangeID: first.ID, Symbol: "ACME"}).Error)
	require.NoError(t, db.Create(&tickerentity.Ticker{ExchangeID: second.ID, Symbol: "WIDG"}).Error)
	require.NoError(t, db.Create(&tickerentity.Ticker{ExchangeID: keep.ID, Symbol: "KEEP"}).Error)

	n, err := repo.DeleteByMIC(context.Background(), "XNY")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	_, err = repo.FindByMIC(context.Background(), "XNY")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	var symbols []string
	require.NoError(t, db.Model(&tickerentity.Ticker{}).Pluck("symbol", &symbols).Error)
	assert.Equal(t, []string{"KEEP"}, symbols)

	n, err = repo.DeleteByMIC(context.Background(), "XNY")
	require.NoError(t, err)
	assert.Zero(t, n)
}
