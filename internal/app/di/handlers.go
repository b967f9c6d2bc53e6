package di

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"company_backend/internal/app/router"
	companyadapters "company_backend/internal/feature/companies/adapters"
	companyhandler "company_backend/internal/feature/companies/transport/handler"
	companyusecase "company_backend/internal/feature/companies/usecase"
	exchangeadapters "company_backend/internal/feature/exchanges/adapters"
	exchangehandler "company_backend/internal/feature/exchanges/transport/handler"
	exchangeusecase "company_backend/internal/feature/exchanges/usecase"
	tickeradapters "company_backend/internal/feature/tickers/adapters"
	tickerhandler "company_backend/internal/feature/tickers/transport/handler"
	tickerusecase "company_backend/internal/feature/tickers/usecase"
	"company_backend/internal/platform/cache"
	"company_backend/internal/platform/db"
	healthhandler "company_backend/internal/platform/http/handler"
)

// Deps are the already-connected infrastructure pieces the handlers are built on.
type Deps struct {
	DB     *gorm.DB
	Redis  *redis.Client // nil when running without a cache
	Cache  *cache.ViewCache
	Market companyusecase.MarketDataProvider
	Loc    *time.Location
	Now    func() time.Time // optional, defaults to time.Now
}

// NewHandlers wires repositories, usecases and handlers for every feature.
func NewHandlers(d Deps) router.Handlers {
	exchangeRepo := exchangeadapters.NewExchangeRepository(d.DB)
	tickerRepo := tickeradapters.NewTickerRepository(d.DB)
	companyRepo := companyadapters.NewCompanyRepository(d.DB)

	companyUC := companyusecase.NewCompanyUsecase(companyRepo, tickerRepo, d.Market, d.Cache,
		companyusecase.WithLocation(d.Loc),
		companyusecase.WithClock(d.Now),
	)

	return router.Handlers{
		Companies: companyhandler.NewCompanyHandler(companyUC),
		Exchanges: exchangehandler.NewExchangeHandler(exchangeusecase.NewExchangeUsecase(exchangeRepo)),
		Tickers:   tickerhandler.NewTickerHandler(tickerusecase.NewTickerUsecase(tickerRepo)),
		Cache:     d.Cache,
		Ready:     healthhandler.Ready(readinessChecks(d.DB, d.Redis)),
	}
}

func readinessChecks(gdb *gorm.DB, rdb *redis.Client) map[string]healthhandler.Check {
	checks := map[string]healthhandler.Check{
		"database": func(ctx context.Context) error {
			return db.Ping(ctx, gdb)
		},
		"cache": nil,
	}
	if rdb != nil {
		checks["cache"] = func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}
	}
	return checks
}

// NewIngestUsecase wires the ticker ingestion against the database and a CSV file.
func NewIngestUsecase(gdb *gorm.DB, csvPath string, skipHeader bool) *tickerusecase.IngestUsecase {
	return tickerusecase.NewIngestUsecase(
		exchangeadapters.NewExchangeRepository(gdb),
		tickeradapters.NewTickerRepository(gdb),
		tickeradapters.NewCSVSource(csvPath, skipHeader),
	)
}

// OpenDatabase opens the configured store.
func OpenDatabase() (*gorm.DB, error) {
	return db.Open(db.LoadConfigFromEnv())
}
