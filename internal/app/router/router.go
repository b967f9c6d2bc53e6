// Package router assembles the HTTP routes.
package router

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	companyhandler "company_backend/internal/feature/companies/transport/handler"
	companyusecase "company_backend/internal/feature/companies/usecase"
	exchangehandler "company_backend/internal/feature/exchanges/transport/handler"
	tickerhandler "company_backend/internal/feature/tickers/transport/handler"
	"company_backend/internal/platform/cache"
	healthhandler "company_backend/internal/platform/http/handler"
	"company_backend/internal/platform/http/middleware"
	jwtmw "company_backend/internal/platform/jwt"
)

const (
	// EnvKeyLegacyRoutes enables the /companies/delete/ and /companies/update/ aliases.
	EnvKeyLegacyRoutes = "COMPANY_LEGACY_ROUTES"

	// EnvKeyCORSOrigins is a comma separated list of browser origins allowed to call the API.
	EnvKeyCORSOrigins = "CORS_ALLOWED_ORIGINS"
)

// Handlers groups everything the routes dispatch to.
type Handlers struct {
	Companies *companyhandler.CompanyHandler
	Exchanges *exchangehandler.ExchangeHandler
	Tickers   *tickerhandler.TickerHandler
	Cache     *cache.ViewCache // may be disabled
	Ready     gin.HandlerFunc
}

// Options toggles the optional parts of the route table.
type Options struct {
	JWTSecret    string // empty leaves write routes open
	LegacyRoutes bool
	CORSOrigins  []string // empty disables CORS headers
}

// LoadOptions reads JWT_SECRET and COMPANY_LEGACY_ROUTES.
func LoadOptions() Options {
	return Options{
		JWTSecret:    jwtmw.LoadSecret(),
		LegacyRoutes: os.Getenv(EnvKeyLegacyRoutes) == "true",
		CORSOrigins:  splitOrigins(os.Getenv(EnvKeyCORSOrigins)),
	}
}

func splitOrigins(v string) []string {
	var out []string
	for _, o := range strings.Split(v, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(h Handlers, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog())
	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  opts.CORSOrigins,
			AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.HeaderRequestID},
			ExposeHeaders: []string{middleware.HeaderRequestID, cache.HeaderCacheStatus},
			MaxAge:        12 * time.Hour,
		}))
	}

	// 導通確認用
	r.GET("/healthz", healthhandler.Health)
	r.HEAD("/healthz", healthhandler.Health)
	if h.Ready != nil {
		r.GET("/readyz", h.Ready)
	}

	// 書き込み系ルート。JWT_SECRET が設定されていれば Bearer トークン必須
	write := r.Group("/")
	if opts.JWTSecret != "" {
		write.Use(jwtmw.AuthRequired(opts.JWTSecret))
	} else {
		slog.Warn("JWT_SECRET is not set; write endpoints are unauthenticated")
	}

	// 企業
	r.GET("/companies/", h.Companies.List)
	r.GET("/companies/all/", cache.Page(h.Cache, companyusecase.CacheLabel), h.Companies.ListAll)
	r.GET("/companies/:id/", cache.Page(h.Cache, companyusecase.CacheLabel), h.Companies.Get)
	write.POST("/companies/", h.Companies.Create)
	write.PUT("/companies/:id/", h.Companies.Replace)
	write.PATCH("/companies/:id/", h.Companies.Patch)
	write.DELETE("/companies/:id/", h.Companies.Delete)
	if opts.LegacyRoutes {
		write.DELETE("/companies/delete/:id/", h.Companies.Delete)
		write.PUT("/companies/update/:id/", h.Companies.Patch)
	}

	// 取引所
	r.GET("/exchanges/", h.Exchanges.List)
	r.GET("/exchanges/:id/", h.Exchanges.Get)
	write.POST("/exchanges/", h.Exchanges.Create)
	write.PUT("/exchanges/:id/", h.Exchanges.Update)
	write.PATCH("/exchanges/:id/", h.Exchanges.Update)

	// ティッカー（参照のみ）
	r.GET("/tickers/", h.Tickers.List)

	return r
}
