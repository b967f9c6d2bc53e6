// Package handler はtickersフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"company_backend/internal/api"
	"company_backend/internal/feature/tickers/domain/entity"
	"company_backend/internal/feature/tickers/transport/http/dto"
	"company_backend/internal/feature/tickers/usecase"
)

// TickerUsecase はティッカー参照のユースケースインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type TickerUsecase interface {
	List(ctx context.Context, f usecase.ListFilter) ([]entity.Ticker, error)
}

// TickerHandler はティッカーに関するHTTPリクエストを処理します。
type TickerHandler struct {
	uc TickerUsecase
}

// NewTickerHandler は新しい TickerHandler を作成します。
func NewTickerHandler(uc TickerUsecase) *TickerHandler {
	return &TickerHandler{uc: uc}
}

// List はティッカーの一覧を返します。クエリ symbol と exchange（MIC）で絞り込めます。
func (h *TickerHandler) List(c *gin.Context) {
	tickers, err := h.uc.List(c.Request.Context(), usecase.ListFilter{
		Symbol:      c.Query("symbol"),
		ExchangeMIC: c.Query("exchange"),
	})
	if err != nil {
		api.WriteError(c, err)
		return
	}
	out := make([]dto.TickerResponse, 0, len(tickers))
	for _, t := range tickers {
		out = append(out, dto.FromEntity(t))
	}
	c.JSON(http.StatusOK, out)
}
