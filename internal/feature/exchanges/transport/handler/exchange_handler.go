// Package handler はexchangesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"company_backend/internal/api"
	"company_backend/internal/domain"
	"company_backend/internal/feature/exchanges/domain/entity"
	"company_backend/internal/feature/exchanges/transport/http/dto"
	"company_backend/internal/feature/exchanges/usecase"
)

// ExchangeUsecase は取引所操作のユースケースインターフェースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type ExchangeUsecase interface {
	List(ctx context.Context) ([]entity.Exchange, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Exchange, error)
	Create(ctx context.Context, in usecase.CreateInput) (*entity.Exchange, error)
	Update(ctx context.Context, id uuid.UUID, in usecase.UpdateInput) (*entity.Exchange, error)
}

// ExchangeHandler は取引所に関するHTTPリクエストを処理します。
type ExchangeHandler struct {
	uc ExchangeUsecase
}

// NewExchangeHandler は新しい ExchangeHandler を作成します。
func NewExchangeHandler(uc ExchangeUsecase) *ExchangeHandler {
	return &ExchangeHandler{uc: uc}
}

// List は取引所の一覧を返します。
func (h *ExchangeHandler) List(c *gin.Context) {
	exchanges, err := h.uc.List(c.Request.Context())
	if err != nil {
		api.WriteError(c, err)
		return
	}
	out := make([]dto.ExchangeResponse, 0, len(exchanges))
	for _, e := range exchanges {
		out = append(out, dto.FromEntity(e))
	}
	c.JSON(http.StatusOK, out)
}

// Get はIDで指定された取引所を返します。
func (h *ExchangeHandler) Get(c *gin.Context) {
	id, err := api.PathUUID(c, "id")
	if err != nil {
		api.WriteError(c, err)
		return
	}
	e, err := h.uc.Get(c.Request.Context(), id)
	if err != nil {
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromEntity(*e))
}

// Create は取引所を登録し、201を返します。
func (h *ExchangeHandler) Create(c *gin.Context) {
	var req dto.CreateExchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequest(c, err)
		return
	}
	e, err := h.uc.Create(c.Request.Context(), usecase.CreateInput{
		MIC:         req.MIC,
		Description: req.Description,
		City:        req.City,
		Website:     req.Website,
		Status:      domain.Status(req.Status),
	})
	if err != nil {
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromEntity(*e))
}

// Update は取引所を部分更新します。PUTとPATCHの両方で使用されます。
func (h *ExchangeHandler) Update(c *gin.Context) {
	id, err := api.PathUUID(c, "id")
	if err != nil {
		api.WriteError(c, err)
		return
	}
	var req dto.UpdateExchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequest(c, err)
		return
	}
	in := usecase.UpdateInput{
		MIC:         req.MIC,
		Description: req.Description,
		City:        req.City,
		Website:     req.Website,
	}
	if req.Status != nil {
		s := domain.Status(*req.Status)
		in.Status = &s
	}
	e, err := h.uc.Update(c.Request.Context(), id, in)
	if err != nil {
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromEntity(*e))
}
