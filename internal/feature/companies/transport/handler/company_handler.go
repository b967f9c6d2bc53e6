// Package handler はcompaniesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"company_backend/internal/api"
	"company_backend/internal/feature/companies/domain/entity"
	"company_backend/internal/feature/companies/transport/http/dto"
	"company_backend/internal/feature/companies/usecase"
)

// maxPageSize は1ページで返す企業数の上限です。
const maxPageSize = 100

var errTickerRequired = errors.New("ticker is required")

// CompanyUsecase は企業操作のユースケースインターフェースです。
// Goの慣習に従い、インターフェースは提供側（usecase）ではなく利用側（handler）で定義します。
type CompanyUsecase interface {
	ListAll(ctx context.Context) ([]entity.Company, error)
	List(ctx context.Context, opts usecase.ListOptions) ([]entity.Company, int64, error)
	GetDetail(ctx context.Context, id uuid.UUID) (*usecase.Detail, error)
	Create(ctx context.Context, in usecase.CreateInput) (*entity.Company, error)
	Update(ctx context.Context, id uuid.UUID, in usecase.UpdateInput) (*entity.Company, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CompanyHandler は企業に関するHTTPリクエストを処理します。
type CompanyHandler struct {
	uc CompanyUsecase
}

// NewCompanyHandler は新しい CompanyHandler を作成します。
func NewCompanyHandler(uc CompanyUsecase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

// List は企業の一覧を返します。
// limit が指定された場合は {count, next, previous, results} 形式でページングし、
// 指定がなければ配列をそのまま返します。
func (h *CompanyHandler) List(c *gin.Context) {
	limit, offset, paged, err := api.LimitOffset(c, maxPageSize)
	if err != nil {
		api.WriteError(c, err)
		return
	}
	if !paged {
		h.ListAll(c)
		return
	}
	companies, total, err := h.uc.List(c.Request.Context(), usecase.ListOptions{Limit: limit, Offset: offset})
	if err != nil {
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.NewPage(c.Request, toResponses(companies), total, limit, offset))
}

// ListAll はすべての企業を配列で返します。
func (h *CompanyHandler) ListAll(c *gin.Context) {
	companies, err := h.uc.ListAll(c.Request.Context())
	if err != nil {
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponses(companies))
}

// Get は企業の詳細を直近の株価履歴付きで返します。
func (h *CompanyHandler) Get(c *gin.Context) {
	id, err := api.PathUUID(c, "id")
	if err != nil {
		api.WriteError(c, err)
		return
	}
	d, err := h.uc.GetDetail(c.Request.Context(), id)
	if err != nil {
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromDetail(*d))
}

// Create は企業を登録し、201を返します。
func (h *CompanyHandler) Create(c *gin.Context) {
	var req dto.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequest(c, err)
		return
	}
	co, err := h.uc.Create(c.Request.Context(), usecase.CreateInput{
		Name:        req.Name,
		Description: req.Description,
		Symbol:      req.Ticker.Symbol,
	})
	if err != nil {
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromEntity(*co))
}

// Replace はPUTによる更新です。ticker の指定が必須です。
func (h *CompanyHandler) Replace(c *gin.Context) {
	h.update(c, true)
}

// Patch はPATCHによる部分更新です。
func (h *CompanyHandler) Patch(c *gin.Context) {
	h.update(c, false)
}

func (h *CompanyHandler) update(c *gin.Context, requireTicker bool) {
	id, err := api.PathUUID(c, "id")
	if err != nil {
		api.WriteError(c, err)
		return
	}
	var req dto.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequest(c, err)
		return
	}
	if requireTicker && req.Ticker == nil {
		api.BadRequest(c, errTickerRequired)
		return
	}
	in := usecase.UpdateInput{Name: req.Name, Description: req.Description}
	if req.Ticker != nil {
		in.Symbol = &req.Ticker.Symbol
	}
	co, err := h.uc.Update(c.Request.Context(), id, in)
	if err != nil {
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromEntity(*co))
}

// Delete は企業を削除し、204を返します。
func (h *CompanyHandler) Delete(c *gin.Context) {
	id, err := api.PathUUID(c, "id")
	if err != nil {
		api.WriteError(c, err)
		return
	}
	if err := h.uc.Delete(c.Request.Context(), id); err != nil {
		api.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func toResponses(companies []entity.Company) []dto.CompanyResponse {
	out := make([]dto.CompanyResponse, 0, len(companies))
	for _, co := range companies {
		out = append(out, dto.FromEntity(co))
	}
	return out
}
