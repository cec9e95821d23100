package inventory

import (
	"context"
	"net/http"
	"time"

	"pantry-planner/internal/api/handlers"
	"pantry-planner/internal/core/inventory"
	"pantry-planner/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// dateLayout 到期日在 API 上只保留日期
const dateLayout = "2006-01-02"

// Service 處理器使用的庫存操作
type Service interface {
	AddItems(ctx context.Context, inputs []inventory.NewItem) ([]inventory.Item, error)
	ListItems(ctx context.Context) ([]inventory.Item, error)
	DeleteItem(ctx context.Context, id string) error
}

// CreateItemRequest 單一新增品項
type CreateItemRequest struct {
	Name     string   `json:"name" binding:"required"`
	Quantity *float64 `json:"quantity" binding:"required,gte=0"`
}

// CreateRequest 批次新增請求
type CreateRequest struct {
	Items []CreateItemRequest `json:"items" binding:"required,dive"`
}

// ItemResponse 品項輸出
type ItemResponse struct {
	ItemID                     string    `json:"item_id"`
	Name                       string    `json:"name"`
	Quantity                   float64   `json:"quantity"`
	CreatedAt                  time.Time `json:"created_at"`
	Location                   string    `json:"location"`
	Category                   string    `json:"category"`
	StorageGuidance            string    `json:"storage_guidance"`
	IsStaple                   bool      `json:"is_staple"`
	Opened                     bool      `json:"opened"`
	ExpirationDateEstimated    *string   `json:"expiration_date_estimated"`
	ExpirationDateUserOverride *string   `json:"expiration_date_user_override"`
	ExpiredFlag                bool      `json:"expired_flag"`
}

// Handler 庫存處理器
type Handler struct {
	service Service
}

// NewHandler 創建庫存處理器
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

// NewItemResponse 轉換為輸出格式
func NewItemResponse(item inventory.Item) ItemResponse {
	return ItemResponse{
		ItemID:                     item.ID,
		Name:                       item.Name,
		Quantity:                   item.Quantity,
		CreatedAt:                  item.CreatedAt,
		Location:                   item.Location,
		Category:                   item.Category,
		StorageGuidance:            item.StorageGuidance,
		IsStaple:                   item.IsStaple,
		Opened:                     item.Opened,
		ExpirationDateEstimated:    formatDate(item.ExpirationDateEstimated),
		ExpirationDateUserOverride: formatDate(item.ExpirationDateUserOverride),
		ExpiredFlag:                item.ExpiredFlag,
	}
}

func toResponses(items []inventory.Item) []ItemResponse {
	out := make([]ItemResponse, len(items))
	for i, item := range items {
		out[i] = NewItemResponse(item)
	}
	return out
}

// HandleCreate 批次新增品項
func (h *Handler) HandleCreate(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlers.RespondError(c, common.NewValidationError(err.Error()))
		return
	}

	inputs := make([]inventory.NewItem, len(req.Items))
	for i, it := range req.Items {
		inputs[i] = inventory.NewItem{Name: it.Name, Quantity: *it.Quantity}
	}

	items, err := h.service.AddItems(c.Request.Context(), inputs)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	common.LogInfo("庫存新增請求完成",
		zap.Int("count", len(items)),
		zap.String("request_id", c.GetHeader("X-Request-ID")),
	)
	c.JSON(http.StatusOK, toResponses(items))
}

// HandleList 列出所有品項
func (h *Handler) HandleList(c *gin.Context) {
	items, err := h.service.ListItems(c.Request.Context())
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponses(items))
}

// HandleDelete 刪除單一品項
func (h *Handler) HandleDelete(c *gin.Context) {
	if err := h.service.DeleteItem(c.Request.Context(), c.Param("id")); err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
