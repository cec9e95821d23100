// Package handlers 提供 HTTP 處理器共用的錯誤響應
package handlers

import (
	"context"
	"errors"
	"net/http"

	"pantry-planner/internal/core/inventory"
	"pantry-planner/internal/core/recipe"
	"pantry-planner/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ClassifyError 將領域錯誤對應到 API 錯誤
func ClassifyError(err error) *common.CustomError {
	if ce, ok := common.AsCustomError(err); ok {
		return ce
	}

	switch {
	case common.IsValidationError(err):
		return common.ErrInvalidRequest.Wrap(err)
	case errors.Is(err, inventory.ErrItemNotFound):
		return common.ErrNotFound.Wrap(err)
	case errors.Is(err, recipe.ErrProviderUnavailable):
		return common.ErrProviderUnavailable.Wrap(err)
	case errors.Is(err, context.DeadlineExceeded):
		return common.ErrGatewayTimeout.Wrap(err)
	default:
		return common.ErrInternalError.Wrap(err)
	}
}

// RespondError 寫入錯誤響應；5xx 不回傳內部細節
func RespondError(c *gin.Context, err error) {
	ce := ClassifyError(err)

	fields := []zap.Field{
		zap.String("code", ce.Code),
		zap.Int("status", ce.Status),
		zap.String("path", c.Request.URL.Path),
		zap.String("request_id", c.GetHeader("X-Request-ID")),
		zap.Error(err),
	}
	if ce.Status >= http.StatusInternalServerError {
		common.LogError("請求處理失敗", fields...)
	} else {
		common.LogWarn("請求被拒絕", fields...)
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(ce.Status, ce.Response(ce.Status < http.StatusInternalServerError))
}
