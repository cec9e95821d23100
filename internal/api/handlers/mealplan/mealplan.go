package mealplan

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"pantry-planner/internal/api/handlers"
	"pantry-planner/internal/core/mealplan"
	"pantry-planner/internal/core/recipe"
	"pantry-planner/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Generator 產生菜單
type Generator interface {
	Generate(ctx context.Context, preferences recipe.Preferences) (*mealplan.Result, error)
}

// GenerateRequest 菜單請求，整個 body 可省略
type GenerateRequest struct {
	Preferences recipe.Preferences `json:"preferences"`
}

// GenerateResponse 菜單結果
type GenerateResponse struct {
	VisibleCandidates []recipe.Candidate `json:"visible_candidates"`
	CandidatePoolSize int                `json:"candidate_pool_size"`
}

// Handler 菜單處理器
type Handler struct {
	generator Generator
}

// NewHandler 創建菜單處理器
func NewHandler(generator Generator) *Handler {
	return &Handler{generator: generator}
}

// HandleGenerate 產生排序後的候選食譜
func (h *Handler) HandleGenerate(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")

	var req GenerateRequest
	if c.Request.Body != nil {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			handlers.RespondError(c, common.NewValidationError("invalid request body: "+err.Error()))
			return
		}
		if len(bytes.TrimSpace(body)) > 0 {
			if err := common.ParseJSONBytes(body, &req); err != nil {
				handlers.RespondError(c, common.NewValidationError("invalid request body: "+err.Error()))
				return
			}
		}
	}

	result, err := h.generator.Generate(c.Request.Context(), req.Preferences)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	visible := result.VisibleCandidates
	if visible == nil {
		visible = []recipe.Candidate{}
	}

	scores := make([]int, len(result.Scores))
	for i, sc := range result.Scores {
		scores[i] = sc.Score
	}
	common.LogDebug("菜單分數",
		zap.String("request_id", requestID),
		zap.Ints("scores", scores),
	)

	c.JSON(http.StatusOK, GenerateResponse{
		VisibleCandidates: visible,
		CandidatePoolSize: result.CandidatePoolSize,
	})
}
