package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"resumekit/internal/ai"
	"resumekit/internal/api/middleware"
	"resumekit/internal/resume"
	"resumekit/internal/score"
)

// AIHandler 暴露 AI 文案与评分接口。
type AIHandler struct {
	assistant *ai.Assistant
	logger    *slog.Logger
}

// NewAIHandler 构造 AIHandler。
func NewAIHandler(assistant *ai.Assistant, logger *slog.Logger) *AIHandler {
	return &AIHandler{
		assistant: assistant,
		logger:    logger,
	}
}

// aiRequest 兼容原前端的请求形态：文本走 prompt，结构化数据走 context。
type aiRequest struct {
	Prompt  string          `json:"prompt"`
	Context json.RawMessage `json:"context"`
}

// GenerateSummary 根据简历片段生成职业总结。
func (h *AIHandler) GenerateSummary(c *gin.Context) {
	var req aiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	var sc ai.SummaryContext
	if len(req.Context) > 0 {
		// 宽容解析：畸形 context 按空片段处理，与评分一致。
		_ = json.Unmarshal(req.Context, &sc)
	}

	result, err := h.assistant.GenerateSummary(c.Request.Context(), sc)
	if err != nil {
		h.replyAssistantError(c, "generate summary failed", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// OptimizeContent 将一段简历文本改写为更利于 ATS 的表述。
func (h *AIHandler) OptimizeContent(c *gin.Context) {
	var req aiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if req.Prompt == "" {
		BadRequest(c, "prompt is required")
		return
	}

	result, err := h.assistant.OptimizeContent(c.Request.Context(), req.Prompt)
	if err != nil {
		h.replyAssistantError(c, "optimize content failed", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// CalculateScore 对提交的简历文档做完整度评分。
// 纯函数：不读写存储，畸形输入按空文档计。
func (h *AIHandler) CalculateScore(c *gin.Context) {
	var req aiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	doc := resume.DecodeDocument(req.Context)
	c.JSON(http.StatusOK, score.Score(doc))
}

func (h *AIHandler) replyAssistantError(c *gin.Context, msg string, err error) {
	logger := middleware.LoggerFromContext(c)
	if logger == nil {
		logger = h.logger
	}
	logger.Error(msg, slog.Any("error", err))

	if errors.Is(err, ai.ErrServiceFailure) {
		Error(c, http.StatusBadGateway, "ai service unavailable")
		return
	}
	Internal(c, "internal error")
}
