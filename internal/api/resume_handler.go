package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"resumekit/internal/api/middleware"
	"resumekit/internal/database"
	"resumekit/internal/render"
	"resumekit/internal/storage"
	"resumekit/internal/tasks"
)

const downloadLinkTTL = 5 * time.Minute

// ResumeHandler 负责处理与简历相关的 API 请求。
type ResumeHandler struct {
	db          *gorm.DB
	asynqClient *asynq.Client
	storage     *storage.Client
}

// NewResumeHandler 构造 ResumeHandler。
func NewResumeHandler(db *gorm.DB, asynqClient *asynq.Client, storageClient *storage.Client) *ResumeHandler {
	return &ResumeHandler{
		db:          db,
		asynqClient: asynqClient,
		storage:     storageClient,
	}
}

var errInvalidResumeID = errors.New("invalid resume id")

type createResumeRequest struct {
	Title    string         `json:"title" binding:"required,max=255"`
	Template string         `json:"template"`
	Content  datatypes.JSON `json:"content"`
}

type updateResumeRequest struct {
	Title    *string         `json:"title"`
	Template *string         `json:"template"`
	Content  *datatypes.JSON `json:"content"`
}

type resumeListItem struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Template  string    `json:"template"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type resumeResponse struct {
	ID        uint           `json:"id"`
	Title     string         `json:"title"`
	Template  string         `json:"template"`
	Content   datatypes.JSON `json:"content"`
	Status    string         `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func newResumeResponse(r database.Resume) resumeResponse {
	return resumeResponse{
		ID:        r.ID,
		Title:     r.Title,
		Template:  r.Template,
		Content:   r.Content,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// CreateResume 保存一份新的简历。
func (h *ResumeHandler) CreateResume(c *gin.Context) {
	var req createResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	template := req.Template
	if template == "" {
		template = "modern"
	}

	rec := database.Resume{
		Title:    req.Title,
		Template: template,
		Content:  req.Content,
		UserID:   userID,
		Status:   database.ResumeStatusDraft,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&rec).Error; err != nil {
		Internal(c, "failed to create resume")
		return
	}

	c.JSON(http.StatusCreated, newResumeResponse(rec))
}

// ListResumes 列出用户全部简历，按创建时间倒序。
func (h *ResumeHandler) ListResumes(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	ctx := c.Request.Context()
	var resumes []database.Resume
	if err := h.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&resumes).Error; err != nil {
		Internal(c, "failed to list resumes")
		return
	}

	items := make([]resumeListItem, 0, len(resumes))
	for _, r := range resumes {
		items = append(items, resumeListItem{
			ID:        r.ID,
			Title:     r.Title,
			Template:  r.Template,
			Status:    r.Status,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
		})
	}

	c.JSON(http.StatusOK, items)
}

// GetResume 返回指定 ID 的简历。
func (h *ResumeHandler) GetResume(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	rec, err := h.getResumeForUser(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		h.replyResumeLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, newResumeResponse(*rec))
}

// UpdateResume 局部更新标题、模板或内容。
func (h *ResumeHandler) UpdateResume(c *gin.Context) {
	var req updateResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	rec, err := h.getResumeForUser(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		h.replyResumeLookupError(c, err)
		return
	}

	updates := map[string]any{}
	if req.Title != nil {
		if *req.Title == "" {
			BadRequest(c, "title must not be empty")
			return
		}
		updates["title"] = *req.Title
	}
	if req.Template != nil {
		updates["template"] = *req.Template
	}
	if req.Content != nil {
		updates["content"] = *req.Content
	}

	ctx := c.Request.Context()
	if len(updates) > 0 {
		if err := h.db.WithContext(ctx).Model(rec).Updates(updates).Error; err != nil {
			Internal(c, "failed to update resume")
			return
		}
		if err := h.db.WithContext(ctx).First(rec, rec.ID).Error; err != nil {
			Internal(c, "failed to reload resume")
			return
		}
	}

	c.JSON(http.StatusOK, newResumeResponse(*rec))
}

// DeleteResume 删除指定简历及其 PDF 产物。
func (h *ResumeHandler) DeleteResume(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	rec, err := h.getResumeForUser(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		h.replyResumeLookupError(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := h.db.WithContext(ctx).Delete(&database.Resume{}, rec.ID).Error; err != nil {
		Internal(c, "failed to delete resume")
		return
	}

	// 对象删除是幂等的，失败不影响主流程。
	if rec.PdfURL != "" && h.storage != nil {
		_ = h.storage.DeleteObject(ctx, rec.PdfURL)
	}

	c.Status(http.StatusNoContent)
}

// DownloadResume 将 PDF 生成任务入队并立即返回 202。
func (h *ResumeHandler) DownloadResume(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	rec, err := h.getResumeForUser(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		h.replyResumeLookupError(c, err)
		return
	}

	payload := tasks.PDFGeneratePayload{
		ResumeID:      rec.ID,
		CorrelationID: middleware.GetCorrelationID(c),
	}
	task, err := payload.Task()
	if err != nil {
		Internal(c, "failed to create task")
		return
	}

	info, err := h.asynqClient.Enqueue(task, asynq.MaxRetry(5))
	if err != nil {
		Internal(c, "failed to enqueue pdf generation")
		return
	}

	ctx := c.Request.Context()
	if err := h.db.WithContext(ctx).Model(rec).Update("status", database.ResumeStatusGenerating).Error; err != nil {
		Internal(c, "failed to update resume status")
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"message": "PDF generation request accepted",
		"task_id": info.ID,
	})
}

// GetDownloadLink 生成简历 PDF 的预签名下载链接。
func (h *ResumeHandler) GetDownloadLink(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	rec, err := h.getResumeForUser(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		h.replyResumeLookupError(c, err)
		return
	}

	if rec.PdfURL == "" {
		Conflict(c, "pdf not ready")
		return
	}

	filename := render.Filename(rec.Title)
	signedURL, err := h.storage.PresignedDownloadURL(c.Request.Context(), rec.PdfURL, filename, downloadLinkTTL)
	if err != nil {
		Internal(c, "failed to generate download link")
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": signedURL, "filename": filename})
}

func (h *ResumeHandler) replyResumeLookupError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errInvalidResumeID):
		BadRequest(c, "invalid resume id")
	case errors.Is(err, gorm.ErrRecordNotFound):
		NotFound(c, "resume not found")
	default:
		Internal(c, "failed to query resume")
	}
}

// getResumeForUser 按 ID 取回简历，并强制校验归属。
// 他人的简历与不存在的简历同样返回 ErrRecordNotFound。
func (h *ResumeHandler) getResumeForUser(ctx context.Context, idParam string, userID uint) (*database.Resume, error) {
	resumeID, err := strconv.ParseUint(idParam, 10, 64)
	if err != nil {
		return nil, errInvalidResumeID
	}

	var rec database.Resume
	if err := h.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", resumeID, userID).
		First(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func userIDFromContext(c *gin.Context) (uint, bool) {
	value, exists := c.Get("userID")
	if !exists {
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint(v), true
	case uint64:
		return uint(v), true
	case int64:
		if v < 0 {
			return 0, false
		}
		return uint(v), true
	default:
		return 0, false
	}
}
