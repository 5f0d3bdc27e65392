package worker

import "fmt"

// PDFGenerationNotifyMessage 是生成结束后推送给前端的通知载荷。
type PDFGenerationNotifyMessage struct {
	Status        string `json:"status"`
	ResumeID      uint   `json:"resume_id"`
	CorrelationID string `json:"correlation_id"`
	ErrorCode     int    `json:"error_code"`
	ErrorMessage  string `json:"error_message"`
}

// NotifyChannel 返回某个用户的 Redis 通知频道名。
// WebSocket 网关按同一约定订阅。
func NotifyChannel(userID uint) string {
	return fmt.Sprintf("user_notify:%d", userID)
}
