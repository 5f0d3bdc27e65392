package tasks

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// TypePDFGenerate 是 PDF 生成任务的队列类型名，生产者与消费者共用。
const TypePDFGenerate = "pdf:generate"

// PDFGeneratePayload 携带一次 PDF 生成所需的信息：
// 目标简历 ID 与贯穿 API、队列、通知的 Correlation ID。
type PDFGeneratePayload struct {
	ResumeID      uint   `json:"resume_id"`
	CorrelationID string `json:"correlation_id"`
}

// Task 将载荷编码为可入队的 asynq 任务。
func (p PDFGeneratePayload) Task() (*asynq.Task, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal pdf task payload: %w", err)
	}
	return asynq.NewTask(TypePDFGenerate, data), nil
}
