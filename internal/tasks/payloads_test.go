package tasks

import (
	"encoding/json"
	"testing"
)

func TestPDFGeneratePayloadTask(t *testing.T) {
	payload := PDFGeneratePayload{ResumeID: 42, CorrelationID: "cid-1"}

	task, err := payload.Task()
	if err != nil {
		t.Fatal(err)
	}
	if task.Type() != TypePDFGenerate {
		t.Fatalf("task type = %q, want %q", task.Type(), TypePDFGenerate)
	}

	// 消费端按同一结构解码。
	var decoded PDFGeneratePayload
	if err := json.Unmarshal(task.Payload(), &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded != payload {
		t.Fatalf("decoded = %+v, want %+v", decoded, payload)
	}
}
