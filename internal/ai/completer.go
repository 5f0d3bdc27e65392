package ai

import (
	"context"
	"errors"
)

// Completer 抽象单轮文本补全后端：一条 system 指令加一条 user 消息，返回纯文本。
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// ErrServiceFailure 表示补全后端已配置但调用失败（网络、配额、上游错误）。
// 未配置后端不是错误：助手会静默回退到确定性模板。
var ErrServiceFailure = errors.New("ai completion failed")
