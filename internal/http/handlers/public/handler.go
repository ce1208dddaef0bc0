package public

import "github.com/salesreport-next/internal/provider"

// Handler 公开接口处理器入口
// 说明：该处理器仅用于健康检查与订单事件回调 API。
type Handler struct {
	*provider.Container
}

// New 创建公开接口处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
