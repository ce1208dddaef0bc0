package admin

import (
	"errors"

	"github.com/salesreport-next/internal/http/response"
	"github.com/salesreport-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CheckUpdates 检查是否有新版本
func (h *Handler) CheckUpdates(c *gin.Context) {
	force := c.Query("force") == "1" || c.Query("force") == "true"

	info, err := h.UpdateChecker.Check(c.Request.Context(), force)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUpdaterNotConfigured):
			respondError(c, response.CodeBadRequest, "未配置更新检查仓库", nil)
		case errors.Is(err, service.ErrUpdateCheckFailed):
			respondError(c, response.CodeInternal, "版本检查请求失败", err)
		default:
			respondError(c, response.CodeInternal, "版本检查失败", err)
		}
		return
	}

	response.Success(c, info)
}
