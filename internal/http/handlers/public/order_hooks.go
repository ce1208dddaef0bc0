package public

import (
	"errors"
	"strconv"
	"strings"

	"github.com/salesreport-next/internal/http/response"
	"github.com/salesreport-next/internal/queue"
	"github.com/salesreport-next/internal/service"

	"github.com/gin-gonic/gin"
)

// StatusChangeRequest 订单状态变更事件载荷
type StatusChangeRequest struct {
	Old string `json:"old"`
	New string `json:"new"`
}

// OrderCreatedHook 订单创建事件
func (h *Handler) OrderCreatedHook(c *gin.Context) {
	h.dispatchOrderSync(c, false)
}

// OrderUpdatedHook 订单更新事件
func (h *Handler) OrderUpdatedHook(c *gin.Context) {
	h.dispatchOrderSync(c, false)
}

// OrderPropsUpdatedHook 订单属性更新事件
func (h *Handler) OrderPropsUpdatedHook(c *gin.Context) {
	h.dispatchOrderSync(c, false)
}

// OrderStatusChangedHook 订单状态变更事件
func (h *Handler) OrderStatusChangedHook(c *gin.Context) {
	var req StatusChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}
	statusChanged := strings.TrimSpace(req.Old) != strings.TrimSpace(req.New)
	h.dispatchOrderSync(c, statusChanged)
}

// dispatchOrderSync 投递或直接执行订单同步。
// 队列可用时走异步任务，否则同步执行。
func (h *Handler) dispatchOrderSync(c *gin.Context, statusChanged bool) {
	rawID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || rawID == 0 {
		respondError(c, response.CodeBadRequest, "订单 ID 无效", nil)
		return
	}
	orderID := uint(rawID)

	if h.QueueClient.Enabled() {
		payload := queue.ReportSyncPayload{OrderID: orderID, StatusChanged: statusChanged}
		if err := h.QueueClient.EnqueueReportSync(payload); err != nil {
			requestLog(c).Warnw("order_hook_enqueue_failed",
				"order_id", orderID,
				"status_changed", statusChanged,
				"error", err,
			)
			respondError(c, response.CodeInternal, "事件投递失败", err)
			return
		}
		response.Success(c, gin.H{"order_id": orderID, "queued": true})
		return
	}

	if err := h.ReportService.SyncOrder(orderID, statusChanged); err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			respondError(c, response.CodeNotFound, "订单不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "同步订单失败", err)
		return
	}

	response.Success(c, gin.H{"order_id": orderID, "queued": false})
}
