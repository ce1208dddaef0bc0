package worker

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/salesreport-next/internal/logger"
	"github.com/salesreport-next/internal/provider"
	"github.com/salesreport-next/internal/queue"
	"github.com/salesreport-next/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskReportSync, c.handleReportSync)
}

func (c *Consumer) handleReportSync(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_report_sync_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.ReportSyncPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_report_sync_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_report_sync_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	if c.ReportService == nil {
		logger.Warnw("worker_report_sync_skip_report_service_nil", "order_id", payload.OrderID)
		return nil
	}
	if err := c.ReportService.SyncOrder(payload.OrderID, payload.StatusChanged); err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			logger.Debugw("worker_report_sync_skip_order_not_found", "order_id", payload.OrderID)
			return nil
		}
		logger.Warnw("worker_report_sync_failed", "order_id", payload.OrderID, "status_changed", payload.StatusChanged, "error", err)
		return err
	}
	return nil
}
