package queue

import (
	"encoding/json"

	"github.com/salesreport-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskReportSync 订单报表同步任务
	TaskReportSync = constants.TaskReportSync
)

// ReportSyncPayload 订单报表同步任务载荷
type ReportSyncPayload struct {
	OrderID       uint `json:"order_id"`
	StatusChanged bool `json:"status_changed"`
}

// NewReportSyncTask 创建订单报表同步任务
func NewReportSyncTask(payload ReportSyncPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReportSync, body), nil
}
