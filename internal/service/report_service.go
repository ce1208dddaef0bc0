package service

import (
	"errors"
	"time"

	"github.com/salesreport-next/internal/logger"
	"github.com/salesreport-next/internal/repository"
)

// 报表业务错误
var (
	ErrOrderNotFound = errors.New("订单不存在")
)

// ReportService 报表同步服务
type ReportService struct {
	orderRepo  repository.OrderRepository
	reportRepo repository.ReportRepository
	builder    *ReportBuilder
}

// NewReportService 创建报表同步服务
func NewReportService(orderRepo repository.OrderRepository, reportRepo repository.ReportRepository, builder *ReportBuilder) *ReportService {
	return &ReportService{
		orderRepo:  orderRepo,
		reportRepo: reportRepo,
		builder:    builder,
	}
}

// SyncOrder 同步单个订单到报表表。
// 首次写入时 ModifiedDate 等于下单时间；更新时 OrderDate 保持不变，
// ModifiedDate 仅在状态变更时前移，否则沿用已存值（空值修复为下单时间）。
func (s *ReportService) SyncOrder(orderID uint, statusChanged bool) error {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrOrderNotFound
	}

	row, err := s.builder.Build(order)
	if err != nil {
		return err
	}
	orderDate := order.CreatedAt

	existing, err := s.reportRepo.GetByOrderID(orderID)
	if err != nil {
		return err
	}

	if existing == nil {
		row.OrderDate = orderDate
		row.ModifiedDate = orderDate
		if err := s.reportRepo.Create(row); err != nil {
			return err
		}
		logger.Infow("report_row_created", "order_id", orderID, "status", row.OrderStatus)
		return nil
	}

	// 下单时间写入后不再改动
	row.ID = existing.ID
	row.CreatedAt = existing.CreatedAt
	row.OrderDate = existing.OrderDate
	switch {
	case statusChanged:
		row.ModifiedDate = time.Now()
	case !existing.ModifiedDate.IsZero():
		row.ModifiedDate = existing.ModifiedDate
	default:
		row.ModifiedDate = existing.OrderDate
	}

	if err := s.reportRepo.Update(row); err != nil {
		return err
	}
	logger.Infow("report_row_updated", "order_id", orderID, "status", row.OrderStatus, "status_changed", statusChanged)
	return nil
}

// BackfillResult 回填结果统计
type BackfillResult struct {
	Synced  int `json:"synced"`
	Skipped int `json:"skipped"`
	Errors  int `json:"errors"`
}

// Backfill 回填最近 limit 个订单，已有报表行的订单跳过。
// 单个订单失败只计数，不中断整体回填。
func (s *ReportService) Backfill(limit int) (BackfillResult, error) {
	var result BackfillResult

	ids, err := s.orderRepo.ListRecentIDs(limit)
	if err != nil {
		return result, err
	}

	for _, orderID := range ids {
		existing, err := s.reportRepo.GetByOrderID(orderID)
		if err != nil {
			logger.Warnw("report_backfill_lookup_failed", "order_id", orderID, "error", err)
			result.Errors++
			continue
		}
		if existing != nil {
			result.Skipped++
			continue
		}
		if err := s.SyncOrder(orderID, false); err != nil {
			logger.Warnw("report_backfill_sync_failed", "order_id", orderID, "error", err)
			result.Errors++
			continue
		}
		result.Synced++
	}

	logger.Infow("report_backfill_finished",
		"scanned", len(ids),
		"synced", result.Synced,
		"skipped", result.Skipped,
		"errors", result.Errors,
	)
	return result, nil
}
