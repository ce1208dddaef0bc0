package admin

import (
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/salesreport-next/internal/constants"
	handlershared "github.com/salesreport-next/internal/http/handlers/shared"
	"github.com/salesreport-next/internal/http/response"
	"github.com/salesreport-next/internal/models"
	"github.com/salesreport-next/internal/service"

	"github.com/gin-gonic/gin"
)

const reportDateLayout = "2006-01-02"

// reportCSVHeader 导出列顺序与列表视图保持一致
var reportCSVHeader = []string{
	"Order ID",
	"Invoice Number",
	"Billing First Name",
	"Billing Phone",
	"Modified Date",
	"Order Date",
	"Billing Country",
	"Billing Address",
	"Billing City",
	"Order Status",
	"Payment Method",
	"Payment Reference",
	"Odoo Order",
	"VAT Number",
	"Order Discount",
	"Order Coupon",
	"Staff",
	"Product Name",
	"SKU",
	"Product Categories",
	"Quantity",
	"Item Price",
	"Total Item Price",
	"Amount of Discount",
	"Shipping Cost",
	"Item Tax",
	"Order Total",
	"Customer Notes",
}

// buildReportQuery 解析报表过滤参数
func (h *Handler) buildReportQuery(c *gin.Context) (service.ReportQuery, error) {
	query := service.ReportQuery{
		Search: strings.TrimSpace(c.Query("search")),
	}

	if raw := strings.TrimSpace(c.Query("order_id")); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			return query, fmt.Errorf("order_id 无效: %q", raw)
		}
		query.OrderID = uint(id)
	}

	dateFrom, err := parseDateNullable(c.Query("date_from"))
	if err != nil {
		return query, err
	}
	dateTo, err := parseDateNullable(c.Query("date_to"))
	if err != nil {
		return query, err
	}
	query.DateFrom = dateFrom
	query.DateTo = dateTo

	query.Statuses = splitStatuses(c.Query("statuses"))
	if len(query.Statuses) == 0 {
		settings, err := h.SettingService.GetReportSettings()
		if err != nil {
			return query, err
		}
		query.Statuses = settings.DefaultStatuses
	}
	return query, nil
}

// GetAdminReports 获取报表列表
func (h *Handler) GetAdminReports(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "100"))
	page, pageSize = handlershared.NormalizePaginationWithin(
		page, pageSize,
		constants.ReportPageSizeMin, constants.ReportPageSizeMax, 100,
	)

	query, err := h.buildReportQuery(c)
	if err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}
	query.Page = page
	query.PageSize = pageSize

	rows, total, err := h.ReportService.Query(query)
	if err != nil {
		respondError(c, response.CodeInternal, "获取报表失败", err)
		return
	}

	response.SuccessWithPage(c, rows, response.BuildPagination(page, pageSize, total))
}

// ExportAdminReports 导出报表 CSV
func (h *Handler) ExportAdminReports(c *gin.Context) {
	query, err := h.buildReportQuery(c)
	if err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}
	batchSize := h.Config.Report.ExportBatchSize
	if batchSize <= 0 {
		batchSize = 500
	}
	query.Page = 1
	query.PageSize = batchSize

	rows, total, err := h.ReportService.Query(query)
	if err != nil {
		respondError(c, response.CodeInternal, "获取报表失败", err)
		return
	}

	filename := fmt.Sprintf("sales_report_%s.csv", time.Now().Format("20060102_150405"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))

	writer := csv.NewWriter(c.Writer)
	if err := writer.Write(reportCSVHeader); err != nil {
		requestLog(c).Errorw("report_export_header_write_failed", "error", err)
		return
	}

	totalPage := (total + int64(batchSize) - 1) / int64(batchSize)
	for page := int64(1); ; page++ {
		if err := writeReportCSVRows(writer, rows); err != nil {
			requestLog(c).Errorw("report_export_rows_write_failed", "page", page, "error", err)
			return
		}
		writer.Flush()
		if err := writer.Error(); err != nil {
			requestLog(c).Errorw("report_export_flush_failed", "page", page, "error", err)
			return
		}
		if page >= totalPage {
			break
		}
		query.Page = int(page) + 1
		rows, _, err = h.ReportService.Query(query)
		if err != nil {
			requestLog(c).Errorw("report_export_batch_fetch_failed", "page", page+1, "error", err)
			return
		}
	}
}

// SyncReportOrder 手动同步单个订单到报表
func (h *Handler) SyncReportOrder(c *gin.Context) {
	rawID, err := strconv.ParseUint(c.Param("order_id"), 10, 64)
	if err != nil || rawID == 0 {
		respondError(c, response.CodeBadRequest, "order_id 无效", nil)
		return
	}

	if err := h.ReportService.SyncOrder(uint(rawID), false); err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			respondError(c, response.CodeNotFound, "订单不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "同步订单失败", err)
		return
	}

	response.Success(c, gin.H{"order_id": uint(rawID)})
}

// BackfillRequest 报表回填请求
type BackfillRequest struct {
	Limit int `json:"limit"`
}

// BackfillReports 回填历史订单到报表
func (h *Handler) BackfillReports(c *gin.Context) {
	// 请求体可选，解析失败按默认参数处理
	var req BackfillRequest
	_ = c.ShouldBindJSON(&req)
	limit := req.Limit
	if limit <= 0 {
		settings, err := h.SettingService.GetReportSettings()
		if err != nil {
			respondError(c, response.CodeInternal, "读取报表配置失败", err)
			return
		}
		limit = settings.BackfillLimit
	}

	result, err := h.ReportService.Backfill(limit)
	if err != nil {
		respondError(c, response.CodeInternal, "报表回填失败", err)
		return
	}

	response.Success(c, result)
}

// GetReportSettings 获取报表配置
func (h *Handler) GetReportSettings(c *gin.Context) {
	settings, err := h.SettingService.GetReportSettings()
	if err != nil {
		respondError(c, response.CodeInternal, "读取报表配置失败", err)
		return
	}
	response.Success(c, settings)
}

// UpdateReportSettings 更新报表配置
func (h *Handler) UpdateReportSettings(c *gin.Context) {
	var req service.ReportSettings
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	settings, err := h.SettingService.UpdateReportSettings(req)
	if err != nil {
		respondError(c, response.CodeInternal, "更新报表配置失败", err)
		return
	}

	requestLog(c).Infow("report_settings_updated",
		"default_statuses", settings.DefaultStatuses,
		"backfill_limit", settings.BackfillLimit,
	)
	response.Success(c, settings)
}

// writeReportCSVRows 写出报表视图行
func writeReportCSVRows(writer *csv.Writer, rows []service.ReportViewRow) error {
	for i := range rows {
		if err := writer.Write(reportCSVRecord(&rows[i])); err != nil {
			return err
		}
	}
	return nil
}

// reportCSVRecord 单条视图行转 CSV 记录，商品列为空时输出空串
func reportCSVRecord(row *service.ReportViewRow) []string {
	return []string{
		strconv.FormatUint(uint64(row.OrderID), 10),
		row.InvoiceNumber,
		row.BillingFirstName,
		row.BillingPhone,
		formatCSVTime(row.ModifiedDate),
		formatCSVTime(row.OrderDate),
		row.BillingCountry,
		row.BillingAddress,
		row.BillingCity,
		row.OrderStatus,
		row.PaymentMethod,
		row.PaymentReference,
		row.ErpOrderNumber,
		row.VATNumber,
		row.OrderDiscount.String(),
		row.OrderCoupon,
		row.Staff,
		row.ProductName,
		row.SKU,
		row.Categories,
		formatCSVInt(row.Quantity),
		formatCSVMoney4(row.ItemPrice),
		formatCSVMoney4(row.TotalItemPrice),
		formatCSVMoney4(row.Discount),
		row.ShippingCost.String(),
		formatCSVMoney4(row.ItemTax),
		row.OrderTotal.String(),
		flattenCustomerNote(row.CustomerNote),
	}
}

func formatCSVTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}

func formatCSVInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func formatCSVMoney4(v *models.Money4) string {
	if v == nil {
		return ""
	}
	return v.String()
}

// flattenCustomerNote 把多行备注合并成单行
func flattenCustomerNote(note string) string {
	note = strings.ReplaceAll(note, "\r\n", "\n")
	lines := strings.Split(note, "\n")
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts = append(parts, line)
	}
	return strings.Join(parts, "; ")
}

// splitStatuses 解析逗号分隔的状态过滤参数
func splitStatuses(raw string) []string {
	parts := strings.Split(raw, ",")
	statuses := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		statuses = append(statuses, part)
	}
	return statuses
}

// parseDateNullable 解析可选的日期参数
func parseDateNullable(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(reportDateLayout, raw)
	if err != nil {
		return nil, fmt.Errorf("日期格式无效: %q", raw)
	}
	return &parsed, nil
}
