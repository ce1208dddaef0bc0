package service

import (
	"strconv"
	"strings"
	"time"

	"github.com/salesreport-next/internal/constants"
	"github.com/salesreport-next/internal/models"
	"github.com/salesreport-next/internal/repository"
)

// ReportQuery 报表查询的过滤值对象
type ReportQuery struct {
	OrderID  uint
	DateFrom *time.Time // 日期粒度，按当天 00:00:00 取下界
	DateTo   *time.Time // 日期粒度，按当天 23:59:59 取上界
	Statuses []string
	Search   string // 发票号或账单名的子串
	Page     int
	PageSize int // 0 表示不分页
}

// ReportViewRow 展开商品条目后的报表视图行。
// 订单级列在每个条目行上重复；无条目的订单保留一行，商品列为空。
type ReportViewRow struct {
	OrderID          uint           `json:"order_id"`
	InvoiceNumber    string         `json:"invoice_number"`
	BillingFirstName string         `json:"billing_first_name"`
	BillingPhone     string         `json:"billing_phone"`
	ModifiedDate     time.Time      `json:"modified_date"`
	OrderDate        time.Time      `json:"order_date"`
	BillingCountry   string         `json:"billing_country"`
	BillingAddress   string         `json:"billing_address"`
	BillingCity      string         `json:"billing_city"`
	OrderStatus      string         `json:"order_status"`
	PaymentMethod    string         `json:"payment_method"`
	PaymentReference string         `json:"payment_reference"`
	ErpOrderNumber   string         `json:"erp_order_number"`
	VATNumber        string         `json:"vat_number"`
	OrderDiscount    models.Money   `json:"order_discount"`
	OrderCoupon      string         `json:"order_coupon"`
	Staff            string         `json:"staff"`
	ProductName      string         `json:"product_name"`
	SKU              string         `json:"sku"`
	Categories       string         `json:"categories"`
	Quantity         *int           `json:"quantity"`
	ItemPrice        *models.Money4 `json:"item_price"`
	TotalItemPrice   *models.Money4 `json:"total_item_price"`
	Discount         *models.Money4 `json:"discount"`
	ItemTax          *models.Money4 `json:"item_tax"`
	ShippingCost     models.Money4  `json:"shipping_cost"`
	OrderTotal       models.Money   `json:"order_total"`
	CustomerNote     string         `json:"customer_note"`
}

// toListFilter 把查询对象转换为仓库过滤条件，日期界限含当天两端
func (q ReportQuery) toListFilter() repository.ReportListFilter {
	filter := repository.ReportListFilter{
		Page:     q.Page,
		PageSize: q.PageSize,
		OrderID:  q.OrderID,
		Statuses: q.Statuses,
		Search:   strings.TrimSpace(q.Search),
	}
	if q.DateFrom != nil {
		from := time.Date(q.DateFrom.Year(), q.DateFrom.Month(), q.DateFrom.Day(), 0, 0, 0, 0, q.DateFrom.Location())
		filter.ModifiedFrom = &from
	}
	if q.DateTo != nil {
		to := time.Date(q.DateTo.Year(), q.DateTo.Month(), q.DateTo.Day(), 23, 59, 59, 0, q.DateTo.Location())
		filter.ModifiedTo = &to
	}
	return filter
}

// Query 查询报表：过滤、分页、展开商品条目。
// 返回的 total 是展开前的订单数。
func (s *ReportService) Query(query ReportQuery) ([]ReportViewRow, int64, error) {
	filter := query.toListFilter()

	total, err := s.reportRepo.Count(filter)
	if err != nil {
		return nil, 0, err
	}

	rows, err := s.reportRepo.List(filter)
	if err != nil {
		return nil, 0, err
	}

	viewRows := make([]ReportViewRow, 0, len(rows))
	for i := range rows {
		viewRows = append(viewRows, explodeReportRow(&rows[i])...)
	}
	return viewRows, total, nil
}

// explodeReportRow 把一条报表行展开为每商品条目一行的视图行
func explodeReportRow(row *models.ReportRow) []ReportViewRow {
	base := ReportViewRow{
		OrderID:          row.OrderID,
		InvoiceNumber:    row.InvoiceNumber,
		BillingFirstName: row.BillingFirstName,
		BillingPhone:     row.BillingPhone,
		ModifiedDate:     row.ModifiedDate,
		OrderDate:        row.OrderDate,
		BillingCountry:   NormalizeCountryValue(row.BillingCountry),
		BillingAddress:   row.BillingAddress,
		BillingCity:      row.BillingCity,
		OrderStatus:      row.OrderStatus,
		PaymentMethod:    row.PaymentMethod,
		PaymentReference: row.PaymentReference,
		ErpOrderNumber:   row.ErpOrderNumber,
		VATNumber:        row.VATNumber,
		OrderDiscount:    row.OrderDiscount,
		OrderCoupon:      NormalizeCouponValue(row.OrderCoupon),
		Staff:            row.Staff,
		ShippingCost:     row.ShippingCost,
		OrderTotal:       row.OrderTotal,
		CustomerNote:     row.CustomerNote,
	}

	if len(row.Items) == 0 {
		// 无条目时保留整行，税额列回落到订单级税额合计
		orderTax := row.ItemTax
		base.ItemTax = &orderTax
		return []ReportViewRow{base}
	}

	result := make([]ReportViewRow, 0, len(row.Items))
	for _, entry := range row.Items {
		viewRow := base
		viewRow.ProductName = entry.ProductName
		viewRow.SKU = entry.SKU
		viewRow.Categories = entry.Categories
		quantity := entry.Quantity
		viewRow.Quantity = &quantity
		itemPrice := entry.ItemPrice
		viewRow.ItemPrice = &itemPrice
		totalPrice := entry.TotalPrice
		viewRow.TotalItemPrice = &totalPrice
		discount := entry.Discount
		viewRow.Discount = &discount
		tax := entry.Tax
		viewRow.ItemTax = &tax
		result = append(result, viewRow)
	}
	return result
}

// NormalizeCouponValue 优惠码清洗：
// 去除首尾空白；短纯数字零值（如 "0"、"0.00"）视为脏数据置空，
// 超过阈值长度的数字串可能是真实优惠码，原样保留。
func NormalizeCouponValue(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	if len(trimmed) <= constants.CouponNumericZeroMaxLen {
		if parsed, err := strconv.ParseFloat(trimmed, 64); err == nil && parsed == 0 {
			return ""
		}
	}
	return trimmed
}
