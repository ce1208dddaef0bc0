package repository

import "time"

// ReportListFilter 查询报表行的过滤条件
type ReportListFilter struct {
	Page         int
	PageSize     int
	OrderID      uint
	Statuses     []string
	Search       string // 发票号或账单名的不区分大小写子串
	ModifiedFrom *time.Time
	ModifiedTo   *time.Time
}

// OrderListFilter 查询源订单列表的过滤条件
type OrderListFilter struct {
	Page        int
	PageSize    int
	Status      string
	OrderNo     string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}
