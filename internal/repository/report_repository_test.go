package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/salesreport-next/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupReportRepo(t *testing.T) *GormReportRepository {
	t.Helper()
	dsn := fmt.Sprintf("file:report_repo_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.ReportRow{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewReportRepository(db)
}

func seedReportRows(t *testing.T, repo *GormReportRepository) {
	t.Helper()
	base := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	rows := []models.ReportRow{
		{OrderID: 1, InvoiceNumber: "INV-0001", BillingFirstName: "Fahad", OrderStatus: "completed", OrderDate: base, ModifiedDate: base},
		{OrderID: 2, InvoiceNumber: "INV-0002", BillingFirstName: "Noura", OrderStatus: "processing", OrderDate: base.Add(time.Hour), ModifiedDate: base.Add(time.Hour)},
		{OrderID: 3, InvoiceNumber: "INV-0003", BillingFirstName: "Sara", OrderStatus: "completed", OrderDate: base.Add(2 * time.Hour), ModifiedDate: base.Add(48 * time.Hour)},
		{OrderID: 4, InvoiceNumber: "ALT-0004", BillingFirstName: "Fahad", OrderStatus: "on-hold", OrderDate: base.Add(3 * time.Hour), ModifiedDate: base.Add(3 * time.Hour)},
	}
	for i := range rows {
		if err := repo.Create(&rows[i]); err != nil {
			t.Fatalf("seed row %d failed: %v", rows[i].OrderID, err)
		}
	}
}

func TestReportRepositoryGetByOrderID(t *testing.T) {
	repo := setupReportRepo(t)
	seedReportRows(t, repo)

	row, err := repo.GetByOrderID(2)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if row == nil || row.InvoiceNumber != "INV-0002" {
		t.Fatalf("want INV-0002 got %+v", row)
	}

	missing, err := repo.GetByOrderID(999)
	if err != nil {
		t.Fatalf("get missing failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("missing order should return nil, got %+v", missing)
	}
}

func TestReportRepositoryListFilters(t *testing.T) {
	repo := setupReportRepo(t)
	seedReportRows(t, repo)

	rows, err := repo.List(ReportListFilter{OrderID: 3})
	if err != nil {
		t.Fatalf("order id filter failed: %v", err)
	}
	if len(rows) != 1 || rows[0].OrderID != 3 {
		t.Fatalf("order id filter want single row 3, got %d rows", len(rows))
	}

	rows, err = repo.List(ReportListFilter{Statuses: []string{"completed", "on-hold"}})
	if err != nil {
		t.Fatalf("status filter failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("status filter want 3 rows got %d", len(rows))
	}

	from := time.Date(2025, 5, 1, 11, 0, 0, 0, time.UTC)
	to := time.Date(2025, 5, 1, 13, 0, 0, 0, time.UTC)
	rows, err = repo.List(ReportListFilter{ModifiedFrom: &from, ModifiedTo: &to})
	if err != nil {
		t.Fatalf("modified range filter failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("modified range want rows 2 and 4, got %d rows", len(rows))
	}
}

func TestReportRepositoryListSearch(t *testing.T) {
	repo := setupReportRepo(t)
	seedReportRows(t, repo)

	// 发票号与账单名任一命中即可，大小写不敏感
	rows, err := repo.List(ReportListFilter{Search: "inv-000"})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("invoice search want 3 rows got %d", len(rows))
	}

	rows, err = repo.List(ReportListFilter{Search: "fahad"})
	if err != nil {
		t.Fatalf("name search failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("name search want 2 rows got %d", len(rows))
	}
}

func TestReportRepositoryListOrderAndPagination(t *testing.T) {
	repo := setupReportRepo(t)
	seedReportRows(t, repo)

	rows, err := repo.List(ReportListFilter{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("want 4 rows got %d", len(rows))
	}
	// 下单时间倒序
	for i := 1; i < len(rows); i++ {
		if rows[i].OrderDate.After(rows[i-1].OrderDate) {
			t.Fatalf("rows not ordered by order_date desc at index %d", i)
		}
	}

	page2, err := repo.List(ReportListFilter{Page: 2, PageSize: 3})
	if err != nil {
		t.Fatalf("paginated list failed: %v", err)
	}
	if len(page2) != 1 {
		t.Fatalf("page 2 of size 3 want 1 row got %d", len(page2))
	}
	if page2[0].OrderID != 1 {
		t.Fatalf("oldest order should land on last page, got %d", page2[0].OrderID)
	}
}

func TestReportRepositoryCount(t *testing.T) {
	repo := setupReportRepo(t)
	seedReportRows(t, repo)

	total, err := repo.Count(ReportListFilter{})
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if total != 4 {
		t.Fatalf("count want 4 got %d", total)
	}

	total, err = repo.Count(ReportListFilter{Statuses: []string{"completed"}, Page: 5, PageSize: 1})
	if err != nil {
		t.Fatalf("filtered count failed: %v", err)
	}
	// 统计不受分页参数影响
	if total != 2 {
		t.Fatalf("filtered count want 2 got %d", total)
	}
}

func TestReportRepositoryCreateUpdate(t *testing.T) {
	repo := setupReportRepo(t)

	modified := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	row := &models.ReportRow{
		OrderID:       10,
		InvoiceNumber: "INV-0010",
		OrderStatus:   "processing",
		OrderDate:     modified,
		ModifiedDate:  modified,
		Items: models.ItemEntries{
			{ProductName: "Amber 50ml", SKU: "AMB-050", Quantity: 1},
		},
	}
	if err := repo.Create(row); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	row.OrderStatus = "completed"
	row.Items = append(row.Items, models.ItemEntry{ProductName: "Gift Wrapping", SKU: "WRAP-01", Quantity: 1})
	if err := repo.Update(row); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	loaded, err := repo.GetByOrderID(10)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if loaded.OrderStatus != "completed" {
		t.Fatalf("status not updated, got %q", loaded.OrderStatus)
	}
	if len(loaded.Items) != 2 || loaded.Items[1].SKU != "WRAP-01" {
		t.Fatalf("item entries not persisted, got %+v", loaded.Items)
	}
}
