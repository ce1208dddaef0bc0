package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/salesreport-next/internal/constants"
	"github.com/salesreport-next/internal/models"
	"github.com/salesreport-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type reportTestEnv struct {
	db           *gorm.DB
	orderRepo    *repository.GormOrderRepository
	productRepo  *repository.GormProductRepository
	categoryRepo *repository.GormCategoryRepository
	userRepo     *repository.GormUserRepository
	reportRepo   *repository.GormReportRepository
	settingRepo  *repository.GormSettingRepository
	builder      *ReportBuilder
	reportSvc    *ReportService
}

func setupReportEnv(t *testing.T) *reportTestEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:report_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.ReportRow{},
		&models.Setting{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	env := &reportTestEnv{
		db:           db,
		orderRepo:    repository.NewOrderRepository(db),
		productRepo:  repository.NewProductRepository(db),
		categoryRepo: repository.NewCategoryRepository(db),
		userRepo:     repository.NewUserRepository(db),
		reportRepo:   repository.NewReportRepository(db),
		settingRepo:  repository.NewSettingRepository(db),
	}
	env.builder = NewReportBuilder(env.productRepo, env.categoryRepo, env.userRepo)
	env.reportSvc = NewReportService(env.orderRepo, env.reportRepo, env.builder)
	return env
}

func (env *reportTestEnv) createProduct(t *testing.T, product *models.Product) *models.Product {
	t.Helper()
	if err := env.productRepo.Create(product); err != nil {
		t.Fatalf("create product %q failed: %v", product.Name, err)
	}
	return product
}

func (env *reportTestEnv) createCategory(t *testing.T, name string) *models.Category {
	t.Helper()
	category := &models.Category{Name: name}
	if err := env.categoryRepo.Create(category); err != nil {
		t.Fatalf("create category %q failed: %v", name, err)
	}
	return category
}

func money4(value string) models.Money4 {
	return models.NewMoney4FromDecimal(decimal.RequireFromString(value))
}

func lineItem(productID uint, name string, quantity int, subtotal, total, tax string) models.OrderItem {
	return models.OrderItem{
		ItemType:  constants.OrderItemTypeLineItem,
		Name:      name,
		ProductID: productID,
		Quantity:  quantity,
		Subtotal:  money4(subtotal),
		Total:     money4(total),
		TotalTax:  money4(tax),
	}
}

func TestReportBuilderBuildBasicOrder(t *testing.T) {
	env := setupReportEnv(t)

	perfumes := env.createCategory(t, "Perfumes")
	product := env.createProduct(t, &models.Product{
		Name:        "Royal Oud 100ml",
		SKU:         "OUD-100",
		PriceAmount: money4("450"),
		Categories:  []models.Category{*perfumes},
	})

	order := &models.Order{
		OrderNo:            "SR-1001",
		Status:             "completed",
		BillingFirstName:   "Fahad",
		BillingPhone:       "+966500000001",
		BillingCountry:     "SA",
		BillingAddress:     "  King Fahd Road 12  ",
		BillingCity:        "Riyadh",
		PaymentMethodTitle: "Credit Card",
		TransactionID:      "tx_9001",
		ShippingTotal:      money4("25"),
		TotalAmount:        models.NewMoneyFromDecimal(decimal.RequireFromString("542.50")),
		CustomerNote:       "Deliver after 5pm",
		MetaJSON: models.JSON{
			constants.MetaKeyCompanyVAT:     "310123456700003",
			constants.MetaKeyErpOrderNumber: "SO-00042",
		},
		Items: []models.OrderItem{
			lineItem(product.ID, product.Name, 2, "450", "450", "67.50"),
			{ItemType: constants.OrderItemTypeCoupon, Name: "WELCOME10"},
			{ItemType: constants.OrderItemTypeCoupon, Name: "VIP5"},
		},
	}

	row, err := env.builder.Build(order)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	if row.InvoiceNumber != "SR-1001" {
		t.Fatalf("invoice should fall back to order no, got %q", row.InvoiceNumber)
	}
	if row.BillingCountry != "المملكة العربية السعودية" {
		t.Fatalf("country not converted, got %q", row.BillingCountry)
	}
	if row.BillingAddress != "King Fahd Road 12" {
		t.Fatalf("address not trimmed, got %q", row.BillingAddress)
	}
	if row.OrderCoupon != "WELCOME10, VIP5" {
		t.Fatalf("coupon codes want joined list, got %q", row.OrderCoupon)
	}
	if row.VATNumber != "310123456700003" {
		t.Fatalf("vat number want 310123456700003 got %q", row.VATNumber)
	}
	if row.ErpOrderNumber != "SO-00042" {
		t.Fatalf("erp order number want SO-00042 got %q", row.ErpOrderNumber)
	}
	if len(row.Items) != 1 {
		t.Fatalf("entries want 1 got %d", len(row.Items))
	}
	entry := row.Items[0]
	if entry.SKU != "OUD-100" {
		t.Fatalf("sku want OUD-100 got %q", entry.SKU)
	}
	if entry.Categories != "Perfumes" {
		t.Fatalf("categories want Perfumes got %q", entry.Categories)
	}
	if entry.Quantity != 2 {
		t.Fatalf("quantity want 2 got %d", entry.Quantity)
	}
	// 单价 = 折前小计 / 数量
	if !entry.ItemPrice.Decimal.Equal(decimal.RequireFromString("225")) {
		t.Fatalf("item price want 225 got %s", entry.ItemPrice.Decimal)
	}
	if !entry.Tax.Decimal.Equal(decimal.RequireFromString("67.50")) {
		t.Fatalf("item tax want 67.50 got %s", entry.Tax.Decimal)
	}
}

func TestReportBuilderInvoiceFallbackChain(t *testing.T) {
	env := setupReportEnv(t)
	product := env.createProduct(t, &models.Product{Name: "Amber 50ml", SKU: "AMB-050", PriceAmount: money4("180")})

	build := func(meta models.JSON) string {
		order := &models.Order{
			OrderNo:  "SR-2001",
			Status:   "processing",
			MetaJSON: meta,
			Items:    []models.OrderItem{lineItem(product.ID, product.Name, 1, "180", "180", "27")},
		}
		row, err := env.builder.Build(order)
		if err != nil {
			t.Fatalf("build failed: %v", err)
		}
		return row.InvoiceNumber
	}

	if got := build(models.JSON{
		constants.MetaKeyPDFInvoiceNumber: "INV-9001",
		constants.MetaKeyInvoiceNumber:    "ALT-9001",
	}); got != "INV-9001" {
		t.Fatalf("pdf invoice number should win, got %q", got)
	}
	if got := build(models.JSON{constants.MetaKeyInvoiceNumber: "ALT-9001"}); got != "ALT-9001" {
		t.Fatalf("generic invoice number should be second, got %q", got)
	}
	if got := build(nil); got != "SR-2001" {
		t.Fatalf("order no should be last resort, got %q", got)
	}
}

func TestReportBuilderStaffResolution(t *testing.T) {
	env := setupReportEnv(t)
	product := env.createProduct(t, &models.Product{Name: "Amber 50ml", SKU: "AMB-050", PriceAmount: money4("180")})

	named := &models.User{Email: "ahmed@example.com", FirstName: "Ahmed", LastName: "Hassan"}
	if err := env.userRepo.Create(named); err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	displayOnly := &models.User{Email: "store@example.com", DisplayName: "Store Desk"}
	if err := env.userRepo.Create(displayOnly); err != nil {
		t.Fatalf("create user failed: %v", err)
	}

	build := func(meta models.JSON, creatorID *uint) string {
		order := &models.Order{
			OrderNo:   "SR-3001",
			Status:    "completed",
			CreatorID: creatorID,
			MetaJSON:  meta,
			Items:     []models.OrderItem{lineItem(product.ID, product.Name, 1, "180", "180", "27")},
		}
		row, err := env.builder.Build(order)
		if err != nil {
			t.Fatalf("build failed: %v", err)
		}
		return row.Staff
	}

	meta := models.JSON{constants.MetaKeyOrderCreator: fmt.Sprintf("%d", named.ID)}
	if got := build(meta, &displayOnly.ID); got != "Ahmed Hassan" {
		t.Fatalf("meta creator should win, got %q", got)
	}
	if got := build(nil, &displayOnly.ID); got != "Store Desk" {
		t.Fatalf("creator id should fall back to display name, got %q", got)
	}
	if got := build(models.JSON{constants.MetaKeyOrderCreator: "not-a-number"}, &named.ID); got != "Ahmed Hassan" {
		t.Fatalf("bad meta value should fall through to creator id, got %q", got)
	}
	if got := build(nil, nil); got != "" {
		t.Fatalf("no staff hint should yield empty, got %q", got)
	}
}

func TestReportBuilderAddonEntriesFollowMainItem(t *testing.T) {
	env := setupReportEnv(t)

	accessories := env.createCategory(t, "Accessories")
	main := env.createProduct(t, &models.Product{Name: "Royal Oud 100ml", SKU: "OUD-100", PriceAmount: money4("450")})
	wrap := env.createProduct(t, &models.Product{
		Name:        "Gift Wrapping",
		SKU:         "WRAP-01",
		PriceAmount: money4("15"),
		Categories:  []models.Category{*accessories},
	})

	item := lineItem(main.ID, main.Name, 2, "900", "900", "135")
	item.MetaJSON = models.JSON{
		"_addon_selections": map[string]interface{}{
			"wrapping": fmt.Sprintf("product-%d", wrap.ID),
		},
	}
	order := &models.Order{
		OrderNo: "SR-4001",
		Status:  "completed",
		Items:   []models.OrderItem{item},
	}

	row, err := env.builder.Build(order)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if len(row.Items) != 2 {
		t.Fatalf("entries want [main, addon], got %d entries", len(row.Items))
	}
	if row.Items[0].SKU != "OUD-100" || row.Items[1].SKU != "WRAP-01" {
		t.Fatalf("addon must follow its main item, got %q then %q", row.Items[0].SKU, row.Items[1].SKU)
	}

	addon := row.Items[1]
	if addon.Quantity != 2 {
		t.Fatalf("addon quantity should follow main item, got %d", addon.Quantity)
	}
	if !addon.ItemPrice.Decimal.Equal(decimal.RequireFromString("15")) {
		t.Fatalf("addon unit price want catalog 15 got %s", addon.ItemPrice.Decimal)
	}
	if !addon.TotalPrice.Decimal.Equal(decimal.RequireFromString("30")) {
		t.Fatalf("addon total want 30 got %s", addon.TotalPrice.Decimal)
	}
	if !addon.Discount.Decimal.IsZero() {
		t.Fatalf("addon should not carry discount, got %s", addon.Discount.Decimal)
	}
	// 主商品税率 135/900 = 15%，加购税额 = 30 * 15%
	if !addon.Tax.Decimal.Equal(decimal.RequireFromString("4.5")) {
		t.Fatalf("addon tax want 4.5 got %s", addon.Tax.Decimal)
	}
	if addon.Categories != "Accessories" {
		t.Fatalf("addon categories want Accessories got %q", addon.Categories)
	}
}

func TestReportBuilderSkipsMissingProduct(t *testing.T) {
	env := setupReportEnv(t)
	product := env.createProduct(t, &models.Product{Name: "Amber 50ml", SKU: "AMB-050", PriceAmount: money4("180")})

	order := &models.Order{
		OrderNo: "SR-5001",
		Status:  "completed",
		Items: []models.OrderItem{
			lineItem(99999, "Deleted Product", 1, "100", "100", "15"),
			lineItem(product.ID, product.Name, 1, "180", "180", "27"),
		},
	}

	row, err := env.builder.Build(order)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if len(row.Items) != 1 {
		t.Fatalf("missing product row should be dropped, got %d entries", len(row.Items))
	}
	if row.Items[0].SKU != "AMB-050" {
		t.Fatalf("surviving entry want AMB-050 got %q", row.Items[0].SKU)
	}
}

func TestReportBuilderVariationUsesParentCategories(t *testing.T) {
	env := setupReportEnv(t)

	oud := env.createCategory(t, "Oud")
	parent := env.createProduct(t, &models.Product{
		Name:        "Royal Oud",
		SKU:         "OUD-100",
		PriceAmount: money4("450"),
		Categories:  []models.Category{*oud},
	})
	variation := env.createProduct(t, &models.Product{
		Name:        "Royal Oud - Gold",
		SKU:         "OUD-100-G",
		PriceAmount: money4("520"),
		ParentID:    &parent.ID,
	})

	order := &models.Order{
		OrderNo: "SR-6001",
		Status:  "completed",
		Items:   []models.OrderItem{lineItem(variation.ID, variation.Name, 1, "520", "520", "78")},
	}

	row, err := env.builder.Build(order)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if len(row.Items) != 1 {
		t.Fatalf("entries want 1 got %d", len(row.Items))
	}
	if row.Items[0].Categories != "Oud" {
		t.Fatalf("variation should use parent categories, got %q", row.Items[0].Categories)
	}
}

func TestReportBuilderCategoryFallbacks(t *testing.T) {
	env := setupReportEnv(t)

	byIDs := env.createCategory(t, "Perfumes")
	legacyIDs := env.createProduct(t, &models.Product{
		Name:        "Musk 30ml",
		SKU:         "MSK-030",
		PriceAmount: money4("90"),
		CategoryIDs: models.UintArray{byIDs.ID},
	})
	legacyList := env.createProduct(t, &models.Product{
		Name:         "Rose 30ml",
		SKU:          "RSE-030",
		PriceAmount:  money4("95"),
		CategoryList: `<a href="/cat/perfumes">Perfumes</a>, <a href="/cat/floral">Floral</a>`,
	})

	buildCategories := func(product *models.Product) string {
		order := &models.Order{
			OrderNo: "SR-7001",
			Status:  "completed",
			Items:   []models.OrderItem{lineItem(product.ID, product.Name, 1, "90", "90", "13.5")},
		}
		row, err := env.builder.Build(order)
		if err != nil {
			t.Fatalf("build failed: %v", err)
		}
		if len(row.Items) != 1 {
			t.Fatalf("entries want 1 got %d", len(row.Items))
		}
		return row.Items[0].Categories
	}

	if got := buildCategories(legacyIDs); got != "Perfumes" {
		t.Fatalf("legacy id list fallback want Perfumes got %q", got)
	}
	if got := buildCategories(legacyList); got != "Perfumes, Floral" {
		t.Fatalf("legacy formatted list fallback want stripped names, got %q", got)
	}
}
