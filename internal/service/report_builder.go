package service

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/salesreport-next/internal/constants"
	"github.com/salesreport-next/internal/logger"
	"github.com/salesreport-next/internal/models"
	"github.com/salesreport-next/internal/repository"

	"github.com/shopspring/decimal"
)

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// ReportBuilder 订单快照构建器：把源订单压平成一条报表行
type ReportBuilder struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	userRepo     repository.UserRepository
}

// NewReportBuilder 创建快照构建器
func NewReportBuilder(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository, userRepo repository.UserRepository) *ReportBuilder {
	return &ReportBuilder{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
	}
}

// resolver 有序回退链中的单个取值函数，ok 为 false 时尝试下一个
type resolver func() (value string, ok bool)

// resolveFirst 依次执行回退链，返回第一个命中的值
func resolveFirst(chain []resolver) string {
	for _, fn := range chain {
		if value, ok := fn(); ok {
			return value
		}
	}
	return ""
}

// Build 根据源订单构建报表行（不含 OrderDate/ModifiedDate，由同步逻辑决定）
func (b *ReportBuilder) Build(order *models.Order) (*models.ReportRow, error) {
	lineItems := make([]models.OrderItem, 0, len(order.Items))
	couponCodes := make([]string, 0)
	for _, item := range order.Items {
		switch item.ItemType {
		case constants.OrderItemTypeLineItem:
			lineItems = append(lineItems, item)
		case constants.OrderItemTypeCoupon:
			if strings.TrimSpace(item.Name) != "" {
				couponCodes = append(couponCodes, item.Name)
			}
		}
	}

	totals := sumLineItems(lineItems)
	outcome := reconcileOrderDiscount(order, totals)

	entries, err := b.buildItemEntries(order, lineItems, totals, outcome)
	if err != nil {
		return nil, err
	}

	row := &models.ReportRow{
		OrderID:          order.ID,
		InvoiceNumber:    b.resolveInvoiceNumber(order),
		BillingFirstName: order.BillingFirstName,
		BillingPhone:     order.BillingPhone,
		BillingCountry:   ArabicCountryName(order.BillingCountry),
		BillingAddress:   strings.TrimSpace(order.BillingAddress),
		BillingCity:      order.BillingCity,
		OrderStatus:      order.Status,
		PaymentMethod:    order.PaymentMethodTitle,
		PaymentReference: order.TransactionID,
		ErpOrderNumber:   order.MetaString(constants.MetaKeyErpOrderNumber),
		VATNumber:        order.MetaString(constants.MetaKeyCompanyVAT),
		OrderDiscount:    models.NewMoneyFromDecimal(outcome.OrderDiscount),
		OrderCoupon:      strings.Join(couponCodes, ", "),
		Staff:            b.resolveStaff(order),
		ShippingCost:     order.ShippingTotal,
		ItemTax:          models.NewMoney4FromDecimal(totals.Tax),
		OrderTotal:       order.TotalAmount,
		CustomerNote:     order.CustomerNote,
		Items:            entries,
	}
	return row, nil
}

// resolveInvoiceNumber 发票号回退链：PDF 发票号 -> 通用发票号 -> 订单编号
func (b *ReportBuilder) resolveInvoiceNumber(order *models.Order) string {
	return resolveFirst([]resolver{
		func() (string, bool) {
			v := order.MetaString(constants.MetaKeyPDFInvoiceNumber)
			return v, v != ""
		},
		func() (string, bool) {
			v := order.MetaString(constants.MetaKeyInvoiceNumber)
			return v, v != ""
		},
		func() (string, bool) {
			return order.OrderNo, true
		},
	})
}

// resolveStaff 归属员工回退链：元数据指定的用户 -> 订单创建人，名字缺失时用展示名
func (b *ReportBuilder) resolveStaff(order *models.Order) string {
	lookup := func(userID uint) (string, bool) {
		if userID == 0 {
			return "", false
		}
		user, err := b.userRepo.GetByID(userID)
		if err != nil {
			logger.Warnw("report_staff_lookup_failed", "order_id", order.ID, "user_id", userID, "error", err)
			return "", false
		}
		if user == nil {
			return "", false
		}
		name := user.FullName()
		return name, name != ""
	}

	return resolveFirst([]resolver{
		func() (string, bool) {
			raw := order.MetaString(constants.MetaKeyOrderCreator)
			if raw == "" {
				return "", false
			}
			id, err := strconv.ParseUint(raw, 10, 32)
			if err != nil || id == 0 {
				return "", false
			}
			return lookup(uint(id))
		},
		func() (string, bool) {
			if order.CreatorID == nil {
				return "", false
			}
			return lookup(*order.CreatorID)
		},
	})
}

// buildItemEntries 展开商品行为报表条目，主商品后追加其加购商品。
// 商品缺失时丢弃该行并记录日志，不中断整单同步。
func (b *ReportBuilder) buildItemEntries(order *models.Order, lineItems []models.OrderItem, totals itemTotals, outcome discountOutcome) (models.ItemEntries, error) {
	productIDs := make([]uint, 0, len(lineItems))
	for _, item := range lineItems {
		if item.ProductID != 0 {
			productIDs = append(productIDs, item.ProductID)
		}
		productIDs = append(productIDs, extractAddonProductIDs(item.MetaJSON)...)
	}
	products, err := b.productRepo.GetByIDs(productIDs)
	if err != nil {
		return nil, err
	}

	entries := make(models.ItemEntries, 0, len(lineItems))
	for _, item := range lineItems {
		product := products[item.ProductID]
		if product == nil {
			logger.Warnw("report_item_product_missing", "order_id", order.ID, "product_id", item.ProductID, "item_name", item.Name)
			continue
		}

		entries = append(entries, b.buildMainEntry(item, product, outcome))

		// 主商品的行税率也套用到它的加购商品上
		mainTaxRate := decimal.Zero
		if item.Total.Decimal.IsPositive() {
			mainTaxRate = item.TotalTax.Decimal.Div(item.Total.Decimal)
		}
		for _, addonID := range extractAddonProductIDs(item.MetaJSON) {
			addon := products[addonID]
			if addon == nil {
				logger.Warnw("report_addon_product_missing", "order_id", order.ID, "product_id", addonID)
				continue
			}
			entries = append(entries, b.buildAddonEntry(addon, item.Quantity, mainTaxRate))
		}
	}
	return entries, nil
}

// buildMainEntry 构建主商品条目
func (b *ReportBuilder) buildMainEntry(item models.OrderItem, product *models.Product, outcome discountOutcome) models.ItemEntry {
	subtotal := item.Subtotal.Decimal
	total := item.Total.Decimal

	var discount decimal.Decimal
	if outcome.Type == constants.CartDiscountTypePercent && outcome.OriginalSubtotal.IsPositive() && outcome.DiscountExclTax.IsPositive() {
		// 百分比折扣按条目在原始小计中的占比分摊
		itemOriginal := subtotal
		if subtotal.Sub(total).Abs().LessThan(decimal.NewFromFloat(0.01)) && outcome.Amount.IsPositive() {
			// 小计已是折后值，反推折前值
			denominator := decimal.NewFromInt(1).Sub(outcome.Amount.Div(decimalHundred))
			if denominator.IsPositive() {
				itemOriginal = total.Div(denominator)
			}
		}
		share := itemOriginal.Div(outcome.OriginalSubtotal)
		discountExclTax := outcome.DiscountExclTax.Mul(share)
		taxRate := decimal.Zero
		if total.IsPositive() {
			taxRate = item.TotalTax.Decimal.Div(total)
		}
		discount = discountExclTax.Mul(decimal.NewFromInt(1).Add(taxRate))
	} else {
		discount = subtotal.Sub(total)
	}

	unitPrice := decimal.Zero
	if item.Quantity > 0 {
		unitPrice = subtotal.Div(decimal.NewFromInt(int64(item.Quantity)))
	}

	return models.ItemEntry{
		ProductName: item.Name,
		SKU:         product.SKU,
		Categories:  b.resolveCategories(product),
		Quantity:    item.Quantity,
		ItemPrice:   models.NewMoney4FromDecimal(unitPrice),
		TotalPrice:  models.NewMoney4FromDecimal(total),
		Discount:    models.NewMoney4FromDecimal(discount),
		Tax:         item.TotalTax,
	}
}

// buildAddonEntry 构建加购商品条目：目录价计价，数量跟随主商品，不参与折扣
func (b *ReportBuilder) buildAddonEntry(product *models.Product, quantity int, mainTaxRate decimal.Decimal) models.ItemEntry {
	unitPrice := product.PriceAmount.Decimal
	totalPrice := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	return models.ItemEntry{
		ProductName: product.Name,
		SKU:         product.SKU,
		Categories:  b.resolveCategories(product),
		Quantity:    quantity,
		ItemPrice:   models.NewMoney4FromDecimal(unitPrice),
		TotalPrice:  models.NewMoney4FromDecimal(totalPrice),
		Discount:    models.NewMoney4FromDecimal(decimal.Zero),
		Tax:         models.NewMoney4FromDecimal(totalPrice.Mul(mainTaxRate)),
	}
}

// resolveCategories 分类回退链：
// 关联分类（变体取父商品）-> 旧分类ID列表 -> 旧预格式化分类串（去标签）
func (b *ReportBuilder) resolveCategories(product *models.Product) string {
	target := product
	if product.ParentID != nil && product.Parent != nil {
		target = product.Parent
	}

	return resolveFirst([]resolver{
		func() (string, bool) {
			if len(target.Categories) == 0 {
				return "", false
			}
			names := make([]string, 0, len(target.Categories))
			for _, c := range target.Categories {
				names = append(names, c.Name)
			}
			return strings.Join(names, ", "), true
		},
		func() (string, bool) {
			if len(target.CategoryIDs) == 0 {
				return "", false
			}
			categories, err := b.categoryRepo.GetByIDs(target.CategoryIDs)
			if err != nil {
				logger.Warnw("report_category_lookup_failed", "product_id", target.ID, "error", err)
				return "", false
			}
			if len(categories) == 0 {
				return "", false
			}
			names := make([]string, 0, len(categories))
			for _, c := range categories {
				names = append(names, c.Name)
			}
			return strings.Join(names, ", "), true
		},
		func() (string, bool) {
			list := strings.TrimSpace(htmlTagPattern.ReplaceAllString(target.CategoryList, ""))
			if list == "" {
				return "", false
			}
			parts := strings.Split(list, ",")
			names := make([]string, 0, len(parts))
			for _, part := range parts {
				if trimmed := strings.TrimSpace(part); trimmed != "" {
					names = append(names, trimmed)
				}
			}
			return strings.Join(names, ", "), len(names) > 0
		},
	})
}
