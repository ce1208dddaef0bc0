package service

import (
	"github.com/salesreport-next/internal/constants"
	"github.com/salesreport-next/internal/models"

	"github.com/shopspring/decimal"
)

var decimalHundred = decimal.NewFromInt(100)

// cartDiscount 手工订单折扣描述（来自订单元数据 _cart_discount）
type cartDiscount struct {
	Type   string
	Amount decimal.Decimal
}

// parseCartDiscount 从订单元数据解析折扣描述，缺失或格式不符时返回 nil
func parseCartDiscount(meta models.JSON) *cartDiscount {
	raw, ok := meta[constants.MetaKeyCartDiscount].(map[string]interface{})
	if !ok {
		return nil
	}
	discountType, ok := raw["type"].(string)
	if !ok {
		return nil
	}
	amount, ok := parseDecimalValue(raw["amount"])
	if !ok {
		return nil
	}
	return &cartDiscount{Type: discountType, Amount: amount}
}

// parseDecimalValue 兼容字符串与数字形式的金额
func parseDecimalValue(value interface{}) (decimal.Decimal, bool) {
	switch v := value.(type) {
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	case float64:
		return decimal.NewFromFloat(v), true
	case int:
		return decimal.NewFromInt(int64(v)), true
	case int64:
		return decimal.NewFromInt(v), true
	default:
		return decimal.Zero, false
	}
}

// itemTotals 商品行合计
type itemTotals struct {
	Subtotal decimal.Decimal // 折前小计合计
	Total    decimal.Decimal // 折后小计合计
	Tax      decimal.Decimal // 行税额合计
}

// sumLineItems 汇总商品行金额
func sumLineItems(items []models.OrderItem) itemTotals {
	var totals itemTotals
	for _, item := range items {
		if item.ItemType != constants.OrderItemTypeLineItem {
			continue
		}
		totals.Subtotal = totals.Subtotal.Add(item.Subtotal.Decimal)
		totals.Total = totals.Total.Add(item.Total.Decimal)
		totals.Tax = totals.Tax.Add(item.TotalTax.Decimal)
	}
	return totals
}

// discountOutcome 订单折扣计算结果，保留展开商品条目所需的中间值
type discountOutcome struct {
	OrderDiscount    decimal.Decimal // 含税折扣，非负，2 位小数
	Type             string          // 折扣类型，无描述时为空
	Amount           decimal.Decimal // 折扣数值（固定额或百分比）
	OriginalSubtotal decimal.Decimal // 折前原始小计（仅百分比折扣）
	DiscountExclTax  decimal.Decimal // 不含税折扣合计
}

// reconcileOrderDiscount 计算订单级含税折扣。
// 优先使用订单元数据中的折扣描述，百分比折扣按折后合计反推原始小计；
// 描述缺失或计算结果为 0 时回退为商品行折前小计与折后小计之差。
func reconcileOrderDiscount(order *models.Order, totals itemTotals) discountOutcome {
	outcome := discountOutcome{}

	taxRate := decimal.Zero
	if totals.Total.IsPositive() {
		taxRate = totals.Tax.Div(totals.Total)
	}

	if dc := parseCartDiscount(order.MetaJSON); dc != nil {
		switch dc.Type {
		case constants.CartDiscountTypeFixed:
			outcome.Type = dc.Type
			outcome.Amount = dc.Amount
			outcome.DiscountExclTax = dc.Amount
			outcome.OrderDiscount = outcome.DiscountExclTax.Mul(decimal.NewFromInt(1).Add(taxRate))
		case constants.CartDiscountTypePercent:
			denominator := decimal.NewFromInt(1).Sub(dc.Amount.Div(decimalHundred))
			// 折扣比例达到或超过 100% 时无法反推原始小计，按无描述处理
			if denominator.IsPositive() {
				outcome.Type = dc.Type
				outcome.Amount = dc.Amount
				outcome.OriginalSubtotal = totals.Total.Div(denominator)
				outcome.DiscountExclTax = outcome.OriginalSubtotal.Mul(dc.Amount.Div(decimalHundred))
				outcome.OrderDiscount = outcome.DiscountExclTax.Mul(decimal.NewFromInt(1).Add(taxRate))
			}
		}
	}

	if outcome.OrderDiscount.IsZero() {
		outcome.OrderDiscount = totals.Subtotal.Sub(totals.Total)
	}

	outcome.OrderDiscount = outcome.OrderDiscount.Abs().Round(2)
	return outcome
}
