package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"time"
)

// ItemEntry 报表行内的单个商品条目
type ItemEntry struct {
	ProductName string `json:"product_name"` // 商品名称
	SKU         string `json:"sku"`          // 库存单位编码
	Categories  string `json:"categories"`   // 分类（逗号分隔）
	Quantity    int    `json:"quantity"`     // 数量
	ItemPrice   Money4 `json:"item_price"`   // 单价
	TotalPrice  Money4 `json:"total_price"`  // 行合计
	Discount    Money4 `json:"discount"`     // 行分摊折扣（含税）
	Tax         Money4 `json:"tax"`          // 行税额
}

// ItemEntries 商品条目数组，整体序列化为一个 JSON 列
type ItemEntries []ItemEntry

// Value 实现 driver.Valuer 接口
func (e ItemEntries) Value() (driver.Value, error) {
	if e == nil {
		return nil, nil
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(e); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Scan 实现 sql.Scanner 接口
func (e *ItemEntries) Scan(value interface{}) error {
	if value == nil {
		*e = ItemEntries{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return nil
	}
	if len(data) == 0 {
		*e = ItemEntries{}
		return nil
	}
	return json.Unmarshal(data, e)
}

// ReportRow 报表镜像表，每个订单一行，order_id 唯一
type ReportRow struct {
	ID               uint        `gorm:"primarykey" json:"id"`                                        // 主键
	OrderID          uint        `gorm:"uniqueIndex;not null" json:"order_id"`                        // 订单ID
	InvoiceNumber    string      `gorm:"index;type:varchar(100)" json:"invoice_number"`               // 发票号
	BillingFirstName string      `gorm:"index;type:varchar(100)" json:"billing_first_name"`           // 账单名
	BillingPhone     string      `gorm:"type:varchar(40)" json:"billing_phone"`                       // 账单电话
	BillingCountry   string      `gorm:"type:varchar(100)" json:"billing_country"`                    // 账单国家（全名；旧行可能为两位码）
	BillingAddress   string      `gorm:"type:varchar(500)" json:"billing_address"`                    // 账单地址
	BillingCity      string      `gorm:"type:varchar(100)" json:"billing_city"`                       // 账单城市
	OrderStatus      string      `gorm:"index;type:varchar(40)" json:"order_status"`                  // 订单状态
	PaymentMethod    string      `gorm:"type:varchar(100)" json:"payment_method"`                     // 支付方式
	PaymentReference string      `gorm:"type:varchar(100)" json:"payment_reference"`                  // 支付流水号
	ErpOrderNumber   string      `gorm:"type:varchar(100)" json:"erp_order_number"`                   // ERP 订单号
	VATNumber        string      `gorm:"type:varchar(100)" json:"vat_number"`                         // 税号
	OrderDiscount    Money       `gorm:"type:decimal(20,2);not null;default:0" json:"order_discount"` // 订单折扣（含税）
	OrderCoupon      string      `gorm:"type:varchar(200)" json:"order_coupon"`                       // 优惠码（逗号拼接）
	Staff            string      `gorm:"type:varchar(200)" json:"staff"`                              // 归属员工
	ShippingCost     Money4      `gorm:"type:decimal(20,4);not null;default:0" json:"shipping_cost"`  // 运费
	ItemTax          Money4      `gorm:"type:decimal(20,4);not null;default:0" json:"item_tax"`       // 税额合计
	OrderTotal       Money       `gorm:"type:decimal(20,2);not null;default:0" json:"order_total"`    // 订单合计
	CustomerNote     string      `gorm:"type:text" json:"customer_note"`                              // 客户备注
	OrderDate        time.Time   `gorm:"index" json:"order_date"`                                     // 下单时间（写入后不变）
	ModifiedDate     time.Time   `gorm:"index" json:"modified_date"`                                  // 状态变更时间
	Items            ItemEntries `gorm:"type:json" json:"items"`                                      // 商品条目快照
	CreatedAt        time.Time   `json:"created_at"`                                                  // 创建时间
	UpdatedAt        time.Time   `json:"updated_at"`                                                  // 更新时间
}

// TableName 指定表名
func (ReportRow) TableName() string {
	return "report_rows"
}
