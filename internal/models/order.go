package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表（运营侧源数据）
type Order struct {
	ID                 uint           `gorm:"primarykey" json:"id"`                                        // 主键
	OrderNo            string         `gorm:"uniqueIndex;not null" json:"order_no"`                        // 订单编号
	Status             string         `gorm:"index;not null" json:"status"`                                // 订单状态
	CreatorID          *uint          `gorm:"index" json:"creator_id,omitempty"`                           // 下单员工ID
	BillingFirstName   string         `gorm:"type:varchar(100)" json:"billing_first_name"`                 // 账单名
	BillingLastName    string         `gorm:"type:varchar(100)" json:"billing_last_name"`                  // 账单姓
	BillingPhone       string         `gorm:"type:varchar(40)" json:"billing_phone"`                       // 账单电话
	BillingCountry     string         `gorm:"type:varchar(8)" json:"billing_country"`                      // 账单国家（ISO-2 码）
	BillingAddress     string         `gorm:"type:varchar(500)" json:"billing_address"`                    // 账单地址
	BillingCity        string         `gorm:"type:varchar(100)" json:"billing_city"`                       // 账单城市
	PaymentMethodTitle string         `gorm:"type:varchar(100)" json:"payment_method_title"`               // 支付方式名称
	TransactionID      string         `gorm:"type:varchar(100)" json:"transaction_id"`                     // 支付流水号
	CustomerNote       string         `gorm:"type:text" json:"customer_note"`                              // 客户备注
	ShippingTotal      Money4         `gorm:"type:decimal(20,4);not null;default:0" json:"shipping_total"` // 运费
	TotalTax           Money4         `gorm:"type:decimal(20,4);not null;default:0" json:"total_tax"`      // 税额合计
	TotalAmount        Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`   // 实付金额
	MetaJSON           JSON           `gorm:"type:json" json:"meta"`                                       // 松散元数据（发票号/折扣描述等）
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`                                     // 下单时间
	UpdatedAt          time.Time      `gorm:"index" json:"updated_at"`                                     // 更新时间
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`                                              // 软删除时间

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"` // 订单项
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

// MetaString 读取字符串元数据，不存在或类型不符时返回空串
func (o *Order) MetaString(key string) string {
	if o.MetaJSON == nil {
		return ""
	}
	if v, ok := o.MetaJSON[key].(string); ok {
		return v
	}
	return ""
}
