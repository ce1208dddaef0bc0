package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderItem 订单项表（line_item 商品行 / coupon 优惠码行）
type OrderItem struct {
	ID        uint           `gorm:"primarykey" json:"id"`                                                 // 主键
	OrderID   uint           `gorm:"index;not null" json:"order_id"`                                       // 订单ID
	ItemType  string         `gorm:"type:varchar(20);index;not null;default:'line_item'" json:"item_type"` // 行类型
	Name      string         `gorm:"not null" json:"name"`                                                 // 商品名称/优惠码
	ProductID uint           `gorm:"index" json:"product_id"`                                              // 商品ID（优惠码行为 0）
	Quantity  int            `gorm:"not null;default:0" json:"quantity"`                                   // 数量
	Subtotal  Money4         `gorm:"type:decimal(20,4);not null;default:0" json:"subtotal"`                // 折前小计
	Total     Money4         `gorm:"type:decimal(20,4);not null;default:0" json:"total"`                   // 折后小计
	TotalTax  Money4         `gorm:"type:decimal(20,4);not null;default:0" json:"total_tax"`               // 行税额
	MetaJSON  JSON           `gorm:"type:json" json:"meta"`                                                // 行元数据（加购选项等）
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                                              // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                                                           // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                                                       // 软删除时间
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
