package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表
type Product struct {
	ID           uint           `gorm:"primarykey" json:"id"`                                      // 主键
	ParentID     *uint          `gorm:"index" json:"parent_id,omitempty"`                          // 父商品ID（变体商品指向主商品）
	Name         string         `gorm:"not null" json:"name"`                                      // 商品名称
	SKU          string         `gorm:"index" json:"sku"`                                          // 库存单位编码
	PriceAmount  Money4         `gorm:"type:decimal(20,4);not null;default:0" json:"price_amount"` // 目录价
	CategoryIDs  UintArray      `gorm:"type:json" json:"category_ids"`                             // 旧数据：分类ID列表
	CategoryList string         `gorm:"type:text" json:"category_list"`                            // 旧数据：预格式化分类串
	IsActive     bool           `gorm:"default:true;index" json:"is_active"`                       // 是否上架
	SortOrder    int            `gorm:"default:0;index" json:"sort_order"`                         // 排序权重
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt    time.Time      `json:"updated_at"`                                                // 更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间

	// 关联
	Categories []Category `gorm:"many2many:product_categories" json:"categories,omitempty"` // 分类
	Parent     *Product   `gorm:"foreignKey:ParentID" json:"parent,omitempty"`              // 父商品（变体回溯用）
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
