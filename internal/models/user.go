package models

import (
	"time"

	"gorm.io/gorm"
)

// User 员工用户表（订单归属人）
type User struct {
	ID          uint           `gorm:"primarykey" json:"id"`              // 主键
	Email       string         `gorm:"uniqueIndex;not null" json:"email"` // 邮箱
	FirstName   string         `gorm:"default:''" json:"first_name"`      // 名
	LastName    string         `gorm:"default:''" json:"last_name"`       // 姓
	DisplayName string         `gorm:"default:''" json:"display_name"`    // 展示名
	Status      string         `gorm:"default:'active'" json:"status"`    // 账号状态
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`           // 创建时间
	UpdatedAt   time.Time      `gorm:"index" json:"updated_at"`           // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                    // 软删除时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// FullName 返回“名 姓”组合，两者皆空时回退到展示名
func (u *User) FullName() string {
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	if name == "" {
		return u.DisplayName
	}
	return name
}
