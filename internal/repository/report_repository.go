package repository

import (
	"errors"

	"github.com/salesreport-next/internal/models"

	"gorm.io/gorm"
)

// ReportRepository 报表行数据访问接口
type ReportRepository interface {
	GetByOrderID(orderID uint) (*models.ReportRow, error)
	Create(row *models.ReportRow) error
	Update(row *models.ReportRow) error
	List(filter ReportListFilter) ([]models.ReportRow, error)
	Count(filter ReportListFilter) (int64, error)
	WithTx(tx *gorm.DB) *GormReportRepository
}

// GormReportRepository GORM 实现
type GormReportRepository struct {
	db *gorm.DB
}

// NewReportRepository 创建报表仓库
func NewReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// WithTx 绑定事务
func (r *GormReportRepository) WithTx(tx *gorm.DB) *GormReportRepository {
	if tx == nil {
		return r
	}
	return &GormReportRepository{db: tx}
}

// GetByOrderID 根据订单 ID 获取报表行
func (r *GormReportRepository) GetByOrderID(orderID uint) (*models.ReportRow, error) {
	var row models.ReportRow
	if err := r.db.Where("order_id = ?", orderID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// Create 创建报表行
func (r *GormReportRepository) Create(row *models.ReportRow) error {
	return r.db.Create(row).Error
}

// Update 更新报表行
func (r *GormReportRepository) Update(row *models.ReportRow) error {
	return r.db.Save(row).Error
}

func (r *GormReportRepository) applyFilter(query *gorm.DB, filter ReportListFilter) *gorm.DB {
	if filter.OrderID != 0 {
		query = query.Where("order_id = ?", filter.OrderID)
	}
	if len(filter.Statuses) > 0 {
		query = query.Where("order_status IN ?", filter.Statuses)
	}
	if filter.ModifiedFrom != nil {
		query = query.Where("modified_date >= ?", *filter.ModifiedFrom)
	}
	if filter.ModifiedTo != nil {
		query = query.Where("modified_date <= ?", *filter.ModifiedTo)
	}
	if filter.Search != "" {
		condition, argCount := buildLikeCondition(r.db, []string{"invoice_number", "billing_first_name"})
		if argCount > 0 {
			like := "%" + filter.Search + "%"
			query = query.Where(condition, repeatLikeArgs(like, argCount)...)
		}
	}
	return query
}

// List 按过滤条件查询报表行，按下单时间倒序
func (r *GormReportRepository) List(filter ReportListFilter) ([]models.ReportRow, error) {
	rows := make([]models.ReportRow, 0)
	query := r.applyFilter(r.db.Model(&models.ReportRow{}), filter)
	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("order_date DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count 统计符合条件的订单数（展开商品条目之前的行数）
func (r *GormReportRepository) Count(filter ReportListFilter) (int64, error) {
	var total int64
	query := r.applyFilter(r.db.Model(&models.ReportRow{}), filter)
	if err := query.Distinct("order_id").Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
