package service

import (
	"strings"

	"github.com/salesreport-next/internal/config"
	"github.com/salesreport-next/internal/constants"
	"github.com/salesreport-next/internal/models"
	"github.com/salesreport-next/internal/repository"
)

// ReportSettings 报表设置
type ReportSettings struct {
	DefaultStatuses []string `json:"default_statuses"` // 列表页默认勾选的订单状态
	BackfillLimit   int      `json:"backfill_limit"`   // 回填扫描的最近订单数量
}

// SettingService 设置服务
type SettingService struct {
	cfg         *config.Config
	settingRepo repository.SettingRepository
}

// NewSettingService 创建设置服务
func NewSettingService(cfg *config.Config, settingRepo repository.SettingRepository) *SettingService {
	return &SettingService{
		cfg:         cfg,
		settingRepo: settingRepo,
	}
}

// defaultReportSettings 配置文件中的缺省值
func (s *SettingService) defaultReportSettings() ReportSettings {
	settings := ReportSettings{
		DefaultStatuses: append([]string(nil), s.cfg.Report.DefaultStatuses...),
		BackfillLimit:   s.cfg.Report.BackfillLimit,
	}
	if settings.BackfillLimit <= 0 {
		settings.BackfillLimit = constants.BackfillDefaultLimit
	}
	return settings
}

// GetReportSettings 读取报表设置，未配置时使用缺省值
func (s *SettingService) GetReportSettings() (ReportSettings, error) {
	settings := s.defaultReportSettings()

	stored, err := s.settingRepo.GetByKey(constants.SettingKeyReportConfig)
	if err != nil {
		return settings, err
	}
	if stored == nil || stored.ValueJSON == nil {
		return settings, nil
	}

	if raw, ok := stored.ValueJSON["default_statuses"].([]interface{}); ok {
		statuses := make([]string, 0, len(raw))
		for _, v := range raw {
			if status, ok := v.(string); ok {
				if trimmed := strings.TrimSpace(status); trimmed != "" {
					statuses = append(statuses, trimmed)
				}
			}
		}
		if len(statuses) > 0 {
			settings.DefaultStatuses = statuses
		}
	}
	if raw, ok := stored.ValueJSON["backfill_limit"].(float64); ok && raw > 0 {
		settings.BackfillLimit = int(raw)
	}

	return settings, nil
}

// UpdateReportSettings 规整并保存报表设置
func (s *SettingService) UpdateReportSettings(input ReportSettings) (ReportSettings, error) {
	normalized := s.defaultReportSettings()

	statuses := make([]string, 0, len(input.DefaultStatuses))
	seen := make(map[string]bool)
	for _, status := range input.DefaultStatuses {
		trimmed := strings.ToLower(strings.TrimSpace(status))
		if trimmed == "" || seen[trimmed] {
			continue
		}
		seen[trimmed] = true
		statuses = append(statuses, trimmed)
	}
	if len(statuses) > 0 {
		normalized.DefaultStatuses = statuses
	}
	if input.BackfillLimit > 0 {
		normalized.BackfillLimit = input.BackfillLimit
	}

	value := models.JSON{
		"default_statuses": normalized.DefaultStatuses,
		"backfill_limit":   normalized.BackfillLimit,
	}
	if _, err := s.settingRepo.Upsert(constants.SettingKeyReportConfig, value); err != nil {
		return normalized, err
	}
	return normalized, nil
}
