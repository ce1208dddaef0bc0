package service

import (
	"testing"

	"github.com/salesreport-next/internal/config"
	"github.com/salesreport-next/internal/constants"
)

func newSettingService(t *testing.T) *SettingService {
	t.Helper()
	env := setupReportEnv(t)
	cfg := &config.Config{
		Report: config.ReportConfig{
			DefaultStatuses: []string{"completed", "processing"},
			BackfillLimit:   500,
		},
	}
	return NewSettingService(cfg, env.settingRepo)
}

func TestGetReportSettingsDefaults(t *testing.T) {
	svc := newSettingService(t)

	settings, err := svc.GetReportSettings()
	if err != nil {
		t.Fatalf("get settings failed: %v", err)
	}
	if len(settings.DefaultStatuses) != 2 || settings.DefaultStatuses[0] != "completed" {
		t.Fatalf("default statuses want config values, got %v", settings.DefaultStatuses)
	}
	if settings.BackfillLimit != 500 {
		t.Fatalf("backfill limit want 500 got %d", settings.BackfillLimit)
	}
}

func TestGetReportSettingsZeroLimitFallsBack(t *testing.T) {
	env := setupReportEnv(t)
	svc := NewSettingService(&config.Config{}, env.settingRepo)

	settings, err := svc.GetReportSettings()
	if err != nil {
		t.Fatalf("get settings failed: %v", err)
	}
	if settings.BackfillLimit != constants.BackfillDefaultLimit {
		t.Fatalf("zero config limit should fall back to %d, got %d", constants.BackfillDefaultLimit, settings.BackfillLimit)
	}
}

func TestUpdateReportSettingsRoundTrip(t *testing.T) {
	svc := newSettingService(t)

	saved, err := svc.UpdateReportSettings(ReportSettings{
		DefaultStatuses: []string{" Completed ", "on-hold", "completed", ""},
		BackfillLimit:   2000,
	})
	if err != nil {
		t.Fatalf("update settings failed: %v", err)
	}
	// 状态值小写去重，空白条目丢弃
	if len(saved.DefaultStatuses) != 2 || saved.DefaultStatuses[0] != "completed" || saved.DefaultStatuses[1] != "on-hold" {
		t.Fatalf("statuses not normalized, got %v", saved.DefaultStatuses)
	}
	if saved.BackfillLimit != 2000 {
		t.Fatalf("backfill limit want 2000 got %d", saved.BackfillLimit)
	}

	loaded, err := svc.GetReportSettings()
	if err != nil {
		t.Fatalf("reload settings failed: %v", err)
	}
	if len(loaded.DefaultStatuses) != 2 || loaded.DefaultStatuses[1] != "on-hold" {
		t.Fatalf("stored statuses not reloaded, got %v", loaded.DefaultStatuses)
	}
	if loaded.BackfillLimit != 2000 {
		t.Fatalf("stored backfill limit not reloaded, got %d", loaded.BackfillLimit)
	}
}

func TestUpdateReportSettingsRejectsInvalidInput(t *testing.T) {
	svc := newSettingService(t)

	saved, err := svc.UpdateReportSettings(ReportSettings{
		DefaultStatuses: []string{"   "},
		BackfillLimit:   -5,
	})
	if err != nil {
		t.Fatalf("update settings failed: %v", err)
	}
	// 全空输入保留缺省值
	if len(saved.DefaultStatuses) != 2 || saved.DefaultStatuses[0] != "completed" {
		t.Fatalf("empty statuses should keep defaults, got %v", saved.DefaultStatuses)
	}
	if saved.BackfillLimit != 500 {
		t.Fatalf("non-positive limit should keep default, got %d", saved.BackfillLimit)
	}
}
