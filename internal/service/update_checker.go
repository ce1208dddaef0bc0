package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/salesreport-next/internal/cache"
	"github.com/salesreport-next/internal/config"
	"github.com/salesreport-next/internal/logger"
)

// 版本检查业务错误
var (
	ErrUpdaterNotConfigured = errors.New("未配置更新检查仓库")
	ErrUpdateCheckFailed    = errors.New("版本检查请求失败")
)

const updateCheckCacheKey = "update_check"

// UpdateInfo 版本检查结果
type UpdateInfo struct {
	CurrentVersion string    `json:"current_version"`
	LatestVersion  string    `json:"latest_version"`
	HasUpdate      bool      `json:"has_update"`
	ReleaseURL     string    `json:"release_url"`
	PublishedAt    string    `json:"published_at"`
	CheckedAt      time.Time `json:"checked_at"`
}

// UpdateChecker 基于 GitHub Release 的版本检查服务
type UpdateChecker struct {
	cfg        *config.Config
	httpClient *http.Client
}

// NewUpdateChecker 创建版本检查服务
func NewUpdateChecker(cfg *config.Config) *UpdateChecker {
	timeout := time.Duration(cfg.Updater.TimeoutMS) * time.Millisecond
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &UpdateChecker{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// githubRelease GitHub releases/latest 接口响应的相关字段
type githubRelease struct {
	TagName     string `json:"tag_name"`
	HTMLURL     string `json:"html_url"`
	PublishedAt string `json:"published_at"`
}

// Check 查询最新版本，结果在缓存 TTL 内复用；force 为 true 时绕过缓存
func (s *UpdateChecker) Check(ctx context.Context, force bool) (*UpdateInfo, error) {
	repo := strings.TrimSpace(s.cfg.Updater.Repo)
	if repo == "" {
		return nil, ErrUpdaterNotConfigured
	}

	if !force {
		var cached UpdateInfo
		hit, err := cache.GetJSON(ctx, updateCheckCacheKey, &cached)
		if err != nil {
			logger.Warnw("update_check_cache_read_failed", "error", err)
		}
		if hit {
			return &cached, nil
		}
	}

	release, err := s.fetchLatestRelease(ctx, repo)
	if err != nil {
		return nil, err
	}

	current := strings.TrimPrefix(strings.TrimSpace(s.cfg.Updater.CurrentVersion), "v")
	latest := strings.TrimPrefix(strings.TrimSpace(release.TagName), "v")
	info := &UpdateInfo{
		CurrentVersion: current,
		LatestVersion:  latest,
		HasUpdate:      compareVersions(latest, current) > 0,
		ReleaseURL:     release.HTMLURL,
		PublishedAt:    release.PublishedAt,
		CheckedAt:      time.Now(),
	}

	ttl := time.Duration(s.cfg.Updater.CacheTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	if err := cache.SetJSON(ctx, updateCheckCacheKey, info, ttl); err != nil {
		logger.Warnw("update_check_cache_write_failed", "error", err)
	}

	return info, nil
}

// fetchLatestRelease 调用 GitHub 接口获取最新 Release
func (s *UpdateChecker) fetchLatestRelease(ctx context.Context, repo string) (*githubRelease, error) {
	url := fmt.Sprintf("https://api.github.com/repos/%s/releases/latest", repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		logger.Warnw("update_check_request_failed", "repo", repo, "error", err)
		return nil, ErrUpdateCheckFailed
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Warnw("update_check_bad_status", "repo", repo, "status", resp.StatusCode)
		return nil, ErrUpdateCheckFailed
	}

	var release githubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, ErrUpdateCheckFailed
	}
	return &release, nil
}

// compareVersions 按点号分段数值比较版本号，返回 -1/0/1
func compareVersions(a, b string) int {
	partsA := strings.Split(a, ".")
	partsB := strings.Split(b, ".")
	length := len(partsA)
	if len(partsB) > length {
		length = len(partsB)
	}
	for i := 0; i < length; i++ {
		var numA, numB int
		if i < len(partsA) {
			numA, _ = strconv.Atoi(strings.TrimSpace(partsA[i]))
		}
		if i < len(partsB) {
			numB, _ = strconv.Atoi(strings.TrimSpace(partsB[i]))
		}
		if numA != numB {
			if numA > numB {
				return 1
			}
			return -1
		}
	}
	return 0
}
