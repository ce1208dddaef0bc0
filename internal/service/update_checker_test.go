package service

import (
	"context"
	"errors"
	"testing"

	"github.com/salesreport-next/internal/config"
)

func TestCompareVersions(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"1.2.3", "1.2.3", 0},
		{"1.2.4", "1.2.3", 1},
		{"1.2.3", "1.3.0", -1},
		{"2.0", "1.9.9", 1},
		{"1.2", "1.2.0", 0},
		{"1.2.1", "1.2", 1},
		{"", "0.0.1", -1},
	}
	for _, tc := range cases {
		if got := compareVersions(tc.a, tc.b); got != tc.want {
			t.Fatalf("compareVersions(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestUpdateCheckerRequiresRepo(t *testing.T) {
	checker := NewUpdateChecker(&config.Config{})
	if _, err := checker.Check(context.Background(), true); !errors.Is(err, ErrUpdaterNotConfigured) {
		t.Fatalf("unconfigured repo want ErrUpdaterNotConfigured got %v", err)
	}
}
