package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/salesreport-next/internal/config"
	"github.com/salesreport-next/internal/models"
	"github.com/salesreport-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthService(t *testing.T) (*AuthService, repository.AdminRepository) {
	t.Helper()

	dsn := fmt.Sprintf("file:auth_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Admin{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	cfg := &config.Config{
		JWT: config.JWTConfig{
			SecretKey:   "auth-service-test-secret",
			ExpireHours: 2,
		},
	}
	adminRepo := repository.NewAdminRepository(db)
	return NewAuthService(cfg, adminRepo), adminRepo
}

func TestHashAndVerifyPassword(t *testing.T) {
	svc, _ := setupAuthService(t)

	hash, err := svc.HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("hash must not equal plaintext")
	}
	if err := svc.VerifyPassword(hash, "s3cret-pass"); err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if err := svc.VerifyPassword(hash, "wrong-pass"); err == nil {
		t.Fatal("wrong password should not verify")
	}
}

func TestGenerateAndParseJWT(t *testing.T) {
	svc, _ := setupAuthService(t)

	admin := &models.Admin{ID: 7, Username: "reports-admin"}
	token, expiresAt, err := svc.GenerateJWT(admin)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if time.Until(expiresAt) < time.Hour {
		t.Fatalf("expiry too close: %s", expiresAt)
	}

	claims, err := svc.ParseJWT(token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.AdminID != 7 || claims.Username != "reports-admin" {
		t.Fatalf("claims round trip wrong: %+v", claims)
	}
}

func TestParseJWTRejectsWrongSecret(t *testing.T) {
	svc, _ := setupAuthService(t)
	other, _ := setupAuthService(t)
	other.cfg.JWT.SecretKey = "different-secret"

	token, _, err := svc.GenerateJWT(&models.Admin{ID: 1, Username: "admin"})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err := other.ParseJWT(token); err == nil {
		t.Fatal("token signed with another secret must not parse")
	}
}

func TestLogin(t *testing.T) {
	svc, adminRepo := setupAuthService(t)

	hash, err := svc.HashPassword("correct-horse")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if err := adminRepo.Create(&models.Admin{Username: "admin", PasswordHash: hash}); err != nil {
		t.Fatalf("create admin failed: %v", err)
	}

	admin, token, _, err := svc.Login("admin", "correct-horse")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatal("login should issue a token")
	}
	if admin.LastLoginAt == nil {
		t.Fatal("login should record last login time")
	}

	if _, _, _, err := svc.Login("admin", "bad-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("bad password want ErrInvalidCredentials got %v", err)
	}
	if _, _, _, err := svc.Login("ghost", "correct-horse"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user want ErrInvalidCredentials got %v", err)
	}
}
