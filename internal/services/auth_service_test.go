package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/campus-track/attendance-service/internal/auth"
	"github.com/campus-track/attendance-service/internal/cache"
	"github.com/campus-track/attendance-service/internal/events"
	"github.com/campus-track/attendance-service/internal/models"
	"github.com/campus-track/attendance-service/internal/validator"
)

const testRegistrationCode = "admin123"

func newAuthService(t *testing.T, repo *fakeRepo) AuthService {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	return NewAuthService(
		repo,
		auth.NewIssuer("test-secret", "attendance-service", time.Hour),
		cache.NewCacheHelper(client, cache.RevokedTokenConfig.Prefix),
		events.NewMockEventPublisher(discardSlog()),
		validator.New(),
		testLogger(),
		testRegistrationCode,
	)
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt failed: %v", err)
	}
	return string(hash)
}

func TestRegisterTeacherRejectsWrongCode(t *testing.T) {
	svc := newAuthService(t, &fakeRepo{})

	_, err := svc.RegisterTeacher(context.Background(), &validator.TeacherRegisterRequest{
		Username:   "prof",
		Password:   "secret123",
		Name:       "Prof",
		Department: "CS",
		Code:       "wrong",
	})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRegisterTeacherDuplicateUsername(t *testing.T) {
	repo := &fakeRepo{
		teachers: []*models.Teacher{{ID: 1, Username: "prof"}},
	}
	svc := newAuthService(t, repo)

	_, err := svc.RegisterTeacher(context.Background(), &validator.TeacherRegisterRequest{
		Username:   "prof",
		Password:   "secret123",
		Name:       "Prof",
		Department: "CS",
		Code:       testRegistrationCode,
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestTeacherLoginRoundtrip(t *testing.T) {
	repo := &fakeRepo{}
	svc := newAuthService(t, repo)
	ctx := context.Background()

	info, err := svc.RegisterTeacher(ctx, &validator.TeacherRegisterRequest{
		Username:   "prof",
		Password:   "secret123",
		Name:       "Prof",
		Department: "CS",
		Code:       testRegistrationCode,
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if info.Department != "CS" {
		t.Errorf("expected department CS, got %s", info.Department)
	}

	result, err := svc.LoginTeacher(ctx, &validator.LoginRequest{Username: "prof", Password: "secret123"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.Token == "" {
		t.Error("expected a signed token")
	}
	if result.Principal.Role != models.RoleTeacher || result.Principal.Department != "CS" {
		t.Errorf("unexpected principal: %+v", result.Principal)
	}

	if _, err := svc.LoginTeacher(ctx, &validator.LoginRequest{Username: "prof", Password: "nope"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.LoginTeacher(ctx, &validator.LoginRequest{Username: "ghost", Password: "nope"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestStudentLoginRequiresProvisionedCredentials(t *testing.T) {
	username := "stud01"
	hash := mustHash(t, "pass1234")
	repo := &fakeRepo{
		students: []*models.Student{
			{ID: 1, RollNo: "CS01", Name: "A", Department: "CS", StudentUsername: &username, StudentPasswordHash: &hash},
			{ID: 2, RollNo: "CS02", Name: "B", Department: "CS"},
		},
	}
	svc := newAuthService(t, repo)
	ctx := context.Background()

	result, err := svc.LoginStudent(ctx, &validator.LoginRequest{Username: "stud01", Password: "pass1234"})
	if err != nil {
		t.Fatalf("student login failed: %v", err)
	}
	if result.Principal.Role != models.RoleStudent || result.Principal.StudentID != 1 {
		t.Errorf("unexpected principal: %+v", result.Principal)
	}
	if result.Principal.RollNo != "CS01" {
		t.Errorf("expected roll_no CS01, got %s", result.Principal.RollNo)
	}

	// Unknown usernames and unprovisioned accounts are indistinguishable.
	if _, err := svc.LoginStudent(ctx, &validator.LoginRequest{Username: "ghost", Password: "x"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	svc := newAuthService(t, &fakeRepo{})
	ctx := context.Background()

	principal := &models.Principal{
		Role:    models.RoleTeacher,
		Name:    "Prof",
		TokenID: "some-jti",
	}
	if err := svc.Logout(ctx, principal); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	revoked, err := svc.IsTokenRevoked(ctx, "some-jti")
	if err != nil {
		t.Fatalf("IsTokenRevoked failed: %v", err)
	}
	if !revoked {
		t.Error("expected token to be revoked after logout")
	}

	revoked, err = svc.IsTokenRevoked(ctx, "other-jti")
	if err != nil {
		t.Fatalf("IsTokenRevoked failed: %v", err)
	}
	if revoked {
		t.Error("unrelated token must not be revoked")
	}
}

func TestLogoutDenylistOutlivesLongLivedToken(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	// Token TTL above the default revocation TTL; the denylist entry must
	// last until the token itself expires.
	issuer := auth.NewIssuer("test-secret", "attendance-service", 48*time.Hour)
	svc := NewAuthService(
		&fakeRepo{},
		issuer,
		cache.NewCacheHelper(client, cache.RevokedTokenConfig.Prefix),
		events.NewMockEventPublisher(discardSlog()),
		validator.New(),
		testLogger(),
		testRegistrationCode,
	)
	ctx := context.Background()

	token, _, err := issuer.IssueTeacher(&models.Teacher{ID: 1, Name: "Prof", Department: "CS"})
	if err != nil {
		t.Fatalf("IssueTeacher failed: %v", err)
	}
	claims, err := issuer.Parse(token)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	principal, err := claims.Principal()
	if err != nil {
		t.Fatalf("Principal failed: %v", err)
	}

	if err := svc.Logout(ctx, principal); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	ttl := mr.TTL(cache.RevokedTokenConfig.Prefix + principal.TokenID)
	if ttl <= cache.RevokedTokenConfig.TTL {
		t.Errorf("denylist TTL %v does not cover the token lifetime", ttl)
	}
}

func TestLogoutFallsBackToDefaultTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	svc := NewAuthService(
		&fakeRepo{},
		auth.NewIssuer("test-secret", "attendance-service", time.Hour),
		cache.NewCacheHelper(client, cache.RevokedTokenConfig.Prefix),
		events.NewMockEventPublisher(discardSlog()),
		validator.New(),
		testLogger(),
		testRegistrationCode,
	)
	ctx := context.Background()

	// A principal without an expiry still gets denylisted for the default
	// window rather than forever or not at all.
	principal := &models.Principal{Role: models.RoleTeacher, Name: "Prof", TokenID: "bare-jti"}
	if err := svc.Logout(ctx, principal); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	ttl := mr.TTL(cache.RevokedTokenConfig.Prefix + "bare-jti")
	if ttl != cache.RevokedTokenConfig.TTL {
		t.Errorf("TTL = %v, want %v", ttl, cache.RevokedTokenConfig.TTL)
	}
}
