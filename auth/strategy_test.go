package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/fleetgrid/fleetgrid/auth/password"
	"github.com/fleetgrid/fleetgrid/auth/token"
	apperrors "github.com/fleetgrid/fleetgrid/errors"
	"github.com/fleetgrid/fleetgrid/user"
)

func newTestDirectory(t *testing.T) (*user.GormDirectory, *gorm.DB) {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&user.User{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return user.NewGormDirectory(db), db
}

func newTestTokens(t *testing.T) *token.Service {
	t.Helper()
	svc, err := token.NewService(&token.Config{Secret: "test-secret", TTL: time.Hour})
	if err != nil {
		t.Fatalf("token.NewService returned error: %v", err)
	}
	return svc
}

func seedLocalUser(t *testing.T, db *gorm.DB, username, plaintext string) *user.User {
	t.Helper()
	h := password.NewHasher(password.WithCost(bcrypt.MinCost))
	hash, err := h.Hash(plaintext)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	u := &user.User{Username: username, PasswordHash: &hash, Provider: user.ProviderLocal}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	return u
}

func TestLocalStrategy_Success(t *testing.T) {
	directory, db := newTestDirectory(t)
	seeded := seedLocalUser(t, db, "driver7", "hunter2hunter2")

	s := NewLocalStrategy(directory, password.NewHasher())
	u, err := s.Attempt(context.Background(), Credentials{Username: "driver7", Password: "hunter2hunter2"})
	if err != nil {
		t.Fatalf("Attempt returned error: %v", err)
	}
	if u.ID != seeded.ID {
		t.Errorf("expected seeded user, got %s", u.ID)
	}
}

func TestLocalStrategy_FailuresIndistinguishable(t *testing.T) {
	directory, db := newTestDirectory(t)
	seedLocalUser(t, db, "driver7", "hunter2hunter2")
	ssoOnly := &user.User{Username: "sso@example.com", Provider: user.ProviderMicrosoft}
	if err := db.Create(ssoOnly).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	s := NewLocalStrategy(directory, password.NewHasher())

	attempts := []struct {
		name  string
		creds Credentials
	}{
		{"unknown user", Credentials{Username: "nobody", Password: "hunter2hunter2"}},
		{"wrong password", Credentials{Username: "driver7", Password: "wrong password"}},
		{"sso-only account", Credentials{Username: "sso@example.com", Password: "hunter2hunter2"}},
		{"wrong case username", Credentials{Username: "DRIVER7", Password: "hunter2hunter2"}},
	}

	var first *apperrors.AppError
	for _, tc := range attempts {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Attempt(context.Background(), tc.creds)
			appErr, ok := apperrors.AsAppError(err)
			if !ok {
				t.Fatalf("expected AppError, got %v", err)
			}
			if first == nil {
				first = appErr
				return
			}
			if appErr.Code != first.Code || appErr.Message != first.Message || appErr.HTTPStatus != first.HTTPStatus {
				t.Errorf("failure outcomes differ: %+v vs %+v", appErr, first)
			}
		})
	}
}

func TestLocalStrategy_DeletedUserStillAuthenticates(t *testing.T) {
	directory, db := newTestDirectory(t)
	seeded := seedLocalUser(t, db, "driver7", "hunter2hunter2")
	if err := db.Model(seeded).Update("deleted", true).Error; err != nil {
		t.Fatalf("mark deleted: %v", err)
	}

	s := NewLocalStrategy(directory, password.NewHasher())
	u, err := s.Attempt(context.Background(), Credentials{Username: "driver7", Password: "hunter2hunter2"})
	if err != nil {
		t.Fatalf("Attempt returned error: %v", err)
	}
	if !u.Deleted {
		t.Error("expected the soft-deleted record back")
	}
}

func TestSSOStrategy_IneligibleWithoutBase(t *testing.T) {
	directory, _ := newTestDirectory(t)

	s := NewSSOAPIStrategy(directory)
	_, err := s.Attempt(context.Background(), Credentials{Email: "new@example.com"})
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Code != apperrors.ErrCodeIneligible {
		t.Errorf("expected USER_NOT_ELIGIBLE, got %s", appErr.Code)
	}
	if appErr.HTTPStatus != 404 {
		t.Errorf("expected 404, got %d", appErr.HTTPStatus)
	}
}

func TestSSOStrategy_EligibleWithBase(t *testing.T) {
	directory, db := newTestDirectory(t)
	baseID := uuid.New()
	seed := &user.User{Username: "driver7@example.com", Provider: user.ProviderMicrosoft, BaseID: &baseID}
	if err := db.Create(seed).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	s := NewSSOWebStrategy(directory)
	u, err := s.Attempt(context.Background(), Credentials{Email: "Driver7@Example.com"})
	if err != nil {
		t.Fatalf("Attempt returned error: %v", err)
	}
	if u.ID != seed.ID {
		t.Errorf("expected existing account, got %s", u.ID)
	}
}

func TestSSOStrategy_ProvisionRemainsIneligible(t *testing.T) {
	// First login provisions the account but without a base assignment the
	// attempt is still rejected; a later retry resolves the same record.
	directory, db := newTestDirectory(t)
	s := NewSSOAPIStrategy(directory)
	ctx := context.Background()

	if _, err := s.Attempt(ctx, Credentials{Email: "new@example.com"}); err == nil {
		t.Fatal("expected ineligible rejection")
	}

	var provisioned user.User
	if err := db.Where("username = ?", "new@example.com").First(&provisioned).Error; err != nil {
		t.Fatalf("expected account to be provisioned: %v", err)
	}
	if provisioned.PasswordHash != nil {
		t.Error("provisioned SSO account must not carry a password hash")
	}

	baseID := uuid.New()
	if err := db.Model(&provisioned).Update("base_id", baseID).Error; err != nil {
		t.Fatalf("assign base: %v", err)
	}
	u, err := s.Attempt(ctx, Credentials{Email: "new@example.com"})
	if err != nil {
		t.Fatalf("expected attempt to succeed after base assignment: %v", err)
	}
	if u.ID != provisioned.ID {
		t.Errorf("expected the provisioned account, got %s", u.ID)
	}
}

func TestBearerStrategy_RoundTrip(t *testing.T) {
	directory, db := newTestDirectory(t)
	seeded := seedLocalUser(t, db, "driver7", "hunter2hunter2")
	tokens := newTestTokens(t)

	signed, err := tokens.Issue(seeded.ID.String(), seeded.Username)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	s := NewBearerStrategy(tokens, directory)
	u, err := s.Attempt(context.Background(), Credentials{Token: signed})
	if err != nil {
		t.Fatalf("Attempt returned error: %v", err)
	}
	if u.ID != seeded.ID {
		t.Errorf("expected seeded user, got %s", u.ID)
	}
}

func TestBearerStrategy_UnknownSubject(t *testing.T) {
	directory, _ := newTestDirectory(t)
	tokens := newTestTokens(t)

	signed, err := tokens.Issue(uuid.NewString(), "ghost")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	s := NewBearerStrategy(tokens, directory)
	_, err = s.Attempt(context.Background(), Credentials{Token: signed})
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Code != apperrors.ErrCodeUnauthorized {
		t.Errorf("expected UNAUTHORIZED, got %s", appErr.Code)
	}
}

func TestBearerStrategy_BadToken(t *testing.T) {
	directory, _ := newTestDirectory(t)
	s := NewBearerStrategy(newTestTokens(t), directory)

	_, err := s.Attempt(context.Background(), Credentials{Token: "garbage"})
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Code != apperrors.ErrCodeInvalidToken {
		t.Errorf("expected INVALID_TOKEN, got %s", appErr.Code)
	}
}

func TestStrategyNames(t *testing.T) {
	directory, _ := newTestDirectory(t)
	tokens := newTestTokens(t)
	h := password.NewHasher()

	names := map[string]Strategy{
		"local":           NewLocalStrategy(directory, h),
		"azure-ad":        NewSSOAPIStrategy(directory),
		"azure-ad-web":    NewSSOWebStrategy(directory),
		"jwt":             NewBearerStrategy(tokens, directory),
		"jwt-query-param": NewBearerQueryStrategy(tokens, directory),
	}
	for want, s := range names {
		if s.Name() != want {
			t.Errorf("expected strategy name %q, got %q", want, s.Name())
		}
	}
}
