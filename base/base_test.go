package base

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	apperrors "github.com/fleetgrid/fleetgrid/errors"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&Base{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewService(db)
}

func TestService_CreateAndGet(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	b := &Base{Name: "North Depot", Address: "1 North Rd"}
	if err := svc.Create(ctx, b); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if b.ID == uuid.Nil {
		t.Fatal("expected a generated id")
	}

	got, err := svc.Get(ctx, b.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.Name != "North Depot" || got.Address != "1 North Rd" {
		t.Errorf("unexpected record %+v", got)
	}
}

func TestService_Get_NotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Get(context.Background(), uuid.New())
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Code != apperrors.ErrCodeNotFound {
		t.Errorf("expected NOT_FOUND, got %s", appErr.Code)
	}
}

func TestService_List_OrderedByName(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, name := range []string{"South", "North", "East"} {
		if err := svc.Create(ctx, &Base{Name: name}); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
	}

	bases, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(bases) != 3 {
		t.Fatalf("expected 3 bases, got %d", len(bases))
	}
	want := []string{"East", "North", "South"}
	for i, b := range bases {
		if b.Name != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], b.Name)
		}
	}
}

func TestService_Update(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	b := &Base{Name: "Old Name"}
	if err := svc.Create(ctx, b); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	updated, err := svc.Update(ctx, b.ID, &Base{Name: "New Name", Address: "2 New St"})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Name != "New Name" || updated.Address != "2 New St" {
		t.Errorf("unexpected record %+v", updated)
	}

	got, err := svc.Get(ctx, b.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.Name != "New Name" {
		t.Errorf("expected persisted update, got %q", got.Name)
	}
}

func TestService_Update_NotFound(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Update(context.Background(), uuid.New(), &Base{Name: "n"})
	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.Code != apperrors.ErrCodeNotFound {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestService_Delete(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	b := &Base{Name: "Doomed"}
	if err := svc.Create(ctx, b); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if err := svc.Delete(ctx, b.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := svc.Get(ctx, b.ID); err == nil {
		t.Error("expected Get after Delete to fail")
	}

	err := svc.Delete(ctx, b.ID)
	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.Code != apperrors.ErrCodeNotFound {
		t.Errorf("expected NOT_FOUND on repeat delete, got %v", err)
	}
}
