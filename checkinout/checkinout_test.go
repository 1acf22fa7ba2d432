package checkinout

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/fleetgrid/fleetgrid/database/query"
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
	if err := db.AutoMigrate(&Event{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewService(db)
}

func TestService_CreateAndGet(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	e := &Event{
		VehiclePlate: "AB123CD",
		UserID:       uuid.New(),
		Direction:    DirectionOut,
		OdometerKm:   48210,
		FuelLevel:    75,
		OccurredAt:   time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC),
	}
	if err := svc.Create(ctx, e); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	got, err := svc.Get(ctx, e.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.Direction != DirectionOut || got.OdometerKm != 48210 {
		t.Errorf("unexpected record %+v", got)
	}
}

func TestService_Create_InvalidDirection(t *testing.T) {
	svc := newTestService(t)

	for _, dir := range []string{"", "outbound", "IN", "Out"} {
		err := svc.Create(context.Background(), &Event{
			VehiclePlate: "AB123CD",
			UserID:       uuid.New(),
			Direction:    dir,
			OccurredAt:   time.Now(),
		})
		appErr, ok := apperrors.AsAppError(err)
		if !ok || appErr.Code != apperrors.ErrCodeInvalidInput {
			t.Errorf("direction %q: expected INVALID_INPUT, got %v", dir, err)
		}
	}
}

func TestService_Update_InvalidDirection(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	e := &Event{VehiclePlate: "AB123CD", UserID: uuid.New(), Direction: DirectionIn, OccurredAt: time.Now()}
	if err := svc.Create(ctx, e); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	_, err := svc.Update(ctx, e.ID, &Event{Direction: "sideways"})
	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.Code != apperrors.ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
}

func TestService_List_NewestEventFirst(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()

	times := []time.Time{
		time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
	}
	for _, ts := range times {
		e := &Event{VehiclePlate: "AB123CD", UserID: userID, Direction: DirectionIn, OccurredAt: ts}
		if err := svc.Create(ctx, e); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
	}

	params, err := query.Parse(url.Values{})
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	result, err := svc.List(ctx, params)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if result.Pagination.Total != 3 {
		t.Fatalf("expected 3 events, got %d", result.Pagination.Total)
	}
	for i := 1; i < len(result.Data); i++ {
		if result.Data[i].OccurredAt.After(result.Data[i-1].OccurredAt) {
			t.Errorf("events not sorted newest first: %v after %v",
				result.Data[i].OccurredAt, result.Data[i-1].OccurredAt)
		}
	}
}

func TestService_Update_ChangesPersist(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	e := &Event{VehiclePlate: "AB123CD", UserID: uuid.New(), Direction: DirectionOut, FuelLevel: 80, OccurredAt: time.Now()}
	if err := svc.Create(ctx, e); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	changes := &Event{
		VehiclePlate: "XX99YY",
		UserID:       e.UserID,
		Direction:    DirectionIn,
		OdometerKm:   48500,
		FuelLevel:    40,
		Remarks:      "returned with scratch on left door",
		OccurredAt:   e.OccurredAt.Add(6 * time.Hour),
	}
	if _, err := svc.Update(ctx, e.ID, changes); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	got, err := svc.Get(ctx, e.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.Direction != DirectionIn || got.VehiclePlate != "XX99YY" || got.Remarks == "" {
		t.Errorf("unexpected record after update %+v", got)
	}
}

func TestService_Delete_NotFound(t *testing.T) {
	svc := newTestService(t)

	err := svc.Delete(context.Background(), uuid.New())
	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.Code != apperrors.ErrCodeNotFound {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}
