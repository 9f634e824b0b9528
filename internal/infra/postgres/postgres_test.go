package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/KasumiMercury/equipment-maintenance-alerts/internal/config"
	"github.com/KasumiMercury/equipment-maintenance-alerts/internal/domain"
	"github.com/KasumiMercury/equipment-maintenance-alerts/internal/testutil"
)

func setupPool(ctx context.Context, t *testing.T) (*Pool, func()) {
	t.Helper()

	dsn, cleanupContainer := testutil.SetupPostgresContainer(ctx, t)

	pool, err := NewPool(ctx, &config.PostgresConfig{DatabaseURL: dsn, MaxConns: 8, MinConns: 1}, slog.LevelError)
	if err != nil {
		cleanupContainer()
		t.Fatalf("failed to open pool: %v", err)
	}

	return pool, func() {
		if err := pool.Close(); err != nil {
			t.Logf("failed to close pool: %v", err)
		}
		cleanupContainer()
	}
}

func newDraft(key string, category domain.Category) domain.AlertDraft {
	return domain.AlertDraft{
		AlertKey:    key,
		Category:    category,
		Message:     "message for " + key,
		TargetRoute: "/equipment/x",
	}
}

func TestAlertRepositoryUpsertByKey(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	pool, cleanup := setupPool(ctx, t)
	defer cleanup()

	repo := NewAlertRepository(pool)

	first, err := repo.UpsertByKey(ctx, newDraft("e1:upcoming:2024-06-15", domain.CategoryUpcoming))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !first.Inserted {
		t.Error("expected first upsert to insert")
	}

	second, err := repo.UpsertByKey(ctx, newDraft("e1:upcoming:2024-06-15", domain.CategoryUpcoming))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Inserted {
		t.Error("expected second upsert to be a no-op")
	}
	if second.Alert.ID != first.Alert.ID {
		t.Errorf("expected id %s, got %s", first.Alert.ID, second.Alert.ID)
	}
	if !second.Alert.CreatedAt.Equal(second.Alert.UpdatedAt) {
		t.Error("untouched record must keep created_at == updated_at")
	}
}

func TestAlertRepositoryUpsertByKeyConcurrent(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	pool, cleanup := setupPool(ctx, t)
	defer cleanup()

	repo := NewAlertRepository(pool)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		inserted int
	)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := repo.UpsertByKey(ctx, newDraft("e1:overdue:2024-05-20", domain.CategoryOverdue))
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			if res.Inserted {
				mu.Lock()
				inserted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if inserted != 1 {
		t.Errorf("expected exactly one insert, got %d", inserted)
	}

	all, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("expected 1 alert, got %d", len(all))
	}
}

func TestAlertRepositoryReadOperations(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	pool, cleanup := setupPool(ctx, t)
	defer cleanup()

	base := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	tick := 0
	repo := &alertRepository{
		db: pool.GORM(),
		now: func() time.Time {
			tick++
			return base.Add(time.Duration(tick) * time.Minute)
		},
	}

	ids := make([]string, 0, 3)
	for i := range 3 {
		res, err := repo.UpsertByKey(ctx, newDraft(fmt.Sprintf("e%d:overdue:2024-05-20", i), domain.CategoryOverdue))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		ids = append(ids, res.Alert.ID)
	}

	unread, err := repo.ListUnread(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(unread) != 3 || unread[0].ID != ids[2] || unread[2].ID != ids[0] {
		t.Fatalf("expected unread most recent first, got %d alerts", len(unread))
	}

	read, err := repo.MarkRead(ctx, ids[0])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !read.Read {
		t.Error("expected alert to be read")
	}

	modified, err := repo.MarkAllRead(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if modified != 2 {
		t.Errorf("expected 2 modified, got %d", modified)
	}

	unread, err = repo.ListUnread(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(unread) != 0 {
		t.Errorf("expected no unread alerts, got %d", len(unread))
	}

	all, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("reading must not delete alerts, got %d", len(all))
	}

	for _, id := range []string{"not-a-uuid", "00000000-0000-0000-0000-000000000000"} {
		if _, err := repo.GetByID(ctx, id); !errors.Is(err, domain.ErrAlertNotFound) {
			t.Errorf("GetByID(%q): expected ErrAlertNotFound, got %v", id, err)
		}
		if _, err := repo.MarkRead(ctx, id); !errors.Is(err, domain.ErrAlertNotFound) {
			t.Errorf("MarkRead(%q): expected ErrAlertNotFound, got %v", id, err)
		}
	}
}

func TestEquipmentSource(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	pool, cleanup := setupPool(ctx, t)
	defer cleanup()

	if err := pool.GORM().WithContext(ctx).AutoMigrate(&equipmentModel{}); err != nil {
		t.Fatalf("failed to create equipment table: %v", err)
	}

	due := "15-06-2024"
	iso := "2024-07-01T10:00:00Z"
	rows := []equipmentModel{
		{ID: "e1", Serial: "S1", Brand: "Philips", Model: "MX450", NextMaintenance: &due},
		{ID: "e2", Serial: "S2", Brand: "Mindray", NextMaintenance: &iso},
		{ID: "e3", Serial: "S3", Brand: "GE"},
	}
	if err := pool.GORM().WithContext(ctx).Create(&rows).Error; err != nil {
		t.Fatalf("failed to seed equipment: %v", err)
	}

	source := NewEquipmentSource(pool)

	withDue, err := source.ListWithDueDate(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(withDue) != 2 {
		t.Fatalf("expected 2 equipment with due date, got %d", len(withDue))
	}
	if withDue[0].ID != "e1" || withDue[0].NextMaintenance != "15-06-2024" {
		t.Errorf("unexpected first equipment: %+v", withDue[0])
	}

	byID, err := source.GetByIDs(ctx, []string{"e3", "missing"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(byID) != 1 || byID[0].ID != "e3" || byID[0].NextMaintenance != nil {
		t.Errorf("unexpected lookup result: %+v", byID)
	}
}
