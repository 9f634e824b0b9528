package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/KasumiMercury/equipment-maintenance-alerts/internal/domain"
	"github.com/KasumiMercury/equipment-maintenance-alerts/internal/testutil"
)

func newDraft(key string, category domain.Category) domain.AlertDraft {
	return domain.AlertDraft{
		AlertKey:    key,
		Category:    category,
		Message:     "message for " + key,
		TargetRoute: "/equipment/" + key,
	}
}

func TestUpsertByKey(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewAlertRepository(client)

	first, err := repo.UpsertByKey(ctx, newDraft("e1:upcoming:2024-06-15", domain.CategoryUpcoming))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !first.Inserted {
		t.Error("expected first upsert to insert")
	}
	if first.Alert.Read {
		t.Error("expected new alert to be unread")
	}
	if !first.Alert.CreatedAt.Equal(first.Alert.UpdatedAt) {
		t.Error("expected created_at == updated_at on insert")
	}

	changed := newDraft("e1:upcoming:2024-06-15", domain.CategoryUpcoming)
	changed.Message = "a different message"

	second, err := repo.UpsertByKey(ctx, changed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Inserted {
		t.Error("expected second upsert to hit the existing record")
	}
	if second.Alert.ID != first.Alert.ID {
		t.Errorf("expected id %s, got %s", first.Alert.ID, second.Alert.ID)
	}
	if second.Alert.Message != first.Alert.Message {
		t.Errorf("existing message must not change, got %q", second.Alert.Message)
	}

	all, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("expected 1 alert, got %d", len(all))
	}
}

func TestUpsertByKeyInvalidDraft(t *testing.T) {
	repo := &alertRepository{now: time.Now}

	tests := []struct {
		name  string
		draft domain.AlertDraft
	}{
		{name: "empty key", draft: newDraft("", domain.CategoryUpcoming)},
		{name: "none category", draft: newDraft("e1:none:2024-06-15", domain.CategoryNone)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := repo.UpsertByKey(context.Background(), tt.draft); !errors.Is(err, ErrInvalidAlertData) {
				t.Errorf("expected ErrInvalidAlertData, got %v", err)
			}
		})
	}
}

func TestUpsertByKeyConcurrent(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewAlertRepository(client)

	const workers = 16
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		inserted int
		ids      = make(map[string]struct{})
	)

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := repo.UpsertByKey(ctx, newDraft("e1:overdue:2024-05-20", domain.CategoryOverdue))
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			mu.Lock()
			defer mu.Unlock()
			if res.Inserted {
				inserted++
			}
			ids[res.Alert.ID] = struct{}{}
		}()
	}
	wg.Wait()

	if inserted != 1 {
		t.Errorf("expected exactly one insert, got %d", inserted)
	}
	if len(ids) != 1 {
		t.Errorf("expected all callers to see one record, got %d ids", len(ids))
	}
}

func TestListUnreadOrdering(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	base := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	tick := 0
	repo := &alertRepository{
		client: client,
		now: func() time.Time {
			tick++
			return base.Add(time.Duration(tick) * time.Minute)
		},
	}

	for i := range 3 {
		if _, err := repo.UpsertByKey(ctx, newDraft(fmt.Sprintf("e%d:upcoming:2024-06-15", i), domain.CategoryUpcoming)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	unread, err := repo.ListUnread(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"e2:upcoming:2024-06-15", "e1:upcoming:2024-06-15", "e0:upcoming:2024-06-15"}
	if len(unread) != len(want) {
		t.Fatalf("expected %d unread, got %d", len(want), len(unread))
	}
	for i, key := range want {
		if unread[i].AlertKey != key {
			t.Errorf("unread[%d] = %s, want %s", i, unread[i].AlertKey, key)
		}
	}
}

func TestMarkRead(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewAlertRepository(client)

	res, err := repo.UpsertByKey(ctx, newDraft("e1:overdue:2024-05-20", domain.CategoryOverdue))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	read, err := repo.MarkRead(ctx, res.Alert.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !read.Read {
		t.Error("expected alert to be read")
	}
	if read.TargetRoute != "/equipment/e1:overdue:2024-05-20" {
		t.Errorf("route changed after mark read: %q", read.TargetRoute)
	}

	unread, err := repo.ListUnread(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(unread) != 0 {
		t.Errorf("expected no unread alerts, got %d", len(unread))
	}

	got, err := repo.GetByID(ctx, res.Alert.ID)
	if err != nil {
		t.Fatalf("reading must not delete the alert: %v", err)
	}
	if !got.Read {
		t.Error("expected persisted read flag")
	}

	again, err := repo.UpsertByKey(ctx, newDraft("e1:overdue:2024-05-20", domain.CategoryOverdue))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again.Inserted || !again.Alert.Read {
		t.Error("re-sweeping a read alert must neither insert nor reset it")
	}

	if _, err := repo.MarkRead(ctx, "missing"); !errors.Is(err, domain.ErrAlertNotFound) {
		t.Errorf("expected ErrAlertNotFound, got %v", err)
	}
}

func TestMarkAllRead(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewAlertRepository(client)

	var firstID string
	for i := range 3 {
		res, err := repo.UpsertByKey(ctx, newDraft(fmt.Sprintf("e%d:overdue:2024-05-20", i), domain.CategoryOverdue))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if i == 0 {
			firstID = res.Alert.ID
		}
	}

	if _, err := repo.MarkRead(ctx, firstID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	modified, err := repo.MarkAllRead(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if modified != 2 {
		t.Errorf("expected 2 modified, got %d", modified)
	}

	all, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 alerts retained, got %d", len(all))
	}
	for _, a := range all {
		if !a.Read {
			t.Errorf("alert %s still unread", a.ID)
		}
	}

	modified, err = repo.MarkAllRead(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if modified != 0 {
		t.Errorf("expected 0 modified on second call, got %d", modified)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewAlertRepository(client)

	if _, err := repo.GetByID(ctx, "missing"); !errors.Is(err, domain.ErrAlertNotFound) {
		t.Errorf("expected ErrAlertNotFound, got %v", err)
	}
}

func hashTag(key string) string {
	start := strings.IndexByte(key, '{')
	if start < 0 {
		return key
	}
	end := strings.IndexByte(key[start+1:], '}')
	if end <= 0 {
		return key
	}
	return key[start+1 : start+1+end]
}

func TestKeysShareHashTag(t *testing.T) {
	keys := []string{
		alertKeyPrefix + "e1:upcoming:2024-06-15",
		alertRecordPrefix + "0b8f3c1e-5b7a-4c39-9d43-3b2f3a1c9e10",
		allAlertsKey,
		unreadAlertsKey,
	}

	for _, key := range keys {
		if got := hashTag(key); got != "alerts" {
			t.Errorf("hash tag of %q = %q, want %q", key, got, "alerts")
		}
	}
}

func TestUpsertByKeyWritesOnlyTaggedKeys(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewAlertRepository(client)
	if _, err := repo.UpsertByKey(ctx, newDraft("e1:overdue:2024-05-20", domain.CategoryOverdue)); err != nil {
		t.Fatalf("UpsertByKey failed: %v", err)
	}

	keys, err := client.Keys(ctx, "*").Result()
	if err != nil {
		t.Fatalf("KEYS failed: %v", err)
	}
	if len(keys) != 4 {
		t.Errorf("expected 4 keys (mapping, record, two indexes), got %v", keys)
	}
	for _, key := range keys {
		if hashTag(key) != "alerts" {
			t.Errorf("key %q is outside the {alerts} hash tag", key)
		}
	}
}
