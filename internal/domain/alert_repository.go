package domain

import "context"

//go:generate mockgen -source=alert_repository.go -destination=alert_repository_mock.go -package=domain

// AlertRepository is the only write path for alert records.
type AlertRepository interface {
	// UpsertByKey inserts the draft when its key is new and otherwise returns
	// the stored record untouched. Implementations must do this atomically.
	UpsertByKey(ctx context.Context, draft AlertDraft) (*UpsertResult, error)
	ListUnread(ctx context.Context) ([]*Alert, error)
	ListAll(ctx context.Context) ([]*Alert, error)
	GetByID(ctx context.Context, id string) (*Alert, error)
	MarkRead(ctx context.Context, id string) (*Alert, error)
	MarkAllRead(ctx context.Context) (int, error)
}
