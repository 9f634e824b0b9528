package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/KasumiMercury/equipment-maintenance-alerts/internal/domain"
)

// ErrInvalidAlertData is returned for drafts that cannot be stored.
var ErrInvalidAlertData = errors.New("invalid alert data")

// alertModel maps maintenance_alerts.
type alertModel struct {
	ID          string    `gorm:"column:id;type:uuid;primaryKey"`
	AlertKey    string    `gorm:"column:alert_key;type:text;not null;uniqueIndex"`
	Category    string    `gorm:"column:category;type:text;not null"`
	Message     string    `gorm:"column:message;type:text;not null"`
	TargetRoute string    `gorm:"column:target_route;type:text;not null"`
	Read        bool      `gorm:"column:read;not null;default:false"`
	CreatedAt   time.Time `gorm:"column:created_at;type:timestamptz;not null"`
	UpdatedAt   time.Time `gorm:"column:updated_at;type:timestamptz;not null"`
}

func (alertModel) TableName() string { return "maintenance_alerts" }

func (m *alertModel) toDomain() *domain.Alert {
	return &domain.Alert{
		ID:          m.ID,
		AlertKey:    m.AlertKey,
		Category:    domain.Category(m.Category),
		Message:     m.Message,
		TargetRoute: m.TargetRoute,
		Read:        m.Read,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

type alertRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewAlertRepository(pool *Pool) domain.AlertRepository {
	return &alertRepository{
		db:  pool.GORM(),
		now: time.Now,
	}
}

// UpsertByKey relies on the unique alert_key index: the insert either wins or
// is a no-op, and the stored row is read back in the latter case.
func (r *alertRepository) UpsertByKey(ctx context.Context, draft domain.AlertDraft) (*domain.UpsertResult, error) {
	if draft.AlertKey == "" || !draft.Category.Valid() {
		return nil, ErrInvalidAlertData
	}

	now := r.now().UTC().Truncate(time.Microsecond)
	model := alertModel{
		ID:          uuid.NewString(),
		AlertKey:    draft.AlertKey,
		Category:    draft.Category.String(),
		Message:     draft.Message,
		TargetRoute: draft.TargetRoute,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "alert_key"}},
			DoNothing: true,
		}).
		Create(&model)
	if res.Error != nil {
		return nil, fmt.Errorf("insert alert %s: %w", draft.AlertKey, res.Error)
	}

	if res.RowsAffected == 1 {
		return &domain.UpsertResult{Alert: model.toDomain(), Inserted: true}, nil
	}

	var existing alertModel
	if err := r.db.WithContext(ctx).Where("alert_key = ?", draft.AlertKey).Take(&existing).Error; err != nil {
		return nil, fmt.Errorf("read existing alert %s: %w", draft.AlertKey, err)
	}

	return &domain.UpsertResult{Alert: existing.toDomain(), Inserted: false}, nil
}

func (r *alertRepository) ListUnread(ctx context.Context) ([]*domain.Alert, error) {
	var models []alertModel
	if err := r.db.WithContext(ctx).
		Where("read = ?", false).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	return toDomainAlerts(models), nil
}

func (r *alertRepository) ListAll(ctx context.Context) ([]*domain.Alert, error) {
	var models []alertModel
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	return toDomainAlerts(models), nil
}

func (r *alertRepository) GetByID(ctx context.Context, id string) (*domain.Alert, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrAlertNotFound
	}

	var model alertModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAlertNotFound
		}
		return nil, err
	}
	return model.toDomain(), nil
}

func (r *alertRepository) MarkRead(ctx context.Context, id string) (*domain.Alert, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrAlertNotFound
	}

	now := r.now().UTC()
	if err := r.db.WithContext(ctx).
		Model(&alertModel{}).
		Where("id = ? AND read = ?", id, false).
		Updates(map[string]any{"read": true, "updated_at": now}).Error; err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

func (r *alertRepository) MarkAllRead(ctx context.Context) (int, error) {
	res := r.db.WithContext(ctx).
		Model(&alertModel{}).
		Where("read = ?", false).
		Updates(map[string]any{"read": true, "updated_at": r.now().UTC()})
	if res.Error != nil {
		return 0, res.Error
	}
	return int(res.RowsAffected), nil
}

func toDomainAlerts(models []alertModel) []*domain.Alert {
	alerts := make([]*domain.Alert, 0, len(models))
	for i := range models {
		alerts = append(alerts, models[i].toDomain())
	}
	return alerts
}
