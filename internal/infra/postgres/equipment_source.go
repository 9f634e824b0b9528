package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/KasumiMercury/equipment-maintenance-alerts/internal/domain"
)

// equipmentModel maps the registry's equipment table. Maintenance dates are
// kept in whatever text encoding the registry stored.
type equipmentModel struct {
	ID              string  `gorm:"column:id;type:text;primaryKey"`
	Serial          string  `gorm:"column:serial;type:text"`
	Brand           string  `gorm:"column:brand;type:text"`
	Model           string  `gorm:"column:model;type:text"`
	Area            string  `gorm:"column:area;type:text"`
	Provider        string  `gorm:"column:provider;type:text"`
	NextMaintenance *string `gorm:"column:next_maintenance;type:text"`
	LastMaintenance *string `gorm:"column:last_maintenance;type:text"`
}

func (equipmentModel) TableName() string { return "equipment" }

func (m *equipmentModel) toDomain() domain.Equipment {
	eq := domain.Equipment{
		ID:       m.ID,
		Serial:   m.Serial,
		Brand:    m.Brand,
		Model:    m.Model,
		Area:     m.Area,
		Provider: m.Provider,
	}
	if m.NextMaintenance != nil {
		eq.NextMaintenance = *m.NextMaintenance
	}
	if m.LastMaintenance != nil {
		eq.LastMaintenance = *m.LastMaintenance
	}
	return eq
}

type equipmentSource struct {
	db *gorm.DB
}

// NewEquipmentSource reads equipment snapshots. It never writes.
func NewEquipmentSource(pool *Pool) domain.EquipmentSource {
	return &equipmentSource{db: pool.GORM()}
}

func (s *equipmentSource) ListWithDueDate(ctx context.Context) ([]domain.Equipment, error) {
	var models []equipmentModel
	if err := s.db.WithContext(ctx).
		Where("next_maintenance IS NOT NULL").
		Order("id").
		Find(&models).Error; err != nil {
		return nil, err
	}
	return toDomainEquipment(models), nil
}

func (s *equipmentSource) GetByIDs(ctx context.Context, ids []string) ([]domain.Equipment, error) {
	if len(ids) == 0 {
		return []domain.Equipment{}, nil
	}

	var models []equipmentModel
	if err := s.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("id").
		Find(&models).Error; err != nil {
		return nil, err
	}
	return toDomainEquipment(models), nil
}

func toDomainEquipment(models []equipmentModel) []domain.Equipment {
	out := make([]domain.Equipment, 0, len(models))
	for i := range models {
		out = append(out, models[i].toDomain())
	}
	return out
}
