package domain

import "context"

//go:generate mockgen -source=equipment_source.go -destination=equipment_source_mock.go -package=domain

type EquipmentSource interface {
	ListWithDueDate(ctx context.Context) ([]Equipment, error)
	GetByIDs(ctx context.Context, ids []string) ([]Equipment, error)
}
