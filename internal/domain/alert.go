package domain

import (
	"time"
)

type Alert struct {
	ID          string    `json:"id"`
	AlertKey    string    `json:"alert_key"`
	Category    Category  `json:"category"`
	Message     string    `json:"message"`
	TargetRoute string    `json:"target_route"`
	Read        bool      `json:"read"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AlertDraft carries the fields written only when an alert key is first seen.
type AlertDraft struct {
	AlertKey    string
	Category    Category
	Message     string
	TargetRoute string
}

type UpsertResult struct {
	Alert    *Alert
	Inserted bool
}

// AlertKey builds the uniqueness key for an equipment alert. It must stay
// byte-identical for identical inputs.
func AlertKey(equipmentID string, category Category, due Day) string {
	return equipmentID + ":" + category.String() + ":" + due.ISO()
}

func EquipmentRoute(equipmentID string) string {
	return "/equipment/" + equipmentID
}
