package registry

type EquipmentResponse struct {
	ID       string `json:"id"`
	Serial   string `json:"serial"`
	Brand    string `json:"brand"`
	Model    string `json:"model"`
	Area     string `json:"area"`
	Provider string `json:"provider"`
	// Maintenance dates arrive in whatever encoding the registry stored:
	// strings in several layouts, or null.
	NextMaintenance any `json:"next_maintenance"`
	LastMaintenance any `json:"last_maintenance"`
}

type EquipmentListResponse struct {
	Equipment []EquipmentResponse `json:"equipment"`
	Count     int                 `json:"count"`
}
