package stub

type EquipmentResponse struct {
	ID              string  `json:"id"`
	Serial          string  `json:"serial"`
	Brand           string  `json:"brand"`
	Model           string  `json:"model"`
	Area            string  `json:"area"`
	Provider        string  `json:"provider"`
	NextMaintenance *string `json:"next_maintenance"`
	LastMaintenance *string `json:"last_maintenance"`
}

type EquipmentListResponse struct {
	Equipment []EquipmentResponse `json:"equipment"`
	Count     int                 `json:"count"`
}

type SeedRequest struct {
	Batches []SeedBatch `json:"batches" binding:"required,dive"`
}

// SeedBatch spreads Count equipment evenly over due dates in
// [StartDay, EndDay]. Layout selects how the dates are encoded: "iso",
// "ddmmyyyy", "rfc3339" or "invalid".
type SeedBatch struct {
	StartDay string `json:"start_day" binding:"required"`
	EndDay   string `json:"end_day" binding:"required"`
	Count    int    `json:"count" binding:"min=0"`
	Layout   string `json:"layout"`
	Brand    string `json:"brand"`
	Model    string `json:"model"`
	Area     string `json:"area"`
}
