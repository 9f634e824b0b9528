package stub

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"
)

const dayLayout = "2006-01-02"

type Batch struct {
	StartDay time.Time
	EndDay   time.Time
	Count    int
	Layout   string
	Brand    string
	Model    string
	Area     string
}

// EquipmentStorage keeps seeded batches per load-test run.
type EquipmentStorage struct {
	mu      sync.RWMutex
	batches map[string][]*Batch // runID -> batches
}

func NewEquipmentStorage() *EquipmentStorage {
	return &EquipmentStorage{
		batches: make(map[string][]*Batch),
	}
}

func (s *EquipmentStorage) Reset(runID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.batches, runID)
}

func (s *EquipmentStorage) ResetAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches = make(map[string][]*Batch)
}

func (s *EquipmentStorage) AddBatch(runID string, batch *Batch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches[runID] = append(s.batches[runID], batch)
}

// List returns every equipment of the run. When ids is non-empty only those
// equipment are returned.
func (s *EquipmentStorage) List(runID string, ids map[string]bool) []EquipmentResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []EquipmentResponse{}
	for bi, batch := range s.batches[runID] {
		for _, eq := range generateEquipment(runID, bi, batch) {
			if len(ids) > 0 && !ids[eq.ID] {
				continue
			}
			out = append(out, eq)
		}
	}

	return out
}

func generateEquipment(runID string, batchIndex int, batch *Batch) []EquipmentResponse {
	if batch.Count == 0 {
		return nil
	}

	span := int(batch.EndDay.Sub(batch.StartDay)/(24*time.Hour)) + 1
	if span <= 0 {
		span = 1
	}

	out := make([]EquipmentResponse, 0, batch.Count)
	for i := 0; i < batch.Count; i++ {
		due := batch.StartDay.AddDate(0, 0, i*span/batch.Count)
		id := generateEquipmentID(runID, batchIndex, i)
		next := formatDue(due, batch.Layout)

		out = append(out, EquipmentResponse{
			ID:              id,
			Serial:          "SN-" + id[len(id)-8:],
			Brand:           batch.Brand,
			Model:           batch.Model,
			Area:            batch.Area,
			Provider:        "stub",
			NextMaintenance: &next,
		})
	}

	return out
}

func formatDue(due time.Time, layout string) string {
	switch layout {
	case "ddmmyyyy":
		return due.Format("02-01-2006")
	case "rfc3339":
		return due.Add(10 * time.Hour).Format(time.RFC3339)
	case "invalid":
		return "not-a-date"
	default:
		return due.Format(dayLayout)
	}
}

func generateEquipmentID(runID string, batchIndex, index int) string {
	input := fmt.Sprintf("%s-%d-%d", runID, batchIndex, index)
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf("%s-%s", runID, hex.EncodeToString(hash[:8]))
}
