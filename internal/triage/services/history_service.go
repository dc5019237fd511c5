package services

import (
	"sync"
	"time"

	"github.com/c14220110/poliklinik-triage/internal/triage/models"
)

// HistoryLog adalah catatan append-only pasien yang sudah dipanggil,
// urut sesuai waktu pemanggilan.
type HistoryLog struct {
	mu      sync.RWMutex
	entries []models.HistoryEntry
	now     func() time.Time
}

func NewHistoryLog() *HistoryLog {
	return &HistoryLog{now: time.Now}
}

// Record appends a snapshot of p called at clinicName.
func (h *HistoryLog) Record(p models.Patient, clinicName string) models.HistoryEntry {
	entry := models.HistoryEntry{
		Patient:    p,
		ClinicName: clinicName,
		CalledAt:   h.now(),
	}

	h.mu.Lock()
	h.entries = append(h.entries, entry)
	h.mu.Unlock()

	return entry
}

// ListAll returns a copy of all entries, oldest first.
func (h *HistoryLog) ListAll() []models.HistoryEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]models.HistoryEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

func (h *HistoryLog) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.entries)
}
