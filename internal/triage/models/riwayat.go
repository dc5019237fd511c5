package models

import "time"

// HistoryEntry adalah snapshot pasien saat dipanggil dokter.
type HistoryEntry struct {
	Patient    Patient   `json:"patient"`
	ClinicName string    `json:"clinic"`
	CalledAt   time.Time `json:"called_at"`
}
