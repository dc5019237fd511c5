package models

import "time"

// QueueListing berisi isi satu antrian prioritas, urut dari depan.
type QueueListing struct {
	Priority Priority  `json:"priority"`
	Queue    string    `json:"queue"`
	Patients []Patient `json:"patients"`
}

// ClinicListing berisi seluruh antrian satu poliklinik.
type ClinicListing struct {
	Index  int            `json:"index"`
	Name   string         `json:"name"`
	Queues []QueueListing `json:"queues"`
}

// ClinicInfo identifies a clinic by its stable index.
type ClinicInfo struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
}

// ClinicStatus reports per-class queue sizes of one clinic.
type ClinicStatus struct {
	Index    int    `json:"index"`
	Name     string `json:"name"`
	Critical int    `json:"critical"`
	Urgent   int    `json:"urgent"`
	Normal   int    `json:"normal"`
	Capacity int    `json:"capacity"`
}

// Location is where a waiting patient currently stands. Position is
// 1-based and relative to the patient's own priority queue.
type Location struct {
	PatientID   int      `json:"id_pasien"`
	ClinicIndex int      `json:"clinic_index"`
	ClinicName  string   `json:"clinic"`
	Priority    Priority `json:"priority"`
	Queue       string   `json:"queue"`
	Position    int      `json:"position"`
}

// Jenis event antrian yang dikirim ke layar display.
const (
	EventAdmitted = "patient.admitted"
	EventCalled   = "patient.called"
	EventSkipped  = "patient.skipped"
)

// QueueEvent adalah perubahan antrian yang disiarkan ke klien WebSocket.
type QueueEvent struct {
	Type        string    `json:"type"`
	ClinicIndex int       `json:"clinic_index"`
	ClinicName  string    `json:"clinic"`
	Patient     Patient   `json:"patient"`
	Queue       string    `json:"queue"`
	Timestamp   time.Time `json:"timestamp"`
}
