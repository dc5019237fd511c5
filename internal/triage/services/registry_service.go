package services

import (
	"sync/atomic"

	"github.com/c14220110/poliklinik-triage/internal/triage/models"
)

// DefaultClinicNames adalah konfigurasi referensi lima poliklinik.
var DefaultClinicNames = []string{
	"Cardiology",
	"Dermatology",
	"Neurology",
	"Pediatrics",
	"Orthopedics",
}

const (
	DefaultQueueCapacity  = 50
	DefaultFirstPatientID = 1001
)

// Registry routes patients to clinic queues and calls them in priority
// order. The clinic set is fixed at construction. Each clinic is guarded by
// its own mutex, so a Registry is safe for concurrent use.
type Registry struct {
	clinics []*Clinic
	nextID  atomic.Int64
}

// NewRegistry membuat semua poliklinik beserta antriannya sekaligus.
func NewRegistry(names []string, capacity, firstID int) *Registry {
	r := &Registry{clinics: make([]*Clinic, len(names))}
	for i, name := range names {
		r.clinics[i] = newClinic(name, capacity)
	}
	r.nextID.Store(int64(firstID))
	return r
}

func (r *Registry) clinic(idx int) (*Clinic, error) {
	if idx < 0 || idx >= len(r.clinics) {
		return nil, ErrInvalidClinic
	}
	return r.clinics[idx], nil
}

// ClinicCount returns the number of clinics.
func (r *Registry) ClinicCount() int {
	return len(r.clinics)
}

// ClinicName returns the display name of the clinic at idx.
func (r *Registry) ClinicName(idx int) (string, error) {
	c, err := r.clinic(idx)
	if err != nil {
		return "", err
	}
	return c.Name, nil
}

// Clinics mengembalikan daftar poliklinik sesuai urutan registry.
func (r *Registry) Clinics() []models.ClinicInfo {
	out := make([]models.ClinicInfo, len(r.clinics))
	for i, c := range r.clinics {
		out[i] = models.ClinicInfo{Index: i, Name: c.Name}
	}
	return out
}

// Admit enqueues p into the clinic queue matching its priority and assigns
// the next patient ID. Any ID already set on p is ignored; an ID is only
// consumed on success.
func (r *Registry) Admit(clinicIdx int, p models.Patient) (models.Patient, error) {
	c, err := r.clinic(clinicIdx)
	if err != nil {
		return models.Patient{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	q := c.queueFor(p.Priority)
	if q.IsFull() {
		return models.Patient{}, ErrQueueFull
	}
	p.ID = int(r.nextID.Add(1) - 1)
	q.Enqueue(p)
	return p, nil
}

// CallNext removes the next patient: Critical first, then Urgent, then
// Normal, FIFO within a class.
func (r *Registry) CallNext(clinicIdx int) (models.Patient, error) {
	c, err := r.clinic(clinicIdx)
	if err != nil {
		return models.Patient{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := callNextLocked(c)
	if !ok {
		return models.Patient{}, ErrAllEmpty
	}
	return p, nil
}

func callNextLocked(c *Clinic) (models.Patient, bool) {
	for _, prio := range models.Priorities {
		if p, ok := c.queueFor(prio).Dequeue(); ok {
			return p, true
		}
	}
	return models.Patient{}, false
}

// Skip moves the next patient to the back of their own class. Dequeue and
// re-enqueue happen under one lock, so the freed slot is always available
// and the patient can never be dropped.
func (r *Registry) Skip(clinicIdx int) (models.Patient, error) {
	c, err := r.clinic(clinicIdx)
	if err != nil {
		return models.Patient{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := callNextLocked(c)
	if !ok {
		return models.Patient{}, ErrNothingToSkip
	}
	c.queueFor(p.Priority).Enqueue(p)
	return p, nil
}

// Status mengembalikan jumlah pasien per kelas pada satu poliklinik.
func (r *Registry) Status(clinicIdx int) (models.ClinicStatus, error) {
	c, err := r.clinic(clinicIdx)
	if err != nil {
		return models.ClinicStatus{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return models.ClinicStatus{
		Index:    clinicIdx,
		Name:     c.Name,
		Critical: c.critical.Len(),
		Urgent:   c.urgent.Len(),
		Normal:   c.normal.Len(),
		Capacity: c.normal.Cap(),
	}, nil
}

// ListAll snapshots every queue: clinics in registry order, classes in call
// order, patients front to back. Nothing is mutated.
func (r *Registry) ListAll() []models.ClinicListing {
	out := make([]models.ClinicListing, len(r.clinics))
	for i, c := range r.clinics {
		c.mu.Lock()
		listing := models.ClinicListing{
			Index:  i,
			Name:   c.Name,
			Queues: make([]models.QueueListing, 0, len(models.Priorities)),
		}
		for _, prio := range models.Priorities {
			listing.Queues = append(listing.Queues, models.QueueListing{
				Priority: prio,
				Queue:    prio.String(),
				Patients: c.queueFor(prio).Snapshot(),
			})
		}
		c.mu.Unlock()
		out[i] = listing
	}
	return out
}

// FindByID locates a waiting patient. The scan follows call order, so the
// first match wins and Position is counted within that patient's own queue.
func (r *Registry) FindByID(id int) (models.Location, error) {
	for i, c := range r.clinics {
		if loc, ok := findInClinic(i, c, id); ok {
			return loc, nil
		}
	}
	return models.Location{}, ErrNotFound
}

func findInClinic(idx int, c *Clinic, id int) (models.Location, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, prio := range models.Priorities {
		q := c.queueFor(prio)
		for j := 0; j < q.Len(); j++ {
			p, _ := q.At(j)
			if p.ID != id {
				continue
			}
			return models.Location{
				PatientID:   id,
				ClinicIndex: idx,
				ClinicName:  c.Name,
				Priority:    prio,
				Queue:       prio.String(),
				Position:    j + 1,
			}, true
		}
	}
	return models.Location{}, false
}
