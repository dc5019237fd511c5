package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/c14220110/poliklinik-triage/internal/common/metrics"
	"github.com/c14220110/poliklinik-triage/internal/triage/models"
)

// Publisher menyiarkan perubahan antrian, misalnya ke layar display.
type Publisher interface {
	Publish(event models.QueueEvent)
}

// TriageService merangkai Registry dan HistoryLog untuk meja resepsionis
// dan layar dokter: validasi input, pencatatan riwayat, siaran event,
// metrik, dan arsip. Operasi yang mengubah antrian satu poliklinik
// dijalankan berurutan, sehingga urutan riwayat, event, baris arsip, dan
// gauge kedalaman antrian sama dengan urutan panggilan.
type TriageService struct {
	Registry *Registry
	History  *HistoryLog

	locks []sync.Mutex

	publisher Publisher
	metrics   *metrics.TriageMetrics
	archive   HistoryArchive
	logger    zerolog.Logger
	now       func() time.Time
}

type Option func(*TriageService)

func WithPublisher(p Publisher) Option {
	return func(s *TriageService) { s.publisher = p }
}

func WithMetrics(m *metrics.TriageMetrics) Option {
	return func(s *TriageService) { s.metrics = m }
}

func WithArchive(a HistoryArchive) Option {
	return func(s *TriageService) { s.archive = a }
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *TriageService) { s.logger = l }
}

func NewTriageService(registry *Registry, history *HistoryLog, opts ...Option) *TriageService {
	s := &TriageService{
		Registry: registry,
		History:  history,
		locks:    make([]sync.Mutex, registry.ClinicCount()),
		logger:   zerolog.Nop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// lockClinic mengunci poliklinik clinicIdx dan mengembalikan fungsi unlock.
func (s *TriageService) lockClinic(clinicIdx int) (func(), error) {
	if clinicIdx < 0 || clinicIdx >= len(s.locks) {
		return nil, ErrInvalidClinic
	}
	s.locks[clinicIdx].Lock()
	return s.locks[clinicIdx].Unlock, nil
}

// RegisterPatient memvalidasi data pendaftaran lalu memasukkan pasien ke
// antrian prioritas poliklinik yang dipilih.
func (s *TriageService) RegisterPatient(_ context.Context, clinicIdx int, in models.PatientInput) (models.Patient, error) {
	if err := in.Validate(); err != nil {
		return models.Patient{}, err
	}

	unlock, err := s.lockClinic(clinicIdx)
	if err != nil {
		return models.Patient{}, err
	}
	defer unlock()

	p, err := s.Registry.Admit(clinicIdx, in.Patient())
	if err != nil {
		if errors.Is(err, ErrQueueFull) {
			name, _ := s.Registry.ClinicName(clinicIdx)
			s.metrics.ObserveAdmission(name, in.Priority.String(), "queue_full")
		}
		return models.Patient{}, err
	}

	name, _ := s.Registry.ClinicName(clinicIdx)
	s.metrics.ObserveAdmission(name, p.Priority.String(), "admitted")
	s.refreshDepth(clinicIdx)
	s.publish(models.EventAdmitted, clinicIdx, name, p)

	s.logger.Info().
		Int("id_pasien", p.ID).
		Str("clinic", name).
		Str("priority", p.Priority.String()).
		Msg("patient admitted")
	return p, nil
}

// CallNextPatient memanggil pasien berikutnya dan mencatatnya ke riwayat.
// Pengambilan dari antrian dan pencatatan riwayat terjadi dalam satu
// bagian terkunci per poliklinik.
func (s *TriageService) CallNextPatient(ctx context.Context, clinicIdx int) (models.HistoryEntry, error) {
	unlock, err := s.lockClinic(clinicIdx)
	if err != nil {
		return models.HistoryEntry{}, err
	}
	defer unlock()

	p, err := s.Registry.CallNext(clinicIdx)
	if err != nil {
		return models.HistoryEntry{}, err
	}

	name, _ := s.Registry.ClinicName(clinicIdx)
	entry := s.History.Record(p, name)

	s.metrics.ObserveCall(name, p.Priority.String())
	s.refreshDepth(clinicIdx)
	s.publish(models.EventCalled, clinicIdx, name, p)

	if s.archive != nil {
		if err := s.archive.Append(ctx, entry); err != nil {
			s.logger.Warn().Err(err).Int("id_pasien", p.ID).Msg("history archive write failed")
		}
	}

	s.logger.Info().
		Int("id_pasien", p.ID).
		Str("clinic", name).
		Str("priority", p.Priority.String()).
		Msg("patient called")
	return entry, nil
}

// SkipPatient memindahkan pasien terdepan ke belakang antrian kelasnya.
func (s *TriageService) SkipPatient(_ context.Context, clinicIdx int) (models.Patient, error) {
	unlock, err := s.lockClinic(clinicIdx)
	if err != nil {
		return models.Patient{}, err
	}
	defer unlock()

	p, err := s.Registry.Skip(clinicIdx)
	if err != nil {
		return models.Patient{}, err
	}

	name, _ := s.Registry.ClinicName(clinicIdx)
	s.metrics.ObserveSkip(name, p.Priority.String())
	s.publish(models.EventSkipped, clinicIdx, name, p)

	s.logger.Info().
		Int("id_pasien", p.ID).
		Str("clinic", name).
		Msg("patient skipped")
	return p, nil
}

func (s *TriageService) FindPatient(id int) (models.Location, error) {
	return s.Registry.FindByID(id)
}

func (s *TriageService) ListQueues() []models.ClinicListing {
	return s.Registry.ListAll()
}

func (s *TriageService) ListHistory() []models.HistoryEntry {
	return s.History.ListAll()
}

func (s *TriageService) ClinicStatus(clinicIdx int) (models.ClinicStatus, error) {
	return s.Registry.Status(clinicIdx)
}

func (s *TriageService) Clinics() []models.ClinicInfo {
	return s.Registry.Clinics()
}

// refreshDepth harus dipanggil selagi lockClinic(clinicIdx) dipegang.
func (s *TriageService) refreshDepth(clinicIdx int) {
	if s.metrics == nil {
		return
	}
	st, err := s.Registry.Status(clinicIdx)
	if err != nil {
		return
	}
	s.metrics.SetQueueDepth(st.Name, models.Critical.String(), st.Critical)
	s.metrics.SetQueueDepth(st.Name, models.Urgent.String(), st.Urgent)
	s.metrics.SetQueueDepth(st.Name, models.Normal.String(), st.Normal)
}

func (s *TriageService) publish(kind string, clinicIdx int, clinicName string, p models.Patient) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(models.QueueEvent{
		Type:        kind,
		ClinicIndex: clinicIdx,
		ClinicName:  clinicName,
		Patient:     p,
		Queue:       p.Priority.String(),
		Timestamp:   s.now(),
	})
}
