package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/c14220110/poliklinik-triage/internal/triage/models"
)

// HistoryArchive menerima salinan setiap pemanggilan pasien untuk audit.
// Arsip hanya ditulis, tidak pernah dibaca kembali saat startup.
type HistoryArchive interface {
	Append(ctx context.Context, entry models.HistoryEntry) error
}

type ArchiveService struct {
	DB *sql.DB
}

func NewArchiveService(db *sql.DB) *ArchiveService {
	return &ArchiveService{DB: db}
}

const createRiwayatTable = `
	CREATE TABLE IF NOT EXISTS Riwayat_Panggilan (
		id_riwayat  BIGINT AUTO_INCREMENT PRIMARY KEY,
		id_pasien   INT          NOT NULL,
		nama        VARCHAR(50)  NOT NULL,
		umur        INT          NOT NULL,
		prioritas   TINYINT      NOT NULL,
		nama_poli   VARCHAR(50)  NOT NULL,
		called_at   DATETIME(3)  NOT NULL
	)
`

// EnsureSchema membuat tabel Riwayat_Panggilan jika belum ada.
func (s *ArchiveService) EnsureSchema(ctx context.Context) error {
	if _, err := s.DB.ExecContext(ctx, createRiwayatTable); err != nil {
		return fmt.Errorf("create Riwayat_Panggilan: %w", err)
	}
	return nil
}

// Append menyimpan satu entri riwayat ke MariaDB.
func (s *ArchiveService) Append(ctx context.Context, entry models.HistoryEntry) error {
	query := `
		INSERT INTO Riwayat_Panggilan (id_pasien, nama, umur, prioritas, nama_poli, called_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	res, err := s.DB.ExecContext(ctx, query,
		entry.Patient.ID,
		entry.Patient.Name,
		entry.Patient.Age,
		int(entry.Patient.Priority),
		entry.ClinicName,
		entry.CalledAt,
	)
	if err != nil {
		return fmt.Errorf("gagal menyimpan riwayat pasien %d: %w", entry.Patient.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("gagal memeriksa insert riwayat: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("tidak ada baris riwayat yang tersimpan untuk pasien %d", entry.Patient.ID)
	}
	return nil
}
