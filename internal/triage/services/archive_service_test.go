package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c14220110/poliklinik-triage/internal/triage/models"
)

func TestArchiveService_Append(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := NewArchiveService(db)
	calledAt := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	entry := models.HistoryEntry{
		Patient:    models.Patient{ID: 1001, Name: "Budi", Age: 52, Priority: models.Urgent},
		ClinicName: "Cardiology",
		CalledAt:   calledAt,
	}

	tests := []struct {
		name    string
		setup   func()
		wantErr bool
	}{
		{
			name: "inserted",
			setup: func() {
				mock.ExpectExec("INSERT INTO Riwayat_Panggilan").
					WithArgs(1001, "Budi", 52, 2, "Cardiology", calledAt).
					WillReturnResult(sqlmock.NewResult(1, 1))
			},
		},
		{
			name: "no rows affected",
			setup: func() {
				mock.ExpectExec("INSERT INTO Riwayat_Panggilan").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: true,
		},
		{
			name: "driver error",
			setup: func() {
				mock.ExpectExec("INSERT INTO Riwayat_Panggilan").
					WillReturnError(errors.New("connection reset"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			err := s.Append(context.Background(), entry)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArchiveService_EnsureSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS Riwayat_Panggilan").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, NewArchiveService(db).EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
