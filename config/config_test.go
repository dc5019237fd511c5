package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{
		"APP_ENV", "PORT", "LOG_LEVEL", "JWT_SECRET", "TOKEN_TTL_MINUTES",
		"QUEUE_CAPACITY", "CLINIC_NAMES", "FIRST_PATIENT_ID", "STAFF_ACCOUNTS",
		"DB_USER", "DB_PASSWORD", "DB_HOST", "DB_PORT", "DB_NAME",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 50, cfg.QueueCapacity)
	assert.Equal(t, 1001, cfg.FirstPatientID)
	assert.Equal(t, 8*time.Hour, cfg.TokenTTL)
	assert.Equal(t, []string{"Cardiology", "Dermatology", "Neurology", "Pediatrics", "Orthopedics"}, cfg.ClinicNames)
	assert.Empty(t, cfg.StaffAccounts)
	assert.False(t, cfg.ArchiveEnabled())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("QUEUE_CAPACITY", "2")
	t.Setenv("CLINIC_NAMES", " Umum , Gigi ,")
	t.Setenv("FIRST_PATIENT_ID", "1")
	t.Setenv("STAFF_ACCOUNTS", "rina:reception:$2a$10$abc,drbudi:doctor:$2a$10$def")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.QueueCapacity)
	assert.Equal(t, []string{"Umum", "Gigi"}, cfg.ClinicNames)
	assert.Equal(t, 1, cfg.FirstPatientID)
	assert.Equal(t, []StaffAccount{
		{Username: "rina", Role: "reception", PasswordHash: "$2a$10$abc"},
		{Username: "drbudi", Role: "doctor", PasswordHash: "$2a$10$def"},
	}, cfg.StaffAccounts)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"capacity not a number", "QUEUE_CAPACITY", "lima puluh"},
		{"capacity zero", "QUEUE_CAPACITY", "0"},
		{"first id negative", "FIRST_PATIENT_ID", "-5"},
		{"ttl not a number", "TOKEN_TTL_MINUTES", "x"},
		{"malformed staff", "STAFF_ACCOUNTS", "rina:reception"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.val)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	prod := &Config{AppEnv: "production"}
	assert.Error(t, prod.Validate())

	prod.JWTSecret = "s3cret"
	assert.NoError(t, prod.Validate())

	prod.DBHost = "db"
	assert.Error(t, prod.Validate())
	prod.DBName = "poliklinik"
	assert.NoError(t, prod.Validate())
}
