package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// StaffAccount adalah akun petugas (resepsionis/dokter) dari STAFF_ACCOUNTS.
type StaffAccount struct {
	Username     string
	Role         string
	PasswordHash string
}

type Config struct {
	AppEnv   string
	Port     string
	LogLevel string

	JWTSecret string
	TokenTTL  time.Duration

	QueueCapacity  int
	ClinicNames    []string
	FirstPatientID int
	StaffAccounts  []StaffAccount

	// Arsip riwayat ke MariaDB, aktif jika DB_HOST diisi.
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
}

var (
	cfg     *Config
	loadErr error
	once    sync.Once
)

const (
	defaultClinicNames = "Cardiology,Dermatology,Neurology,Pediatrics,Orthopedics"
	defaultCapacity    = 50
	defaultFirstID     = 1001
)

// LoadConfig membaca .env (jika ada) dan environment sekali saja.
func LoadConfig() (*Config, error) {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Warn().Msg(".env file not found, relying on environment variables")
		}
		cfg, loadErr = Load()
	})
	return cfg, loadErr
}

// Load builds a Config from the current environment.
func Load() (*Config, error) {
	c := &Config{
		AppEnv:     getEnv("APP_ENV", "development"),
		Port:       getEnv("PORT", "8080"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBName:     os.Getenv("DB_NAME"),
	}

	var err error
	if c.QueueCapacity, err = getInt("QUEUE_CAPACITY", defaultCapacity); err != nil {
		return nil, err
	}
	if c.QueueCapacity < 1 {
		return nil, fmt.Errorf("QUEUE_CAPACITY must be positive, got %d", c.QueueCapacity)
	}
	if c.FirstPatientID, err = getInt("FIRST_PATIENT_ID", defaultFirstID); err != nil {
		return nil, err
	}
	if c.FirstPatientID < 1 {
		return nil, fmt.Errorf("FIRST_PATIENT_ID must be positive, got %d", c.FirstPatientID)
	}

	ttl, err := getInt("TOKEN_TTL_MINUTES", 480)
	if err != nil {
		return nil, err
	}
	c.TokenTTL = time.Duration(ttl) * time.Minute

	c.ClinicNames = splitList(getEnv("CLINIC_NAMES", defaultClinicNames))
	if len(c.ClinicNames) == 0 {
		return nil, fmt.Errorf("CLINIC_NAMES must list at least one clinic")
	}

	if c.StaffAccounts, err = parseStaffAccounts(os.Getenv("STAFF_ACCOUNTS")); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) IsDev() bool {
	return c.AppEnv == "development"
}

// ArchiveEnabled reports whether the MariaDB history archive is configured.
func (c *Config) ArchiveEnabled() bool {
	return c.DBHost != ""
}

// Validate memastikan konfigurasi aman untuk dijalankan.
func (c *Config) Validate() error {
	if c.JWTSecret == "" && !c.IsDev() {
		return fmt.Errorf("JWT_SECRET is required when APP_ENV=%q", c.AppEnv)
	}
	if c.ArchiveEnabled() && c.DBName == "" {
		return fmt.Errorf("DB_NAME is required when DB_HOST is set")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return n, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseStaffAccounts membaca format "username:role:bcrypthash,...".
func parseStaffAccounts(raw string) ([]StaffAccount, error) {
	var accounts []StaffAccount
	for _, item := range splitList(raw) {
		parts := strings.SplitN(item, ":", 3)
		if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
			return nil, fmt.Errorf("STAFF_ACCOUNTS entry %q must be username:role:hash", item)
		}
		accounts = append(accounts, StaffAccount{
			Username:     parts[0],
			Role:         parts[1],
			PasswordHash: parts[2],
		})
	}
	return accounts, nil
}
