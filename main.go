package main

import (
	"context"
	"crypto/rand"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/c14220110/poliklinik-triage/config"
	"github.com/c14220110/poliklinik-triage/internal/common/logging"
	"github.com/c14220110/poliklinik-triage/internal/common/metrics"
	"github.com/c14220110/poliklinik-triage/internal/routes"
	"github.com/c14220110/poliklinik-triage/internal/triage/services"
	"github.com/c14220110/poliklinik-triage/pkg/storage/mariadb"
	"github.com/c14220110/poliklinik-triage/ws"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "poliklinik-triage",
		Short: "Antrian triase poliklinik",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(hashPasswordCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Jalankan server API antrian",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

// hashPasswordCmd mencetak hash bcrypt untuk dipakai di STAFF_ACCOUNTS.
func hashPasswordCmd() *cobra.Command {
	var cost int
	cmd := &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Buat hash bcrypt untuk akun petugas",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := bcrypt.GenerateFromPassword([]byte(args[0]), cost)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(hash))
			return nil
		},
	}
	cmd.Flags().IntVar(&cost, "cost", bcrypt.DefaultCost, "bcrypt cost")
	return cmd
}

func runServer() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := logging.New(cfg.LogLevel, cfg.IsDev())

	secret, generated, err := resolveJWTSecret(cfg.JWTSecret)
	if err != nil {
		return err
	}
	if generated {
		logger.Warn().Msg("JWT_SECRET kosong, memakai secret acak; token tidak berlaku setelah restart")
	}
	if len(cfg.StaffAccounts) == 0 {
		logger.Warn().Msg("STAFF_ACCOUNTS kosong, tidak ada petugas yang bisa login")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	hub := ws.NewHub(logger)
	go hub.Run(ctx)

	opts := []services.Option{
		services.WithLogger(logger),
		services.WithMetrics(metrics.NewTriageMetrics(reg)),
		services.WithPublisher(hub),
	}

	if cfg.ArchiveEnabled() {
		db, err := mariadb.Connect(ctx, cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		archive := services.NewArchiveService(db)
		if err := archive.EnsureSchema(ctx); err != nil {
			return err
		}
		opts = append(opts, services.WithArchive(archive))
		logger.Info().Str("host", cfg.DBHost).Str("db", cfg.DBName).Msg("arsip riwayat MariaDB aktif")
	}

	registry := services.NewRegistry(cfg.ClinicNames, cfg.QueueCapacity, cfg.FirstPatientID)
	triage := services.NewTriageService(registry, services.NewHistoryLog(), opts...)

	e := echo.New()
	e.HideBanner = true
	routes.Init(e, routes.Deps{
		Config:    cfg,
		JWTSecret: secret,
		Triage:    triage,
		Hub:       hub,
		Gatherer:  reg,
		Logger:    logger,
	})

	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Int("clinics", registry.ClinicCount()).Msg("Server berjalan")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	return shutdown(e, hub, logger)
}

func shutdown(e *echo.Echo, hub *ws.Hub, logger zerolog.Logger) error {
	logger.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	select {
	case <-hub.Done():
	case <-ctx.Done():
	}
	logger.Info().Msg("server stopped")
	return nil
}

// resolveJWTSecret memakai JWT_SECRET jika ada, jika tidak membuat secret
// acak 32 byte. Nilai kedua true jika secret dibuat acak.
func resolveJWTSecret(envValue string) ([]byte, bool, error) {
	if envValue != "" {
		return []byte(envValue), false, nil
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, false, fmt.Errorf("generate JWT secret: %w", err)
	}
	return key, true, nil
}
