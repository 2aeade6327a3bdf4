package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hakimalhazi/Skiblo/internal/config"
	"github.com/hakimalhazi/Skiblo/internal/game"
	"github.com/hakimalhazi/Skiblo/internal/server"
	"github.com/hakimalhazi/Skiblo/internal/words"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// The logger is set up before config.Load so the config layer can log.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	} else {
		log.Warn().Str("log_level", cfg.LogLevel).Msg("unknown log level, keeping info")
	}

	catalog, err := loadWords(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load words")
	}
	log.Info().Int("words", catalog.Len()).Msg("word catalog ready")

	rooms := game.NewRegistry(ctx, game.RegistryOptions{
		Words:        catalog,
		MaxRooms:     cfg.MaxRooms,
		TickInterval: cfg.TickInterval,
		IdleTimeout:  cfg.IdleTimeout,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           server.SetupRouter(ctx, cfg, rooms),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Skiblo server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server error")
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	rooms.Shutdown()
	log.Info().Msg("Server exited gracefully")
}

func loadWords(cfg *config.Config) (*words.Catalog, error) {
	if cfg.WordsFile == "" {
		return words.Default(cfg.RNGSeed), nil
	}
	return words.LoadFile(cfg.WordsFile, cfg.RNGSeed)
}
