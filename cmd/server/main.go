package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	router "github.com/yashkandiyal/real-time-code--editor/internal/adapters/http"
	wssignal "github.com/yashkandiyal/real-time-code--editor/internal/adapters/signal"
	"github.com/yashkandiyal/real-time-code--editor/internal/config"
	"github.com/yashkandiyal/real-time-code--editor/internal/core"
	"github.com/yashkandiyal/real-time-code--editor/internal/domain"
	"github.com/yashkandiyal/real-time-code--editor/internal/session"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	policy := domain.AuthorClosesRoom
	if cfg.AuthorHandoff {
		policy = domain.AuthorHandsOff
	}

	registry := core.NewRegistry(policy)
	directory := core.NewDirectory()
	coord := session.NewCoordinator(registry, directory, policy)

	ctl := wssignal.NewController(coord, wssignal.Options{
		ReadLimit:    cfg.ReadLimit,
		PingPeriod:   cfg.PingPeriod,
		SendBuffer:   cfg.SendBuffer,
		EventsPerMin: cfg.EventsPerMin,
	})

	r := router.SetupRouter(ctx, cfg, ctl, registry)
	addr := fmt.Sprintf(":%d", cfg.Port)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", addr).Bool("author_handoff", cfg.AuthorHandoff).Msg("code room server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("server error")
	}
	log.Info().Msg("server exited gracefully")
}
