package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"sportsmeet-portal/internal/auth"
	"sportsmeet-portal/internal/config"
	"sportsmeet-portal/internal/registration"
	"sportsmeet-portal/internal/server"
	"sportsmeet-portal/internal/store"
	"sportsmeet-portal/internal/tgbot"
)

func main() {
	_ = godotenv.Load()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, err := store.NewStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("store")
	}

	clock := clockwork.NewRealClock()
	authMgr := auth.New(cfg.Managers, cfg.Admins, cfg.SessionTTL, clock)
	regSvc := registration.NewService(st, clock)

	if cfg.TelegramToken != "" {
		botApp, err := tgbot.New(cfg, st, clock)
		if err != nil {
			log.Fatal().Err(err).Msg("telegram")
		}
		regSvc.SetNotifier(botApp)

		go func() {
			if err := botApp.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Msg("bot stopped")
			}
		}()
	} else {
		log.Info().Msg("TELEGRAM_BOT_TOKEN not set, admin notifications disabled")
	}

	httpSrv := server.New(cfg, authMgr, regSvc, st)

	go func() {
		log.Info().
			Str("addr", cfg.HTTPAddr).
			Str("store", st.Name()).
			Int("managers", len(cfg.Managers)).
			Int("admins", len(cfg.Admins)).
			Msg("HTTP listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server")
		}
	}()

	// Graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info().Msg("shutting down...")

	cancel()
	ctxTimeout, cancel2 := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel2()
	if err := httpSrv.Shutdown(ctxTimeout); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}

	log.Info().Msg("bye")
}
