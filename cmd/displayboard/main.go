package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Unknowkubbrother/Project-SmartQ/internal/api"
	"github.com/Unknowkubbrother/Project-SmartQ/internal/audio"
	"github.com/Unknowkubbrother/Project-SmartQ/internal/calltimer"
	"github.com/Unknowkubbrother/Project-SmartQ/internal/config"
	"github.com/Unknowkubbrother/Project-SmartQ/internal/control"
	"github.com/Unknowkubbrother/Project-SmartQ/internal/engine"
	"github.com/Unknowkubbrother/Project-SmartQ/internal/store"
	"github.com/Unknowkubbrother/Project-SmartQ/internal/types"
	"github.com/Unknowkubbrother/Project-SmartQ/internal/wsclient"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Configure logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().
		Str("service", "displayboard").
		Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn().Str("level", cfg.LogLevel).Msg("invalid log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	log.Info().
		Str("backend_url", cfg.BackendURL).
		Str("control_port", cfg.ControlPort).
		Msg("starting SmartQ display board")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	apiClient := api.NewClient(cfg.BackendURL, cfg.HTTPTimeout)
	if err := apiClient.Probe(ctx); err != nil {
		log.Fatal().Err(err).Msg("backend is not reachable")
	}

	defs, err := apiClient.Services(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to fetch service definitions")
	}
	log.Info().Int("services", len(defs)).Msg("service definitions loaded")

	st := store.New(log.Logger)
	for _, def := range defs {
		st.SetLabel(def.Name, def.Label)
	}

	timers := calltimer.New(calltimer.RealClock(), st.SetCalling)
	defer timers.StopAll()

	var sink audio.Sink
	if cfg.PlayerCommand != "" {
		sink = audio.NewExecSink(cfg.PlayerCommand, log.Logger)
	} else {
		log.Warn().Msg("no PLAYER_COMMAND configured, announcements will not be audible")
		sink = audio.NopSink{}
	}
	player := audio.NewPlayer(sink, st.Muted, log.Logger)
	defer player.StopAll()

	eng := engine.New(st, timers, cfg.CallFlash, cfg.AudioFlash, log.Logger,
		engine.WithPlayer(player))

	manager := wsclient.NewManager(cfg.BackendURL, eng, cfg.WSWriteTimeout, log.Logger)
	defer manager.CloseAll()

	keys := make([]wsclient.Key, 0, len(defs))
	for _, def := range defs {
		keys = append(keys, wsclient.Key{Service: def.Name, Role: types.RoleDisplay})
	}
	if err := manager.Sync(keys); err != nil {
		log.Error().Err(err).Msg("some services failed to connect")
	}

	go func() {
		if err := control.Serve(ctx, ":"+cfg.ControlPort, control.NewBoardAPI(st), cfg.AllowedOrigins, log.Logger); err != nil {
			log.Error().Err(err).Msg("control API stopped")
		}
	}()

	log.Info().Int("connections", manager.Count()).Msg("display board ready")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down display board")
	cancel()
}
