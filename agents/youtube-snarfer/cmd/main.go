package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	youtubesnarfer "snarfer-stack/agents/youtube-snarfer"
	"snarfer-stack/shared/config"
	"snarfer-stack/shared/logging"
	"snarfer-stack/shared/monitoring"
	"snarfer-stack/shared/scheduler"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if err := logging.Setup(&cfg.Logging); err != nil {
		log.Fatal().Err(err).Msg("Failed to set up logging")
	}

	// Create context that responds to signals
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	monitor := monitoring.NewMonitor()

	if len(os.Args) > 1 && os.Args[1] == "--once" {
		fmt.Println("Running once...")
		agent := youtubesnarfer.NewSnarferAgent(cfg, monitor, youtubesnarfer.Offline())
		s := scheduler.New(cfg, agent, monitor)

		if err := agent.Initialize(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize agent")
		}
		if err := s.RunOnce(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to run")
		}
		return
	}

	agent := youtubesnarfer.NewSnarferAgent(cfg, monitor)
	defer agent.Close()
	s := scheduler.New(cfg, agent, monitor)

	fmt.Println("Starting snarfer...")
	if err := s.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("Scheduler failed")
	}
}
