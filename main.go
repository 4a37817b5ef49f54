package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"gomokuzero/config"
	"gomokuzero/game"
	"gomokuzero/nn"
	"gomokuzero/trainer"
)

func main() {
	configPath := flag.String("config", "", "path to a training config file (default: ./train.yaml if present)")
	modelPath := flag.String("model", "", "model file to resume training from")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	var evaluator nn.Evaluator
	if *modelPath != "" {
		log.Info().Str("model", *modelPath).Msg("resuming from model")
		linear, err := nn.LoadLinear(*modelPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load model")
		}
		evaluator = linear
	} else {
		evaluator = nn.NewLinear(cfg.BoardWidth, cfg.BoardHeight)
	}

	pool, err := game.LoadOpeningPool(cfg.OpeningDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load opening pool")
	}
	log.Info().Int("openings", pool.Len()).Msg("loaded opening pool")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pipeline := trainer.NewPipeline(cfg, evaluator, pool)
	if err := pipeline.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("training failed")
	}
}
