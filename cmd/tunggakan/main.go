package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"monitoring_tunggakan/internal/adapter/cli"
	"monitoring_tunggakan/internal/adapter/persistence/repository"
	"monitoring_tunggakan/internal/config"
	"monitoring_tunggakan/internal/infrastructure/gas"
	"monitoring_tunggakan/internal/pkg/logger"
	"monitoring_tunggakan/internal/usecase"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()
	logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env, Output: os.Stderr})

	path := cfg.SessionFile
	if path == "" {
		var err error
		if path, err = repository.DefaultSessionFile(); err != nil {
			log.Fatal().Err(err).Msg("[session][cli] cannot locate session file")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithContext(ctx, &log.Logger)

	client := gas.NewClient(cfg.TunggakanAPIURL, cfg.GASTimeout)
	store := repository.NewSessionFileRepository(path)
	app := cli.NewApp(client, usecase.NewSessionUseCase(client, store), os.Stdin, os.Stdout, os.Stderr)

	code := app.Run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}
