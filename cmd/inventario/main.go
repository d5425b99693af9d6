// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Miguel Gastelum

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mgastelum/inventario/internal/cli"
	"github.com/mgastelum/inventario/internal/config"
	"github.com/mgastelum/inventario/internal/logger"
	"github.com/mgastelum/inventario/internal/service"
	"github.com/mgastelum/inventario/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewToolLogger("inventario")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repositories, err := store.Open(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error opening store")
	}
	defer func() {
		if err := repositories.Close(); err != nil {
			log.Err(err).Msg("error closing store")
		}
	}()

	services := service.NewServices(repositories, log)

	session := cli.NewSession(services, os.Stdin, os.Stdout, log)
	if err := session.Run(ctx); err != nil {
		log.Err(err).Msg("session ended with error")
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
