package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/efoncier/survey-lab/internal/api"
	"github.com/efoncier/survey-lab/internal/config"
	"github.com/efoncier/survey-lab/internal/infrastructure"
	"github.com/efoncier/survey-lab/internal/server"
)

func main() {
	cfg, err := config.Load("config.toml")
	if err != nil {
		log.Fatal("config load failed: ", err)
	}

	infra, err := infrastructure.New(cfg)
	if err != nil {
		log.Fatal("infrastructure init failed: ", err)
	}

	handler, err := api.New(cfg, infra)
	if err != nil {
		log.Fatal("api init failed: ", err)
	}

	srv := server.New(cfg, handler, infra.Logger)

	if err := infra.Start(); err != nil {
		log.Fatal("infrastructure start failed: ", err)
	}
	if err := srv.Start(infra.Lifecycle); err != nil {
		log.Fatal("server start failed: ", err)
	}

	infra.Lifecycle.WaitForStartup()
	infra.Logger.Info("service started")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	if err := infra.Lifecycle.Shutdown(cfg.ShutdownTimeoutDuration()); err != nil {
		infra.Logger.Error("shutdown failed", "error", err)
		os.Exit(1)
	}

	infra.Logger.Info("service stopped gracefully")
}
