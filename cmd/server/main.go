package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"

	"cac-decision/internal/cli"
	"cac-decision/internal/config"
)

func main() {
	configPath := strings.TrimSpace(os.Getenv("CAC_CONFIG"))
	if configPath == "" {
		configPath = "cac.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}
	cfg.ConfigureLogging()
	logrus.WithFields(logrus.Fields{
		"config":  configPath,
		"port":    cfg.Port,
		"metrics": cfg.Metrics.Enabled,
	}).Info("configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.Serve(ctx, cfg); err != nil {
		logrus.Fatalf("server exited: %v", err)
	}
}
