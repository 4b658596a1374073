package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Anthya1104/exam-simulator-cli/internal/cobra"
	"github.com/Anthya1104/exam-simulator-cli/internal/config"
	"github.com/Anthya1104/exam-simulator-cli/internal/logger"
	"github.com/sirupsen/logrus"
)

func main() {

	if err := logger.InitLogger(config.LogLevelInfo); err != nil {
		logrus.Fatalf(("Error initializing Logger : %v"), err)
	}
	defer logger.Close()

	// graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logrus.Infof("Received signal: %s. Initiating graceful shutdown...", sig)
		cancel()
	}()

	if err := cobra.ExecuteCmd(ctx); err != nil {
		logrus.Errorf("Error executing command: %v", err)
		logger.Close()
		os.Exit(1)
	}

	logrus.Debugf("Exam simulator finished.")
}
