package main

import (
	"context"
	"embed"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/chrisq/qonnect-server/internal/app"
	"github.com/chrisq/qonnect-server/internal/config"
)

//go:embed migrations/*.sql
var migrations embed.FS

func setupLogger() *logrus.Logger {
	log := logrus.New()

	logLevel := logrus.InfoLevel
	if config.Development() {
		logLevel = logrus.DebugLevel
	}
	log.SetLevel(logLevel)
	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})

	if path := config.LogFile(); path != "" {
		hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
			Filename:   path,
			MaxSize:    50, // MB
			MaxBackups: 3,
			MaxAge:     28, // days
			Level:      logLevel,
			Formatter:  &logrus.JSONFormatter{},
		})
		if err != nil {
			log.WithError(err).Fatal("unable to create log file hook")
		}
		log.AddHook(hook)
	}

	return log
}

func main() {
	log := setupLogger()

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	a := app.New(log, migrations)

	if err := a.Start(ctx); err != nil {
		log.WithError(err).Fatal("server exited")
	}
}
