package main

import (
	"embed"

	"github.com/sirupsen/logrus"

	"github.com/chrisq/qonnect-server/internal/database"
)

//go:embed migrations/*.sql
var migrations embed.FS

func main() {
	log := logrus.New()

	migrator, err := database.Migrate(migrations)
	if err != nil {
		log.WithError(err).Fatal("failed to migrate database")
	}

	version, dirty, err := migrator.Version()
	if err != nil {
		log.WithError(err).Fatal("failed to check migration version")
	}
	log.WithFields(logrus.Fields{
		"version": version,
		"dirty":   dirty,
	}).Info("migration successful")
}
