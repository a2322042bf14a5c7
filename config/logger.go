package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the shared application logger.
func NewLogger() *logrus.Logger {
	log := logrus.New()

	// JSON to stdout so log aggregation can pick the fields apart.
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)
	log.SetLevel(logrus.InfoLevel)

	return log
}
