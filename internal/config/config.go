package config

import (
	"log"

	"go.uber.org/zap"
)

var Logger = zap.NewNop()

// InitLogger builds a development logger for local work and a JSON production
// logger everywhere else.
func InitLogger(env string) *zap.Logger {
	var (
		l   *zap.Logger
		err error
	)
	if env == EnvDevelopment {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("Failed to initialize zap logger: %v", err)
	}
	Logger = l
	Logger.Info("Zap logger initialized", zap.String("env", env))
	return Logger
}
