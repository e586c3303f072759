package main

import (
	"os"

	"github.com/ferdian3456/virdanthread/internal/config"
	"go.uber.org/zap"
)

func main() {
	log := config.NewZap("info")
	defer func() { _ = log.Sync() }()

	if err := newRootCmd(log).Execute(); err != nil {
		log.Error("command failed", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
}
