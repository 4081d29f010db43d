// migrate applies the embedded schema migrations.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"groupmanagement/internal/config"
	"groupmanagement/internal/db/migrate"
	"groupmanagement/internal/logger"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	direction := flag.String("direction", "up", "Migration direction: up or down")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)

	if err := migrate.Run(cfg.GetDatabaseConnectionString(), *direction); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return
		}
		fmt.Fprintln(os.Stderr, "migrate:", err)
		os.Exit(1)
	}
}
