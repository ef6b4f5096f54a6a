// @title Chaos Recruitment API
// @version 1.0
// @description Backend server for the Chaos recruitment platform.

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"chaos_backend/internal/app"
	"chaos_backend/internal/config"
	"chaos_backend/pkg/configwatcher"
	"chaos_backend/pkg/logger"
	"flag"
	"log"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "run database migrations and exit")
	migrate := flag.Bool("migrate", false, "force database migrations on startup (even in release mode)")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if *migrateOnly {
		log.Println("Database migration finished, exiting")
		return
	}

	go configwatcher.WatchConfig("configs/config.yaml", cfg, func(newCfg interface{}) {
		if c, ok := newCfg.(*config.Config); ok {
			application.ReloadConfig(c)
		}
	})

	application.Run()
}
