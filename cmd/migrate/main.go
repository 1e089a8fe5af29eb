package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"

	"github.com/craftloop/craftloop-backend/pkg/config"
	"github.com/craftloop/craftloop-backend/pkg/db"
	"github.com/craftloop/craftloop-backend/pkg/logger"
	"github.com/craftloop/craftloop-backend/pkg/migrate"
)

func main() {
	_ = godotenv.Load()

	dir := flag.String("dir", migrate.DefaultDir, "migrations directory")
	flag.Parse()

	command := flag.Arg(0)
	if command == "" {
		command = "up"
	}

	cfg, err := config.Load()
	if err != nil {
		println("config:", err.Error())
		os.Exit(1)
	}

	logg := logger.New(logger.Options{
		ServiceName: "craftloop-migrate",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})

	ctx := context.Background()

	client, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "connecting to database", err)
		os.Exit(1)
	}
	defer client.Close()

	sqlDB, err := client.DB().DB()
	if err != nil {
		logg.Error(ctx, "getting sql handle", err)
		os.Exit(1)
	}

	if err := migrate.Run(ctx, sqlDB, *dir, command, flag.Args()[1:]...); err != nil {
		logg.Error(ctx, "migration failed", err)
		os.Exit(1)
	}
	logg.Info(ctx, "migration complete")
}
