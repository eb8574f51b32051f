package main

import (
	"log"
	"log/slog"

	"voting-service/configs"
	"voting-service/internal/adapters/database"
)

func main() {
	cfg := configs.Load()

	slog.Info("Starting database migration...")

	db, err := database.NewPostgresConnection(
		cfg.PostgresUser,
		cfg.PostgresPassword,
		cfg.PostgresHost,
		cfg.PostgresPort,
		cfg.PostgresDB,
	)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	slog.Info("Database connection established")

	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	slog.Info("Database migration completed successfully!")
}
