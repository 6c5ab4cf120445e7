package main

import (
	"context"
	"log"

	"goeval/api"
	"goeval/internal/config"
	"goeval/internal/container"
	"goeval/internal/errors"
	"goeval/internal/migration"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// initDatabase initializes the PostgreSQL database connection
func initDatabase(appConfig *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", appConfig.Database.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}

	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}

	migrator := migration.NewRunner()
	if err := migrator.Run(context.Background(), db); err != nil {
		return nil, errors.Wrap(err, "database migration failed")
	}
	return db, nil
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := initDatabase(appConfig)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.Close()

	c, err := container.New(appConfig)
	if err != nil {
		log.Fatal("Failed to build container:", err)
	}
	if err := c.InitWithDatabase(db); err != nil {
		log.Fatal("Failed to initialize container:", err)
	}

	server := api.NewApp(c.ScoringService, c.SubmissionRepo, c.CohortAnalyzer, c.ReportBuilder, api.Config{
		Port:           appConfig.Server.Port,
		DefaultLevel:   appConfig.Scoring.DefaultLevel,
		CohortMinCount: appConfig.Scoring.CohortMinCount,
	})
	log.Printf("Starting evaluation API on :%s (indicator file: %s)",
		appConfig.Server.Port, appConfig.Paths.IndicatorFile)
	if err := server.Start(); err != nil {
		log.Fatal("Server failed:", err)
	}
}
