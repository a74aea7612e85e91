package database

import (
	"club_tracker/internal/platform/config"
	"club_tracker/internal/platform/logger"
	"database/sql"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
)

var DB *sql.DB

func Connect() {
	var err error
	DB, err = sql.Open("pgx", config.AppConfig.DBConnStr)
	if err != nil {
		logger.Fatal("Error opening database", "error", err)
	}

	DB.SetMaxOpenConns(25)
	DB.SetMaxIdleConns(25)
	DB.SetConnMaxLifetime(5 * time.Minute)

	if err = DB.Ping(); err != nil {
		logger.Fatal("Error connecting to database", "error", err)
	}

	logger.Info("Connected to PostgreSQL")
}

func Close() {
	if DB != nil {
		DB.Close()
		logger.Info("Database connection closed")
	}
}
