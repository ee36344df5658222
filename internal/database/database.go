package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "github.com/lib/pq"
)

var (
	db   *sql.DB
	once sync.Once
)

type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

func (cfg *Config) ConnectionString() string {
	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.DBName, cfg.SSLMode,
	)

	if cfg.Password != "" {
		connStr += fmt.Sprintf(" password=%s", cfg.Password)
	}
	return connStr
}

func Initialize(cfg *Config) error {
	var initError error

	once.Do(func() {
		var err error
		db, err = sql.Open("postgres", cfg.ConnectionString())
		if err != nil {
			initError = fmt.Errorf("failed to open database: %w", err)
			return
		}

		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			initError = fmt.Errorf("failed to ping database: %w", err)
			return
		}

		if err := runMigrations(); err != nil {
			initError = fmt.Errorf("failed to run migrations: %w", err)
			return
		}

		log.Printf("Database connection established")
	})

	return initError
}

func runMigrations() error {
	migrations := []string{
		`
		CREATE TABLE IF NOT EXISTS artist (
			artist_id SERIAL PRIMARY KEY,
			artist_name TEXT NOT NULL
		);
		`,
		`
		CREATE TABLE IF NOT EXISTS album (
			album_id SERIAL PRIMARY KEY,
			album_name TEXT NOT NULL
		);
		`,
		`
		CREATE TABLE IF NOT EXISTS song (
			song_name TEXT NOT NULL,
			song_path TEXT NOT NULL,
			artist_id INTEGER REFERENCES artist(artist_id),
			album_id INTEGER REFERENCES album(album_id)
		);
		`,
		`
		CREATE TABLE IF NOT EXISTS tracks (
			track_id SERIAL PRIMARY KEY,
			track_name TEXT NOT NULL,
			track_uri TEXT NOT NULL
		);
		`,
		`
		CREATE TABLE IF NOT EXISTS playlist (
			playlist_id SERIAL PRIMARY KEY,
			guild_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			playlist_name TEXT NOT NULL
		);
		`,
		`
		CREATE UNIQUE INDEX IF NOT EXISTS playlist_guild_name_idx
			ON playlist (guild_id, LOWER(playlist_name));
		`,
		`
		CREATE TABLE IF NOT EXISTS playlist_tracks (
			id SERIAL PRIMARY KEY,
			playlist_id INTEGER NOT NULL REFERENCES playlist(playlist_id),
			track_id INTEGER NOT NULL REFERENCES tracks(track_id)
		);
		`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("failed to execute migration: %w\nQuery: %s", err, m)
		}
	}
	log.Printf("Database migrations completed")
	return nil
}

func GetDB() *sql.DB {
	return db
}

func Close() error {
	if db != nil {
		return db.Close()
	}
	return nil
}
