package pg

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
)

const (
	pingTimeout = 5 * time.Second
	pingEvery   = 250 * time.Millisecond
)

// Open открывает пул к Postgres и ждёт, пока база ответит на ping (не дольше pingTimeout):
// при старте рядом с контейнером база поднимается не мгновенно.
func Open(ctx context.Context, url string) (*sql.DB, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("pg open: %w", err)
	}
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	if err := waitReady(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func waitReady(ctx context.Context, db *sql.DB) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	t := time.NewTicker(pingEvery)
	defer t.Stop()
	for {
		err := db.PingContext(ctx)
		if err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("pg ping: %w", err)
		case <-t.C:
		}
	}
}
