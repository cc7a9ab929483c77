package sources

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"

	"accessibuddy/models"
)

const poiSchema = `
CREATE TABLE IF NOT EXISTS pois (
	seq         INTEGER PRIMARY KEY AUTOINCREMENT,
	id          TEXT NOT NULL UNIQUE,
	type        TEXT NOT NULL,
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	lat         REAL NOT NULL,
	lon         REAL NOT NULL,
	features    TEXT NOT NULL DEFAULT '[]'
)`

// SQLiteSource reads POIs from a local SQLite snapshot. When the table is
// empty and Seed is set, Seed is loaded and saved first.
type SQLiteSource struct {
	Path string
	Seed Source
}

func (s *SQLiteSource) Name() string { return "sqlite:" + s.Path }

func (s *SQLiteSource) Load(ctx context.Context) ([]models.POI, error) {
	db, err := openSQLite(ctx, s.Path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	if s.Seed != nil {
		var count int
		if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pois`).Scan(&count); err != nil {
			return nil, fmt.Errorf("counting pois: %w", err)
		}
		if count == 0 {
			slog.Info("No POIs found in SQLite, seeding sample data", "path", s.Path, "seed", s.Seed.Name())
			pois, err := s.Seed.Load(ctx)
			if err != nil {
				return nil, fmt.Errorf("loading seed: %w", err)
			}
			if err := savePOIs(ctx, db, pois); err != nil {
				return nil, err
			}
		}
	}

	return readPOIs(ctx, db)
}

// SaveSQLite replaces the contents of the snapshot at path with pois.
func SaveSQLite(ctx context.Context, path string, pois []models.POI) error {
	db, err := openSQLite(ctx, path)
	if err != nil {
		return err
	}
	defer db.Close()
	return savePOIs(ctx, db, pois)
}

func openSQLite(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	for _, stmt := range []string{"PRAGMA journal_mode=WAL", poiSchema} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrating %s: %w", path, err)
		}
	}
	return db, nil
}

func savePOIs(ctx context.Context, db *sql.DB, pois []models.POI) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM pois`); err != nil {
		return fmt.Errorf("clearing pois: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO pois (id, type, name, description, lat, lon, features) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range pois {
		features := p.Features
		if features == nil {
			features = []string{}
		}
		encoded, err := json.Marshal(features)
		if err != nil {
			return fmt.Errorf("encoding features of %s: %w", p.ID, err)
		}
		if _, err := stmt.ExecContext(ctx, p.ID, string(p.Type), p.Name, p.Description,
			p.Location.Lat(), p.Location.Lon(), string(encoded)); err != nil {
			return fmt.Errorf("inserting %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	slog.Info("Saved POIs to SQLite", "count", len(pois))
	return nil
}

func readPOIs(ctx context.Context, db *sql.DB) ([]models.POI, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, type, name, description, lat, lon, features FROM pois ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("querying pois: %w", err)
	}
	defer rows.Close()

	var pois []models.POI
	for rows.Next() {
		var (
			p        models.POI
			category string
			lat, lon float64
			features string
		)
		if err := rows.Scan(&p.ID, &category, &p.Name, &p.Description, &lat, &lon, &features); err != nil {
			return nil, fmt.Errorf("scanning poi: %w", err)
		}
		p.Type = models.ParseCategory(category)
		p.Location = models.NewGeoPoint(lat, lon)
		if err := json.Unmarshal([]byte(features), &p.Features); err != nil {
			return nil, fmt.Errorf("decoding features of %s: %w", p.ID, err)
		}
		pois = append(pois, p)
	}
	return pois, rows.Err()
}
