package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/LuLu1016/ARLook-GoogleMap/internal/models"
)

// SQLiteStore persists the property dataset in SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates a SQLite database at dbPath and initializes
// the schema. Parent directories are created if they do not exist.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS properties (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		address TEXT,
		latitude REAL,
		longitude REAL,
		price REAL NOT NULL,
		bedrooms REAL,
		bathrooms REAL,
		amenities TEXT,
		description TEXT,
		walk_to_wharton INTEGER
	);

	CREATE INDEX IF NOT EXISTS idx_properties_price ON properties(price);
	CREATE INDEX IF NOT EXISTS idx_properties_name ON properties(name);
	`
	_, err := db.Exec(schema)
	return err
}

// GetAllProperties returns every listing ordered by price.
func (s *SQLiteStore) GetAllProperties(ctx context.Context) ([]models.Property, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, address, latitude, longitude, price, bedrooms, bathrooms,
		        amenities, description, walk_to_wharton
		 FROM properties ORDER BY price`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var properties []models.Property
	for rows.Next() {
		var p models.Property
		var amenitiesJSON string
		var walk sql.NullInt64
		if err := rows.Scan(&p.ID, &p.Name, &p.Address, &p.Latitude, &p.Longitude,
			&p.Price, &p.Bedrooms, &p.Bathrooms, &amenitiesJSON, &p.Description, &walk); err != nil {
			return nil, err
		}
		if amenitiesJSON != "" {
			if err := json.Unmarshal([]byte(amenitiesJSON), &p.Amenities); err != nil {
				return nil, fmt.Errorf("failed to unmarshal amenities for %s: %w", p.ID, err)
			}
		}
		if walk.Valid {
			p.WalkingDistanceToWharton = models.IntPtr(int(walk.Int64))
		}
		properties = append(properties, p)
	}
	return properties, rows.Err()
}

// ReplaceAll swaps the stored dataset in a single transaction.
func (s *SQLiteStore) ReplaceAll(ctx context.Context, properties []models.Property) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM properties`); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO properties (id, name, address, latitude, longitude, price,
		                         bedrooms, bathrooms, amenities, description, walk_to_wharton)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range properties {
		if p.ID == "" {
			p.ID = uuid.New().String()
		}
		amenitiesJSON, err := json.Marshal(p.Amenities)
		if err != nil {
			return fmt.Errorf("failed to marshal amenities for %s: %w", p.ID, err)
		}
		var walk interface{}
		if d, ok := p.WalkingDistance(); ok {
			walk = d
		}
		if _, err := stmt.ExecContext(ctx, p.ID, p.Name, p.Address, p.Latitude, p.Longitude,
			p.Price, p.Bedrooms, p.Bathrooms, string(amenitiesJSON), p.Description, walk); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Count returns the number of stored listings.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM properties`).Scan(&count)
	return count, err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
