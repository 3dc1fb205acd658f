// Package store loads and serves the rental property dataset. Listings can
// come from CSV or XLSX files, a SQLite database, or the built-in sample set.
package store

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/LuLu1016/ARLook-GoogleMap/internal/models"
)

// Store serves the property dataset to the retrieval pipeline.
type Store interface {
	GetAllProperties(ctx context.Context) ([]models.Property, error)
	Count(ctx context.Context) (int, error)
	Close() error
}

// MemoryStore holds the dataset in memory and supports atomic reloads.
type MemoryStore struct {
	mu         sync.RWMutex
	properties []models.Property
}

// NewMemoryStore returns a store seeded with the given properties.
func NewMemoryStore(properties []models.Property) *MemoryStore {
	return &MemoryStore{properties: properties}
}

// GetAllProperties returns a copy of the current dataset.
func (s *MemoryStore) GetAllProperties(ctx context.Context) ([]models.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Property, len(s.properties))
	copy(out, s.properties)
	return out, nil
}

// Count returns the number of listings currently held.
func (s *MemoryStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.properties), nil
}

// Replace swaps the dataset atomically. Used by the file watcher on reload.
func (s *MemoryStore) Replace(properties []models.Property) {
	s.mu.Lock()
	s.properties = properties
	s.mu.Unlock()
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error { return nil }

// Load reads listings from every path and merges them. When useSample is set
// the built-in sample listings are appended after the file sources, so on a
// duplicate name the sample entry wins. An empty result always falls back to
// the sample set. Listings failing validation are skipped with a warning.
func Load(paths []string, useSample bool, logger *zap.Logger) ([]models.Property, error) {
	var all []models.Property
	for _, path := range paths {
		props, err := loadFile(path)
		if err != nil {
			logger.Warn("Failed to load property file",
				zap.String("path", path),
				zap.Error(err))
			continue
		}
		all = append(all, props...)
	}

	if useSample || len(all) == 0 {
		if len(all) == 0 {
			logger.Info("No listings loaded from files, using sample dataset")
		}
		all = append(all, SampleProperties()...)
	}
	return Normalize(all, logger), nil
}

func loadFile(path string) ([]models.Property, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadCSV(path)
	case ".xlsx":
		return LoadXLSX(path)
	default:
		return nil, fmt.Errorf("unsupported property file format: %s", path)
	}
}

// Normalize assigns ids to listings that lack one, validates geographic
// bounds, and dedups by name with later files winning.
func Normalize(properties []models.Property, logger *zap.Logger) []models.Property {
	byName := make(map[string]int, len(properties))
	var out []models.Property
	for _, p := range properties {
		if p.ID == "" {
			p.ID = uuid.New().String()
		}
		if err := p.Validate(); err != nil {
			logger.Warn("Skipping invalid listing",
				zap.String("name", p.Name),
				zap.Error(err))
			continue
		}
		key := strings.ToLower(strings.TrimSpace(p.Name))
		if idx, ok := byName[key]; ok {
			out[idx] = p
			continue
		}
		byName[key] = len(out)
		out = append(out, p)
	}
	return out
}
