package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

var nameSanitizer = regexp.MustCompile(`[^a-z0-9_]+`)

// sanitizeName turns a human description into a file-name-safe slug
func sanitizeName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = nameSanitizer.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

// CreateMigration writes an empty up/down migration file pair and
// returns the paths of the created files.
func CreateMigration(migrationsPath, name string) (string, string, error) {
	slug := sanitizeName(name)
	if slug == "" {
		return "", "", fmt.Errorf("invalid migration name: %q", name)
	}

	if err := os.MkdirAll(migrationsPath, 0o755); err != nil {
		return "", "", fmt.Errorf("failed to create migrations directory: %w", err)
	}

	version := time.Now().UTC().Format("20060102150405")
	upPath := filepath.Join(migrationsPath, fmt.Sprintf("%s_%s.up.sql", version, slug))
	downPath := filepath.Join(migrationsPath, fmt.Sprintf("%s_%s.down.sql", version, slug))

	upContent := fmt.Sprintf("-- Migration: %s\n-- Created: %s\n\n", slug, time.Now().UTC().Format(time.RFC3339))
	downContent := fmt.Sprintf("-- Rollback: %s\n-- Created: %s\n\n", slug, time.Now().UTC().Format(time.RFC3339))

	if err := os.WriteFile(upPath, []byte(upContent), 0o644); err != nil {
		return "", "", fmt.Errorf("failed to write up migration: %w", err)
	}
	if err := os.WriteFile(downPath, []byte(downContent), 0o644); err != nil {
		return "", "", fmt.Errorf("failed to write down migration: %w", err)
	}

	return upPath, downPath, nil
}

// ListMigrations returns the migration file names in version order
func ListMigrations(migrationsPath string) ([]string, error) {
	entries, err := os.ReadDir(migrationsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}
