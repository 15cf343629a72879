package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	_ "modernc.org/sqlite"

	"bundasehat/internal/models"
)

const (
	profileKey   = "user_profile"
	logKeyPrefix = "log_"
)

// Store is the local string-keyed, JSON-valued persistence layer. Daily
// logs live under log_<YYYY-MM-DD>, the user profile under user_profile.
// Writes replace the whole value for a key: last write wins.
type Store struct {
	db *sql.DB
}

func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// modernc sqlite serializes writes per connection; a single
	// connection keeps the in-memory DSN usable from tests too.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS kv (
        key   TEXT PRIMARY KEY,
        value TEXT NOT NULL
    );
    `

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

func (s *Store) put(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}

	query := `
        INSERT INTO kv (key, value) VALUES (?, ?)
        ON CONFLICT(key) DO UPDATE SET value = excluded.value
    `
	if _, err := s.db.Exec(query, key, string(data)); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// get unmarshals the value stored under key into target. It reports
// false when the key is absent or unreadable; parse failures are logged
// and treated as absence so callers fall back to defaults instead of
// surfacing storage corruption.
func (s *Store) get(key string, target interface{}) bool {
	var raw string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&raw)
	if err == sql.ErrNoRows {
		return false
	}
	if err != nil {
		log.Printf("Failed to read %s: %v", key, err)
		return false
	}

	if err := json.Unmarshal([]byte(raw), target); err != nil {
		log.Printf("Failed to parse %s, falling back to defaults: %v", key, err)
		return false
	}
	return true
}

// DailyLog returns the stored record for a date, or the zero-valued
// default if none exists. It never fails.
func (s *Store) DailyLog(date string) models.DailyLog {
	dayLog := models.NewDailyLog(date)
	if s.get(logKeyPrefix+date, &dayLog) {
		dayLog.Date = date
		if dayLog.Meals == nil {
			dayLog.Meals = []models.Meal{}
		}
	}
	return dayLog
}

// SaveDailyLog persists the full record for its date.
func (s *Store) SaveDailyLog(dayLog models.DailyLog) error {
	return s.put(logKeyPrefix+dayLog.Date, dayLog)
}

// AllDailyLogs returns every persisted daily log, unordered as stored.
// Unreadable rows are logged and skipped.
func (s *Store) AllDailyLogs() ([]models.DailyLog, error) {
	rows, err := s.db.Query(`SELECT key, value FROM kv WHERE key LIKE ?`, logKeyPrefix+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to query logs: %w", err)
	}
	defer rows.Close()

	var logs []models.DailyLog
	for rows.Next() {
		var key, raw string
		if err := rows.Scan(&key, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan log row: %w", err)
		}

		dayLog := models.NewDailyLog(strings.TrimPrefix(key, logKeyPrefix))
		if err := json.Unmarshal([]byte(raw), &dayLog); err != nil {
			log.Printf("Skipping unreadable log %s: %v", key, err)
			continue
		}
		if dayLog.Meals == nil {
			dayLog.Meals = []models.Meal{}
		}
		logs = append(logs, dayLog)
	}

	return logs, rows.Err()
}

// Profile returns the singleton user profile, or the first-run default
// if none is stored. It never fails.
func (s *Store) Profile() models.UserProfile {
	profile := models.NewUserProfile()
	if !s.get(profileKey, &profile) {
		return models.NewUserProfile()
	}
	return profile
}

// SaveProfile persists the singleton user profile.
func (s *Store) SaveProfile(profile models.UserProfile) error {
	return s.put(profileKey, profile)
}
