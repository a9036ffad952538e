package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/tomsh-hr/pingstat/internal/models"
)

// timeLayout is the second-precision timestamp format stored with each
// sample; it sorts and groups correctly under sqlite's strftime.
const timeLayout = "2006-01-02 15:04:05"

// Store manages one append-only sqlite database per host under a fixed
// data root. Databases are opened, written and closed within a single
// operation; no handle outlives a call.
type Store struct {
	dir string
	now func() time.Time
}

// New creates a store rooted at dir.
func New(dir string) *Store {
	return &Store{dir: dir, now: time.Now}
}

var hostKeyRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9.:_-]*$`)

// StorageKey maps a host string to its database filename. Host strings
// are user supplied, so anything that could escape the data root is
// rejected rather than sanitized.
func StorageKey(host string) (string, error) {
	if !hostKeyRe.MatchString(host) || strings.Contains(host, "..") {
		return "", fmt.Errorf("invalid host %q", host)
	}
	return host + ".db", nil
}

// Path returns the database file location for host.
func (s *Store) Path(host string) (string, error) {
	key, err := StorageKey(host)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.dir, key), nil
}

// open opens the host's database, creating the file and schema on first
// use. The caller closes the returned handle.
func (s *Store) open(host string) (*sql.DB, error) {
	path, err := s.Path(host)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("database open failed: %w", err)
	}

	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA synchronous=NORMAL")

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func initSchema(db *sql.DB) error {
	schema := `
    CREATE TABLE IF NOT EXISTS pings (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        timestamp TEXT NOT NULL,
        min REAL,
        avg REAL,
        max REAL,
        mdev REAL,
        loss REAL NOT NULL
    );

    CREATE INDEX IF NOT EXISTS idx_pings_timestamp ON pings(timestamp);
    `

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("schema creation failed: %w", err)
	}

	return nil
}

// EnsureSchema creates the host's database and table if absent.
func (s *Store) EnsureSchema(host string) error {
	db, err := s.open(host)
	if err != nil {
		return err
	}
	return db.Close()
}

// Insert appends one sample with the current time. Samples are immutable
// once written; there is no update or delete path.
func (s *Store) Insert(host string, m models.Measurement) error {
	return s.insertAt(host, s.now(), m)
}

func (s *Store) insertAt(host string, ts time.Time, m models.Measurement) error {
	db, err := s.open(host)
	if err != nil {
		return err
	}
	defer db.Close()

	query := `
        INSERT INTO pings (timestamp, min, avg, max, mdev, loss)
        VALUES (?, ?, ?, ?, ?, ?)
    `
	_, err = db.Exec(query,
		ts.Format(timeLayout),
		m.Min,
		m.Avg,
		m.Max,
		m.Mdev,
		m.Loss,
	)
	return err
}
