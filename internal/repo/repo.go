// Package repo stores named material catalogs and solve runs in a SQL
// database. PostgreSQL is the service default; SQLite serves the CLI and
// tests.
package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"Pavex/internal/calc/pavement"
	"Pavex/internal/catalog"
)

var (
	ErrNotFound      = errors.New("repo: not found")
	ErrNoName        = errors.New("repo: catalog name required")
	ErrUnknownDriver = errors.New("repo: unknown driver")
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS catalogs (
	name        TEXT PRIMARY KEY,
	description TEXT NOT NULL,
	materials   TEXT NOT NULL,
	updated_at  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	catalog    TEXT NOT NULL,
	target_sn  DOUBLE PRECISION NOT NULL,
	seed       BIGINT NOT NULL,
	earthwork  TEXT NOT NULL,
	response   TEXT NOT NULL,
	created_at TEXT NOT NULL
);
`

// CatalogInfo is a catalog listing entry.
type CatalogInfo struct {
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Materials   int       `json:"materials"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Run is a persisted solve: what was asked and the ranked designs returned.
type Run struct {
	ID        string             `json:"id"`
	Catalog   string             `json:"catalog"`
	TargetSN  float64            `json:"target_sn"`
	Seed      int64              `json:"seed"`
	Earthwork pavement.Earthwork `json:"earthwork"`
	Response  pavement.Response  `json:"response"`
	CreatedAt time.Time          `json:"created_at"`
}

type Repository interface {
	PutCatalog(ctx context.Context, c catalog.Catalog) error
	GetCatalog(ctx context.Context, name string) (catalog.Catalog, error)
	ListCatalogs(ctx context.Context) ([]CatalogInfo, error)
	DeleteCatalog(ctx context.Context, name string) error
	SaveRun(ctx context.Context, run Run) (Run, error)
	GetRun(ctx context.Context, id string) (Run, error)
}

// SQLRepository implements Repository over database/sql.
type SQLRepository struct {
	db     *sql.DB
	driver string
	now    func() time.Time
}

// Open connects to the database and creates the schema if needed.
func Open(ctx context.Context, driver, dsn string) (*SQLRepository, error) {
	switch driver {
	case DriverPostgres:
		dsn = withSSLMode(dsn)
	case DriverSQLite:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if driver == DriverPostgres {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)
	} else {
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	r, err := New(ctx, db, driver)
	if err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

// New wraps an open database and runs the migrations.
func New(ctx context.Context, db *sql.DB, driver string) (*SQLRepository, error) {
	if driver == DriverSQLite {
		if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
			return nil, fmt.Errorf("pragma: %w", err)
		}
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &SQLRepository{db: db, driver: driver, now: time.Now}, nil
}

func (r *SQLRepository) Close() error {
	return r.db.Close()
}

func (r *SQLRepository) PutCatalog(ctx context.Context, c catalog.Catalog) error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrNoName
	}
	if err := c.Validate(); err != nil {
		return err
	}
	mats, err := json.Marshal(c.Materials)
	if err != nil {
		return err
	}
	query := `INSERT INTO catalogs (name, description, materials, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET description = excluded.description, materials = excluded.materials, updated_at = excluded.updated_at`
	_, err = r.db.ExecContext(ctx, r.rebind(query), c.Name, c.Description, string(mats), stamp(r.now()))
	return err
}

func (r *SQLRepository) GetCatalog(ctx context.Context, name string) (catalog.Catalog, error) {
	var desc, mats string
	query := "SELECT description, materials FROM catalogs WHERE name = ?"
	err := r.db.QueryRowContext(ctx, r.rebind(query), name).Scan(&desc, &mats)
	if errors.Is(err, sql.ErrNoRows) {
		return catalog.Catalog{}, fmt.Errorf("catalog %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return catalog.Catalog{}, err
	}
	c := catalog.Catalog{Name: name, Description: desc}
	if err := json.Unmarshal([]byte(mats), &c.Materials); err != nil {
		return catalog.Catalog{}, fmt.Errorf("catalog %q: %w", name, err)
	}
	return c, nil
}

func (r *SQLRepository) ListCatalogs(ctx context.Context) ([]CatalogInfo, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT name, description, materials, updated_at FROM catalogs ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []CatalogInfo{}
	for rows.Next() {
		var info CatalogInfo
		var mats, updated string
		if err := rows.Scan(&info.Name, &info.Description, &mats, &updated); err != nil {
			return nil, err
		}
		var list []pavement.Material
		if err := json.Unmarshal([]byte(mats), &list); err != nil {
			return nil, fmt.Errorf("catalog %q: %w", info.Name, err)
		}
		info.Materials = len(list)
		if info.UpdatedAt, err = time.Parse(time.RFC3339Nano, updated); err != nil {
			return nil, fmt.Errorf("catalog %q: %w", info.Name, err)
		}
		out = append(out, info)
	}
	return out, rows.Err()
}

func (r *SQLRepository) DeleteCatalog(ctx context.Context, name string) error {
	res, err := r.db.ExecContext(ctx, r.rebind("DELETE FROM catalogs WHERE name = ?"), name)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("catalog %q: %w", name, ErrNotFound)
	}
	return nil
}

// SaveRun stores run under a fresh id and returns it with ID and CreatedAt set.
func (r *SQLRepository) SaveRun(ctx context.Context, run Run) (Run, error) {
	run.ID = uuid.NewString()
	run.CreatedAt = r.now().UTC()
	ew, err := json.Marshal(run.Earthwork)
	if err != nil {
		return Run{}, err
	}
	resp, err := json.Marshal(run.Response)
	if err != nil {
		return Run{}, err
	}
	query := "INSERT INTO runs (id, catalog, target_sn, seed, earthwork, response, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)"
	_, err = r.db.ExecContext(ctx, r.rebind(query), run.ID, run.Catalog, run.TargetSN, run.Seed, string(ew), string(resp), stamp(run.CreatedAt))
	if err != nil {
		return Run{}, err
	}
	return run, nil
}

func (r *SQLRepository) GetRun(ctx context.Context, id string) (Run, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Run{}, fmt.Errorf("run %q: %w", id, ErrNotFound)
	}
	run := Run{ID: id}
	var ew, resp, created string
	query := "SELECT catalog, target_sn, seed, earthwork, response, created_at FROM runs WHERE id = ?"
	err := r.db.QueryRowContext(ctx, r.rebind(query), id).Scan(&run.Catalog, &run.TargetSN, &run.Seed, &ew, &resp, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("run %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return Run{}, err
	}
	if err := json.Unmarshal([]byte(ew), &run.Earthwork); err != nil {
		return Run{}, err
	}
	if err := json.Unmarshal([]byte(resp), &run.Response); err != nil {
		return Run{}, err
	}
	if run.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return Run{}, err
	}
	return run, nil
}

// rebind rewrites ? placeholders to $n for PostgreSQL.
func (r *SQLRepository) rebind(query string) string {
	if r.driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, c := range query {
		if c == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}

func stamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// withSSLMode requires TLS on connection strings that do not choose a mode.
func withSSLMode(dsn string) string {
	if dsn == "" || strings.Contains(dsn, "sslmode=") {
		return dsn
	}
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		if strings.Contains(dsn, "?") {
			return dsn + "&sslmode=require"
		}
		return dsn + "?sslmode=require"
	}
	return dsn + " sslmode=require"
}
