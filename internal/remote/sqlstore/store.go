// Package sqlstore keeps the catalog table in a SQL database.
// Postgres is reached through pgx, SQLite through the pure Go modernc driver.
package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	"github.com/rsekulic/videoteka-v1/internal/domain"
	"github.com/rsekulic/videoteka-v1/internal/remote/session"
	_ "modernc.org/sqlite" // pure go sqlite driver
)

// Dialect selects placeholder style and driver
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// createdAtLayout is fixed width so text ordering matches time ordering
const createdAtLayout = "2006-01-02T15:04:05.000000Z"

const itemColumns = `id, title, year, type, genre, description, poster, backdrop, runtime, seasons, director, "cast", trailer_url, critic_score, audience_score, is_favorite, created_at`

var tableNamePattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Store implements domain.RemoteStore and domain.Session over database/sql.
type Store struct {
	db      *sql.DB
	dialect Dialect
	table   string
	logger  *slog.Logger
	auth    session.State

	mu          sync.Mutex // Serializes created_at assignment
	lastCreated time.Time
}

var (
	_ domain.RemoteStore = (*Store)(nil)
	_ domain.Session     = (*Store)(nil)
)

// Open connects to the database and runs migrations
func Open(ctx context.Context, dialect Dialect, dsn, table string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if table == "" {
		table = "media_items"
	}
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}

	var driver string
	switch dialect {
	case DialectSQLite:
		driver = "sqlite"
		if dir := filepath.Dir(dsn); dir != "." && !strings.HasPrefix(dsn, "file:") {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("create dirs: %w", err)
			}
		}
	case DialectPostgres:
		driver = "pgx"
	default:
		return nil, fmt.Errorf("unsupported dialect: %s", dialect)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialect, err)
	}
	if dialect == DialectSQLite {
		// One writer at a time avoids SQLITE_BUSY between pooled connections
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnreachable, err)
	}

	s := &Store{db: db, dialect: dialect, table: table, logger: logger}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return s, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate runs database migrations
func (s *Store) migrate(ctx context.Context) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS ` + s.table + ` (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			year TEXT NOT NULL DEFAULT '',
			type TEXT NOT NULL,
			genre TEXT NOT NULL DEFAULT '[]',
			description TEXT NOT NULL DEFAULT '',
			poster TEXT NOT NULL DEFAULT '',
			backdrop TEXT NOT NULL DEFAULT '',
			runtime TEXT,
			seasons INTEGER,
			director TEXT,
			"cast" TEXT NOT NULL DEFAULT '[]',
			trailer_url TEXT,
			critic_score TEXT,
			audience_score TEXT,
			is_favorite BOOLEAN,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS ` + s.table + `_created_at_idx ON ` + s.table + ` (created_at)`,
		`CREATE TABLE IF NOT EXISTS admins (
			email TEXT PRIMARY KEY,
			password_hash TEXT NOT NULL
		)`,
	}
	for _, m := range migrations {
		if _, err := s.db.ExecContext(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

// rebind rewrites ? placeholders to $n for Postgres
func (s *Store) rebind(query string) string {
	if s.dialect != DialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func unreachable(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, domain.ErrStoreUnreachable, err)
}

// ListItems returns every row, newest first
func (s *Store) ListItems(ctx context.Context) ([]domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM ` + s.table + ` ORDER BY created_at DESC`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, unreachable("list items", err)
	}
	defer func() { _ = rows.Close() }()

	var items []domain.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, unreachable("list items", err)
	}
	s.logger.Debug("listed items", "count", len(items))
	return items, nil
}

func scanItem(rows *sql.Rows) (domain.Item, error) {
	var (
		item                         domain.Item
		kind, genre, cast, createdAt string
		runtime, director, trailer   sql.NullString
		criticScore, audienceScore   sql.NullString
		seasons                      sql.NullInt64
		favorite                     sql.NullBool
	)
	err := rows.Scan(
		&item.ID, &item.Title, &item.Year, &kind, &genre, &item.Description,
		&item.Poster, &item.Backdrop, &runtime, &seasons, &director, &cast,
		&trailer, &criticScore, &audienceScore, &favorite, &createdAt,
	)
	if err != nil {
		return domain.Item{}, fmt.Errorf("scan: %w", err)
	}
	item.Kind = domain.Kind(kind)
	if err := json.Unmarshal([]byte(genre), &item.Genres); err != nil {
		return domain.Item{}, fmt.Errorf("decode genre of %s: %w", item.ID, domain.ErrMalformedResponse)
	}
	if err := json.Unmarshal([]byte(cast), &item.Cast); err != nil {
		return domain.Item{}, fmt.Errorf("decode cast of %s: %w", item.ID, domain.ErrMalformedResponse)
	}
	item.Runtime = runtime.String
	item.Seasons = int(seasons.Int64)
	item.Director = director.String
	item.TrailerURL = trailer.String
	item.CriticScore = criticScore.String
	item.AudienceScore = audienceScore.String
	// A null favorite column reads as false
	item.Favorite = favorite.Valid && favorite.Bool
	if ts, err := time.Parse(createdAtLayout, createdAt); err == nil {
		item.CreatedAt = ts
	}
	return item, nil
}

// nextCreated returns n distinct timestamps, newer than any issued before, in
// descending order. The first item of a batch is the newest so newest-first
// listing keeps batch order.
func (s *Store) nextCreated(n int) []time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	base := time.Now().UTC().Truncate(time.Microsecond)
	if !base.After(s.lastCreated) {
		base = s.lastCreated.Add(time.Microsecond)
	}
	out := make([]time.Time, n)
	for i := range out {
		out[i] = base.Add(time.Duration(n-1-i) * time.Microsecond)
	}
	s.lastCreated = base.Add(time.Duration(n-1) * time.Microsecond)
	return out
}

// InsertItems stores rows with fresh identifiers and returns them as stored
func (s *Store) InsertItems(ctx context.Context, items []domain.Item) ([]domain.Item, error) {
	if err := s.requireSession(); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}

	stamps := s.nextCreated(len(items))
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, unreachable("begin insert", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := s.rebind(`INSERT INTO ` + s.table + ` (` + itemColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	stored := make([]domain.Item, 0, len(items))
	for i, it := range items {
		row := it.Clone()
		row.ID = uuid.NewString()
		row.CreatedAt = stamps[i]
		if row.Genres == nil {
			row.Genres = []string{}
		}
		if row.Cast == nil {
			row.Cast = []string{}
		}
		genre, _ := json.Marshal(row.Genres)
		cast, _ := json.Marshal(row.Cast)
		_, err := tx.ExecContext(ctx, query,
			row.ID, row.Title, row.Year, string(row.Kind), string(genre), row.Description,
			row.Poster, row.Backdrop, nullString(row.Runtime), nullInt(row.Seasons), nullString(row.Director),
			string(cast), nullString(row.TrailerURL), nullString(row.CriticScore), nullString(row.AudienceScore),
			row.Favorite, row.CreatedAt.Format(createdAtLayout),
		)
		if err != nil {
			return nil, unreachable("insert item", err)
		}
		stored = append(stored, row)
	}
	if err := tx.Commit(); err != nil {
		return nil, unreachable("commit insert", err)
	}
	s.logger.Info("inserted items", "count", len(stored))
	return stored, nil
}

// UpdateItem writes the changed columns of one row
func (s *Store) UpdateItem(ctx context.Context, id string, patch domain.ItemPatch) error {
	if err := s.requireSession(); err != nil {
		return err
	}
	cols := patch.Columns()
	if len(cols) == 0 {
		return nil
	}

	names := make([]string, 0, len(cols))
	for name := range cols {
		names = append(names, name)
	}
	slices.Sort(names)

	sets := make([]string, 0, len(names))
	args := make([]any, 0, len(names)+1)
	for _, name := range names {
		sets = append(sets, `"`+name+`" = ?`)
		args = append(args, columnValue(cols[name]))
	}
	args = append(args, id)

	query := s.rebind(`UPDATE ` + s.table + ` SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`)
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return unreachable("update item", err)
	}
	s.logger.Debug("updated item", "id", id, "columns", names)
	return nil
}

// DeleteItem removes one row
func (s *Store) DeleteItem(ctx context.Context, id string) error {
	if err := s.requireSession(); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM `+s.table+` WHERE id = ?`), id); err != nil {
		return unreachable("delete item", err)
	}
	return nil
}

// DeleteAllExcept removes every row whose id differs from keep
func (s *Store) DeleteAllExcept(ctx context.Context, keep string) error {
	if err := s.requireSession(); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM `+s.table+` WHERE id <> ?`), keep)
	if err != nil {
		return unreachable("delete items", err)
	}
	n, _ := res.RowsAffected()
	s.logger.Warn("deleted all items", "count", n)
	return nil
}

func (s *Store) requireSession() error {
	if !s.auth.Authenticated() {
		return domain.ErrAuthRequired
	}
	return nil
}

// columnValue converts patch values to driver values
func columnValue(v any) any {
	switch val := v.(type) {
	case []string:
		data, _ := json.Marshal(val)
		return string(data)
	case string:
		return val
	case int:
		return nullInt(val)
	default:
		return val
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt(n int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(n), Valid: n != 0}
}

// isNoRows reports a missing row
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
