package db

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"retail-records/internal/domain"
)

// Dialect identifies the SQL flavour spoken by the open store.
type Dialect int

const (
	DialectSQLite Dialect = iota
	DialectPostgres
)

func (d Dialect) String() string {
	if d == DialectPostgres {
		return "postgres"
	}
	return "sqlite"
}

// Handle is the open store shared by every repository. It is safe for
// concurrent use; sqlite handles are limited to one connection.
type Handle struct {
	db      *sql.DB
	driver  string
	dsn     string
	dialect Dialect
	logger  *log.Logger
}

// Open connects to the store named by driver ("sqlite3" or "pgx") and dsn and
// verifies connectivity with a ping. For sqlite the dsn is a file path that is
// created on first use.
func Open(ctx context.Context, driver, dsn string, logger *log.Logger) (*Handle, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	var dialect Dialect
	switch driver {
	case "sqlite3", "sqlite", "":
		driver = "sqlite3"
		dialect = DialectSQLite
		dsn = sharedMemoryDSN(dsn)
		if dir := filepath.Dir(sqlitePath(dsn)); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create store dir: %w", err)
			}
		}
		dsn = SQLiteDSN(dsn)
	case "pgx", "postgres":
		driver = "pgx"
		dialect = DialectPostgres
	default:
		return nil, fmt.Errorf("unsupported db driver %q", driver)
	}

	sqlDB, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	if dialect == DialectSQLite {
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(pingCtx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	return &Handle{db: sqlDB, driver: driver, dsn: dsn, dialect: dialect, logger: logger}, nil
}

// SQLiteDSN appends the connection parameters every sqlite connection needs:
// enforced foreign keys (for cascading deletes), a busy timeout and WAL.
func SQLiteDSN(path string) string {
	params := "_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL"
	if strings.Contains(path, "?") {
		return path + "&" + params
	}
	return path + "?" + params
}

var memoryStores atomic.Int64

// sharedMemoryDSN gives an in-memory dsn a process-unique name with a shared
// cache, so every connection opened from the same Handle.DSN sees one store.
func sharedMemoryDSN(dsn string) string {
	if dsn != ":memory:" && dsn != "file::memory:" {
		return dsn
	}
	return fmt.Sprintf("file:retail_mem_%d?mode=memory&cache=shared", memoryStores.Add(1))
}

func sqlitePath(dsn string) string {
	p := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(p, '?'); i >= 0 {
		p = p[:i]
	}
	return p
}

// Dialect reports the SQL flavour of the store.
func (h *Handle) Dialect() Dialect { return h.dialect }

// Driver returns the database/sql driver name.
func (h *Handle) Driver() string { return h.driver }

// DSN returns the effective connection string, including sqlite parameters.
func (h *Handle) DSN() string { return h.dsn }

// Close releases the pool.
func (h *Handle) Close() error { return h.db.Close() }

// Rebind rewrites ? placeholders into the store's native form.
func (h *Handle) Rebind(q string) string {
	if h.dialect != DialectPostgres {
		return q
	}
	return Rebind(q)
}

// Rebind converts ? placeholders outside quoted literals into $1, $2, ...
func Rebind(q string) string {
	var b strings.Builder
	b.Grow(len(q) + 8)
	n := 0
	inQuote := false
	for i := 0; i < len(q); i++ {
		c := q[i]
		switch {
		case c == '\'':
			inQuote = !inQuote
			b.WriteByte(c)
		case c == '?' && !inQuote:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// QueryContext runs q after rebinding its placeholders.
func (h *Handle) QueryContext(ctx context.Context, q string, args ...any) (*sql.Rows, error) {
	return h.db.QueryContext(ctx, h.Rebind(q), args...)
}

// QueryRowContext runs q after rebinding its placeholders.
func (h *Handle) QueryRowContext(ctx context.Context, q string, args ...any) *sql.Row {
	return h.db.QueryRowContext(ctx, h.Rebind(q), args...)
}

// ExecContext runs q after rebinding its placeholders.
func (h *Handle) ExecContext(ctx context.Context, q string, args ...any) (sql.Result, error) {
	return h.db.ExecContext(ctx, h.Rebind(q), args...)
}

// RunQuery executes a parameterized read and returns every row as a slice of
// cells. Text cells come back as string regardless of driver.
func (h *Handle) RunQuery(ctx context.Context, q string, args ...any) ([][]any, error) {
	rows, err := h.QueryContext(ctx, q, args...)
	if err != nil {
		h.logger.Printf("db: query error=%v", err)
		return nil, domain.Storage("query", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		h.logger.Printf("db: query columns error=%v", err)
		return nil, domain.Storage("query", err)
	}

	out := make([][]any, 0)
	for rows.Next() {
		cells := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range cells {
			ptrs[i] = &cells[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			h.logger.Printf("db: query scan error=%v", err)
			return nil, domain.Storage("query", err)
		}
		for i, c := range cells {
			if b, ok := c.([]byte); ok {
				cells[i] = string(b)
			}
		}
		out = append(out, cells)
	}
	if err := rows.Err(); err != nil {
		h.logger.Printf("db: query rows error=%v", err)
		return nil, domain.Storage("query", err)
	}
	return out, nil
}

// RunStatement executes a parameterized write. ok is true only when the
// statement inserted a row and the backend reports its identity (never on
// Postgres).
func (h *Handle) RunStatement(ctx context.Context, q string, args ...any) (int64, bool, error) {
	res, err := h.ExecContext(ctx, q, args...)
	if err != nil {
		h.logger.Printf("db: statement error=%v", err)
		return 0, false, domain.Storage("statement", err)
	}
	switch statementVerb(q) {
	case "insert", "replace":
	default:
		return 0, false, nil
	}
	// sqlite keeps the last rowid per connection, so it is stale when
	// nothing was written.
	n, err := res.RowsAffected()
	if err != nil || n == 0 {
		return 0, false, nil
	}
	id, err := res.LastInsertId()
	if err != nil || id == 0 {
		return 0, false, nil
	}
	return id, true, nil
}

// statementVerb returns the lower-cased verb of the outermost statement in q,
// looking past a leading WITH clause.
func statementVerb(q string) string {
	depth := 0
	var quote byte
	for i := 0; i < len(q); i++ {
		c := q[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '(':
			depth++
		case c == ')':
			depth--
		case depth == 0 && isWordByte(c) && (i == 0 || !isWordByte(q[i-1])):
			j := i
			for j < len(q) && isWordByte(q[j]) {
				j++
			}
			switch w := strings.ToLower(q[i:j]); w {
			case "insert", "replace", "update", "delete", "select", "create", "drop", "alter", "truncate", "values":
				return w
			}
			i = j - 1
		}
	}
	return ""
}

func isWordByte(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
