package sqldb

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/pressly/goose/v3"
)

// ErrUnsupportedURL is returned when a database URL has an unknown scheme.
var ErrUnsupportedURL = errors.New("unsupported database url")

// Dialect captures what differs between the supported databases.
type Dialect struct {
	// Name is "postgres" or "sqlite".
	Name string
	// Driver is the database/sql driver name.
	Driver string
	// dollarPlaceholders reports whether positional parameters are $1, $2...
	dollarPlaceholders bool
	goose              goose.Dialect
}

var (
	Postgres = Dialect{Name: "postgres", Driver: "pgx", dollarPlaceholders: true, goose: goose.DialectPostgres}
	SQLite   = Dialect{Name: "sqlite", Driver: "sqlite", goose: goose.DialectSQLite3}
)

// ParseURL picks the dialect for rawURL and returns the driver DSN.
//
// postgres:// and postgresql:// URLs are passed to pgx unchanged. sqlite URLs
// follow the SQLAlchemy convention: sqlite:///tasks.db is relative,
// sqlite:////var/lib/tasks.db is absolute, and sqlite://tasks.db is accepted as
// relative too. sqlite://:memory: opens an in-memory database.
func ParseURL(rawURL string) (Dialect, string, error) {
	scheme, rest, ok := strings.Cut(rawURL, "://")
	if !ok {
		return Dialect{}, "", fmt.Errorf("%w: missing scheme", ErrUnsupportedURL)
	}

	switch strings.ToLower(scheme) {
	case "postgres", "postgresql":
		return Postgres, rawURL, nil
	case "sqlite", "sqlite3":
		path := strings.TrimPrefix(rest, "/")
		if path == "" {
			return Dialect{}, "", fmt.Errorf("%w: empty sqlite path", ErrUnsupportedURL)
		}
		return SQLite, sqliteDSN(path), nil
	default:
		return Dialect{}, "", fmt.Errorf("%w: scheme %q", ErrUnsupportedURL, scheme)
	}
}

func sqliteDSN(path string) string {
	pragmas := "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	if path == ":memory:" {
		return "file::memory:?" + pragmas
	}
	return "file:" + path + "?" + pragmas + "&_pragma=journal_mode(WAL)"
}

// Rebind rewrites ? placeholders into the dialect's positional form.
// Question marks inside single-quoted literals are left alone.
func (d Dialect) Rebind(query string) string {
	if !d.dollarPlaceholders || !strings.Contains(query, "?") {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	inLiteral := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'':
			inLiteral = !inLiteral
			b.WriteByte(c)
		case c == '?' && !inLiteral:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func (d Dialect) String() string {
	return d.Name
}
