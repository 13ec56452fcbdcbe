package source

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/hupe1980/fpstore/blobstore"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// DefaultChemblQuery selects (chembl_id, canonical_smiles) from a ChEMBL
// SQLite release in molregno order.
const DefaultChemblQuery = `SELECT md.chembl_id, cs.canonical_smiles
FROM compound_structures cs
JOIN molecule_dictionary md ON md.molregno = cs.molregno
WHERE cs.canonical_smiles IS NOT NULL AND cs.canonical_smiles <> ''
ORDER BY cs.molregno`

// SQLite loads pairs from a SQLite database file with a query returning
// (identifier, structure) rows. The locator must name a local file, either
// as a plain path or with a "file://" prefix.
type SQLite struct {
	router *blobstore.Router
	query  string
}

// SQLiteOption configures a SQLite loader.
type SQLiteOption func(*SQLite)

// WithQuery replaces DefaultChemblQuery.
func WithQuery(query string) SQLiteOption {
	return func(s *SQLite) { s.query = query }
}

// NewSQLite returns a SQLite loader. The router is only used to verify
// checksums; rows are read from the file directly.
func NewSQLite(router *blobstore.Router, optFns ...SQLiteOption) *SQLite {
	if router == nil {
		router = blobstore.NewRouter()
	}
	s := &SQLite{router: router, query: DefaultChemblQuery}
	for _, fn := range optFns {
		fn(s)
	}
	return s
}

// Load implements Loader.
func (s *SQLite) Load(ctx context.Context, ref Ref) iter.Seq2[Pair, error] {
	return func(yield func(Pair, error) bool) {
		path := strings.TrimPrefix(ref.Locator, "file://")
		if path == "" || strings.Contains(path, "://") {
			yield(Pair{}, fmt.Errorf("sqlite corpus must be a local file: %q", ref.Locator))
			return
		}

		if ref.Checksum != "" {
			if err := s.verify(ctx, ref); err != nil {
				yield(Pair{}, err)
				return
			}
		}

		db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
		if err != nil {
			yield(Pair{}, fmt.Errorf("open sqlite corpus %q: %w", path, err))
			return
		}
		defer db.Close()

		rows, err := db.QueryContext(ctx, s.query)
		if err != nil {
			yield(Pair{}, fmt.Errorf("query sqlite corpus %q: %w", path, err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			var id, structure sql.NullString
			if err := rows.Scan(&id, &structure); err != nil {
				yield(Pair{}, fmt.Errorf("%w: %s: %w", ErrMalformed, path, err))
				return
			}
			if !structure.Valid || structure.String == "" {
				continue
			}
			if !yield(Pair{ID: id.String, Structure: structure.String}, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(Pair{}, fmt.Errorf("read sqlite corpus %q: %w", path, err))
		}
	}
}

func (s *SQLite) verify(ctx context.Context, ref Ref) error {
	rc, err := Open(ctx, s.router, Ref{Locator: ref.Locator, Checksum: ref.Checksum})
	if err != nil {
		return err
	}
	defer rc.Close()
	_, err = io.Copy(io.Discard, rc)
	return err
}
