package source

import (
	"bufio"
	"context"
	"fmt"
	"iter"
	"strings"

	"github.com/hupe1980/fpstore/blobstore"
)

const maxLineBytes = 16 << 20

// ChEMBL chemreps column names.
const (
	ChemblIDColumn     = "chembl_id"
	ChemblSMILESColumn = "canonical_smiles"
)

// Chembl loads ChEMBL "chemreps" dumps: tab separated text with a header
// row naming at least the chembl_id and canonical_smiles columns. Rows
// without a structure are skipped.
type Chembl struct {
	router *blobstore.Router
}

// NewChembl returns a ChEMBL chemreps loader reading through router.
func NewChembl(router *blobstore.Router) *Chembl {
	if router == nil {
		router = blobstore.NewRouter()
	}
	return &Chembl{router: router}
}

// Load implements Loader.
func (c *Chembl) Load(ctx context.Context, ref Ref) iter.Seq2[Pair, error] {
	return func(yield func(Pair, error) bool) {
		rc, err := Open(ctx, c.router, ref)
		if err != nil {
			yield(Pair{}, err)
			return
		}
		defer rc.Close()

		sc := bufio.NewScanner(rc)
		sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				yield(Pair{}, err)
				return
			}
			yield(Pair{}, fmt.Errorf("%w: %s: missing header", ErrMalformed, ref.Locator))
			return
		}

		idCol, smilesCol := -1, -1
		for i, name := range strings.Split(strings.TrimRight(sc.Text(), "\r"), "\t") {
			switch strings.TrimSpace(name) {
			case ChemblIDColumn:
				idCol = i
			case ChemblSMILESColumn:
				smilesCol = i
			}
		}
		if idCol < 0 || smilesCol < 0 {
			yield(Pair{}, fmt.Errorf("%w: %s: header must contain %q and %q",
				ErrMalformed, ref.Locator, ChemblIDColumn, ChemblSMILESColumn))
			return
		}
		width := max(idCol, smilesCol) + 1

		line := 1
		for sc.Scan() {
			line++
			text := strings.TrimRight(sc.Text(), "\r")
			if text == "" {
				continue
			}
			fields := strings.Split(text, "\t")
			if len(fields) < width {
				yield(Pair{}, fmt.Errorf("%w: %s:%d: expected at least %d columns, got %d",
					ErrMalformed, ref.Locator, line, width, len(fields)))
				return
			}
			smiles := strings.TrimSpace(fields[smilesCol])
			if smiles == "" {
				continue
			}
			if !yield(Pair{ID: strings.TrimSpace(fields[idCol]), Structure: smiles}, nil) {
				return
			}
		}
		if err := sc.Err(); err != nil {
			yield(Pair{}, fmt.Errorf("read corpus %q: %w", ref.Locator, err))
		}
	}
}
