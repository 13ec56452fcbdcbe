package source

import (
	"bufio"
	"context"
	"fmt"
	"iter"
	"strings"

	"github.com/hupe1980/fpstore/blobstore"
)

// SMILES loads ".smi" files: one structure per line followed by optional
// whitespace and an identifier. Lines starting with '#' are comments. A
// structure without an identifier is its own identifier.
type SMILES struct {
	router *blobstore.Router
}

// NewSMILES returns a SMILES file loader reading through router.
func NewSMILES(router *blobstore.Router) *SMILES {
	if router == nil {
		router = blobstore.NewRouter()
	}
	return &SMILES{router: router}
}

// Load implements Loader.
func (s *SMILES) Load(ctx context.Context, ref Ref) iter.Seq2[Pair, error] {
	return func(yield func(Pair, error) bool) {
		rc, err := Open(ctx, s.router, ref)
		if err != nil {
			yield(Pair{}, err)
			return
		}
		defer rc.Close()

		sc := bufio.NewScanner(rc)
		sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

		for sc.Scan() {
			text := strings.TrimSpace(sc.Text())
			if text == "" || strings.HasPrefix(text, "#") {
				continue
			}
			structure, id := text, ""
			if i := strings.IndexAny(text, " \t"); i >= 0 {
				structure, id = text[:i], strings.TrimSpace(text[i+1:])
			}
			if id == "" {
				id = structure
			}
			if !yield(Pair{ID: id, Structure: structure}, nil) {
				return
			}
		}
		if err := sc.Err(); err != nil {
			yield(Pair{}, fmt.Errorf("read corpus %q: %w", ref.Locator, err))
		}
	}
}
