package source

import (
	"bytes"
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/hupe1980/fpstore/blobstore"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
)

const chemreps = "chembl_id\tcanonical_smiles\tstandard_inchi\tstandard_inchi_key\n" +
	"CHEMBL153534\tCc1cc(-c2csc(N=C(N)N)n2)cn1C\tInChI=1S/x\tKEY1\n" +
	"CHEMBL440060\t\tInChI=1S/y\tKEY2\n" +
	"CHEMBL440245\tCCCC[C@H](NC(=O)C)C(=O)O\tInChI=1S/z\tKEY3\n"

var chemrepsPairs = []Pair{
	{ID: "CHEMBL153534", Structure: "Cc1cc(-c2csc(N=C(N)N)n2)cn1C"},
	{ID: "CHEMBL440245", Structure: "CCCC[C@H](NC(=O)C)C(=O)O"},
}

func compress(t *testing.T, ext string, data []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	switch ext {
	case ".gz":
		w := gzip.NewWriter(&buf)
		_, err := w.Write(data)
		require.NoError(t, err)
		require.NoError(t, w.Close())
	case ".zst":
		w, err := zstd.NewWriter(&buf)
		require.NoError(t, err)
		_, err = w.Write(data)
		require.NoError(t, err)
		require.NoError(t, w.Close())
	case ".lz4":
		w := lz4.NewWriter(&buf)
		_, err := w.Write(data)
		require.NoError(t, err)
		require.NoError(t, w.Close())
	case ".xz":
		w, err := xz.NewWriter(&buf)
		require.NoError(t, err)
		_, err = w.Write(data)
		require.NoError(t, err)
		require.NoError(t, w.Close())
	default:
		buf.Write(data)
	}
	return buf.Bytes()
}

func memRouter(t *testing.T, blobs map[string][]byte) *blobstore.Router {
	t.Helper()

	mem := blobstore.NewMemoryStore()
	for name, data := range blobs {
		require.NoError(t, mem.Put(context.Background(), name, data))
	}
	r := blobstore.NewRouter()
	r.Register("mem://", mem)
	return r
}

func TestChembl(t *testing.T) {
	for _, ext := range []string{"", ".gz", ".zst", ".lz4", ".xz"} {
		t.Run("ext"+ext, func(t *testing.T) {
			name := "chembl.txt" + ext
			router := memRouter(t, map[string][]byte{name: compress(t, ext, []byte(chemreps))})

			pairs, err := Collect(NewChembl(router).Load(context.Background(), Ref{Locator: "mem://" + name}))
			require.NoError(t, err)
			assert.Equal(t, chemrepsPairs, pairs)
		})
	}
}

func TestChemblChecksum(t *testing.T) {
	raw := compress(t, ".gz", []byte(chemreps))
	router := memRouter(t, map[string][]byte{"chembl.txt.gz": raw})
	loader := NewChembl(router)
	ctx := context.Background()

	pairs, err := Collect(loader.Load(ctx, Ref{Locator: "mem://chembl.txt.gz", Checksum: Checksum(raw)}))
	require.NoError(t, err)
	assert.Len(t, pairs, 2)

	_, err = Collect(loader.Load(ctx, Ref{Locator: "mem://chembl.txt.gz", Checksum: Checksum([]byte("other"))}))
	assert.ErrorIs(t, err, ErrChecksumMismatch)

	_, err = Collect(loader.Load(ctx, Ref{Locator: "mem://chembl.txt.gz", Checksum: "not-hex"}))
	assert.ErrorIs(t, err, ErrChecksumMismatch)
}

func TestChemblMalformed(t *testing.T) {
	router := memRouter(t, map[string][]byte{
		"empty.txt":     nil,
		"noheader.txt":  []byte("id\tsmiles\nX\tC\n"),
		"truncated.txt": []byte("chembl_id\tcanonical_smiles\nCHEMBL1\n"),
	})
	loader := NewChembl(router)

	for _, name := range []string{"empty.txt", "noheader.txt", "truncated.txt"} {
		t.Run(name, func(t *testing.T) {
			_, err := Collect(loader.Load(context.Background(), Ref{Locator: "mem://" + name}))
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}

	_, err := Collect(loader.Load(context.Background(), Ref{Locator: "mem://missing.txt"}))
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestChemblEarlyStop(t *testing.T) {
	router := memRouter(t, map[string][]byte{"chembl.txt": []byte(chemreps)})

	var got []Pair
	for p, err := range NewChembl(router).Load(context.Background(), Ref{Locator: "mem://chembl.txt"}) {
		require.NoError(t, err)
		got = append(got, p)
		break
	}
	assert.Equal(t, chemrepsPairs[:1], got)
}

func TestSMILES(t *testing.T) {
	data := "# comment\n" +
		"c1ccccc1 benzene\n" +
		"\n" +
		"CCO\tethanol absolute\n" +
		"CCN\n"
	router := memRouter(t, map[string][]byte{"corpus.smi": []byte(data)})

	pairs, err := Collect(NewSMILES(router).Load(context.Background(), Ref{Locator: "mem://corpus.smi"}))
	require.NoError(t, err)
	assert.Equal(t, []Pair{
		{ID: "benzene", Structure: "c1ccccc1"},
		{ID: "ethanol absolute", Structure: "CCO"},
		{ID: "CCN", Structure: "CCN"},
	}, pairs)
}

func TestSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chembl.db")

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	for _, stmt := range []string{
		`CREATE TABLE molecule_dictionary (molregno INTEGER PRIMARY KEY, chembl_id TEXT)`,
		`CREATE TABLE compound_structures (molregno INTEGER PRIMARY KEY, canonical_smiles TEXT)`,
		`INSERT INTO molecule_dictionary VALUES (1, 'CHEMBL6329'), (2, 'CHEMBL6328'), (3, 'CHEMBL265667')`,
		`INSERT INTO compound_structures VALUES (2, 'CCO'), (1, 'c1ccccc1'), (3, NULL)`,
	} {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
	require.NoError(t, db.Close())

	loader := NewSQLite(nil)
	pairs, err := Collect(loader.Load(context.Background(), Ref{Locator: path}))
	require.NoError(t, err)
	assert.Equal(t, []Pair{
		{ID: "CHEMBL6329", Structure: "c1ccccc1"},
		{ID: "CHEMBL6328", Structure: "CCO"},
	}, pairs)

	pairs, err = Collect(NewSQLite(nil, WithQuery("SELECT chembl_id, chembl_id FROM molecule_dictionary WHERE molregno = 3")).
		Load(context.Background(), Ref{Locator: "file://" + path}))
	require.NoError(t, err)
	assert.Equal(t, []Pair{{ID: "CHEMBL265667", Structure: "CHEMBL265667"}}, pairs)

	_, err = Collect(loader.Load(context.Background(), Ref{Locator: "s3://bucket/chembl.db"}))
	assert.Error(t, err)

	_, err = Collect(loader.Load(context.Background(), Ref{Locator: path, Checksum: Checksum([]byte("x"))}))
	assert.ErrorIs(t, err, ErrChecksumMismatch)
}

func TestSlice(t *testing.T) {
	pairs, err := Collect(Slice(chemrepsPairs).Load(context.Background(), Ref{}))
	require.NoError(t, err)
	assert.Equal(t, chemrepsPairs, pairs)
}
