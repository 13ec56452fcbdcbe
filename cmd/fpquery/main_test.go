package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/hupe1980/fpstore/registry"
	"github.com/hupe1980/fpstore/search"
	"github.com/hupe1980/fpstore/source"
	"github.com/hupe1980/fpstore/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const smiles = "CCO ethanol\nc1ccccc1 benzene\nCC(=O)O acetic_acid\n"

func writeCorpus(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "set.smi")
	require.NoError(t, os.WriteFile(path, []byte(smiles), 0o644))
	return path
}

func testGlobals(t *testing.T, docs ...string) (*Globals, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	return &Globals{
		Docs:     docs,
		LogLevel: "error",
		Workers:  2,
		out:      &buf,
		gen:      &testutil.HashGenerator{},
	}, &buf
}

func TestParseSpec(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    registry.Spec
		wantErr bool
	}{
		{
			name: "full",
			in:   "name=chembl,kind=ECFP4,nbits=2048,source=Chembl,locator=/data/chembl.tsv.gz,checksum=abc",
			want: registry.Spec{Name: "chembl", Kind: "ECFP4", NBits: 2048, Source: "Chembl", Locator: "/data/chembl.tsv.gz", Checksum: "abc"},
		},
		{
			name: "spaces",
			in:   "name = set , kind=ECFP2, nbits=512, source=SMILES, locator=s3://bucket/set.smi",
			want: registry.Spec{Name: "set", Kind: "ECFP2", NBits: 512, Source: "SMILES", Locator: "s3://bucket/set.smi"},
		},
		{name: "bad nbits", in: "name=x,nbits=many", wantErr: true},
		{name: "unknown key", in: "name=x,color=red", wantErr: true},
		{name: "missing value", in: "name", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSpec(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKongParse(t *testing.T) {
	var cli CLI
	parser, err := kong.New(&cli, kong.Name("fpquery"), kong.Exit(func(int) { t.Fatal("unexpected exit") }))
	require.NoError(t, err)

	ctx, err := parser.Parse([]string{
		"-g", "obabel-fp --fast",
		"-d", "name=a,kind=ECFP4,nbits=1024,source=SMILES,locator=a.smi",
		"--doc", "name=b,kind=ECFP2,nbits=512,source=Chembl,locator=b.tsv",
		"query", "a", "CCO", "--cutoff", "0.5", "-k", "3",
	})
	require.NoError(t, err)
	assert.Equal(t, "query <doc> <structure>", ctx.Command())
	assert.Equal(t, []string{
		"name=a,kind=ECFP4,nbits=1024,source=SMILES,locator=a.smi",
		"name=b,kind=ECFP2,nbits=512,source=Chembl,locator=b.tsv",
	}, cli.Docs)
	assert.Equal(t, "obabel-fp --fast", cli.Generator)
	assert.Equal(t, float32(0.5), cli.Query.Cutoff)
	assert.Equal(t, 3, cli.Query.Top)
	assert.Equal(t, "warn", cli.LogLevel)
	assert.True(t, cli.MinioSecure)
}

func TestDescribe(t *testing.T) {
	path := writeCorpus(t)
	g, out := testGlobals(t, "name=set,kind=ECFP4,nbits=256,source=SMILES,locator="+path)

	require.NoError(t, (&DescribeCmd{}).Run(g))
	assert.Equal(t, "Doc\t\tEntries\t\tFP Type\n"+
		"==================================================\n"+
		"set\t\t3\tOpenBabelECFP4/256\n", out.String())
}

func TestQuery(t *testing.T) {
	path := writeCorpus(t)
	g, out := testGlobals(t, "name=set,kind=ECFP4,nbits=256,source=SMILES,locator=file://"+path)

	cmd := &QueryCmd{Doc: "set", Structure: "c1ccccc1", Cutoff: 1, Top: -1, Parallelism: 1}
	require.NoError(t, cmd.Run(g))
	assert.Equal(t, "benzene\t1.0000\n", out.String())

	out.Reset()
	cmd.JSON = true
	require.NoError(t, cmd.Run(g))
	var hits []search.Hit
	require.NoError(t, json.Unmarshal(out.Bytes(), &hits))
	assert.Equal(t, []search.Hit{{ID: "benzene", Score: 1}}, hits)
}

func TestQueryConfigFile(t *testing.T) {
	path := writeCorpus(t)
	specs := []registry.Spec{{Name: "set", Kind: "ECFP4", NBits: 256, Source: "SMILES", Locator: path}}
	data, err := json.Marshal(specs)
	require.NoError(t, err)
	cfg := filepath.Join(t.TempDir(), "docs.json")
	require.NoError(t, os.WriteFile(cfg, data, 0o644))

	g, out := testGlobals(t)
	g.Config = cfg

	cmd := &QueryCmd{Doc: "set", Structure: "CCO", Cutoff: 0, Top: 1, Parallelism: 2}
	require.NoError(t, cmd.Run(g))
	assert.Equal(t, "ethanol\t1.0000\n", out.String())
}

func TestOpenErrors(t *testing.T) {
	g, _ := testGlobals(t)
	assert.ErrorContains(t, (&DescribeCmd{}).Run(g), "no documents")

	path := writeCorpus(t)
	g, _ = testGlobals(t, "name=set,kind=ECFP4,nbits=256,source=SMILES,locator="+path)
	g.gen = nil
	assert.ErrorContains(t, (&DescribeCmd{}).Run(g), "no fingerprint generator")

	g, _ = testGlobals(t, "name=set,kind=ECFP4,nbits=256,source=SMILES,locator=minio://bucket/set.smi")
	assert.ErrorContains(t, (&DescribeCmd{}).Run(g), "--minio-endpoint")

	g, _ = testGlobals(t, "name=z,kind=ECFP4,nbits=256,source=Zinc,locator="+path)
	assert.ErrorIs(t, (&DescribeCmd{}).Run(g), registry.ErrUnsupportedSource)
}

func TestChecksum(t *testing.T) {
	path := writeCorpus(t)
	g, out := testGlobals(t)

	require.NoError(t, (&ChecksumCmd{Files: []string{path}}).Run(g))
	assert.Equal(t, source.Checksum([]byte(smiles))+"  "+path+"\n", out.String())
}

func TestVersion(t *testing.T) {
	g, out := testGlobals(t)
	require.NoError(t, (&VersionCmd{}).Run(g))
	assert.Equal(t, "fpquery "+version+"\n", out.String())
}
