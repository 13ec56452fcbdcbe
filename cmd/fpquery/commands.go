package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/hupe1980/fpstore"
	"github.com/hupe1980/fpstore/source"
)

// DescribeCmd prints the document table.
type DescribeCmd struct{}

func (c *DescribeCmd) Run(g *Globals) error {
	db, err := g.open(context.Background())
	if err != nil {
		return err
	}
	defer db.Close()

	fmt.Fprintln(g.stdout(), db.Describe())
	return nil
}

// QueryCmd runs one similarity query.
type QueryCmd struct {
	Doc         string  `arg:"" help:"Document name"`
	Structure   string  `arg:"" help:"Query structure, e.g. a SMILES string"`
	Cutoff      float32 `short:"t" default:"0.7" help:"Minimum Tanimoto score (inclusive)"`
	Top         int     `short:"k" default:"-1" help:"Print at most this many hits (-1 = all)"`
	Parallelism int     `short:"j" default:"1" help:"Goroutines per scan"`
	JSON        bool    `name:"json" help:"Print hits as JSON"`
}

func (c *QueryCmd) Run(g *Globals) error {
	ctx := context.Background()
	db, err := g.open(ctx, fpstore.WithQueryParallelism(c.Parallelism))
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.Document(c.Doc); err != nil {
		// An unknown document is an empty result; say so instead of
		// silently printing nothing.
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	hits, err := db.Search(c.Doc).Structure(c.Structure).Cutoff(c.Cutoff).Top(c.Top).Execute(ctx)
	if err != nil {
		return err
	}

	out := g.stdout()
	if c.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(hits)
	}
	for _, h := range hits {
		fmt.Fprintf(out, "%s\t%.4f\n", h.ID, h.Score)
	}
	return nil
}

// ChecksumCmd prints checksums for Spec.Checksum.
type ChecksumCmd struct {
	Files []string `arg:"" type:"existingfile" help:"Corpus files"`
}

func (c *ChecksumCmd) Run(g *Globals) error {
	for _, f := range c.Files {
		data, err := os.ReadFile(f)
		if err != nil {
			return err
		}
		fmt.Fprintf(g.stdout(), "%s  %s\n", source.Checksum(data), f)
	}
	return nil
}

// VersionCmd prints the version.
type VersionCmd struct{}

func (c *VersionCmd) Run(g *Globals) error {
	fmt.Fprintf(g.stdout(), "fpquery %s\n", version)
	return nil
}
