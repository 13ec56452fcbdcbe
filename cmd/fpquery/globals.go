package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/hupe1980/fpstore"
	"github.com/hupe1980/fpstore/blobstore"
	fpminio "github.com/hupe1980/fpstore/blobstore/minio"
	fps3 "github.com/hupe1980/fpstore/blobstore/s3"
	"github.com/hupe1980/fpstore/fingerprint"
	"github.com/hupe1980/fpstore/generator"
	"github.com/hupe1980/fpstore/registry"
	"github.com/hupe1980/fpstore/resource"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Globals holds the flags shared by every command.
type Globals struct {
	Docs      []string `name:"doc" short:"d" sep:"none" placeholder:"SPEC" help:"Document spec: name=N,kind=ECFP4,nbits=2048,source=Chembl,locator=PATH[,checksum=HEX]. Repeatable."`
	Config    string   `name:"config" short:"c" type:"existingfile" help:"JSON file holding a list of document specs"`
	Generator string   `name:"generator" short:"g" env:"FPQUERY_GENERATOR" help:"External fingerprint generator command line"`

	LogLevel string `name:"log-level" enum:"debug,info,warn,error" default:"warn" help:"Minimum log level (${enum})"`
	LogJSON  bool   `name:"log-json" help:"Log as JSON"`

	Workers     int64   `name:"workers" default:"4" help:"Documents built concurrently"`
	MemoryLimit int64   `name:"memory-limit" help:"Maximum bytes of fingerprint data (0 = unlimited)"`
	Rate        float64 `name:"rate" help:"Maximum generator calls per second (0 = unlimited)"`
	SkipFailed  bool    `name:"skip-failed" help:"Keep going when a document fails to load"`

	AWSRegion      string `name:"aws-region" env:"AWS_REGION" help:"Region for s3:// locators"`
	MinioEndpoint  string `name:"minio-endpoint" env:"MINIO_ENDPOINT" help:"Endpoint for minio:// locators"`
	MinioAccessKey string `name:"minio-access-key" env:"MINIO_ACCESS_KEY" help:"MinIO access key"`
	MinioSecretKey string `name:"minio-secret-key" env:"MINIO_SECRET_KEY" help:"MinIO secret key"`
	MinioSecure    bool   `name:"minio-secure" default:"true" negatable:"" help:"Use TLS for MinIO"`

	out io.Writer             `kong:"-"`
	gen fingerprint.Generator `kong:"-"`
}

func (g *Globals) stdout() io.Writer {
	if g.out == nil {
		return os.Stdout
	}
	return g.out
}

func (g *Globals) logger() *fpstore.Logger {
	var level slog.Level
	_ = level.UnmarshalText([]byte(g.LogLevel))
	if g.LogJSON {
		return fpstore.NewJSONLogger(level)
	}
	return fpstore.NewTextLogger(level)
}

func (g *Globals) newGenerator() (fingerprint.Generator, error) {
	if g.gen != nil {
		return g.gen, nil
	}
	fields := strings.Fields(g.Generator)
	if len(fields) == 0 {
		return nil, errors.New("no fingerprint generator: set --generator or FPQUERY_GENERATOR")
	}
	return generator.NewExec(fields[0], fields[1:]...), nil
}

func (g *Globals) specs() ([]registry.Spec, error) {
	var specs []registry.Spec
	if g.Config != "" {
		data, err := os.ReadFile(g.Config)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, &specs); err != nil {
			return nil, fmt.Errorf("parse %s: %w", g.Config, err)
		}
	}
	for _, d := range g.Docs {
		s, err := parseSpec(d)
		if err != nil {
			return nil, err
		}
		specs = append(specs, s)
	}
	if len(specs) == 0 {
		return nil, errors.New("no documents: use --doc or --config")
	}
	return specs, nil
}

// router registers an object store for every bucket named by an s3:// or
// minio:// locator.
func (g *Globals) router(ctx context.Context, specs []registry.Spec) (*blobstore.Router, error) {
	r := blobstore.NewRouter()

	var mc *minio.Client
	done := map[string]bool{}
	for _, s := range specs {
		scheme, rest, ok := strings.Cut(s.Locator, "://")
		if !ok || (scheme != "s3" && scheme != "minio") {
			continue
		}
		bucket, _, _ := strings.Cut(rest, "/")
		prefix := scheme + "://" + bucket + "/"
		if bucket == "" || done[prefix] {
			continue
		}
		done[prefix] = true

		switch scheme {
		case "s3":
			var opts []fps3.Option
			if g.AWSRegion != "" {
				opts = append(opts, fps3.WithRegion(g.AWSRegion))
			}
			store, err := fps3.New(ctx, bucket, opts...)
			if err != nil {
				return nil, err
			}
			r.Register(prefix, store)
		case "minio":
			if mc == nil {
				if g.MinioEndpoint == "" {
					return nil, fmt.Errorf("locator %q needs --minio-endpoint", s.Locator)
				}
				var err error
				mc, err = minio.New(g.MinioEndpoint, &minio.Options{
					Creds:  credentials.NewStaticV4(g.MinioAccessKey, g.MinioSecretKey, ""),
					Secure: g.MinioSecure,
				})
				if err != nil {
					return nil, err
				}
			}
			r.Register(prefix, fpminio.NewStore(mc, bucket, ""))
		}
	}
	return r, nil
}

// open loads the configured documents.
func (g *Globals) open(ctx context.Context, extra ...fpstore.Option) (*fpstore.DB, error) {
	specs, err := g.specs()
	if err != nil {
		return nil, err
	}
	gen, err := g.newGenerator()
	if err != nil {
		return nil, err
	}
	router, err := g.router(ctx, specs)
	if err != nil {
		return nil, err
	}

	opts := []fpstore.Option{
		fpstore.WithGenerator(gen),
		fpstore.WithLogger(g.logger()),
		fpstore.WithBlobRouter(router),
		fpstore.WithSkipFailed(g.SkipFailed),
		fpstore.WithResources(resource.NewController(resource.Config{
			MaxBuildWorkers:      g.Workers,
			MemoryLimitBytes:     g.MemoryLimit,
			GenerationsPerSecond: g.Rate,
		})),
	}
	db, err := fpstore.Open(ctx, specs, append(opts, extra...)...)
	if err != nil && db != nil {
		// Partial load with --skip-failed.
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		return db, nil
	}
	return db, err
}
