package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/hupe1980/prost"
	"github.com/hupe1980/prost/blobstore"
	"github.com/hupe1980/prost/embed"
	"github.com/hupe1980/prost/enrichment"
	"github.com/hupe1980/prost/fasta"
	"github.com/hupe1980/prost/output"
	"github.com/hupe1980/prost/resource"
	"github.com/hupe1980/prost/store"
)

const cacheName = "cache.prsc"

// environment carries what every command needs.
type environment struct {
	cfg    config
	stdout io.Writer
	stderr io.Writer
	logger *prost.Logger
	engine *prost.Engine
}

func newEnvironment(cfg config, stdout, stderr io.Writer) *environment {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	var handler slog.Handler = slog.NewTextHandler(stderr, opts)
	if cfg.LogJSON {
		handler = slog.NewJSONHandler(stderr, opts)
	}
	logger := prost.NewLogger(handler)

	engineOpts := []prost.Option{
		prost.WithLogger(logger),
		prost.WithCompression(cfg.Compression),
		prost.WithResourceController(resource.NewController(resource.Config{
			MemoryLimitBytes:   cfg.MemoryLimit,
			IOLimitBytesPerSec: cfg.IOLimit,
		})),
	}
	if cfg.EmbedURL != "" {
		engineOpts = append(engineOpts, prost.WithEmbedder(embed.NewHTTPEmbedder(embed.HTTPConfig{
			BaseURL: cfg.EmbedURL,
			Token:   cfg.EmbedToken,
			Timeout: cfg.EmbedTimeout,
		})))
	}

	return &environment{
		cfg:    cfg,
		stdout: stdout,
		stderr: stderr,
		logger: logger,
		engine: prost.New(engineOpts...),
	}
}

func (env *environment) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(env.stderr)
	return fs
}

func (env *environment) loadDatabase(ctx context.Context, loc string) (*store.Store, error) {
	bs, name, err := openLocation(ctx, env.cfg, loc)
	if err != nil {
		return nil, err
	}
	return env.engine.LoadDatabase(ctx, bs, name)
}

func (env *environment) saveDatabase(ctx context.Context, loc string, s *store.Store) error {
	bs, name, err := openLocation(ctx, env.cfg, loc)
	if err != nil {
		return err
	}
	if err := env.engine.SaveDatabase(ctx, bs, name, s); err != nil {
		return err
	}
	env.logger.Info("database written", "location", loc, "entries", s.Len())
	return nil
}

func (env *environment) readFASTA(ctx context.Context, loc string, fn func(r *fasta.Reader) error) error {
	rc, err := openInput(ctx, env.cfg, loc)
	if err != nil {
		return err
	}
	defer rc.Close()
	return fn(fasta.NewReader(rc))
}

func runMakeDB(ctx context.Context, env *environment, args []string) error {
	fs := env.flags("makedb")
	noCache := fs.Bool("no-cache", false, "disable the sequence cache")
	split := fs.Int("split", 0, "split output into databases of at most N entries (0: no split)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return usagef("expected <fasta> <out.prdb>")
	}
	in, out := fs.Arg(0), fs.Arg(1)

	var (
		cache     *store.SequenceCache
		cacheBS   blobstore.BlobStore
		cacheBlob string
	)
	if !*noCache {
		bs, name, err := openLocation(ctx, env.cfg, strings.TrimSuffix(env.cfg.Dir, "/")+"/"+cacheName)
		if err != nil {
			return err
		}
		if cache, err = env.engine.LoadCache(ctx, bs, name); err != nil {
			return err
		}
		cacheBS, cacheBlob = bs, name
	}

	var db *store.Store
	err := env.readFASTA(ctx, in, func(r *fasta.Reader) error {
		var (
			report prost.BuildReport
			err    error
		)
		db, report, err = env.engine.Build(ctx, r.All(), cache)
		if err != nil {
			return err
		}
		env.logger.Info("database built",
			"accepted", report.Accepted,
			"embedded", report.Embedded,
			"cache_hits", report.CacheHits,
			"rejected", len(report.Rejected),
		)
		return nil
	})
	if err != nil {
		return err
	}

	if *split <= 0 {
		if err := env.saveDatabase(ctx, out, db); err != nil {
			return err
		}
	} else {
		stem := strings.TrimSuffix(out, path.Ext(out))
		for i, part := range db.Split(*split) {
			if err := env.saveDatabase(ctx, fmt.Sprintf("%s_%d.prdb", stem, i), part); err != nil {
				return err
			}
		}
	}

	if cache != nil {
		return env.engine.FlushCache(ctx, cacheBS, cacheBlob, cache)
	}
	return nil
}

func runMergeDBs(ctx context.Context, env *environment, args []string) error {
	fs := env.flags("mergedbs")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return usagef("expected <in.prdb>... <out.prdb>")
	}
	ins, out := fs.Args()[:fs.NArg()-1], fs.Arg(fs.NArg()-1)

	parts := make([]*store.Store, 0, len(ins))
	for _, in := range ins {
		s, err := env.loadDatabase(ctx, in)
		if err != nil {
			return err
		}
		parts = append(parts, s)
	}
	return env.saveDatabase(ctx, out, store.Merge(parts...))
}

func runSearch(ctx context.Context, env *environment, args []string) error {
	fs := env.flags("search")
	thr := fs.Float64("thr", prost.DefaultThreshold, "e-value threshold for homologs")
	gothr := fs.Float64("gothr", prost.DefaultThreshold, "e-value threshold for term enrichment candidates")
	godb := fs.String("godb", "", "term database of the target database")
	jobs := fs.Int("n", 1, "number of parallel search workers")
	asJSON := fs.Bool("json", false, "write JSON instead of TSV")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 3 {
		return usagef("expected <query.prdb> <target.prdb> <out>")
	}

	queries, err := env.loadDatabase(ctx, fs.Arg(0))
	if err != nil {
		return err
	}
	targets, err := env.loadDatabase(ctx, fs.Arg(1))
	if err != nil {
		return err
	}

	opts := prost.SearchOptions{Threshold: *thr, EnrichThreshold: *gothr, Workers: *jobs}
	if *godb != "" {
		bs, name, err := openLocation(ctx, env.cfg, *godb)
		if err != nil {
			return err
		}
		if opts.Terms, err = env.engine.LoadTermDB(ctx, bs, name); err != nil {
			return err
		}
	}

	results, err := env.engine.SearchAll(ctx, queries, targets, opts)
	if err != nil {
		return err
	}

	return writeOutput(ctx, env.cfg, fs.Arg(2), env.stdout, func(w io.Writer) error {
		if *asJSON {
			return output.WriteJSON(w, results, nil)
		}
		return output.WriteTSV(w, results, queries.IDs())
	})
}

func runMkGO(ctx context.Context, env *environment, args []string) error {
	fs := env.flags("mkgo")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 4 {
		return usagef("expected <annotations.csv> <go.obo> <target.prdb> <out.prgo>")
	}

	csv, err := openInput(ctx, env.cfg, fs.Arg(0))
	if err != nil {
		return err
	}
	defer csv.Close()
	annotations, err := enrichment.ReadAnnotationCSV(csv)
	if err != nil {
		return err
	}

	obo, err := openInput(ctx, env.cfg, fs.Arg(1))
	if err != nil {
		return err
	}
	defer obo.Close()

	targets, err := env.loadDatabase(ctx, fs.Arg(2))
	if err != nil {
		return err
	}

	db, err := enrichment.BuildTermDB(annotations, targets.IDs(), obo)
	if err != nil {
		return err
	}
	env.logger.Info("term database built",
		"targets", db.Len(),
		"occurrences", db.Frequency[enrichment.CountKey],
		"unique_terms", db.Frequency[enrichment.UniqueKey],
	)

	bs, name, err := openLocation(ctx, env.cfg, fs.Arg(3))
	if err != nil {
		return err
	}
	return env.engine.SaveTermDB(ctx, bs, name, db)
}

func runMkCache(ctx context.Context, env *environment, args []string) error {
	fs := env.flags("mkcache")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 3 {
		return usagef("expected <fasta> <db.prdb> <out.prsc>")
	}

	db, err := env.loadDatabase(ctx, fs.Arg(1))
	if err != nil {
		return err
	}

	cache := store.NewSequenceCache()
	err = env.readFASTA(ctx, fs.Arg(0), func(r *fasta.Reader) error {
		found, missing, err := prost.FillCache(r.All(), db, cache)
		if err != nil {
			return err
		}
		for _, id := range missing {
			env.logger.Warn("sequence not in database", "id", id)
		}
		env.logger.Info("cache filled", "found", found, "entries", cache.Len(), "database", db.Len())
		return nil
	})
	if err != nil {
		return err
	}

	bs, name, err := openLocation(ctx, env.cfg, fs.Arg(2))
	if err != nil {
		return err
	}
	return env.engine.SaveCache(ctx, bs, name, cache)
}

func runParseNames(ctx context.Context, env *environment, args []string) error {
	fs := env.flags("parsenames")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return usagef("expected <db.prdb> <out.tsv>")
	}

	db, err := env.loadDatabase(ctx, fs.Arg(0))
	if err != nil {
		return err
	}
	return writeOutput(ctx, env.cfg, fs.Arg(1), env.stdout, func(w io.Writer) error {
		for _, id := range db.IDs() {
			h := fasta.ParseHeader(id)
			if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				h.Accession, h.Name, h.Description, h.Organism, h.TaxonID, h.Gene); err != nil {
				return err
			}
		}
		return nil
	})
}
