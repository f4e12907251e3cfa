// Command gtdload bulk-loads a cleaned GTD CSV into the configured warehouse
// backend. It infers a table definition from a sample of the file, optionally
// creates the destination table, and then streams typed rows through the
// batched loader.
package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jimsharma206/UM-TerrorismDW-Project/internal/config"
	"github.com/jimsharma206/UM-TerrorismDW-Project/internal/ddl"
	"github.com/jimsharma206/UM-TerrorismDW-Project/internal/metrics"
	"github.com/jimsharma206/UM-TerrorismDW-Project/internal/metrics/prompush"
	"github.com/jimsharma206/UM-TerrorismDW-Project/internal/storage"

	// register all backends with the storage factory; the config selects
	// which one is used at runtime.
	_ "github.com/jimsharma206/UM-TerrorismDW-Project/internal/storage/all"
)

// skipLogLimit caps per-row skip diagnostics so a badly typed file cannot
// flood the console.
const skipLogLimit = 100

func main() {
	var (
		cfgPath           string
		inputPath         string
		sampleSize        int
		metricsBackendFlg string
		pushGatewayURLFlg string
		validate          bool
	)

	flag.StringVar(&cfgPath, "config", "configs/gtd_clean.json", "pipeline config JSON path")
	flag.StringVar(&inputPath, "input", "", "cleaned CSV to load (defaults to the pipeline's cleaning output_path)")
	flag.IntVar(&sampleSize, "sample", 500, "rows sampled for table definition inference")
	flag.StringVar(&metricsBackendFlg, "metrics-backend", "none", "metrics backend to use (pushgateway, none)")
	flag.StringVar(&pushGatewayURLFlg, "pushgateway-url", "", "Pushgateway base URL (overrides env PUSHGATEWAY_URL)")
	flag.BoolVar(&validate, "validate", false, "validate the configuration and exit")
	verbose := flag.Bool("v", false, "enable verbose logs")
	flag.Parse()

	p, err := loadPipeline(cfgPath)
	if err != nil {
		fatalf("%v", err)
	}

	issues := config.ValidatePipeline(p)
	hasError := false
	for _, iss := range issues {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
		if iss.Severity == config.SeverityError {
			hasError = true
		}
	}
	if hasError {
		log.Printf("configuration is invalid: %v", cfgPath)
		os.Exit(1)
	}
	if validate {
		log.Printf("configuration is valid: %v", cfgPath)
		os.Exit(0)
	}

	if inputPath == "" {
		inputPath = p.Cleaning.OutputPath
	}
	if inputPath == "" {
		fatalf("no input file: set -input or cleaning.output_path")
	}

	initMetrics(metricsBackendFlg, pushGatewayURLFlg, p.Job, *verbose)
	defer func() {
		if err := metrics.Flush(); err != nil {
			log.Printf("metrics: flush error: %v", err)
		}
	}()

	ctx := context.Background()
	start := time.Now()

	header, sample, err := readSample(inputPath, sampleSize)
	if err != nil {
		log.Fatalf("sample %s: %v", inputPath, err)
	}
	def, err := ddl.InferTableDef(p.Storage.DB.Table, header, sample)
	if err != nil {
		log.Fatalf("infer table definition: %v", err)
	}
	if *verbose {
		for _, c := range def.Columns {
			log.Printf("column %s: kind=%s nullable=%t", c.Name, c.Kind, c.Nullable)
		}
	}

	repo, err := storage.New(ctx, storage.Config{
		Kind:    p.Storage.Kind,
		DSN:     p.Storage.DB.DSN,
		Table:   p.Storage.DB.Table,
		Columns: header,
	})
	if err != nil {
		log.Fatalf("open storage: %v", err)
	}
	defer repo.Close()

	if p.Storage.DB.AutoCreateTable {
		if err := storage.EnsureTable(ctx, p.Storage.Kind, repo, def); err != nil {
			log.Fatalf("ensure table: %v", err)
		}
		log.Printf("ensured table %s", def.FQN)
	}

	batchSize := p.Storage.DB.BatchSize
	if batchSize <= 0 {
		batchSize = storage.DefaultBatchSize
	}

	var (
		total   int64
		skipped int64
	)
	rows := make(chan []any, 2*batchSize)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(rows)
		n, err := streamRows(gctx, inputPath, def, rows)
		skipped = n
		return err
	})
	g.Go(func() error {
		n, err := storage.LoadBatches(gctx, p.Job, header, rows, batchSize, repo.CopyFrom)
		total = n
		return err
	})
	if err := g.Wait(); err != nil {
		log.Fatalf("load: %v", err)
	}

	log.Printf("loaded %d rows into %s (%s), skipped %d, in %s",
		total, p.Storage.DB.Table, p.Storage.Kind, skipped,
		time.Since(start).Truncate(time.Millisecond))
}

// readSample reads the header plus up to limit data rows for type inference.
func readSample(path string, limit int) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}
	var sample [][]string
	for len(sample) < limit {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read sample row: %w", err)
		}
		sample = append(sample, append([]string(nil), rec...))
	}
	return header, sample, nil
}

// streamRows reads the full file, converts each cell to the inferred column
// kind, and sends typed rows downstream. Rows with the wrong width or with a
// value that does not fit its inferred kind are skipped and counted rather
// than failing the load.
func streamRows(ctx context.Context, path string, def ddl.TableDef, out chan<- []any) (skipped int64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.ReuseRecord = true
	if _, err := r.Read(); err != nil { // header
		return 0, fmt.Errorf("read header: %w", err)
	}

	line := 1
	for {
		rec, err := r.Read()
		if err == io.EOF {
			return skipped, nil
		}
		line++
		if err != nil {
			skipped++
			logSkip(skipped, "line %d: %v", line, err)
			continue
		}
		if len(rec) != len(def.Columns) {
			skipped++
			logSkip(skipped, "line %d: %d fields, want %d", line, len(rec), len(def.Columns))
			continue
		}

		row := make([]any, len(def.Columns))
		ok := true
		for i, c := range def.Columns {
			v, cerr := ddl.CoerceValue(c.Kind, rec[i])
			if cerr != nil {
				skipped++
				logSkip(skipped, "line %d, column %s: %v", line, c.Name, cerr)
				ok = false
				break
			}
			row[i] = v
		}
		if !ok {
			continue
		}

		select {
		case out <- row:
		case <-ctx.Done():
			return skipped, ctx.Err()
		}
	}
}

func logSkip(n int64, format string, a ...any) {
	if n <= skipLogLimit {
		log.Printf("skip "+format, a...)
	}
	if n == skipLogLimit {
		log.Printf("skip log limit reached; further skips counted silently")
	}
}

func loadPipeline(path string) (config.Pipeline, error) {
	var p config.Pipeline
	f, err := os.Open(path)
	if err != nil {
		return p, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(&p); err != nil {
		return p, fmt.Errorf("decode config: %w", err)
	}
	return p, nil
}

func initMetrics(backendName, gwURL, job string, verbose bool) {
	if backendName == "" {
		backendName = os.Getenv("METRICS_BACKEND")
	}
	switch backendName {
	case "pushgateway":
		if gwURL == "" {
			gwURL = os.Getenv("PUSHGATEWAY_URL")
		}
		if gwURL == "" {
			gwURL = "http://localhost:9091"
		}
		if job == "" {
			job = "gtd"
		}
		b, err := prompush.NewBackend(job, gwURL)
		if err != nil {
			log.Printf("metrics: failed to init push backend: %v; using nop", err)
			return
		}
		log.Printf("metrics: url=%v backend=%v job=%v", gwURL, backendName, job)
		metrics.SetBackend(b)

	case "", "none":
		if verbose {
			log.Printf("metrics: disabled (backend=%q)", backendName)
		}

	default:
		log.Printf("metrics: unknown backend %q; metrics disabled", backendName)
	}
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
