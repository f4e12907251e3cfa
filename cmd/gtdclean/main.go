// Command gtdclean runs the GTD cleaning pass: it loads the raw incident CSV
// named by the pipeline config, applies the fixed cleaning sequence, writes
// the cleaned CSV plus any quarantine files, and prints the run report.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jimsharma206/UM-TerrorismDW-Project/internal/cleaner"
	"github.com/jimsharma206/UM-TerrorismDW-Project/internal/config"
	"github.com/jimsharma206/UM-TerrorismDW-Project/internal/metrics"
	"github.com/jimsharma206/UM-TerrorismDW-Project/internal/metrics/prompush"
)

func main() {
	var (
		cfgPath           string
		metricsBackendFlg string
		pushGatewayURLFlg string
		validate          bool
	)

	flag.StringVar(&cfgPath, "config", "configs/gtd_clean.json", "pipeline config JSON path")
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

	initMetrics(metricsBackendFlg, pushGatewayURLFlg, p.Job, *verbose)
	defer func() {
		if err := metrics.Flush(); err != nil {
			log.Printf("metrics: flush error: %v", err)
		}
	}()

	c := cleaner.New(cleaner.Config{
		Job:             p.Job,
		InputPath:       p.Source.File.Path,
		Encoding:        p.Parser.Options.String("encoding", "latin1"),
		QuarantineDir:   p.Cleaning.QuarantineDir,
		OutputPath:      p.Cleaning.OutputPath,
		Comma:           p.Parser.Options.Rune("comma", ','),
		HeaderMap:       p.Parser.Options.StringMap("header_map"),
		AlignmentPolicy: p.Cleaning.AlignmentPolicy,
		SparseThreshold: p.Cleaning.SparseThreshold,
	})

	ctx := context.Background()
	start := time.Now()

	_, rep, err := c.Run(ctx)
	if err != nil {
		log.Fatalf("%v", err)
	}

	fmt.Println(rep.Summary())
	if *verbose {
		log.Printf("completed in %s", time.Since(start).Truncate(time.Millisecond))
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

// initMetrics resolves the metrics backend from flag, then environment, then
// the nop default, and installs it globally.
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
