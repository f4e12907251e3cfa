// Package config provides configuration models and helpers for the pipeline.
//
// This file adds a lightweight linter/validator for Pipeline values. It
// performs static checks over a decoded Pipeline and returns a list of issues
// (errors and warnings) that callers can surface in a CLI or tests.
package config

import (
	"fmt"
	"strings"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that should block execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a configuration warning that should be surfaced
	// to users but may not necessarily block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation/lint finding for a Pipeline.
//
// Path is a dotted path into the config (e.g. "storage.kind",
// "cleaning.output_path"). Message is human-readable.
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a single
// error in contexts that expect error.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// ValidatePipeline performs static validation / linting of a Pipeline.
//
// It does not mutate the pipeline. Instead it returns a slice of Issue values.
// Callers may decide whether to treat warnings as fatal or not.
func ValidatePipeline(p Pipeline) []Issue {
	var issues []Issue

	if strings.TrimSpace(p.Job) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "job",
			Message:  "job must not be empty; it is used for metrics labeling and identifying runs",
		})
	}
	issues = append(issues, validateSource(p.Source)...)
	issues = append(issues, validateParser(p.Parser)...)
	issues = append(issues, validateCleaning(p.Cleaning)...)
	issues = append(issues, validateStorage(p.Storage)...)

	return issues
}

// validateSource validates Source configuration.
func validateSource(s Source) []Issue {
	var issues []Issue
	switch s.Kind {
	case "":
		issues = append(issues, Issue{SeverityError, "source.kind", "source.kind is required (expected \"file\")"})
	case "file":
		if strings.TrimSpace(s.File.Path) == "" {
			issues = append(issues, Issue{SeverityError, "source.file.path", "path to the raw incident CSV is required"})
		}
	default:
		issues = append(issues, Issue{SeverityError, "source.kind", fmt.Sprintf("unsupported source kind %q", s.Kind)})
	}
	return issues
}

// validateParser validates Parser configuration.
func validateParser(p Parser) []Issue {
	var issues []Issue
	switch p.Kind {
	case "":
		issues = append(issues, Issue{SeverityError, "parser.kind", "parser.kind is required (expected \"csv\")"})
	case "csv":
		switch enc := p.Options.String("encoding", "latin1"); enc {
		case "latin1", "iso-8859-1", "utf-8", "utf8":
		default:
			issues = append(issues, Issue{SeverityError, "parser.options.encoding", fmt.Sprintf("unknown encoding %q (expected latin1 or utf-8)", enc)})
		}
		if c := p.Options.String("comma", ","); len([]rune(c)) != 1 {
			issues = append(issues, Issue{SeverityError, "parser.options.comma", "comma must be a single character"})
		}
	default:
		issues = append(issues, Issue{SeverityError, "parser.kind", fmt.Sprintf("unsupported parser kind %q", p.Kind)})
	}
	return issues
}

// validateCleaning validates the cleaning pass configuration.
func validateCleaning(c Cleaning) []Issue {
	var issues []Issue
	if strings.TrimSpace(c.OutputPath) == "" {
		issues = append(issues, Issue{SeverityError, "cleaning.output_path", "destination path for the cleaned CSV is required"})
	}
	if strings.TrimSpace(c.QuarantineDir) == "" {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "cleaning.quarantine_dir",
			Message:  "quarantine_dir is empty; bad numeric rows will be written next to the output file",
		})
	}
	switch c.AlignmentPolicy {
	case "", "warn", "strict":
	default:
		issues = append(issues, Issue{SeverityError, "cleaning.alignment_policy", fmt.Sprintf("unknown policy %q (expected \"warn\" or \"strict\")", c.AlignmentPolicy)})
	}
	if c.SparseThreshold < 0 || c.SparseThreshold > 1 {
		issues = append(issues, Issue{SeverityError, "cleaning.sparse_threshold", "sparse_threshold must be within [0, 1]"})
	}
	return issues
}

// validateStorage validates the optional warehouse sink configuration. An
// empty storage block is fine for clean-only runs.
func validateStorage(s Storage) []Issue {
	var issues []Issue
	switch s.Kind {
	case "":
		return nil
	case "postgres", "mssql", "sqlite", "mysql":
		if strings.TrimSpace(s.DB.DSN) == "" {
			issues = append(issues, Issue{SeverityError, "storage.db.dsn", "connection string is required"})
		}
		if strings.TrimSpace(s.DB.Table) == "" {
			issues = append(issues, Issue{SeverityError, "storage.db.table", "destination table is required"})
		}
		if s.DB.BatchSize < 0 {
			issues = append(issues, Issue{SeverityError, "storage.db.batch_size", "batch_size must not be negative"})
		}
	default:
		issues = append(issues, Issue{SeverityError, "storage.kind", fmt.Sprintf("unsupported storage kind %q", s.Kind)})
	}
	return issues
}
