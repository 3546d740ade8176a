package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/medcrawl"
	"github.com/fwojciec/medcrawl/crawl"
	"github.com/fwojciec/medcrawl/excelize"
	medfs "github.com/fwojciec/medcrawl/fs"
	medjson "github.com/fwojciec/medcrawl/json"
	medslog "github.com/fwojciec/medcrawl/slog"
	medyaml "github.com/fwojciec/medcrawl/yaml"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Logger     *slog.Logger
	Catalog    *medyaml.Catalog
	Fetcher    medcrawl.Fetcher
	Extractors medcrawl.ExtractorFactory
	Resolver   medcrawl.SourceResolver
	Now        func() time.Time
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	SourcesFile string `name:"sources" type:"existingfile" env:"MEDCRAWL_SOURCES" help:"YAML file with source profiles layered over the built-in ones"`
	LogLevel    string `name:"log-level" default:"warn" enum:"debug,info,warn,error" env:"MEDCRAWL_LOG_LEVEL" help:"Console log level (${enum})"`
	LogFile     string `name:"log-file" type:"path" env:"MEDCRAWL_LOG_FILE" help:"Also write JSON logs to this file (rotated)"`

	Crawl   CrawlCmd   `cmd:"" help:"Crawl a source's alphabetical index and export the articles"`
	Fetch   FetchCmd   `cmd:"" help:"Extract a single page"`
	Sources SourcesCmd `cmd:"" help:"List the available source profiles"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	Source     string        `arg:"" help:"Source profile name (see 'medcrawl sources')"`
	Output     string        `short:"o" help:"Output file, or '-' for stdout. Defaults to a timestamped file in --dir"`
	Dir        string        `short:"d" default:"." type:"path" help:"Directory for generated output files"`
	Format     string        `short:"f" default:"xlsx" enum:"xlsx,json,yaml" env:"MEDCRAWL_FORMAT" help:"Export format (${enum})"`
	Strictness string        `short:"s" help:"Paragraph strictness: lenient, normal or strict (default: the profile's)"`
	Keys       string        `short:"k" help:"Crawl only these keys, e.g. 'abc' (default: the profile's key space)"`
	Limit      int           `short:"l" help:"Topic links followed per key; negative means no cap (default: the profile's)"`
	SkipSeen   bool          `name:"skip-seen" help:"Follow each topic URL at most once per run"`
	NoDelay    bool          `name:"no-delay" help:"Disable the profile's pause between article fetches"`
	RPS        float64       `name:"rps" default:"1" env:"MEDCRAWL_RPS" help:"Requests per second per host; zero disables the limit"`
	Timeout    time.Duration `short:"t" default:"15s" env:"MEDCRAWL_TIMEOUT" help:"Per-request timeout"`
}

// FetchCmd is the "fetch" subcommand.
type FetchCmd struct {
	URL        string        `arg:"" help:"Page URL"`
	Source     string        `default:"auto" help:"Source profile name, or 'auto' to detect it from the page"`
	Strictness string        `short:"s" help:"Paragraph strictness: lenient, normal or strict (default: the profile's)"`
	Output     string        `short:"o" help:"Also export the article to this file ('-' for stdout)"`
	Format     string        `short:"f" default:"json" enum:"xlsx,json,yaml" help:"Export format for --output (${enum})"`
	MaxBody    int           `name:"max-body" default:"0" help:"Shorten the printed body to this many characters (0 prints it whole)"`
	Timeout    time.Duration `short:"t" default:"15s" env:"MEDCRAWL_TIMEOUT" help:"Request timeout"`
}

// SourcesCmd is the "sources" subcommand.
type SourcesCmd struct{}

// exporterFor returns the exporter for format, wrapped with logging.
func (deps *Dependencies) exporterFor(format medcrawl.Format) medcrawl.Exporter {
	var e medcrawl.Exporter
	switch format {
	case medcrawl.FormatJSON:
		e = medjson.NewExporter()
	case medcrawl.FormatYAML:
		e = medyaml.NewExporter()
	default:
		e = excelize.NewExporter()
	}
	return medslog.NewLoggingExporter(e, deps.Logger)
}

// export writes records in format to output: "-" is stdout, empty is a
// generated file name in dir.
func (deps *Dependencies) export(format medcrawl.Format, name string, records []*medcrawl.Record, output, dir string) error {
	exporter := deps.exporterFor(format)
	if output == "-" {
		data, err := exporter.Export(records)
		if err != nil {
			return err
		}
		_, err = deps.Stdout.Write(data)
		return err
	}

	w := medfs.NewWriter(dir)
	if deps.Now != nil {
		w.Now = deps.Now
	}
	path, err := w.Write(exporter, name, records, output)
	if err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	fmt.Fprintf(deps.Stdout, "Wrote %d records to %s\n", len(records), path)
	return nil
}

// driver wires a crawl driver from the shared services.
func (deps *Dependencies) driver(timeout time.Duration, rps float64, skipSeen bool) *crawl.Driver {
	return &crawl.Driver{
		Fetcher:    deps.Fetcher,
		Extractors: deps.Extractors,
		Pacer:      crawl.NewDomainPacer(rps),
		Resolver:   deps.Resolver,
		Timeout:    timeout,
		SkipSeen:   skipSeen,
	}
}
