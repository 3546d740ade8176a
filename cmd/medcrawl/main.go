package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/medcrawl"
	"github.com/fwojciec/medcrawl/goquery"
	medhttp "github.com/fwojciec/medcrawl/http"
	medslog "github.com/fwojciec/medcrawl/slog"
	medyaml "github.com/fwojciec/medcrawl/yaml"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Fetcher replaces the HTTP fetcher. Set before calling Run().
	Fetcher medcrawl.Fetcher

	// Now is the clock used for generated file names.
	Now func() time.Time
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Now: time.Now,
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Now:    m.Now,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("medcrawl"),
		kong.Description("Extract medical articles from public health websites"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'medcrawl --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(stderr, cli.LogLevel, cli.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()
	deps.Logger = logger

	catalog, err := loadCatalog(cli.SourcesFile)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", medcrawl.ErrorMessage(err))
		return err
	}
	deps.Catalog = catalog

	fetcher := m.Fetcher
	if fetcher == nil {
		fetcher = medhttp.NewFetcher()
	}
	deps.Fetcher = medslog.NewLoggingFetcher(fetcher, logger)
	deps.Extractors = medslog.NewLoggingExtractorFactory(goquery.NewFactory(), logger)
	deps.Resolver = medslog.NewLoggingResolver(newRegistry(catalog), logger)

	return kongCtx.Run(deps)
}

func loadCatalog(path string) (*medyaml.Catalog, error) {
	if path == "" {
		return medyaml.DefaultCatalog()
	}
	return medyaml.LoadFile(path)
}

// newRegistry maps each source family to the first catalog profile of
// that family so single-URL mode can pick one from the page itself.
func newRegistry(catalog *medyaml.Catalog) *goquery.Registry {
	registry := goquery.NewRegistry(goquery.NewDetector(), catalog.Universal())
	for _, src := range catalog.List() {
		if src.Family == medcrawl.FamilyUniversal || registry.Get(src.Family) != nil {
			continue
		}
		registry.Register(src)
	}
	return registry
}
