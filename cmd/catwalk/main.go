package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/smercier/catwalk/internal/catalog"
	"github.com/smercier/catwalk/internal/config"
	"github.com/smercier/catwalk/internal/export"
	"github.com/smercier/catwalk/internal/report"
	"github.com/smercier/catwalk/internal/source/sqldb"
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "catwalk error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) < 2 {
		printUsage()
		return nil
	}

	switch args[1] {
	case "explore":
		return runExplore(args[2:])
	case "export":
		return runExport(args[2:])
	case "help", "--help", "-h":
		printUsage()
		return nil
	default:
		return fmt.Errorf("unknown command: %s", args[1])
	}
}

func runExplore(args []string) error {
	fs := flag.NewFlagSet("explore", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to config.yaml")
	asJSON := fs.Bool("json", false, "Render the report as JSON")

	if err := fs.Parse(args); err != nil {
		return err
	}

	rep, _, err := explore(*configPath)
	if err != nil {
		return err
	}

	if *asJSON {
		if err := report.JSON(os.Stdout, rep); err != nil {
			return err
		}
	} else {
		if err := report.Text(os.Stdout, rep); err != nil {
			return err
		}
	}

	// Partial failure is still a successful run; only a fail-fast abort
	// turns into a nonzero exit.
	if rep.Aborted {
		return fmt.Errorf("aborted after total failure (failFast)")
	}
	return nil
}

func runExport(args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to config.yaml")

	if err := fs.Parse(args); err != nil {
		return err
	}

	rep, cfg, err := explore(*configPath)
	if err != nil {
		return err
	}
	if cfg.Export.Dir == "" {
		return fmt.Errorf("export.dir is required for the export command")
	}

	written, problems := export.Write(rep, cfg.Export.Dir)
	for _, path := range written {
		fmt.Printf("wrote %s\n", path)
	}
	for _, p := range problems {
		fmt.Fprintf(os.Stderr, "export problem: %s\n", p)
	}
	if rep.Aborted {
		return fmt.Errorf("aborted after total failure (failFast)")
	}
	return nil
}

func explore(configPath string) (*catalog.CatalogReport, *config.Config, error) {
	if configPath == "" {
		return nil, nil, fmt.Errorf("missing required flag: --config")
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}

	reg, err := sqldb.OpenRegistry(cfg.Sources)
	if err != nil {
		return nil, nil, err
	}
	defer reg.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rep := catalog.Explore(ctx, reg.All(), catalog.ExploreOptions{
		WalkOptions: catalog.WalkOptions{
			SampleTables:  cfg.SampleSet(),
			MaxSampleRows: cfg.Sample.MaxRows,
		},
		Concurrency: cfg.Concurrency,
		FailFast:    cfg.FailFast,
	})
	return rep, cfg, nil
}

func printUsage() {
	fmt.Print(`Catwalk - multi-source database catalog explorer

Usage:
  catwalk explore --config <path> [--json]
  catwalk export --config <path>

Commands:
  explore   Walk every configured source and print the catalog report
  export    Walk the sources and dump sampled tables to CSV files
  help      Show this help message
`)
}
