package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/oleg578/linecsv"
	"github.com/oleg578/linecsv/internal/batch"
	"github.com/oleg578/linecsv/internal/config"
	"github.com/oleg578/linecsv/internal/render"
)

func main() {
	// Command line flags
	var (
		configFlag    = flag.String("config", "", "Path to config file")
		jobsFlag      = flag.Int("jobs", 0, "Files decoded in parallel (overrides config)")
		maxFieldFlag  = flag.Int("max-field", -1, "Maximum field size in bytes, 0 for no limit (overrides config)")
		closeFlag     = flag.Bool("close-quotes", false, "Close quoted fields left open at end of input")
		printFlag     = flag.Bool("print", true, "Print every data record")
		widthFlag     = flag.Int("width", -1, "Truncate printed fields to this many cells, 0 for no limit (overrides config)")
		normalizeFlag = flag.Bool("normalize", false, "Write decoded records to stdout as normalized CSV")
		crlfFlag      = flag.Bool("crlf", false, "Terminate normalized records with CRLF")
		verboseFlag   = flag.Bool("verbose", false, "Show verbose output")
	)

	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Println("linecsv - decode delimited text files")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  linecsv [options] FILE...")
		fmt.Println()
		fmt.Println("For interactive mode, use: linecsv-tui FILE")
		fmt.Println()
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Load config
	settings := config.DefaultSettings()
	if *configFlag != "" {
		var err error
		settings, err = config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// Apply flags
	if *jobsFlag > 0 {
		settings.MaxConcurrentFiles = *jobsFlag
	}
	if *maxFieldFlag >= 0 {
		settings.MaxFieldSize = *maxFieldFlag
	}
	if *closeFlag {
		settings.CloseUnterminatedQuotes = true
	}
	if *widthFlag >= 0 {
		settings.MaxFieldWidth = *widthFlag
	}
	if *crlfFlag {
		settings.UseCRLF = true
	}
	settings.PrintRecords = *printFlag
	if err := settings.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nInterrupted, cancelling...")
		cancel()
	}()

	// Status output goes to stderr when stdout carries normalized CSV.
	statusOut := os.Stdout
	if *normalizeFlag {
		statusOut = os.Stderr
	}
	printer := render.NewPrinter(statusOut, settings.MaxFieldWidth)

	manager := batch.NewManager(settings, func(event batch.ProgressEvent) {
		switch event.Level {
		case batch.LevelVerbose:
			if *verboseFlag {
				_ = printer.Verbose(event.Message)
			}
		case batch.LevelError:
			_ = printer.Error(event.Message)
		case batch.LevelWarning:
			_ = printer.Warning(event.Message)
		case batch.LevelSuccess:
			if *verboseFlag {
				_ = printer.Success(event.Message)
			}
		default:
			_ = printer.Info(event.Message)
		}
	})

	if *normalizeFlag {
		out := settings.NewWriter(os.Stdout)
		for _, path := range flag.Args() {
			if err := normalize(ctx, path, settings, out); err != nil {
				_ = printer.Error(fmt.Sprintf("Error normalizing %s: %v", path, err))
				os.Exit(1)
			}
			if *verboseFlag {
				_ = printer.Success(fmt.Sprintf("Normalized %s", path))
			}
		}
		if err := out.Flush(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if settings.PrintRecords {
		// Printed records keep file order.
		settings.MaxConcurrentFiles = 1
		manager.OnHeader(func(path string, header linecsv.Record) error {
			return printer.Header(path, header)
		})
		manager.OnRecord(func(_ string, seq int, rec linecsv.Record) error {
			return printer.Record(seq, rec)
		})
	}

	results, err := manager.Run(ctx, flag.Args())
	if err != nil {
		if ctx.Err() != nil {
			fmt.Fprintln(os.Stderr, "Decoding cancelled.")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	failed := false
	for _, res := range results {
		if res.Err != nil {
			failed = true
			continue
		}
		_ = printer.Summary(res.Path, res.Summary)
	}
	if failed {
		os.Exit(1)
	}
}

// normalize re-encodes every record of path, header included, into out.
func normalize(ctx context.Context, path string, settings *config.Settings, out *linecsv.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %w", linecsv.ErrSourceUnavailable, err)
	}
	defer f.Close()

	d := linecsv.NewDecoder(f)
	settings.ConfigureDecoder(d)
	for rec, err := range d.All() {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := out.Write(rec); err != nil {
			return err
		}
	}
	return nil
}
