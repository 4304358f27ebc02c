package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/AKapaldo/ROT/internal/config"
	"github.com/AKapaldo/ROT/internal/core"
	"github.com/AKapaldo/ROT/internal/denylist"
	"github.com/AKapaldo/ROT/internal/report"
	"github.com/AKapaldo/ROT/internal/schedule"
	"github.com/AKapaldo/ROT/pkg/models"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ANSI colors
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorRed    = "\033[31m"
	colorYellow = "\033[38;5;220m"
	colorGray   = "\033[38;5;245m"
	colorOrange = "\033[38;5;208m"
)

var (
	version = "0.1.0"
	logger  *zap.Logger
	verbose bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rot",
		Short: "ROT - Redundant, Obsolete and Trivial file classifier",
		Long: `Classifies the files under a directory tree into three categories:
Redundant (byte-identical duplicates), Obsolete (older than an age threshold),
and Trivial (junk extensions), and writes one CSV report per category.`,
		Version: version,
		Run: func(cmd *cobra.Command, args []string) {
			printBanner()
			cmd.Help()
		},
	}

	// Global verbose flag
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(scanCmd())
	rootCmd.AddCommand(scheduleCmd())
	rootCmd.AddCommand(categoriesCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// printBanner prints the startup banner
func printBanner() {
	fmt.Println()
	fmt.Printf("%s", colorOrange)
	fmt.Println("████▄   ▄████▄  ████████")
	fmt.Println("██  ██  ██  ██     ██")
	fmt.Println("████▀   ██  ██     ██")
	fmt.Println("██  ██  ▀████▀     ██")
	fmt.Printf("%s", colorReset)
	fmt.Println()
	fmt.Printf("%sRedundant · Obsolete · Trivial file classifier v%s%s\n", colorGray, version, colorReset)
	fmt.Println()
}

// scanFlags holds the flag values shared by scan and schedule
type scanFlags struct {
	age        string
	timestamp  string
	workers    int
	extensions []string
	denylist   string
	exclude    []string
	output     string
}

// register adds the shared flags to a command
func (f *scanFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.age, "age", "", "Age threshold in years (default: 7; invalid values fall back)")
	cmd.Flags().StringVar(&f.timestamp, "timestamp", "", "Timestamp to compare: modified, accessed, created (default: modified)")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "Concurrent hashing tasks, 1-8 (default: 6)")
	cmd.Flags().StringSliceVar(&f.extensions, "extensions", nil, "Trivial-extension denylist override (comma-separated)")
	cmd.Flags().StringVar(&f.denylist, "denylist", "", "YAML file with a trivial-extension denylist")
	cmd.Flags().StringSliceVar(&f.exclude, "exclude", nil, "Directory names to exclude (comma-separated)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Report output directory (default: current directory)")
}

// apply overrides cfg with any flags the user set
func (f *scanFlags) apply(cfg *config.Config) {
	if f.age != "" {
		years := config.ParseAge(f.age)
		if n, err := strconv.Atoi(strings.TrimSpace(f.age)); err != nil || n < 0 {
			fmt.Printf("  %s⚠ Invalid --age %q, using default %d%s\n", colorYellow, f.age, years, colorReset)
		}
		cfg.AgeYears = years
	}
	if f.timestamp != "" {
		cfg.Timestamp = f.timestamp
	}
	if f.workers > 0 {
		cfg.Workers = f.workers
	}
	if len(f.extensions) > 0 {
		cfg.Extensions = f.extensions
	}
	if f.denylist != "" {
		cfg.DenylistPath = f.denylist
	}
	if len(f.exclude) > 0 {
		cfg.Exclude = f.exclude
	}
	if f.output != "" {
		cfg.OutputDir = f.output
	}
}

// validateFlags validates CLI flag values
func validateFlags(timestamp string) error {
	if timestamp != "" {
		valid := []string{"modified", "accessed", "created"}
		if !contains(valid, timestamp) {
			return fmt.Errorf("--timestamp must be one of: %s (got: %s)", strings.Join(valid, ", "), timestamp)
		}
	}
	return nil
}

// scanCmd creates the scan command
func scanCmd() *cobra.Command {
	flags := &scanFlags{}

	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Classify files under a directory into ROT categories",
		Long:  `Recursively index a directory tree and report redundant, obsolete and trivial files as CSV.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			if err := validateFlags(flags.timestamp); err != nil {
				fmt.Printf("\n  %s✗ Invalid parameter:%s %s\n\n", colorRed, colorReset, err.Error())
				return err
			}

			if err := initLogger(); err != nil {
				return err
			}
			defer logger.Sync()

			printBanner()
			fmt.Printf("  %sScanning:%s  %s\n", colorGray, colorReset, path)
			fmt.Println()

			cfg, err := loadConfig(flags)
			if err != nil {
				logger.Error("Failed to load config", zap.Error(err))
				return err
			}

			ctx, cancel := signalContext()
			defer cancel()

			engine := newEngine(cfg)
			results, err := engine.Scan(ctx, path)
			if err != nil {
				return printScanError(err)
			}

			gen, err := report.NewGenerator(cfg.OutputDir, logger)
			if err != nil {
				return err
			}
			gen.PrintConsole(results)

			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

// scheduleCmd creates the schedule command
func scheduleCmd() *cobra.Command {
	flags := &scanFlags{}
	var cronSpec string

	cmd := &cobra.Command{
		Use:   "schedule [path]",
		Short: "Run the classification on a recurring cron schedule",
		Long:  `Re-run the full scan on a cron schedule until interrupted. Each run replaces the previous run's reports.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			if err := validateFlags(flags.timestamp); err != nil {
				fmt.Printf("\n  %s✗ Invalid parameter:%s %s\n\n", colorRed, colorReset, err.Error())
				return err
			}

			if err := initLogger(); err != nil {
				return err
			}
			defer logger.Sync()

			printBanner()
			fmt.Printf("  %sScanning:%s  %s\n", colorGray, colorReset, path)
			fmt.Printf("  %sSchedule:%s  %s\n", colorGray, colorReset, cronSpec)
			fmt.Println()

			cfg, err := loadConfig(flags)
			if err != nil {
				logger.Error("Failed to load config", zap.Error(err))
				return err
			}

			ctx, cancel := signalContext()
			defer cancel()

			sched := schedule.NewScheduler(logger)
			err = sched.Every(cronSpec, func(runCtx context.Context) {
				engine := newEngine(cfg)
				results, err := engine.Scan(runCtx, path)
				if err != nil {
					printScanError(err)
					return
				}
				gen, err := report.NewGenerator(cfg.OutputDir, logger)
				if err != nil {
					logger.Error("Report generator failed", zap.Error(err))
					return
				}
				gen.PrintConsole(results)
			})
			if err != nil {
				fmt.Printf("\n  %s✗ Invalid parameter:%s %s\n\n", colorRed, colorReset, err.Error())
				return err
			}

			sched.Run(ctx)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&cronSpec, "cron", "@daily", "Cron expression, e.g. \"0 3 * * *\" or \"@hourly\"")
	return cmd
}

// categoriesCmd creates the categories command
func categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the ROT categories and the default trivial denylist",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("CATEGORIES:")
			fmt.Println("  ✓ redundant    Files whose content is byte-identical to at least one other file")
			fmt.Println("  ✓ obsolete     Files whose selected timestamp predates the age cutoff")
			fmt.Println("  ✓ trivial      Files whose extension matches the junk denylist")
			fmt.Println("")
			fmt.Println("TIMESTAMP SELECTORS (--timestamp):")
			fmt.Println("  modified       Last write time (default)")
			fmt.Println("  accessed       Last access time")
			fmt.Println("  created        Creation time")
			fmt.Println("")
			fmt.Println("DEFAULT TRIVIAL DENYLIST:")
			fmt.Printf("  %s\n", strings.Join(denylist.Defaults, " "))
			fmt.Println("")
			fmt.Println("EXAMPLES:")
			fmt.Println("  rot scan ~/Downloads                          # Defaults: 7 years, modified time")
			fmt.Println("  rot scan --age=2 --timestamp=accessed ~/docs  # Untouched for 2 years")
			fmt.Println("  rot scan --extensions=tmp,bak ~/project       # Custom denylist")
			fmt.Println("  rot schedule --cron @weekly ~/Downloads       # Recurring scan")
		},
	}
}

// initLogger initializes the global logger based on the verbose flag
func initLogger() error {
	var err error
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		// Silent logger - only errors
		cfg := zap.Config{
			Level:            zap.NewAtomicLevelAt(zapcore.ErrorLevel),
			Encoding:         "json",
			OutputPaths:      []string{"stderr"},
			ErrorOutputPaths: []string{"stderr"},
			EncoderConfig:    zap.NewProductionEncoderConfig(),
		}
		logger, err = cfg.Build()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
	}
	return err
}

// loadConfig loads configuration and applies flag overrides
func loadConfig(flags *scanFlags) (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	flags.apply(cfg)
	return cfg, nil
}

// newEngine creates an engine with the console progress callback wired up
func newEngine(cfg *config.Config) *core.Engine {
	engine := core.NewEngine(cfg, logger)

	lastPhase := ""
	engine.SetProgressCallback(func(phase string, current, total int, message string) {
		if lastPhase == phase && phase == "hashing" {
			fmt.Print("\033[1A\033[K")
		}
		lastPhase = phase

		switch phase {
		case "indexing":
			if total > 0 {
				fmt.Printf("  %sFiles:%s     %s\n", colorGray, colorReset, message)
			}
		case "hashing":
			if total > 0 {
				pct := float64(current) / float64(total) * 100
				barWidth := 30
				filled := int(float64(barWidth) * float64(current) / float64(total))
				bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
				fmt.Printf("  %sHashing:%s   [%s%s%s] %s%.1f%%%s (%d/%d)\n",
					colorGray, colorReset, colorOrange, bar, colorReset, colorOrange, pct, colorReset, current, total)
			}
		}
	})

	return engine
}

// printScanError maps the run-terminating errors onto clear console messages
func printScanError(err error) error {
	switch {
	case errors.Is(err, models.ErrPathNotFound):
		fmt.Printf("\n  %s✗ Path not found%s %s\n\n", colorRed, colorReset, err.Error())
	case errors.Is(err, models.ErrPathNotReadable):
		fmt.Printf("\n  %s✗ Path not readable%s %s\n\n", colorRed, colorReset, err.Error())
	case errors.Is(err, models.ErrEmptyIndex):
		fmt.Printf("\n  %s⚠ No files found - nothing to classify%s\n\n", colorYellow, colorReset)
	case errors.Is(err, context.Canceled):
		fmt.Printf("\n  %s⚠ Scan cancelled%s\n\n", colorYellow, colorReset)
	default:
		logger.Error("Scan failed", zap.Error(err))
	}
	return err
}

// signalContext returns a context cancelled on SIGINT or SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()
	return ctx, cancel
}

// contains checks if a slice contains a string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
