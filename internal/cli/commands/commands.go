package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"caserun/internal/candidates"
	"caserun/internal/cli"
	"caserun/internal/config"
	"caserun/internal/discovery"
	"caserun/internal/domain"
	"caserun/internal/execution"
	"caserun/internal/parser"
	"caserun/internal/storage"
	"caserun/internal/ui"

	"github.com/spf13/cobra"
)

// Commands holds all CLI commands
type Commands struct {
	Run      *RunCommand
	List     *ListCommand
	Failures *FailuresCommand
	Stats    *StatsCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config, registry *candidates.Registry) *Commands {
	filter := discovery.NewFilter()
	lineParser := parser.NewLineParser()

	return &Commands{
		Run:      NewRunCommand(cfg, registry, filter, lineParser, storage.New),
		List:     NewListCommand(cfg, filter, storage.New),
		Failures: NewFailuresCommand(cfg, storage.New),
		Stats:    NewStatsCommand(cfg, storage.New),
	}
}

// Register registers all commands with cobra. The root command itself runs
// a suite, so `caserun <candidate> <function> <test-dir>` and
// `caserun run <candidate> <function> <test-dir>` are equivalent.
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg.Flags = flags.ToConfigFlags()
		ui.ConfigureColor(flags.NoColor, os.Stdout)
		slog.SetDefault(cli.NewLogger(cmd.ErrOrStderr(), flags.Verbose))
		if err := cfg.Resolve(); err != nil {
			return domain.WrapSetupError(domain.SetupConfig, err, "invalid configuration")
		}
		return nil
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.ConfigFile, "config", "", "Path to the config file (default ./"+config.DefaultConfigFile+")")
	pf.BoolVarP(&flags.Verbose, "verbose", "v", false, "Log diagnostics to stderr")
	pf.BoolVar(&flags.NoColor, "no-color", false, "Disable coloured output")
	pf.StringVar(&flags.InputSuffix, "in-suffix", "", "Input file suffix (default "+config.DefaultInputSuffix+")")
	pf.StringVar(&flags.OutputSuffix, "out-suffix", "", "Expected-output file suffix (default "+config.DefaultOutputSuffix+")")
	pf.StringVar(&flags.Storage, "storage", "", "Result storage backend: json, mysql or none (default "+config.DefaultStorage+")")

	rootCmd.Args = cobra.ExactArgs(3)
	rootCmd.RunE = c.Run.Execute
	addRunFlags(rootCmd, flags)

	// Run command
	runCmd := &cobra.Command{
		Use:   "run <candidate> <function> <test-dir>",
		Short: "Run a candidate function against a directory of test cases",
		Long:  "Feed every <id>.in file in <test-dir> to the candidate function and compare the result with <id>.out",
		Args:  cobra.ExactArgs(3),
		RunE:  c.Run.Execute,
	}
	addRunFlags(runCmd, flags)
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:   "list <test-dir>",
		Short: "List discovered test cases",
		Long:  "Scan a test directory and list its .in/.out pairs without running them",
		Args:  cobra.ExactArgs(1),
		RunE:  c.List.Execute,
	}
	listCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter cases by name pattern (supports wildcards, e.g. 'sort*')")
	rootCmd.AddCommand(listCmd)

	// Failures command
	failuresCmd := &cobra.Command{
		Use:   "failures",
		Short: "View case failures interactively",
		Long:  "Display the failures of the last stored run in an interactive viewer",
		Args:  cobra.NoArgs,
		RunE:  c.Failures.Execute,
	}
	rootCmd.AddCommand(failuresCmd)

	// Stats command
	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show statistics of the last run",
		Args:  cobra.NoArgs,
		RunE:  c.Stats.Execute,
	}
	rootCmd.AddCommand(statsCmd)
}

func addRunFlags(cmd *cobra.Command, flags *cli.Flags) {
	cmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter cases by name pattern (supports wildcards, e.g. 'sort*')")
	cmd.Flags().BoolVar(&flags.FailFast, "fail-fast", false, "Stop on first failing case")
	cmd.Flags().BoolVar(&flags.OnlyFailed, "failed", false, "Run only cases that failed in the last stored run of the same directory")
	cmd.Flags().DurationVar(&flags.Timeout, "timeout", 0, "Per-case timeout (default "+config.DefaultTimeout.String()+")")
	cmd.Flags().BoolVar(&flags.Progress, "progress", false, "Show a progress bar instead of per-case lines")
	cmd.Flags().BoolVar(&flags.OpenFailures, "open-failures", false, "Open the failures viewer when the run finishes with failures")
}

// StorageFactory opens the configured result storage
type StorageFactory func(cfg *config.Config) (storage.Storage, error)

// ExecutorFactory builds the executor a run feeds its cases through
type ExecutorFactory func(cfg *config.Config, runner *execution.Runner, logger *slog.Logger, observers ...execution.Observer) execution.Executor

func newSequentialExecutor(cfg *config.Config, runner *execution.Runner, logger *slog.Logger, observers ...execution.Observer) execution.Executor {
	executor := execution.NewSequentialExecutor(cfg, runner, logger)
	for _, o := range observers {
		executor.AddObserver(o)
	}
	return executor
}

func openStorage(cfg *config.Config, newStorage StorageFactory) (storage.Storage, func(), error) {
	st, err := newStorage(cfg)
	if err != nil {
		return nil, nil, domain.WrapSetupError(domain.SetupStorage, err, "cannot open result storage")
	}
	closeFn := func() {}
	if c, ok := st.(io.Closer); ok {
		closeFn = func() {
			if err := c.Close(); err != nil {
				slog.Warn("closing result storage", "error", err)
			}
		}
	}
	return st, closeFn, nil
}

// lastFailedIDs returns the IDs that failed in the last stored run of dir,
// or nil when there is no such run.
func lastFailedIDs(st storage.Storage, dir string) (map[string]struct{}, error) {
	last, err := st.Load()
	if errors.Is(err, storage.ErrNoResults) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load last run: %w", err)
	}
	if last.Meta.TestDir != absPath(dir) {
		slog.Debug("last run was for another directory", "last", last.Meta.TestDir, "dir", absPath(dir))
		return nil, nil
	}
	return last.FailedIDs(), nil
}

func scanDir(cfg *config.Config, dir string) (*domain.Suite, []domain.DiscoveryWarning, error) {
	suite, warnings, err := discovery.NewScanner(cfg.InputSuffix, cfg.OutputSuffix).Scan(dir)
	if err != nil {
		return nil, nil, domain.WrapSetupError(domain.SetupTestDir, err, "cannot scan test directory")
	}
	return suite, warnings, nil
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
