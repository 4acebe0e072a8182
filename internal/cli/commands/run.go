package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"caserun/internal/candidates"
	"caserun/internal/config"
	"caserun/internal/discovery"
	"caserun/internal/domain"
	"caserun/internal/execution"
	"caserun/internal/parser"
	"caserun/internal/storage"
	"caserun/internal/ui"

	"github.com/spf13/cobra"
)

// RunCommand handles the run command
type RunCommand struct {
	config      *config.Config
	registry    *candidates.Registry
	filter      *discovery.Filter
	parser      parser.Parser
	newStorage  StorageFactory
	newExecutor ExecutorFactory
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	registry *candidates.Registry,
	filter *discovery.Filter,
	p parser.Parser,
	newStorage StorageFactory,
) *RunCommand {
	return &RunCommand{
		config:      cfg,
		registry:    registry,
		filter:      filter,
		parser:      p,
		newStorage:  newStorage,
		newExecutor: newSequentialExecutor,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	candidatePath, function, testDir := args[0], args[1], args[2]
	logger := slog.Default()
	out := cmd.OutOrStdout()

	// Setup: candidate, directory and storage must all be usable before any case runs
	candidate, err := rc.registry.Resolve(candidatePath, function)
	if err != nil {
		return err
	}
	suite, warnings, err := scanDir(rc.config, testDir)
	if err != nil {
		return err
	}
	st, closeStorage, err := openStorage(rc.config, rc.newStorage)
	if err != nil {
		return err
	}
	defer closeStorage()

	reporter := ui.NewReporter(out)
	reporter.Header(candidatePath, testDir)
	for _, w := range warnings {
		reporter.Warn(w)
	}

	cases := rc.filter.FilterByName(suite.Cases, rc.config.Flags.NameFilter)
	if rc.config.Flags.OnlyFailed {
		failed, err := lastFailedIDs(st, testDir)
		if err != nil {
			return err
		}
		cases = rc.filter.FilterByIDs(cases, failed)
	}
	if len(cases) == 0 {
		reporter.NoCases()
		return nil
	}

	if rc.config.Flags.Progress {
		reporter.SetProgress(ui.NewProgressBar(cmd.ErrOrStderr(), len(cases)))
	}

	runner := execution.NewRunner(rc.config, rc.parser, logger)
	executor := rc.newExecutor(rc.config, runner, logger, reporter)

	results, duration, err := executor.Execute(cmd.Context(), candidate, cases)
	reporter.Summary()
	if err != nil {
		return fmt.Errorf("run interrupted after %d case(s): %w", len(results), err)
	}
	logger.Debug("run finished",
		"cases", len(results),
		"passed", reporter.Passed(),
		"failed", reporter.Failed(),
		"duration", duration)

	run := storage.RunInfo{Candidate: candidatePath, Function: function, TestDir: absPath(testDir)}
	if err := st.Save(run, results, duration); err != nil {
		logger.Warn("failed to save test results", "error", err)
	}

	if reporter.ExitCode() == domain.ExitSuccess {
		return nil
	}
	if rc.config.Flags.OpenFailures {
		rc.openFailures(st, out)
	}
	return domain.ErrTestsFailed
}

func (rc *RunCommand) openFailures(st storage.Storage, out io.Writer) {
	if !ui.IsTerminal(os.Stdout) {
		slog.Warn("not opening failures viewer: stdout is not a terminal")
		return
	}
	results, err := st.Load()
	if err != nil {
		slog.Warn("not opening failures viewer", "error", err)
		return
	}
	if err := ui.NewFailureViewer(st, out).View(results); err != nil {
		slog.Warn("failures viewer", "error", err)
	}
}
