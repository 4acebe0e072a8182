package commands

import (
	"log/slog"

	"caserun/internal/config"
	"caserun/internal/discovery"
	"caserun/internal/domain"
	"caserun/internal/ui"

	"github.com/spf13/cobra"
)

// ListCommand handles the list command
type ListCommand struct {
	config     *config.Config
	filter     *discovery.Filter
	newStorage StorageFactory
}

// NewListCommand creates a new ListCommand
func NewListCommand(cfg *config.Config, filter *discovery.Filter, newStorage StorageFactory) *ListCommand {
	return &ListCommand{
		config:     cfg,
		filter:     filter,
		newStorage: newStorage,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	testDir := args[0]
	suite, warnings, err := scanDir(lc.config, testDir)
	if err != nil {
		return err
	}

	filtered := &domain.Suite{
		Dir:   suite.Dir,
		Cases: lc.filter.FilterByName(suite.Cases, lc.config.Flags.NameFilter),
	}

	st, closeStorage, err := openStorage(lc.config, lc.newStorage)
	if err != nil {
		return err
	}
	defer closeStorage()

	// [F] markers are best effort; a missing or unreadable last run only loses them
	failed, err := lastFailedIDs(st, testDir)
	if err != nil {
		slog.Debug("cannot load last run", "error", err)
		failed = nil
	}

	ui.NewFormatter(cmd.OutOrStdout()).PrintCaseList(filtered, warnings, failed)
	return nil
}
