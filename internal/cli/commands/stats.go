package commands

import (
	"errors"
	"fmt"

	"caserun/internal/config"
	"caserun/internal/storage"
	"caserun/internal/ui"

	"github.com/spf13/cobra"
)

// StatsCommand handles the stats command
type StatsCommand struct {
	config     *config.Config
	newStorage StorageFactory
}

// NewStatsCommand creates a new StatsCommand
func NewStatsCommand(cfg *config.Config, newStorage StorageFactory) *StatsCommand {
	return &StatsCommand{
		config:     cfg,
		newStorage: newStorage,
	}
}

// Execute runs the command
func (sc *StatsCommand) Execute(cmd *cobra.Command, args []string) error {
	st, closeStorage, err := openStorage(sc.config, sc.newStorage)
	if err != nil {
		return err
	}
	defer closeStorage()

	results, err := st.Load()
	if err != nil {
		if errors.Is(err, storage.ErrNoResults) {
			return fmt.Errorf("%w (run caserun first)", err)
		}
		return err
	}

	ui.NewFormatter(cmd.OutOrStdout()).PrintMetaStats(results)
	return nil
}
