package commands

import (
	"errors"
	"fmt"
	"os"

	"caserun/internal/config"
	"caserun/internal/storage"
	"caserun/internal/ui"

	"github.com/spf13/cobra"
)

// FailuresCommand handles the failures command
type FailuresCommand struct {
	config     *config.Config
	newStorage StorageFactory
}

// NewFailuresCommand creates a new FailuresCommand
func NewFailuresCommand(cfg *config.Config, newStorage StorageFactory) *FailuresCommand {
	return &FailuresCommand{
		config:     cfg,
		newStorage: newStorage,
	}
}

// Execute runs the command
func (fc *FailuresCommand) Execute(cmd *cobra.Command, args []string) error {
	st, closeStorage, err := openStorage(fc.config, fc.newStorage)
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

	if len(results.Details) > 0 && !ui.IsTerminal(os.Stdout) {
		return errors.New("the failures viewer needs an interactive terminal (use `caserun stats` instead)")
	}
	return ui.NewFailureViewer(st, cmd.OutOrStdout()).View(results)
}
