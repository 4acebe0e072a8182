package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"caserun/internal/candidates"
	"caserun/internal/cli"
	"caserun/internal/cli/commands"
	"caserun/internal/config"
	"caserun/internal/domain"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:     "caserun <candidate> <function> <test-dir>",
		Short:   "Data-driven test harness",
		Long:    `Run a candidate function against a directory of <id>.in / <id>.out files. Each line of a file is one JSON value; the function's result is compared with the expected values and every case is reported as PASS or FAIL.`,
		Version: version,
	}

	// Create initial config with defaults
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg, candidates.Default())

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		if !errors.Is(err, domain.ErrTestsFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(domain.ExitCode(err))
	}
}
