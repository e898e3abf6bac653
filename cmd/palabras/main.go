package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/palabras/internal/cli"
	"codeberg.org/snonux/palabras/internal/logging"
	"codeberg.org/snonux/palabras/internal/models"
	"codeberg.org/snonux/palabras/internal/processor"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd.Context(), args, flags)
	}

	// Execute command
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func runCommand(ctx context.Context, args []string, flags *cli.Flags) error {
	config, err := cli.LoadConfig(flags, args)
	if err != nil {
		return err
	}

	log := logging.New(os.Stderr, config.Debug, config.LogFormat)

	// Handle --list-models flag
	if config.ListModels {
		lister := models.NewLister(config.OpenAIKey)
		return lister.ListAvailableModels(ctx, os.Stdout)
	}

	deps, err := processor.NewDependencies(ctx, config, log)
	if err != nil {
		return err
	}

	summary, err := processor.NewProcessor(config, deps).Run(ctx)
	if err != nil {
		return fmt.Errorf("building dictionary failed: %w", err)
	}

	fmt.Printf("\n=== Dictionary Summary ===\n")
	fmt.Printf("Entries: %d\n", summary.Entries)
	if !config.InputProcessed {
		fmt.Printf("Admitted words: %d\n", summary.Admitted)
		fmt.Printf("Rejected words: %d\n", summary.Rejected)
	}
	if summary.Skipped > 0 {
		fmt.Printf("Skipped rows: %d\n", summary.Skipped)
	}
	if !config.SkipTranslation {
		fmt.Printf("Translated: %d\n", summary.Translated)
	}
	fmt.Printf("Output: %s\n", summary.OutputFile)
	fmt.Printf("==========================\n")

	return nil
}
