package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "validate",
	Short:        "Validate Sultan game content files",
	Long:         `Checks NPC, card and scene JSON files against the same rules the admin API applies on create.`,
	SilenceUsage: true,
}

func kindCmd(kind string) *cobra.Command {
	return &cobra.Command{
		Use:   kind + " <file.json>...",
		Short: fmt.Sprintf("Validate %s files", kind),
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, filename := range args {
				v := &Validator{}
				fmt.Fprintf(cmd.OutOrStdout(), "Validating %s...\n", filename)
				if err := v.ValidateFile(kind, filename); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "Validation failed: %v\n", err)
					failed++
					continue
				}
				for _, w := range v.warnings {
					fmt.Fprintf(cmd.OutOrStdout(), "  warning: %s\n", w)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s is valid!\n", filename)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed validation", failed, len(args))
			}
			return nil
		},
	}
}

func init() {
	for _, kind := range []string{kindNPC, kindCard, kindScene} {
		rootCmd.AddCommand(kindCmd(kind))
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
