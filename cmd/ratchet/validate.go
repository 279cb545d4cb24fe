package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ratchetworks/ratchet/pkg/schema"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a workflow definition for consistency",
	Long:  `Parses the definition file and reports every schema and consistency failure.`,
	Run: func(cmd *cobra.Command, args []string) {
		file, _ := cmd.Flags().GetString("file")
		if len(args) > 0 {
			file = args[0]
		}

		if err := runValidate(file); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			for _, failure := range schema.ValidationErrors(err) {
				fmt.Printf("  - %v\n", failure)
			}
			os.Exit(1)
		}
		fmt.Println("Workflow is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(file string) error {
	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("opening %s: %w", file, err)
	}
	defer f.Close()

	if _, err := schema.Load(f); err != nil {
		return err
	}
	return nil
}
