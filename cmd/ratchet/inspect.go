package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ratchetworks/ratchet/pkg/domain"
	"github.com/ratchetworks/ratchet/pkg/schema"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show a workflow definition",
	Long:  `Renders a readable summary of the states, transitions and event mappings of a workflow definition.`,
	Run: func(cmd *cobra.Command, args []string) {
		file, _ := cmd.Flags().GetString("file")
		if len(args) > 0 {
			file = args[0]
		}

		if err := runInspect(file); err != nil {
			fmt.Printf("Inspect failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(file string) error {
	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("opening %s: %w", file, err)
	}
	defer f.Close()

	def, err := schema.Load(f)
	if err != nil {
		return err
	}

	markdown := summarize(def)

	// Plain markdown when stdout is not a terminal (pipes, CI).
	if !term.IsTerminal(int(os.Stdout.Fd())) || termenv.ColorProfile() == termenv.Ascii {
		fmt.Print(markdown)
		return nil
	}

	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		width = 80
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fmt.Errorf("building renderer: %w", err)
	}

	out, err := renderer.Render(markdown)
	if err != nil {
		return fmt.Errorf("rendering summary: %w", err)
	}
	fmt.Print(out)
	return nil
}

// summarize builds a markdown document describing the definition.
func summarize(def domain.Definition) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Workflow: %s\n\n", def.Name)
	fmt.Fprintf(&b, "Initial state: `%s`\n\n", def.InitialState())

	b.WriteString("## States\n\n")
	for _, state := range def.States {
		fmt.Fprintf(&b, "- `%s`\n", state)
	}

	b.WriteString("\n## Transitions\n\n")
	b.WriteString("| Name | Source | Destination | Label |\n")
	b.WriteString("| --- | --- | --- | --- |\n")
	for _, t := range def.Transitions {
		label := t.Label
		if label == "" {
			label = "-"
		}
		fmt.Fprintf(&b, "| %s | `%s` | `%s` | %s |\n", t.Name, t.Source.String(), t.Destination, label)
	}

	if len(def.Events) > 0 {
		b.WriteString("\n## Events\n\n")
		events := make([]string, 0, len(def.Events))
		for event := range def.Events {
			events = append(events, event)
		}
		sort.Strings(events)
		for _, event := range events {
			fmt.Fprintf(&b, "- `%s` triggers %s\n", event, def.Events[event])
		}
	}

	return b.String()
}
