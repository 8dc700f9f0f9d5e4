// ABOUTME: Write command launching the interactive journal editor.
// ABOUTME: The entry body is saved to --output or printed on exit.

package main

import (
	"fmt"
	"os"

	"github.com/harper/journl/internal/journal"
	"github.com/harper/journl/internal/tui"
	"github.com/harper/journl/internal/ui"
	"github.com/spf13/cobra"
)

var writeCmd = &cobra.Command{
	Use:   "write",
	Short: "Write a journal entry",
	Long: `Open the terminal editor. ctrl+a opens the media menu (i image,
d document, l link), ctrl+n/ctrl+p select an attachment and ctrl+x removes
it. ctrl+s saves the body to --output; ctrl+q quits.

Without --output the body is printed when the editor exits.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		outputPath, _ := cmd.Flags().GetString("output")

		editor := journal.NewEditor(mediaStore, ingestor)
		if outputPath != "" {
			existing, err := os.ReadFile(outputPath) //nolint:gosec // User-specified file path is expected CLI behavior
			if err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("failed to read entry: %w", err)
			}
			editor.SetBody(string(existing))
		}

		body, err := tui.Run(cmd.Context(), editor, saveBody(outputPath))
		if err != nil {
			return fmt.Errorf("editor failed: %w", err)
		}

		if outputPath != "" {
			if err := saveBody(outputPath)(body); err != nil {
				return err
			}
			fmt.Println(ui.Success(fmt.Sprintf("Saved entry to %s (%d words)", outputPath, editor.Entry().WordCount())))
			return nil
		}

		if body == "" {
			return nil
		}
		rendered, _ := ui.FormatEntryBody(body)
		fmt.Print(rendered)
		return nil
	},
}

// saveBody returns the editor's save hook; with no path there is nothing to save to.
func saveBody(path string) tui.SaveFunc {
	if path == "" {
		return nil
	}
	return func(body string) error {
		if err := os.WriteFile(path, []byte(body), 0600); err != nil {
			return fmt.Errorf("failed to write entry: %w", err)
		}
		return nil
	}
}

func init() {
	writeCmd.Flags().StringP("output", "o", "", "file the entry body is loaded from and saved to")
	rootCmd.AddCommand(writeCmd)
}
