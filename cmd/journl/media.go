// ABOUTME: Media commands for listing, inspecting, extracting and removing attachments.
// ABOUTME: Attachments are addressed by full id or a 6+ character fragment.

package main

import (
	"bufio"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/harper/journl/internal/models"
	"github.com/harper/journl/internal/ui"
	"github.com/spf13/cobra"
)

var mediaCmd = &cobra.Command{
	Use:     "media",
	Aliases: []string{"m"},
	Short:   "Manage attachments",
}

var mediaListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List attachments",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		kind, _ := cmd.Flags().GetString("kind")

		items := filterKind(mediaStore.List(), kind)

		if asJSON {
			data, err := models.MarshalList(items)
			if err != nil {
				return fmt.Errorf("failed to encode attachments: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		fmt.Print(ui.FormatMediaList(items))
		return nil
	},
}

var mediaShowCmd = &cobra.Command{
	Use:   "show <id-prefix>",
	Short: "Show attachment details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := mediaStore.Find(args[0])
		if err != nil {
			return fmt.Errorf("failed to get attachment: %w", err)
		}
		fmt.Print(ui.FormatMediaHeader(a))
		return nil
	},
}

var mediaGetCmd = &cobra.Command{
	Use:   "get <id-prefix>",
	Short: "Extract an attachment's content",
	Long: `Write an image or document's bytes to a file. Without --output the
attachment's own name is used in the current directory; "-" writes to stdout.
For links the URL is printed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outputPath, _ := cmd.Flags().GetString("output")

		a, err := mediaStore.Find(args[0])
		if err != nil {
			return fmt.Errorf("failed to get attachment: %w", err)
		}

		if link, ok := a.(*models.Link); ok {
			fmt.Println(link.URL)
			return nil
		}

		mimeType, data, err := models.Bytes(a)
		if err != nil {
			return fmt.Errorf("failed to decode attachment: %w", err)
		}

		if outputPath == "-" {
			_, err := os.Stdout.Write(data)
			return err
		}
		if outputPath == "" {
			outputPath = outputName(a, mimeType)
		}

		if err := os.WriteFile(outputPath, data, 0600); err != nil {
			return fmt.Errorf("failed to write file: %w", err)
		}
		fmt.Println(ui.Success(fmt.Sprintf("Saved %s (%s)", outputPath, ui.FormatSize(int64(len(data))))))
		return nil
	},
}

var mediaRmCmd = &cobra.Command{
	Use:   "rm <id-prefix>",
	Short: "Remove an attachment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		a, err := mediaStore.Find(args[0])
		if err != nil {
			return fmt.Errorf("failed to get attachment: %w", err)
		}

		if !force {
			fmt.Printf("Remove %s %q (%s)? [y/N] ", a.Kind(), a.Label(), models.ShortID(a.AttachmentID()))
			reader := bufio.NewReader(os.Stdin)
			response, _ := reader.ReadString('\n')
			response = strings.TrimSpace(strings.ToLower(response))
			if response != "y" && response != "yes" {
				fmt.Println("Cancelled.")
				return nil
			}
		}

		if err := mediaStore.Remove(cmd.Context(), a.AttachmentID()); err != nil {
			return fmt.Errorf("failed to remove attachment: %w", err)
		}

		fmt.Println(ui.Success(fmt.Sprintf("Removed %s %s", a.Kind(), models.ShortID(a.AttachmentID()))))
		return nil
	},
}

var mediaClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every attachment",
	Long:  `Delete the stored attachment list under the configured key.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		count := mediaStore.Len()
		if !force {
			fmt.Printf("Remove all %d attachments under %q? [y/N] ", count, cfg.StorageKey)
			reader := bufio.NewReader(os.Stdin)
			response, _ := reader.ReadString('\n')
			response = strings.TrimSpace(strings.ToLower(response))
			if response != "y" && response != "yes" {
				fmt.Println("Cancelled.")
				return nil
			}
		}

		if err := mediaStore.Clear(cmd.Context()); err != nil {
			return fmt.Errorf("failed to clear attachments: %w", err)
		}
		fmt.Println(ui.Success(fmt.Sprintf("Removed %d attachments", count)))
		return nil
	},
}

// outputName is the default file name for extracted content. Attachments
// without a usable name fall back to their short id and a MIME extension.
func outputName(a models.Attachment, mimeType string) string {
	name := filepath.Base(a.Label())
	if name != "." && name != string(filepath.Separator) && name != ".." {
		return name
	}
	name = models.ShortID(a.AttachmentID())
	if exts, err := mime.ExtensionsByType(mimeType); err == nil && len(exts) > 0 {
		name += exts[0]
	}
	return name
}

func filterKind(items []models.Attachment, kind string) []models.Attachment {
	if kind == "" {
		return items
	}
	out := make([]models.Attachment, 0, len(items))
	for _, a := range items {
		if string(a.Kind()) == kind {
			out = append(out, a)
		}
	}
	return out
}

func init() {
	mediaListCmd.Flags().Bool("json", false, "print the stored JSON list")
	mediaListCmd.Flags().StringP("kind", "k", "", "only list this kind: image, document or link")
	mediaGetCmd.Flags().StringP("output", "o", "", "output path, or - for stdout")
	mediaRmCmd.Flags().BoolP("force", "f", false, "skip confirmation")
	mediaClearCmd.Flags().BoolP("force", "f", false, "skip confirmation")

	mediaCmd.AddCommand(mediaListCmd, mediaShowCmd, mediaGetCmd, mediaRmCmd, mediaClearCmd)
	rootCmd.AddCommand(mediaCmd)
}
