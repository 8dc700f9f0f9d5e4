// ABOUTME: Attach commands for images, documents and links.
// ABOUTME: Each input is ingested independently; rejections are reported per file.

package main

import (
	"errors"
	"fmt"

	"github.com/harper/journl/internal/ingest"
	"github.com/harper/journl/internal/models"
	"github.com/harper/journl/internal/ui"
	"github.com/spf13/cobra"
)

var errRejected = errors.New("some inputs were rejected")

var attachCmd = &cobra.Command{
	Use:   "attach",
	Short: "Attach media to the journal",
}

var attachImageCmd = &cobra.Command{
	Use:   "image <file>...",
	Short: "Attach image files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return attachFiles(cmd, args, ingestor.IngestImages)
	},
}

var attachDocCmd = &cobra.Command{
	Use:     "doc <file>...",
	Aliases: []string{"document"},
	Short:   "Attach PDF or Word documents",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return attachFiles(cmd, args, ingestor.IngestDocuments)
	},
}

var attachLinkCmd = &cobra.Command{
	Use:   "link <url>",
	Short: "Attach a hyperlink",
	Long: `Attach a hyperlink. The title and favicon are placeholders derived from
the URL's host; the page itself is never fetched.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		link, err := ingestor.IngestLink(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to attach link: %w", err)
		}
		if err := mediaStore.Append(cmd.Context(), link); err != nil {
			return fmt.Errorf("failed to save link: %w", err)
		}
		fmt.Println(ui.Success(fmt.Sprintf("Attached %s", describe(link))))
		return nil
	},
}

func attachFiles(cmd *cobra.Command, paths []string, ingestAll func([]ingest.File) ingest.Batch) error {
	files, unreadable := ingest.OpenFiles(paths)
	batch := ingestAll(files)
	batch.Rejected = append(unreadable, batch.Rejected...)

	if len(batch.Accepted) > 0 {
		if err := mediaStore.AppendAll(cmd.Context(), batch.Accepted); err != nil {
			return fmt.Errorf("failed to save attachments: %w", err)
		}
	}

	for _, a := range batch.Accepted {
		fmt.Println(ui.Success(fmt.Sprintf("Attached %s", describe(a))))
	}
	if !batch.OK() {
		fmt.Print(ui.FormatRejections(batch.Rejected))
		return fmt.Errorf("%w: %d of %d", errRejected, len(batch.Rejected), len(paths))
	}
	return nil
}

func describe(a models.Attachment) string {
	return fmt.Sprintf("%s %s %s", a.Kind(), models.ShortID(a.AttachmentID()), a.Label())
}

func init() {
	attachCmd.AddCommand(attachImageCmd, attachDocCmd, attachLinkCmd)
	rootCmd.AddCommand(attachCmd)
}
