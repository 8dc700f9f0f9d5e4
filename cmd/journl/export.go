// ABOUTME: Export command for backing up attachments.
// ABOUTME: Supports JSON and YAML export formats.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/harper/journl/internal/models"
	"github.com/harper/journl/internal/ui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type ExportAttachment struct {
	ID       string `json:"id" yaml:"id"`
	Kind     string `json:"kind" yaml:"kind"`
	Name     string `json:"name,omitempty" yaml:"name,omitempty"`
	Title    string `json:"title,omitempty" yaml:"title,omitempty"`
	URL      string `json:"url,omitempty" yaml:"url,omitempty"`
	Favicon  string `json:"favicon,omitempty" yaml:"favicon,omitempty"`
	MimeType string `json:"mime_type,omitempty" yaml:"mime_type,omitempty"`
	Size     int64  `json:"size,omitempty" yaml:"size,omitempty"`
	DataURI  string `json:"data_uri,omitempty" yaml:"data_uri,omitempty"`
}

type ExportData struct {
	ExportedAt  time.Time          `json:"exported_at" yaml:"exported_at"`
	Version     string             `json:"version" yaml:"version"`
	StorageKey  string             `json:"storage_key" yaml:"storage_key"`
	Attachments []ExportAttachment `json:"attachments" yaml:"attachments"`
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export attachments",
	Long: `Export attachments to JSON or YAML. JSON always carries file content as
data URIs; YAML omits it unless --with-data is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		outputPath, _ := cmd.Flags().GetString("output")
		withData, _ := cmd.Flags().GetBool("with-data")

		var data []byte
		var err error
		switch format {
		case "json":
			data, err = json.MarshalIndent(buildExport(mediaStore.List(), true), "", "  ")
		case "yaml", "yml":
			data, err = yaml.Marshal(buildExport(mediaStore.List(), withData))
		default:
			return fmt.Errorf("unknown format: %s", format)
		}
		if err != nil {
			return fmt.Errorf("failed to encode export: %w", err)
		}

		if outputPath == "" || outputPath == "-" {
			fmt.Println(string(data))
			return nil
		}
		if err := os.WriteFile(outputPath, data, 0600); err != nil {
			return fmt.Errorf("failed to write file: %w", err)
		}
		fmt.Println(ui.Success(fmt.Sprintf("Exported %d attachments to %s", mediaStore.Len(), outputPath)))
		return nil
	},
}

func buildExport(items []models.Attachment, withData bool) ExportData {
	export := ExportData{
		ExportedAt:  time.Now(),
		Version:     version,
		StorageKey:  cfg.StorageKey,
		Attachments: make([]ExportAttachment, 0, len(items)),
	}
	for _, a := range items {
		export.Attachments = append(export.Attachments, exportAttachment(a, withData))
	}
	return export
}

func exportAttachment(a models.Attachment, withData bool) ExportAttachment {
	ea := ExportAttachment{ID: a.AttachmentID(), Kind: string(a.Kind())}
	return models.Visit(a, models.Visitor[ExportAttachment]{
		Image: func(i *models.Image) ExportAttachment {
			ea.Name = i.Name
			ea.Size = i.Size
			ea.MimeType, _, _ = models.DecodeDataURI(i.DataURI)
			if withData {
				ea.DataURI = i.DataURI
			}
			return ea
		},
		Document: func(d *models.Document) ExportAttachment {
			ea.Name = d.Name
			ea.Size = d.Size
			ea.MimeType = d.MimeType
			if withData {
				ea.DataURI = d.DataURI
			}
			return ea
		},
		Link: func(l *models.Link) ExportAttachment {
			ea.Title = l.Title
			ea.URL = l.URL
			ea.Favicon = l.Favicon
			return ea
		},
	})
}

func init() {
	exportCmd.Flags().StringP("format", "f", "json", "export format: json or yaml")
	exportCmd.Flags().StringP("output", "o", "", "output file (default stdout)")
	exportCmd.Flags().Bool("with-data", false, "include data URIs in YAML output")
	rootCmd.AddCommand(exportCmd)
}
