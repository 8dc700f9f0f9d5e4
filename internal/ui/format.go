// ABOUTME: Terminal formatting for journl output.
// ABOUTME: Uses glamour for the entry body and fatih/color for styling.

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/harper/journl/internal/ingest"
	"github.com/harper/journl/internal/models"
)

var (
	faint = color.New(color.Faint).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
)

// Icon picks a glyph per attachment; documents are told apart by MIME type.
func Icon(a models.Attachment) string {
	return models.Visit(a, models.Visitor[string]{
		Image: func(*models.Image) string { return "🖼" },
		Document: func(d *models.Document) string {
			return DocumentIcon(d.MimeType)
		},
		Link: func(*models.Link) string { return "🔗" },
	})
}

func DocumentIcon(mimeType string) string {
	switch {
	case strings.Contains(mimeType, "pdf"):
		return "📄"
	case strings.Contains(mimeType, "word"):
		return "📝"
	default:
		return "📄"
	}
}

func FormatSize(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.IBytes(uint64(n))
}

// Detail is the secondary line for an attachment: size for files, URL for links.
func Detail(a models.Attachment) string {
	return models.Visit(a, models.Visitor[string]{
		Image: func(i *models.Image) string { return FormatSize(i.Size) },
		Document: func(d *models.Document) string {
			return fmt.Sprintf("%s · %s", FormatSize(d.Size), d.MimeType)
		},
		Link: func(l *models.Link) string { return l.URL },
	})
}

func FormatMediaListItem(a models.Attachment) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("  %s  %s %s\n",
		faint(models.ShortID(a.AttachmentID())), Icon(a), bold(a.Label())))
	sb.WriteString(fmt.Sprintf("            %s %s\n",
		faint(string(a.Kind())+":"), cyan(Detail(a))))

	return sb.String()
}

func FormatMediaList(items []models.Attachment) string {
	if len(items) == 0 {
		return "No attachments.\n"
	}
	var sb strings.Builder
	for _, a := range items {
		sb.WriteString(FormatMediaListItem(a))
	}
	return sb.String()
}

func FormatMediaHeader(a models.Attachment) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s %s\n", Icon(a), bold(a.Label())))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("ID:"), faint(a.AttachmentID())))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("Kind:"), string(a.Kind())))

	models.Visit(a, models.Visitor[struct{}]{
		Image: func(i *models.Image) struct{} {
			sb.WriteString(fmt.Sprintf("%s %s\n", faint("Size:"), FormatSize(i.Size)))
			return struct{}{}
		},
		Document: func(d *models.Document) struct{} {
			sb.WriteString(fmt.Sprintf("%s %s\n", faint("Size:"), FormatSize(d.Size)))
			sb.WriteString(fmt.Sprintf("%s %s\n", faint("Type:"), d.MimeType))
			return struct{}{}
		},
		Link: func(l *models.Link) struct{} {
			sb.WriteString(fmt.Sprintf("%s %s\n", faint("URL:"), cyan(l.URL)))
			if l.Favicon != "" {
				sb.WriteString(fmt.Sprintf("%s %s\n", faint("Favicon:"), faint(l.Favicon)))
			}
			return struct{}{}
		},
	})

	sb.WriteString(Separator())
	return sb.String()
}

func FormatRejections(rejected []ingest.Rejection) string {
	var sb strings.Builder
	for _, r := range rejected {
		sb.WriteString(Error(fmt.Sprintf("%s: %v", r.Name, r.Err)) + "\n")
	}
	return sb.String()
}

// FormatEntryBody renders the entry body as markdown.
func FormatEntryBody(content string) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		// Fallback to raw content if renderer fails
		return content, nil //nolint:nilerr // Intentional fallback
	}

	out, err := renderer.Render(content)
	if err != nil {
		return content, nil //nolint:nilerr // Intentional fallback
	}
	return out, nil
}

func Separator() string {
	return faint(strings.Repeat("─", 50)) + "\n"
}

func Success(msg string) string {
	return color.New(color.FgGreen).Sprint("✓ ") + msg
}

func Error(msg string) string {
	return color.New(color.FgRed).Sprint("✗ ") + msg
}
