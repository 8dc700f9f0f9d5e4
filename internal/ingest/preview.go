// ABOUTME: Link preview port and its placeholder implementation.
// ABOUTME: The placeholder derives labels from the hostname; it never fetches the page.

package ingest

import (
	"context"
	"net/url"
)

type Preview struct {
	Title   string
	Favicon string
}

// Previewer produces display metadata for a link.
type Previewer interface {
	Preview(ctx context.Context, u *url.URL) (Preview, error)
}

// PlaceholderPreviewer labels a link by its host. The title is a
// placeholder, not the page's real title.
type PlaceholderPreviewer struct{}

func (PlaceholderPreviewer) Preview(_ context.Context, u *url.URL) (Preview, error) {
	host := u.Hostname()
	return Preview{
		Title:   "Preview for " + host,
		Favicon: FaviconURL(host),
	}, nil
}

// FaviconURL returns a favicon lookup URL for host.
func FaviconURL(host string) string {
	q := url.Values{}
	q.Set("domain", host)
	q.Set("sz", "32")
	return "https://www.google.com/s2/favicons?" + q.Encode()
}
