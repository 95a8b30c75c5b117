// Package menusource fetches the remote menu document that seeds the local
// menu snapshot.
package menusource

import (
	"context"
	"net/url"
	"strings"

	"github.com/spf13/afero"

	"github.com/ksindesign/little-lemon-rn/pkg/types"
)

// Default locations used by the original app.
const (
	DefaultURL          = "https://raw.githubusercontent.com/Meta-Mobile-Developer-PC/Working-With-Data-API/main/capstone.json"
	DefaultImageBaseURL = "https://github.com/Meta-Mobile-Developer-PC/Working-With-Data-API/blob/main/images/"
)

// Source yields a full menu. Implementations do not retry.
type Source interface {
	Fetch(ctx context.Context) ([]types.MenuItem, error)
}

// NewSource returns an HTTPSource for http(s) locations and a FileSource
// reading through fs otherwise.
func NewSource(location string, fs afero.Fs) Source {
	lower := strings.ToLower(location)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return &HTTPSource{URL: location}
	}
	return &FileSource{Fs: fs, Path: location}
}

// ImageURL resolves an item's image file name against base. Absolute URLs
// are returned unchanged. The GitHub blob base needs ?raw=true to serve the
// file itself, so it is appended for github.com hosts.
func ImageURL(base, name string) string {
	if name == "" {
		return ""
	}
	if u, err := url.Parse(name); err == nil && u.IsAbs() {
		return name
	}
	if base == "" {
		base = DefaultImageBaseURL
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	out := base + url.PathEscape(name)
	if u, err := url.Parse(base); err == nil && u.Host == "github.com" {
		out += "?raw=true"
	}
	return out
}
