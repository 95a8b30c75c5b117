package menusource

import (
	"context"
	"fmt"

	"github.com/spf13/afero"

	"github.com/ksindesign/little-lemon-rn/pkg/types"
)

// FileSource reads a menu document from a file, for offline seeding.
type FileSource struct {
	Fs   afero.Fs // nil uses the OS filesystem
	Path string
}

// Fetch implements Source.
func (s *FileSource) Fetch(ctx context.Context) ([]types.MenuItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fs := s.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	f, err := fs.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("opening menu file: %w", err)
	}
	defer f.Close()

	items, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding menu file %s: %w", s.Path, err)
	}
	return items, nil
}
