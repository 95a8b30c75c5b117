package menusource

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ksindesign/little-lemon-rn/pkg/types"
)

const defaultTimeout = 30 * time.Second

// HTTPSource fetches the menu document with a single GET.
type HTTPSource struct {
	URL    string
	Client *http.Client // nil uses a client with a 30s timeout
}

// Fetch implements Source.
func (s *HTTPSource) Fetch(ctx context.Context) ([]types.MenuItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("building menu request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching menu from %s: %w", s.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("fetching menu from %s: unexpected status %s", s.URL, resp.Status)
	}

	items, err := Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decoding menu from %s: %w", s.URL, err)
	}
	return items, nil
}
