package menusource

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ksindesign/little-lemon-rn/pkg/types"
)

type document struct {
	Menu json.RawMessage `json:"menu"`
}

type remoteItem struct {
	Name        string `json:"name"`
	Price       *price `json:"price"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Category    string `json:"category"`
}

// price accepts both 12.99 and "12.99". A null price is decoded as a nil
// *price by encoding/json and never reaches UnmarshalJSON.
type price float64

func (p *price) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if unq, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unq)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("parsing price %s: %w", data, err)
	}
	*p = price(f)
	return nil
}

// Decode reads a menu document of the form {"menu": [...]}. A document whose
// menu is missing or not an array yields ErrInvalidMenuDocument. Remote ids
// are dropped; the store assigns its own.
func Decode(r io.Reader) ([]types.MenuItem, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrInvalidMenuDocument, err)
	}
	raw := bytes.TrimSpace(doc.Menu)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, fmt.Errorf("%w: menu is not an array", types.ErrInvalidMenuDocument)
	}

	var remote []remoteItem
	if err := json.Unmarshal(raw, &remote); err != nil {
		return nil, fmt.Errorf("%w: decoding menu items: %w", types.ErrInvalidMenuDocument, err)
	}

	items := make([]types.MenuItem, 0, len(remote))
	for i, ri := range remote {
		if ri.Price == nil {
			return nil, fmt.Errorf("%w: item %d (%s) has no price", types.ErrInvalidMenuDocument, i, ri.Name)
		}
		items = append(items, types.MenuItem{
			Name:        strings.TrimSpace(ri.Name),
			Price:       float64(*ri.Price),
			Description: strings.TrimSpace(ri.Description),
			Image:       strings.TrimSpace(ri.Image),
			Category:    strings.TrimSpace(ri.Category),
		})
	}
	return items, nil
}
