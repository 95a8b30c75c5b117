package types

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MenuItem is one dish in the menu snapshot.
type MenuItem struct {
	ID          int64   `json:"id"`                              // Assigned by the store; remote ids are not kept.
	Name        string  `json:"name" validate:"required"`        // Display name, searched by Filter.
	Price       float64 `json:"price" validate:"gte=0"`          // Non-negative, shown with two decimals.
	Description string  `json:"description" validate:"required"` // Short description.
	Image       string  `json:"image" validate:"required"`       // Image file name, resolved by the presentation layer.
	Category    string  `json:"category" validate:"required"`    // Free-text label, matched case-insensitively.
}

// Validate checks that the item can be stored. Errors wrap
// ErrInvalidMenuItem.
func (m MenuItem) Validate() error {
	err := validatorInstance.Struct(m)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return fmt.Errorf("%w: %q: %s fails %q", ErrInvalidMenuItem, m.Name, verrs[0].Field(), verrs[0].Tag())
	}
	return fmt.Errorf("%w: %v", ErrInvalidMenuItem, err)
}

// MenuFilter selects items from the snapshot. Both predicates are ANDed; a
// zero MenuFilter selects everything.
type MenuFilter struct {
	// Categories restricts results to items whose category equals one of
	// these, ignoring case. Empty means any category.
	Categories []string `json:"categories,omitempty"`

	// Search restricts results to items whose name contains it, ignoring
	// ASCII case. Blank after trimming means no search.
	Search string `json:"search,omitempty"`
}

// Normalize trims the search text, drops blank categories and collapses
// categories that differ only in case. The first spelling wins.
func (f MenuFilter) Normalize() MenuFilter {
	out := MenuFilter{Search: strings.TrimSpace(f.Search)}
	seen := make(map[string]bool, len(f.Categories))
	for _, c := range f.Categories {
		c = strings.TrimSpace(c)
		key := strings.ToLower(c)
		if c == "" || seen[key] {
			continue
		}
		seen[key] = true
		out.Categories = append(out.Categories, c)
	}
	return out
}

// IsEmpty reports whether the normalized filter selects everything.
func (f MenuFilter) IsEmpty() bool {
	n := f.Normalize()
	return len(n.Categories) == 0 && n.Search == ""
}

// Toggle returns a copy of f with category added, or removed when already
// selected (ignoring case). This is how category chips behave.
func (f MenuFilter) Toggle(category string) MenuFilter {
	out := MenuFilter{Search: f.Search}
	removed := false
	for _, c := range f.Categories {
		if strings.EqualFold(c, category) {
			removed = true
			continue
		}
		out.Categories = append(out.Categories, c)
	}
	if !removed {
		out.Categories = append(out.Categories, category)
	}
	return out
}
