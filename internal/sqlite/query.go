package sqlite

import (
	"strings"

	"github.com/ksindesign/little-lemon-rn/pkg/types"
)

// likeEscaper makes LIKE wildcards in user input match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// buildMenuQuery returns the SELECT statement and arguments for f. Category
// membership and name search are ANDed; case is folded on both sides with
// LOWER, which folds ASCII only.
func buildMenuQuery(f types.MenuFilter) (string, []any) {
	f = f.Normalize()

	query := "SELECT " + columnList(MenuColumns) + " FROM menu"
	var conditions []string
	var args []any

	if len(f.Categories) > 0 {
		placeholders := make([]string, len(f.Categories))
		for i, c := range f.Categories {
			placeholders[i] = "LOWER(?)"
			args = append(args, c)
		}
		conditions = append(conditions, "LOWER(category) IN ("+strings.Join(placeholders, ", ")+")")
	}

	if f.Search != "" {
		conditions = append(conditions, `LOWER(name) LIKE LOWER(?) ESCAPE '\'`)
		args = append(args, "%"+likeEscaper.Replace(f.Search)+"%")
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id"
	return query, args
}
