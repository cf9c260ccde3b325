package postgres

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/mateoAlonso06/educatech-api/internal/repositories"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLikePattern escapes LIKE/ILIKE wildcards so a user-supplied
// keyword matches as a literal substring.
func escapeLikePattern(keyword string) string {
	return likeEscaper.Replace(keyword)
}

// applyPageFilters applies limit/offset and ordering to a query.
// sortColumns whitelists the sortable columns; anything else falls back
// to defaultSort to keep user input out of the ORDER BY clause.
// defaultSort must be a column that exists on the queried table.
func applyPageFilters(db *gorm.DB, filters repositories.PageFilters, sortColumns map[string]bool, defaultSort string) *gorm.DB {
	limit := filters.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	offset := filters.Offset
	if offset < 0 {
		offset = 0
	}

	sortBy := filters.SortBy
	if !sortColumns[sortBy] {
		sortBy = defaultSort
	}

	order := "desc"
	if strings.EqualFold(filters.SortOrder, "asc") {
		order = "asc"
	}

	return db.Limit(limit).Offset(offset).Order(fmt.Sprintf("%s %s", sortBy, order))
}
