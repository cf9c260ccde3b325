package services

import (
	"github.com/mateoAlonso06/educatech-api/internal/repositories"
)

// pageOf derives a 1-based page number from offset-based filters.
func pageOf(f repositories.PageFilters) int {
	return (f.Offset / max(f.Limit, 1)) + 1
}
