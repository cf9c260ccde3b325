package postgres

import (
	"regexp"
	"sync"
	"testing"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
	"gorm.io/gorm/utils/tests"

	"github.com/mateoAlonso06/educatech-api/internal/models"
	"github.com/mateoAlonso06/educatech-api/internal/repositories"
)

var orderByColumn = regexp.MustCompile(`ORDER BY (\w+)`)

func newDryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true})
	if err != nil {
		t.Fatalf("Failed to open dry-run session: %v", err)
	}
	return db
}

// resolvedSortColumn builds the list query and extracts the column the
// ORDER BY clause ended up with.
func resolvedSortColumn(t *testing.T, model interface{}, filters repositories.PageFilters, sortColumns map[string]bool, defaultSort string) string {
	t.Helper()
	tx := applyPageFilters(newDryRunDB(t).Model(model), filters, sortColumns, defaultSort).Find(model)
	if tx.Error != nil {
		t.Fatalf("Failed to build list query: %v", tx.Error)
	}

	sql := tx.Statement.SQL.String()
	match := orderByColumn.FindStringSubmatch(sql)
	if match == nil {
		t.Fatalf("Expected an ORDER BY clause, got: %s", sql)
	}
	return match[1]
}

func TestApplyPageFilters_SortFallback(t *testing.T) {
	entities := []struct {
		name        string
		model       interface{}
		sortColumns map[string]bool
		defaultSort string
	}{
		{"users", &models.User{}, userSortColumns, "created_at"},
		{"courses", &models.Course{}, courseSortColumns, "created_at"},
		{"lessons", &models.Lesson{}, lessonSortColumns, "created_at"},
		{"enrollments", &models.Enrollment{}, enrollmentSortColumns, "enrolled_at"},
	}

	for _, entity := range entities {
		t.Run(entity.name, func(t *testing.T) {
			parsed, err := schema.Parse(entity.model, &sync.Map{}, schema.NamingStrategy{})
			if err != nil {
				t.Fatalf("Failed to parse schema: %v", err)
			}

			// The default and the rejected sort_by must both land on a
			// column the entity actually has; enrollments carry
			// enrolled_at instead of created_at.
			for _, sortBy := range []string{"", "definitely_not_a_column"} {
				column := resolvedSortColumn(t, entity.model, repositories.PageFilters{SortBy: sortBy}, entity.sortColumns, entity.defaultSort)
				if column != entity.defaultSort {
					t.Errorf("sort_by %q: expected fallback to %q, got %q", sortBy, entity.defaultSort, column)
				}
				if parsed.LookUpField(column) == nil {
					t.Errorf("sort_by %q resolved to %q, which does not exist on %s", sortBy, column, parsed.Table)
				}
			}

			// Whitelisted columns pass through untouched and also exist.
			for allowed := range entity.sortColumns {
				column := resolvedSortColumn(t, entity.model, repositories.PageFilters{SortBy: allowed}, entity.sortColumns, entity.defaultSort)
				if column != allowed {
					t.Errorf("Expected whitelisted sort_by %q to pass through, got %q", allowed, column)
				}
				if parsed.LookUpField(column) == nil {
					t.Errorf("Whitelisted sort_by %q does not exist on %s", column, parsed.Table)
				}
			}
		})
	}
}

func TestApplyPageFilters_SortOrder(t *testing.T) {
	db := applyPageFilters(newDryRunDB(t).Model(&models.User{}), repositories.PageFilters{SortBy: "email", SortOrder: "ASC"}, userSortColumns, "created_at")
	sql := db.Find(&models.User{}).Statement.SQL.String()
	if !regexp.MustCompile(`ORDER BY email asc`).MatchString(sql) {
		t.Errorf("Expected ascending order on email, got: %s", sql)
	}

	db = applyPageFilters(newDryRunDB(t).Model(&models.User{}), repositories.PageFilters{SortOrder: "drop table users"}, userSortColumns, "created_at")
	sql = db.Find(&models.User{}).Statement.SQL.String()
	if !regexp.MustCompile(`ORDER BY created_at desc`).MatchString(sql) {
		t.Errorf("Expected unknown sort_order to fall back to descending, got: %s", sql)
	}
}

func TestEscapeLikePattern(t *testing.T) {
	cases := []struct {
		name    string
		keyword string
		want    string
	}{
		{"plain keyword untouched", "algebra", "algebra"},
		{"percent escaped", "50% done", `50\% done`},
		{"underscore escaped", "unit_test", `unit\_test`},
		{"backslash escaped first", `a\%b`, `a\\\%b`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := escapeLikePattern(tc.keyword); got != tc.want {
				t.Errorf("Expected %q, got %q", tc.want, got)
			}
		})
	}
}
