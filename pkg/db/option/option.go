// Package option applies reusable query modifiers to gorm statements.
package option

import (
	"time"

	"github.com/legatepro/legatepro/pkg/db/pagination"
	"gorm.io/gorm"
)

type Option interface {
	Apply(*gorm.DB) *gorm.DB
}

type paginationOption struct {
	page pagination.Pagination
}

// ApplyPagination resumes a cursor (created_at, id keyset) and limits the
// statement to page size + 1 so callers can detect a next page.
func ApplyPagination(page pagination.Pagination) Option {
	return paginationOption{page: page}
}

func (o paginationOption) Apply(stmt *gorm.DB) *gorm.DB {
	size := o.page.PageSize
	if size <= 0 {
		size = 25
	}

	if o.page.PageToken != "" {
		cursor, err := pagination.DecodeCursor(o.page.PageToken)
		if err == nil && cursor != nil && cursor.CreatedAt != "" {
			at, parseErr := time.Parse(time.RFC3339, cursor.CreatedAt)
			if parseErr == nil {
				stmt = stmt.Where(
					"(created_at < ?) OR (created_at = ? AND id < ?)",
					at, at, cursor.ID,
				)
			}
		}
	}

	return stmt.Limit(size + 1)
}
