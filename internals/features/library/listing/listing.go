// Package listing pages and searches a table: one count pass and one window
// pass over the same scopes, inside a single read transaction.
package listing

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	helper "library_backend/internals/helpers"
)

// PageSize is fixed for every listing.
const PageSize = helper.DefaultPerPage

type Request struct {
	Q    string
	Page int
}

type Result[T any] struct {
	Items   []T
	Page    int
	PerPage int
	Total   int64
	Query   string
}

// Pagination converts the result into response metadata.
func (r Result[T]) Pagination() helper.Pagination {
	p := helper.BuildPaginationFromPage(r.Total, r.Page, r.PerPage)
	p.Count = len(r.Items)
	return p
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Search matches q as a case-insensitive substring of any of fields.
// An empty q matches everything.
func Search(q string, fields ...string) func(*gorm.DB) *gorm.DB {
	q = strings.TrimSpace(q)
	return func(db *gorm.DB) *gorm.DB {
		if q == "" || len(fields) == 0 {
			return db
		}
		needle := "%" + likeEscaper.Replace(strings.ToLower(q)) + "%"
		parts := make([]string, len(fields))
		args := make([]any, len(fields))
		for i, f := range fields {
			parts[i] = "LOWER(" + f + `) LIKE ? ESCAPE '\'`
			args[i] = needle
		}
		return db.Where("("+strings.Join(parts, " OR ")+")", args...)
	}
}

// Fetch counts the rows matching scopes and loads one page of them, ordered by order.
// Both passes run in one transaction; on Postgres it is REPEATABLE READ so the
// total and the window come from the same snapshot.
func Fetch[T any](ctx context.Context, db *gorm.DB, req Request, order string, scopes ...func(*gorm.DB) *gorm.DB) (Result[T], error) {
	page := req.Page
	if page < 1 {
		page = helper.DefaultPage
	}
	res := Result[T]{
		Items:   []T{},
		Page:    page,
		PerPage: PageSize,
		Query:   strings.TrimSpace(req.Q),
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if tx.Dialector.Name() == "postgres" {
			if err := tx.Exec("SET TRANSACTION ISOLATION LEVEL REPEATABLE READ, READ ONLY").Error; err != nil {
				return fmt.Errorf("set snapshot: %w", err)
			}
		}

		if err := tx.Model(new(T)).Scopes(scopes...).Count(&res.Total).Error; err != nil {
			return fmt.Errorf("count: %w", err)
		}
		if res.Total == 0 {
			return nil
		}

		q := tx.Model(new(T)).Scopes(scopes...)
		if order != "" {
			q = q.Order(order)
		}
		if err := q.Limit(PageSize).Offset(helper.Offset(page, PageSize)).Find(&res.Items).Error; err != nil {
			return fmt.Errorf("fetch page: %w", err)
		}
		return nil
	})
	if err != nil {
		return Result[T]{}, err
	}
	return res, nil
}
