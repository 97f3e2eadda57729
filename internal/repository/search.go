package repository

import (
	"strings"

	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// likePattern builds a case-insensitive substring pattern for
// LOWER(col) LIKE ? ESCAPE '!'. Wildcards in search match literally.
func likePattern(search string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(search))) + "%"
}

// whereSearch matches search as a substring of any of columns. A blank search
// leaves q unchanged.
func whereSearch(q *gorm.DB, search string, columns ...string) *gorm.DB {
	if strings.TrimSpace(search) == "" {
		return q
	}
	p := likePattern(search)
	conds := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, col := range columns {
		conds[i] = "LOWER(" + col + ") LIKE ? ESCAPE '!'"
		args[i] = p
	}
	return q.Where(strings.Join(conds, " OR "), args...)
}
