package services

import (
	"fmt"
	"strings"
)

// updateSet collects the columns of a partial UPDATE. Only fields that were
// present in the request are added.
type updateSet struct {
	cols  []string
	args  []any
	nulls []string
}

func setIf[T any](u *updateSet, col string, v *T) {
	if v != nil {
		u.cols = append(u.cols, col)
		u.args = append(u.args, *v)
	}
}

// clear sets col to NULL.
func (u *updateSet) clear(col string) {
	u.nulls = append(u.nulls, col)
}

func (u *updateSet) empty() bool {
	return len(u.cols) == 0 && len(u.nulls) == 0
}

func (u *updateSet) build(table string, id int64, returning string) (string, []any, error) {
	if u.empty() {
		return "", nil, ErrNoFieldsToUpdate
	}

	parts := make([]string, 0, len(u.cols)+len(u.nulls)+1)
	for i, col := range u.cols {
		parts = append(parts, fmt.Sprintf("%s = $%d", col, i+1))
	}
	for _, col := range u.nulls {
		parts = append(parts, col+" = NULL")
	}
	parts = append(parts, "updated_at = NOW()")

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING %s",
		table, strings.Join(parts, ", "), len(u.args)+1, returning)
	return query, append(u.args, id), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func intOr(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
