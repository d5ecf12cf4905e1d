package db

import (
	"regexp"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/mural-studio/backend/domain"
)

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// PartialUpdate turns a sparse field map into "column = ?" fragments and the
// matching bound values. Fields are emitted in name order. columns translates
// application field names to storage column names; untranslated names are
// used as-is but must be plain identifiers.
func PartialUpdate(fields map[string]any, columns map[string]string) ([]string, []any, error) {
	if len(fields) == 0 {
		return nil, nil, errors.Wrap(domain.ErrBadRequest, "no fields to update")
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	sets := make([]string, 0, len(names))
	args := make([]any, 0, len(names))
	for _, name := range names {
		column, ok := columns[name]
		if !ok {
			column = name
		}
		if !identifier.MatchString(column) {
			return nil, nil, errors.Wrapf(domain.ErrBadRequest, "invalid field %q", name)
		}
		sets = append(sets, column+" = ?")
		args = append(args, fields[name])
	}
	return sets, args, nil
}

// updateByID renders an UPDATE for a single row; the id is expected as the
// last bound value.
func updateByID(table string, sets []string, extra string) string {
	query := "UPDATE " + table + " SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	if extra != "" {
		query += " AND " + extra
	}
	return query
}
