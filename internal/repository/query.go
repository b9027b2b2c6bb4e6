package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"recruitment-hub/internal/domain"
)

const uniqueViolation = "23505"

// translateError maps driver errors the services care about onto domain errors.
func translateError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return domain.ErrConflict
	}
	return err
}

// conditions accumulates WHERE clauses with positional arguments. Each clause
// is a format string whose %[1]d verb is replaced with the placeholder index
// of the argument passed alongside it.
type conditions struct {
	clauses []string
	args    []any
}

func newConditions(base ...string) *conditions {
	return &conditions{clauses: base}
}

func (c *conditions) add(clause string, arg any) {
	c.args = append(c.args, arg)
	c.clauses = append(c.clauses, fmt.Sprintf(clause, len(c.args)))
}

func (c *conditions) where() string {
	if len(c.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(c.clauses, " AND ")
}

// page appends LIMIT/OFFSET placeholders and returns the SQL fragment and full argument list.
func (c *conditions) page(limit, offset int) (string, []any) {
	args := append(append([]any{}, c.args...), limit, offset)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args)), args
}

func likePattern(search string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + replacer.Replace(strings.TrimSpace(search)) + "%"
}
