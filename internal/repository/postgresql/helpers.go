package postgresql

import (
	"fmt"
	"strings"
)

// setBuilder collects "col = $n" pairs for partial updates. Columns keep insertion order.
type setBuilder struct {
	clauses []string
	args    []interface{}
}

func (b *setBuilder) Set(column string, value interface{}) {
	b.args = append(b.args, value)
	b.clauses = append(b.clauses, fmt.Sprintf("%s = $%d", column, len(b.args)))
}

func (b *setBuilder) Empty() bool {
	return len(b.clauses) == 0
}

// Build returns "UPDATE table SET ..., updated_at = NOW() WHERE <where>" where the
// placeholders of where start after the SET arguments.
func (b *setBuilder) Build(table string, where string, whereArgs ...interface{}) (string, []interface{}) {
	n := len(b.args)
	for i := range whereArgs {
		where = strings.Replace(where, fmt.Sprintf("$w%d", i+1), fmt.Sprintf("$%d", n+i+1), 1)
	}
	sql := "UPDATE " + table + " SET " + strings.Join(append(b.clauses, "updated_at = NOW()"), ", ") + " WHERE " + where
	return sql, append(b.args, whereArgs...)
}

// whereBuilder accumulates AND conditions with numbered placeholders.
type whereBuilder struct {
	conds []string
	args  []interface{}
}

// Add appends a condition; "?" in cond is replaced by the next placeholder.
func (w *whereBuilder) Add(cond string, value interface{}) {
	w.args = append(w.args, value)
	w.conds = append(w.conds, strings.Replace(cond, "?", fmt.Sprintf("$%d", len(w.args)), 1))
}

func (w *whereBuilder) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
