package store

import "strings"

// selectQuery assembles a SELECT from fixed fragments. Conditions carry
// their own bound arguments, in the order the placeholders appear.
type selectQuery struct {
	columns    []string
	from       string
	joins      []string
	conditions []string
	args       []any
	groupBy    []string
}

func newSelect(from string) *selectQuery {
	return &selectQuery{from: from}
}

func (q *selectQuery) column(exprs ...string) *selectQuery {
	q.columns = append(q.columns, exprs...)
	return q
}

func (q *selectQuery) join(clauses ...string) *selectQuery {
	q.joins = append(q.joins, clauses...)
	return q
}

// where adds a condition ANDed with the others.
func (q *selectQuery) where(cond string, args ...any) *selectQuery {
	q.conditions = append(q.conditions, cond)
	q.args = append(q.args, args...)
	return q
}

func (q *selectQuery) group(exprs ...string) *selectQuery {
	q.groupBy = append(q.groupBy, exprs...)
	return q
}

func (q *selectQuery) build() (string, []any) {
	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(strings.Join(q.columns, ", "))
	b.WriteString(" FROM ")
	b.WriteString(q.from)
	for _, j := range q.joins {
		b.WriteByte(' ')
		b.WriteString(j)
	}
	if len(q.conditions) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(q.conditions, " AND "))
	}
	if len(q.groupBy) > 0 {
		b.WriteString(" GROUP BY ")
		b.WriteString(strings.Join(q.groupBy, ", "))
	}
	return b.String(), q.args
}
