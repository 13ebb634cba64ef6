// Package querybuilder renders the small set of PostgreSQL statements the
// schedule stores issue. Placeholders are numbered ($1, $2, ...) in the
// order values are bound.
package querybuilder

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/valyala/bytebufferpool"
)

var (
	ErrNoTable      = errors.New("table is required")
	ErrNoColumns    = errors.New("at least one column is required")
	ErrUnscoped     = errors.New("update and delete require a where clause")
	ErrArgsMismatch = errors.New("placeholder count does not match args")
)

// Condition is one predicate of a WHERE clause. Conditions are joined
// with AND.
type Condition interface {
	render(w *writer) error
}

type eq struct {
	column string
	value  any
}

// Eq matches rows where column equals value.
func Eq(column string, value any) Condition {
	return eq{column: column, value: value}
}

func (c eq) render(w *writer) error {
	w.raw(c.column)
	w.raw(" = ")
	w.bind(c.value)
	return nil
}

type expr struct {
	sql  string
	args []any
}

// Expr embeds raw SQL. Each ? is bound to the next arg.
func Expr(sql string, args ...any) Condition {
	return expr{sql: sql, args: args}
}

func (c expr) render(w *writer) error {
	return w.expr(c.sql, c.args)
}

type writer struct {
	buf  *bytebufferpool.ByteBuffer
	args []any
}

func newWriter() *writer {
	return &writer{buf: bytebufferpool.Get()}
}

func (w *writer) raw(s string) {
	_, _ = w.buf.WriteString(s)
}

func (w *writer) bind(value any) {
	w.args = append(w.args, value)
	w.raw("$")
	w.raw(strconv.Itoa(len(w.args)))
}

func (w *writer) expr(sql string, args []any) error {
	if strings.Count(sql, "?") != len(args) {
		return fmt.Errorf("%w: %q", ErrArgsMismatch, sql)
	}
	next := 0
	for _, r := range sql {
		if r == '?' {
			w.bind(args[next])
			next++
			continue
		}
		_, _ = w.buf.WriteString(string(r))
	}
	return nil
}

func (w *writer) where(conds []Condition) error {
	for i, cond := range conds {
		if i == 0 {
			w.raw(" WHERE ")
		} else {
			w.raw(" AND ")
		}
		if err := cond.render(w); err != nil {
			return err
		}
	}
	return nil
}

// finish returns the rendered statement and releases the buffer.
func (w *writer) finish(err error) (string, []any, error) {
	defer bytebufferpool.Put(w.buf)
	if err != nil {
		return "", nil, err
	}
	return w.buf.String(), w.args, nil
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	orderBy []string
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: columns}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conds ...Condition) *SelectBuilder {
	b.where = append(b.where, conds...)
	return b
}

func (b *SelectBuilder) OrderBy(columns ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, columns...)
	return b
}

// Limit caps the result size. Zero means no limit.
func (b *SelectBuilder) Limit(n int) *SelectBuilder {
	b.limit = n
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if b.table == "" {
		return "", nil, ErrNoTable
	}
	if len(b.columns) == 0 {
		return "", nil, ErrNoColumns
	}

	w := newWriter()
	w.raw("SELECT ")
	w.raw(strings.Join(b.columns, ", "))
	w.raw(" FROM ")
	w.raw(b.table)
	err := w.where(b.where)
	if len(b.orderBy) > 0 {
		w.raw(" ORDER BY ")
		w.raw(strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		w.raw(" LIMIT ")
		w.raw(strconv.Itoa(b.limit))
	}
	return w.finish(err)
}

type assignment struct {
	column string
	expr   string
	args   []any
}

type UpdateBuilder struct {
	table string
	sets  []assignment
	where []Condition
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

// Set binds value to column.
func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, expr: "?", args: []any{value}})
	return b
}

// SetExpr assigns raw SQL such as NOW() to column.
func (b *UpdateBuilder) SetExpr(column, sql string, args ...any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, expr: sql, args: args})
	return b
}

func (b *UpdateBuilder) Where(conds ...Condition) *UpdateBuilder {
	b.where = append(b.where, conds...)
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	switch {
	case b.table == "":
		return "", nil, ErrNoTable
	case len(b.sets) == 0:
		return "", nil, ErrNoColumns
	case len(b.where) == 0:
		return "", nil, ErrUnscoped
	}

	w := newWriter()
	w.raw("UPDATE ")
	w.raw(b.table)
	w.raw(" SET ")
	var err error
	for i, set := range b.sets {
		if i > 0 {
			w.raw(", ")
		}
		w.raw(set.column)
		w.raw(" = ")
		if err = w.expr(set.expr, set.args); err != nil {
			break
		}
	}
	if err == nil {
		err = w.where(b.where)
	}
	return w.finish(err)
}

type DeleteBuilder struct {
	table string
	where []Condition
}

func DeleteFrom(table string) *DeleteBuilder {
	return &DeleteBuilder{table: table}
}

func (b *DeleteBuilder) Where(conds ...Condition) *DeleteBuilder {
	b.where = append(b.where, conds...)
	return b
}

func (b *DeleteBuilder) ToSQL() (string, []any, error) {
	if b.table == "" {
		return "", nil, ErrNoTable
	}
	if len(b.where) == 0 {
		return "", nil, ErrUnscoped
	}

	w := newWriter()
	w.raw("DELETE FROM ")
	w.raw(b.table)
	return w.finish(w.where(b.where))
}
