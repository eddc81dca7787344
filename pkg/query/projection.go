// Package query constructs SQL queries from field projections using a fluent
// builder with automatic parameter numbering.
package query

import (
	"fmt"
	"strings"
)

// ProjectionMap maps struct field names to database columns for one table.
// Fields are projected in registration order, which fixes the column order
// scanners rely on.
type ProjectionMap struct {
	schema string
	table  string
	alias  string
	fields []string
	cols   map[string]string
}

// NewProjectionMap creates a projection for the given schema, table, and alias.
func NewProjectionMap(schema, table, alias string) *ProjectionMap {
	return &ProjectionMap{
		schema: schema,
		table:  table,
		alias:  alias,
		cols:   make(map[string]string),
	}
}

// Project registers a column under the given struct field name.
func (p *ProjectionMap) Project(column, field string) *ProjectionMap {
	if _, exists := p.cols[field]; !exists {
		p.fields = append(p.fields, field)
	}
	p.cols[field] = column
	return p
}

// Table returns the aliased table reference for FROM clauses.
func (p *ProjectionMap) Table() string {
	return fmt.Sprintf("%s.%s %s", p.schema, p.table, p.alias)
}

// Columns returns all projected columns in registration order.
func (p *ProjectionMap) Columns() string {
	cols := make([]string, len(p.fields))
	for i, field := range p.fields {
		cols[i] = p.Column(field)
	}
	return strings.Join(cols, ", ")
}

// Column returns the aliased column for a struct field name.
// Unknown fields panic: a miss is a programming error, not runtime input.
func (p *ProjectionMap) Column(field string) string {
	col, ok := p.cols[field]
	if !ok {
		panic(fmt.Sprintf("query: field %q not projected on %s.%s", field, p.schema, p.table))
	}
	return fmt.Sprintf("%s.%s", p.alias, col)
}
