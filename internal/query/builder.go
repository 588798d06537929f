package query

import (
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/Twixan/scylladb-go/internal/session"
)

// Operation is the statement kind a Builder renders.
type Operation int

const (
	Select Operation = iota
	Insert
	InsertIfNotExists
	Update
	Delete
)

// String returns the statement verb.
func (o Operation) String() string {
	switch o {
	case Select:
		return "SELECT"
	case Insert:
		return "INSERT INTO"
	case InsertIfNotExists:
		return "INSERT IF NOT EXISTS"
	case Update:
		return "UPDATE"
	case Delete:
		return "DELETE"
	default:
		return fmt.Sprintf("Operation(%d)", int(o))
	}
}

// isInsert reports whether the operation is one of the insert variants.
func (o Operation) isInsert() bool {
	return o == Insert || o == InsertIfNotExists
}

// Direction is the sort direction of an ORDER BY clause.
type Direction int

const (
	Asc Direction = iota
	Desc
)

func (d Direction) String() string {
	if d == Desc {
		return "DESC"
	}
	return "ASC"
}

// InsertOption is a USING option. Only UsingTimestamp and UsingTTL
// implement it.
type InsertOption interface {
	fragment() string
}

// UsingTimestamp renders as TIMESTAMP <microseconds>.
type UsingTimestamp int64

func (ts UsingTimestamp) fragment() string {
	return "TIMESTAMP " + strconv.FormatInt(int64(ts), 10)
}

// UsingTTL renders as TTL <seconds>.
type UsingTTL int64

func (ttl UsingTTL) fragment() string {
	return "TTL " + strconv.FormatInt(int64(ttl), 10)
}

// ClauseKind tags a free-form clause.
type ClauseKind int

const (
	// ClauseRaw is appended verbatim after WHERE / ORDER BY.
	ClauseRaw ClauseKind = iota
	// ClauseJSON carries a JSON insert payload and renders right after the
	// target of an INSERT.
	ClauseJSON
)

// Clause is one free-form statement fragment.
type Clause struct {
	Kind ClauseKind
	Text string
}

// Raw returns a verbatim clause, e.g. Raw("ALLOW FILTERING").
func Raw(text string) Clause {
	return Clause{Kind: ClauseRaw, Text: text}
}

// JSONPayload returns the JSON clause for already-encoded payload text.
// The text is wrapped as-is; see EncodePayload for quoting.
func JSONPayload(payload string) Clause {
	return Clause{Kind: ClauseJSON, Text: "JSON '" + payload + "'"}
}

type ordering struct {
	column    string
	direction Direction
}

// Builder accumulates the parts of one statement.
//
// The zero value is not useful; use New. A Builder borrows its session and
// never closes it, so it must not outlive the session.
type Builder struct {
	op       Operation
	keyspace string
	table    string

	projection  []string
	assignments []string
	conditions  []string
	clauses     []Clause
	order       *ordering
	options     []InsertOption

	sess session.Session
}

// New returns a Builder for op on keyspace.table. sess may be nil when the
// builder is only used for rendering.
func New(op Operation, keyspace, table string, sess session.Session) Builder {
	return Builder{
		op:       op,
		keyspace: keyspace,
		table:    table,
		sess:     sess,
	}
}

// Operation returns the current operation kind.
func (b Builder) Operation() Operation {
	return b.op
}

// Target returns the fully-qualified table name.
func (b Builder) Target() string {
	return b.keyspace + "." + b.table
}

// Select sets the projection list, replacing any earlier one.
// An empty projection renders as *.
func (b Builder) Select(columns ...string) Builder {
	b.projection = slices.Clone(columns)
	return b
}

// Update retags the builder as an UPDATE and replaces the assignment list
// with values, rendered as column = 'value' in column-name order.
func (b Builder) Update(values map[string]string) Builder {
	b.op = Update
	b.assignments = nil
	for _, col := range slices.Sorted(maps.Keys(values)) {
		b.assignments = append(b.assignments, assignment(col, values[col]))
	}
	return b
}

// Set retags the builder as an UPDATE and appends one assignment.
// Use it instead of Update when assignment order matters.
func (b Builder) Set(column, value string) Builder {
	b.op = Update
	b.assignments = append(slices.Clip(b.assignments), assignment(column, value))
	return b
}

// Delete retags the builder as a DELETE.
func (b Builder) Delete() Builder {
	b.op = Delete
	return b
}

// IfNotExists retags the builder as INSERT IF NOT EXISTS.
func (b Builder) IfNotExists() Builder {
	b.op = InsertIfNotExists
	return b
}

// Clause appends a verbatim clause, e.g. "ALLOW FILTERING" or "LIMIT 10".
func (b Builder) Clause(raw string) Builder {
	return b.withClause(Raw(raw))
}

// OrderBy sets the single ORDER BY column, replacing any earlier one.
func (b Builder) OrderBy(column string, dir Direction) Builder {
	b.order = &ordering{column: column, direction: dir}
	return b
}

// InsertOption appends a USING option; options render in call order.
func (b Builder) InsertOption(opt InsertOption) Builder {
	b.options = append(slices.Clip(b.options), opt)
	return b
}

// WhereCondition appends a raw predicate fragment.
func (b Builder) WhereCondition(condition string) Builder {
	return b.where(condition)
}

func (b Builder) where(fragment string) Builder {
	b.conditions = append(slices.Clip(b.conditions), fragment)
	return b
}

func (b Builder) withClause(c Clause) Builder {
	b.clauses = append(slices.Clip(b.clauses), c)
	return b
}

// jsonLead reports whether the first clause is a JSON payload. Only then
// is the clause list rendered in the INSERT head.
func (b Builder) jsonLead() bool {
	return len(b.clauses) > 0 && b.clauses[0].Kind == ClauseJSON
}

func assignment(column, value string) string {
	return column + " = '" + value + "'"
}
