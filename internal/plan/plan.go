// Package plan loads statement plans from YAML or CUE files and replays
// them onto query builders.
//
// A plan is a named, ordered list of statements. Each statement names its
// operation and target plus the builder calls to apply:
//
//	name: users
//	statements:
//	  - name: adults
//	    op: select
//	    keyspace: app
//	    table: users
//	    columns: [name, age]
//	    where:
//	      - {op: gte, column: age, value: "18"}
//	    clauses: [ALLOW FILTERING]
//
// Rendering is pure; Run executes the statements in order through a
// session and stops at the first failure.
package plan

import (
	"fmt"
	"slices"

	"github.com/Twixan/scylladb-go/internal/query"
	"github.com/Twixan/scylladb-go/internal/session"
)

// Plan is a named list of statements.
type Plan struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Strict runs builder validation before rendering each statement.
	Strict bool `yaml:"strict,omitempty" json:"strict,omitempty"`

	Statements []Statement `yaml:"statements" json:"statements"`
}

// Statement describes one builder chain.
type Statement struct {
	Name     string `yaml:"name" json:"name"`
	Op       string `yaml:"op" json:"op"`
	Keyspace string `yaml:"keyspace" json:"keyspace"`
	Table    string `yaml:"table" json:"table"`

	Columns []string     `yaml:"columns,omitempty" json:"columns,omitempty"`
	Set     []Assignment `yaml:"set,omitempty" json:"set,omitempty"`
	Where   []Condition  `yaml:"where,omitempty" json:"where,omitempty"`
	Order   *Order       `yaml:"order,omitempty" json:"order,omitempty"`
	Clauses []string     `yaml:"clauses,omitempty" json:"clauses,omitempty"`
	Using   []Using      `yaml:"using,omitempty" json:"using,omitempty"`

	// JSON is encoded as the INSERT ... JSON payload when present.
	JSON any `yaml:"json,omitempty" json:"json,omitempty"`
}

// Assignment is one SET column = 'value'.
type Assignment struct {
	Column string `yaml:"column" json:"column"`
	Value  string `yaml:"value" json:"value"`
}

// Condition is one WHERE predicate.
//
// Op is one of eq, neq, gt, gte, lt, lte, in, not_in, between,
// not_between, like, is_null, is_not_null or raw. For raw, Value is the
// whole predicate text.
type Condition struct {
	Op     string   `yaml:"op" json:"op"`
	Column string   `yaml:"column,omitempty" json:"column,omitempty"`
	Value  string   `yaml:"value,omitempty" json:"value,omitempty"`
	Values []string `yaml:"values,omitempty" json:"values,omitempty"`
	Low    string   `yaml:"low,omitempty" json:"low,omitempty"`
	High   string   `yaml:"high,omitempty" json:"high,omitempty"`
}

// Order is the ORDER BY of a select.
type Order struct {
	Column    string `yaml:"column" json:"column"`
	Direction string `yaml:"direction,omitempty" json:"direction,omitempty"`
}

// Using is one USING option; exactly one field must be set.
type Using struct {
	TTL       *int64 `yaml:"ttl,omitempty" json:"ttl,omitempty"`
	Timestamp *int64 `yaml:"timestamp,omitempty" json:"timestamp,omitempty"`
}

var operations = map[string]query.Operation{
	"select":               query.Select,
	"insert":               query.Insert,
	"insert_if_not_exists": query.InsertIfNotExists,
	"update":               query.Update,
	"delete":               query.Delete,
}

var comparators = map[string]query.Comparator{
	"eq":  query.OpEq,
	"neq": query.OpNeq,
	"gt":  query.OpGt,
	"gte": query.OpGte,
	"lt":  query.OpLt,
	"lte": query.OpLte,
}

// ParseOperation maps a plan op name to a query operation.
func ParseOperation(name string) (query.Operation, error) {
	op, ok := operations[name]
	if !ok {
		return 0, fmt.Errorf("unknown op %q", name)
	}
	return op, nil
}

// Builder replays the statement onto a fresh builder bound to sess.
// sess may be nil for rendering only.
func (s Statement) Builder(sess session.Session) (query.Builder, error) {
	op, err := ParseOperation(s.Op)
	if err != nil {
		return query.Builder{}, err
	}

	b := query.New(op, s.Keyspace, s.Table, sess)
	if len(s.Columns) > 0 {
		b = b.Select(s.Columns...)
	}
	for _, a := range s.Set {
		b = b.Set(a.Column, a.Value)
	}
	for i, c := range s.Where {
		pred, err := c.predicate()
		if err != nil {
			return query.Builder{}, fmt.Errorf("where[%d]: %w", i, err)
		}
		b = b.WhereCondition(pred)
	}
	if s.Order != nil {
		dir, err := parseDirection(s.Order.Direction)
		if err != nil {
			return query.Builder{}, fmt.Errorf("order: %w", err)
		}
		b = b.OrderBy(s.Order.Column, dir)
	}
	for _, c := range s.Clauses {
		b = b.Clause(c)
	}
	for i, u := range s.Using {
		opt, err := u.option()
		if err != nil {
			return query.Builder{}, fmt.Errorf("using[%d]: %w", i, err)
		}
		b = b.InsertOption(opt)
	}
	if s.JSON != nil {
		if b, err = b.WithJSON(s.JSON); err != nil {
			return query.Builder{}, err
		}
	}
	return b, nil
}

func (c Condition) predicate() (string, error) {
	if cmp, ok := comparators[c.Op]; ok {
		return query.Compare(c.Column, cmp, c.Value), nil
	}

	switch c.Op {
	case "in":
		return query.InList(c.Column, c.Values), nil
	case "not_in":
		return query.NotInList(c.Column, c.Values), nil
	case "between":
		return query.Between(c.Column, c.Low, c.High), nil
	case "not_between":
		return query.NotBetween(c.Column, c.Low, c.High), nil
	case "like":
		return query.Like(c.Column, c.Value), nil
	case "is_null":
		return query.IsNull(c.Column), nil
	case "is_not_null":
		return query.IsNotNull(c.Column), nil
	case "raw":
		return c.Value, nil
	default:
		return "", fmt.Errorf("unknown condition op %q", c.Op)
	}
}

func (u Using) option() (query.InsertOption, error) {
	switch {
	case u.TTL != nil && u.Timestamp != nil:
		return nil, fmt.Errorf("set either ttl or timestamp, not both")
	case u.TTL != nil:
		return query.UsingTTL(*u.TTL), nil
	case u.Timestamp != nil:
		return query.UsingTimestamp(*u.Timestamp), nil
	default:
		return nil, fmt.Errorf("ttl or timestamp is required")
	}
}

func parseDirection(s string) (query.Direction, error) {
	switch s {
	case "", "asc", "ASC":
		return query.Asc, nil
	case "desc", "DESC":
		return query.Desc, nil
	default:
		return 0, fmt.Errorf("unknown direction %q", s)
	}
}

func validatePlan(p *Plan) error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(p.Statements) == 0 {
		return fmt.Errorf("statements list is required and must be non-empty")
	}

	var seen []string
	for i, s := range p.Statements {
		if s.Name == "" {
			return fmt.Errorf("statements[%d]: name is required", i)
		}
		if slices.Contains(seen, s.Name) {
			return fmt.Errorf("statements[%d]: duplicate name %q", i, s.Name)
		}
		seen = append(seen, s.Name)
		if _, err := ParseOperation(s.Op); err != nil {
			return fmt.Errorf("statements[%d]: %w", i, err)
		}
		if s.Keyspace == "" || s.Table == "" {
			return fmt.Errorf("statements[%d]: keyspace and table are required", i)
		}
	}
	return nil
}
