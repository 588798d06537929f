package query

import "strings"

// Build renders the statement text. It is pure: no I/O, no mutation, and
// the same accumulated state always yields the same text.
//
// Parts are emitted in a fixed order:
//  1. verb and target (SELECT cols FROM t / DELETE FROM t / INSERT INTO t / UPDATE t)
//  2. the JSON clause list, for an INSERT whose first clause is a JSON payload
//  3. SET assignments (UPDATE only)
//  4. WHERE conditions joined by AND
//  5. ORDER BY
//  6. remaining clauses, unless already emitted in step 2
//  7. USING options joined by AND
//  8. terminating ;
func (b Builder) Build() string {
	var sb strings.Builder
	jsonLead := b.jsonLead()

	switch b.op {
	case Select:
		sb.WriteString(b.op.String())
		sb.WriteString(" ")
		sb.WriteString(b.projectionText())
		sb.WriteString(" FROM ")
		sb.WriteString(b.Target())
	case Delete:
		sb.WriteString(b.op.String())
		sb.WriteString(" FROM ")
		sb.WriteString(b.Target())
	case Insert, InsertIfNotExists:
		sb.WriteString(b.op.String())
		sb.WriteString(" ")
		sb.WriteString(b.Target())
		if jsonLead {
			sb.WriteString(" ")
			sb.WriteString(joinClauses(b.clauses))
		}
	default:
		sb.WriteString(b.op.String())
		sb.WriteString(" ")
		sb.WriteString(b.Target())
	}

	if b.op == Update && len(b.assignments) > 0 {
		sb.WriteString(" SET ")
		sb.WriteString(strings.Join(b.assignments, ", "))
	}

	if len(b.conditions) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(b.conditions, " AND "))
	}

	if b.order != nil {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(b.order.column)
		sb.WriteString(" ")
		sb.WriteString(b.order.direction.String())
	}

	if len(b.clauses) > 0 && !jsonLead {
		sb.WriteString(" ")
		sb.WriteString(joinClauses(b.clauses))
	}

	if len(b.options) > 0 {
		sb.WriteString(" USING ")
		for i, opt := range b.options {
			if i > 0 {
				sb.WriteString(" AND ")
			}
			sb.WriteString(opt.fragment())
		}
	}

	sb.WriteString(";")
	return sb.String()
}

// String implements fmt.Stringer with the rendered statement.
func (b Builder) String() string {
	return b.Build()
}

func (b Builder) projectionText() string {
	if len(b.projection) == 0 {
		return "*"
	}
	return strings.Join(b.projection, ", ")
}

func joinClauses(clauses []Clause) string {
	parts := make([]string, len(clauses))
	for i, c := range clauses {
		parts[i] = c.Text
	}
	return strings.Join(parts, " ")
}
