package query

import "strings"

// Comparator is a binary comparison operator.
type Comparator string

const (
	OpEq  Comparator = "="
	OpNeq Comparator = "!="
	OpGt  Comparator = ">"
	OpGte Comparator = ">="
	OpLt  Comparator = "<"
	OpLte Comparator = "<="
)

// Compare renders column op 'value'.
func Compare(column string, op Comparator, value string) string {
	return column + " " + string(op) + " '" + value + "'"
}

// InList renders column IN (v1, v2, ...). Values are joined as given,
// without quoting.
func InList(column string, values []string) string {
	return column + " IN (" + strings.Join(values, ", ") + ")"
}

// NotInList renders column NOT IN (v1, v2, ...).
func NotInList(column string, values []string) string {
	return column + " NOT IN (" + strings.Join(values, ", ") + ")"
}

// Between renders column BETWEEN 'lo' AND 'hi'.
func Between(column, lo, hi string) string {
	return column + " BETWEEN '" + lo + "' AND '" + hi + "'"
}

// NotBetween renders column NOT BETWEEN 'lo' AND 'hi'.
func NotBetween(column, lo, hi string) string {
	return column + " NOT BETWEEN '" + lo + "' AND '" + hi + "'"
}

// Like renders column LIKE 'pattern'.
func Like(column, pattern string) string {
	return column + " LIKE '" + pattern + "'"
}

// IsNull renders column IS NULL.
func IsNull(column string) string {
	return column + " IS NULL"
}

// IsNotNull renders column IS NOT NULL.
func IsNotNull(column string) string {
	return column + " IS NOT NULL"
}

// Eq adds column = value.
func (b Builder) Eq(column, value string) Builder {
	return b.where(Compare(column, OpEq, value))
}

// Neq adds column != value.
func (b Builder) Neq(column, value string) Builder {
	return b.where(Compare(column, OpNeq, value))
}

// Gt adds column > value.
func (b Builder) Gt(column, value string) Builder {
	return b.where(Compare(column, OpGt, value))
}

// Gte adds column >= value.
func (b Builder) Gte(column, value string) Builder {
	return b.where(Compare(column, OpGte, value))
}

// Lt adds column < value.
func (b Builder) Lt(column, value string) Builder {
	return b.where(Compare(column, OpLt, value))
}

// Lte adds column <= value.
func (b Builder) Lte(column, value string) Builder {
	return b.where(Compare(column, OpLte, value))
}

// InList adds column IN (values...). Values are written as given.
func (b Builder) InList(column string, values ...string) Builder {
	return b.where(InList(column, values))
}

// NotInList adds column NOT IN (values...).
func (b Builder) NotInList(column string, values ...string) Builder {
	return b.where(NotInList(column, values))
}

// Between adds column BETWEEN lo AND hi.
func (b Builder) Between(column, lo, hi string) Builder {
	return b.where(Between(column, lo, hi))
}

// NotBetween adds column NOT BETWEEN lo AND hi.
func (b Builder) NotBetween(column, lo, hi string) Builder {
	return b.where(NotBetween(column, lo, hi))
}

// Like adds column LIKE pattern.
func (b Builder) Like(column, pattern string) Builder {
	return b.where(Like(column, pattern))
}

// IsNull adds column IS NULL.
func (b Builder) IsNull(column string) Builder {
	return b.where(IsNull(column))
}

// IsNotNull adds column IS NOT NULL.
func (b Builder) IsNotNull(column string) Builder {
	return b.where(IsNotNull(column))
}
