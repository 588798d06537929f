// Package query assembles CQL statements from fluent builder calls and
// dispatches them through a session.Session.
//
// A Builder is bound to one operation kind and one fully-qualified target
// table (keyspace.table). Fluent calls accumulate projected columns,
// assignments, predicates, free-form clauses, one ORDER BY and insert
// options; Build renders them in a fixed order:
//
//	verb, columns/target, SET, WHERE, ORDER BY, clauses, USING, ";"
//
// Builder is an immutable value. Every fluent call returns a new Builder and
// never writes through to the receiver, so a partially built statement can
// be shared and forked:
//
//	base := query.New(query.Select, "ks", "users", sess).Select("name", "age")
//	adults := base.Gte("age", "18")
//	minors := base.Lt("age", "18")
//
// # Rendering contract
//
// The rendered text is the de-facto contract consumers depend on; for
// example:
//
//	New(Select, "ks", "users", s).Select("name", "age").Eq("id", "7").Build()
//	// SELECT name, age FROM ks.users WHERE id = '7';
//
//	New(Delete, "ks", "users", s).Eq("id", "7").Build()
//	// DELETE FROM ks.users WHERE id = '7';
//
// Build performs no validation and never fails: operation-inappropriate
// calls (ORDER BY on a DELETE, USING on a SELECT) render literally. Use
// Validate for an opt-in strict check.
//
// # Values
//
// Predicate values are embedded as quoted literals without escaping. They
// must come from trusted input; use Execute with bound values for anything
// else. The JSON payload of Insert and InsertBulk is the one exception:
// single quotes inside it are doubled so the payload stays one literal.
package query
