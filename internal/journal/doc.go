// Package journal keeps a local, append-only record of every statement sent
// to the cluster.
//
// Storage is SQLite in WAL mode. Each entry gets a monotonically increasing
// sequence number from the database; there are no wall-clock timestamps in
// ordering, only seq.
//
// Wrap decorates any session.Session so that callers do not change:
//
//	store, err := journal.Open("scyllaqb.db")
//	sess := journal.Wrap(cqlSession, store, logger)
//	query.New(query.Select, "ks", "t", sess).Run(ctx)
package journal
