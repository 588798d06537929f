package schema

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/Twixan/scylladb-go/internal/query"
	"github.com/Twixan/scylladb-go/internal/session"
)

// Column is a column name and its CQL type.
type Column struct {
	Name string
	Type string
}

// ClusteringOrder is the optional WITH CLUSTERING ORDER BY of a table.
type ClusteringOrder struct {
	Column    string
	Direction query.Direction
}

// TableDef describes a table for CreateTable.
type TableDef struct {
	Keyspace       string
	Name           string
	PartitionKeys  []string
	ClusteringKeys []string
	Columns        []Column

	// Order is rendered as WITH CLUSTERING ORDER BY when set.
	Order *ClusteringOrder

	// DefaultTTL in seconds; 0 leaves the table default.
	DefaultTTL int
}

// Validate checks that the definition can render a CREATE TABLE.
func (d TableDef) Validate() error {
	var errs []error
	if d.Keyspace == "" || d.Name == "" {
		errs = append(errs, errors.New("table: keyspace and name are required"))
	}
	if len(d.PartitionKeys) == 0 {
		errs = append(errs, errors.New("table: at least one partition key is required"))
	}
	if len(d.Columns) == 0 {
		errs = append(errs, errors.New("table: at least one column is required"))
	}

	declared := make(map[string]bool, len(d.Columns))
	for _, c := range d.Columns {
		declared[c.Name] = true
	}
	for _, k := range slices.Concat(d.PartitionKeys, d.ClusteringKeys) {
		if !declared[k] {
			errs = append(errs, fmt.Errorf("table: key column %q is not declared", k))
		}
	}
	if d.Order != nil && !slices.Contains(d.ClusteringKeys, d.Order.Column) {
		errs = append(errs, fmt.Errorf("table: clustering order column %q is not a clustering key", d.Order.Column))
	}
	if d.DefaultTTL < 0 {
		errs = append(errs, fmt.Errorf("table: negative default TTL %d", d.DefaultTTL))
	}
	return errors.Join(errs...)
}

// CreateStatement renders CREATE TABLE IF NOT EXISTS for the definition.
func (d TableDef) CreateStatement() (string, error) {
	if err := d.Validate(); err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("CREATE TABLE IF NOT EXISTS ")
	sb.WriteString(d.Keyspace + "." + d.Name)
	sb.WriteString(" (")
	for _, c := range d.Columns {
		sb.WriteString(c.Name)
		sb.WriteString(" ")
		sb.WriteString(c.Type)
		sb.WriteString(", ")
	}
	sb.WriteString("PRIMARY KEY ((")
	sb.WriteString(strings.Join(d.PartitionKeys, ", "))
	sb.WriteString(")")
	for _, k := range d.ClusteringKeys {
		sb.WriteString(", ")
		sb.WriteString(k)
	}
	sb.WriteString("))")

	var with []string
	if d.Order != nil {
		with = append(with, fmt.Sprintf("CLUSTERING ORDER BY (%s %s)", d.Order.Column, d.Order.Direction))
	}
	if d.DefaultTTL > 0 {
		with = append(with, fmt.Sprintf("default_time_to_live = %d", d.DefaultTTL))
	}
	if len(with) > 0 {
		sb.WriteString(" WITH ")
		sb.WriteString(strings.Join(with, " AND "))
	}

	return sb.String(), nil
}

// CreateTable creates the table if it does not exist.
func CreateTable(ctx context.Context, sess session.Session, d TableDef) error {
	stmt, err := d.CreateStatement()
	if err != nil {
		return err
	}
	_, err = sess.Execute(ctx, stmt)
	return err
}

// DropTable drops keyspace.table if it exists.
func DropTable(ctx context.Context, sess session.Session, keyspace, table string) error {
	_, err := sess.Execute(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s.%s", keyspace, table))
	return err
}

// CreateKeyspace creates a SimpleStrategy keyspace if it does not exist.
func CreateKeyspace(ctx context.Context, sess session.Session, keyspace string, replicationFactor int) error {
	if replicationFactor < 1 {
		return fmt.Errorf("keyspace %s: replication factor must be >= 1, got %d", keyspace, replicationFactor)
	}
	stmt := fmt.Sprintf(
		"CREATE KEYSPACE IF NOT EXISTS %s WITH REPLICATION = {'class': 'SimpleStrategy', 'replication_factor': %d}",
		keyspace, replicationFactor)
	_, err := sess.Execute(ctx, stmt)
	return err
}
