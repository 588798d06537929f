package testutil

// FixedTraceGenerator returns the same trace id every time.
//
// Statements recorded under a fixed id produce byte-identical journals and
// golden output across runs.
//
// Thread-safety: stateless, safe for concurrent use.
type FixedTraceGenerator struct {
	id string
}

// NewFixedTraceGenerator creates a fixed trace id generator.
// If id is empty, Generate() returns "test-trace-default".
func NewFixedTraceGenerator(id string) *FixedTraceGenerator {
	if id == "" {
		id = "test-trace-default"
	}
	return &FixedTraceGenerator{id: id}
}

// Generate returns the fixed trace id.
//
// Implements session.TraceGenerator.
func (g *FixedTraceGenerator) Generate() string {
	return g.id
}
