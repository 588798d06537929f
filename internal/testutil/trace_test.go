package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Twixan/scylladb-go/internal/session"
)

var _ session.TraceGenerator = (*FixedTraceGenerator)(nil)

func TestFixedTraceGenerator_ReturnsSameID(t *testing.T) {
	gen := NewFixedTraceGenerator("trace-123")

	assert.Equal(t, "trace-123", gen.Generate())
	assert.Equal(t, "trace-123", gen.Generate())
	assert.Equal(t, "trace-123", gen.Generate())
}

func TestFixedTraceGenerator_EmptyIDDefault(t *testing.T) {
	gen := NewFixedTraceGenerator("")
	assert.Equal(t, "test-trace-default", gen.Generate())
}

func TestFixedTraceGenerator_ThreadSafe(t *testing.T) {
	gen := NewFixedTraceGenerator("thread-safe-id")

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func() {
			for j := 0; j < 100; j++ {
				assert.Equal(t, "thread-safe-id", gen.Generate())
			}
			done <- true
		}()
	}

	for i := 0; i < 10; i++ {
		<-done
	}
}
