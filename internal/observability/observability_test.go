package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/spec-kit/ticket-workflow/internal/config"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewMetrics()
	m.RecordCommand("create-ticket", "ok")
	m.RecordCommand("create-ticket", "ok")
	m.RecordCommand("status", "INVALID_ID")
	m.RecordRequest("/tickets", "POST", 201, time.Millisecond)
	m.RecordError("/tickets/:id", "GET", "TICKET_NOT_FOUND")

	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap.Commands["create-ticket|ok"])
	assert.Equal(t, int64(1), snap.Commands["status|INVALID_ID"])
	assert.Equal(t, int64(1), snap.Requests["/tickets|POST|201"])
	assert.Equal(t, int64(1), snap.Errors["/tickets/:id|GET|TICKET_NOT_FOUND"])

	// snapshots are copies
	snap.Commands["create-ticket|ok"] = 99
	assert.Equal(t, int64(2), m.Snapshot().Commands["create-ticket|ok"])
}

func TestMetrics_NilIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordCommand("status", "ok")
	m.RecordRequest("/", "GET", 200, 0)
	m.RecordError("/", "GET", "X")
	assert.Empty(t, m.Snapshot().Commands)
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(config.LoggerConfig{Level: "DEBUG"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger, err = NewLogger(config.LoggerConfig{Level: "nonsense", Output: "stdout"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
}
