package observability

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/fullytyped/pkg/schema"
)

func TestMetrics_Hooks(t *testing.T) {
	m, err := NewMetrics(nil)
	require.NoError(t, err)
	h := m.Hooks()

	h.OnCompile(&schema.CompileEvent{Type: "number", Duration: time.Millisecond})
	h.OnCompile(&schema.CompileEvent{Type: "number", Duration: time.Millisecond})
	h.OnCompile(&schema.CompileEvent{Type: "foo", Err: errors.New("unknown")})
	h.OnReject(&schema.RejectEvent{Type: "number", Descriptor: &schema.Descriptor{Code: "ENMIN"}})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Compiles.WithLabelValues("number", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Compiles.WithLabelValues("foo", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Rejections.WithLabelValues("number", "ENMIN")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.CompileDuration))
}

func TestNewMetrics_Registers(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()

	_, err := NewMetrics(reg)
	require.NoError(t, err)

	_, err = NewMetrics(reg)
	assert.Error(t, err, "collectors cannot be registered twice")
}
