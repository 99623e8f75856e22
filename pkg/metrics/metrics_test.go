package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_RecordDecode(t *testing.T) {
	m := New()
	m.RecordDecode("save", true, time.Millisecond)
	m.RecordDecode("save", true, time.Millisecond)
	m.RecordDecode("unknown", false, time.Microsecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.decodesTotal.WithLabelValues("save", statusSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.decodesTotal.WithLabelValues("unknown", statusError)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.decodesTotal.WithLabelValues("system", statusSuccess)))
}

func TestMetrics_RecordWriteAndSnapshot(t *testing.T) {
	m := New()
	m.RecordWrite("system", 4)
	m.RecordSnapshot("put")
	m.RecordSnapshot("put")
	m.RecordCapacityFailure("roster")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.writesTotal.WithLabelValues("system")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.snapshotsTotal.WithLabelValues("put")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.capacityFailures.WithLabelValues("roster")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.changedBytes))
}

func TestMetrics_SeparateRegistries(t *testing.T) {
	a, b := New(), New()
	a.RecordSnapshot("prune")

	assert.Equal(t, 1.0, testutil.ToFloat64(a.snapshotsTotal.WithLabelValues("prune")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.snapshotsTotal.WithLabelValues("prune")))
}

func TestMetrics_WriteTextfile(t *testing.T) {
	m := New()
	m.RecordDecode("save", true, time.Millisecond)
	m.RecordWrite("save", 16)

	path := filepath.Join(t.TempDir(), "savekit.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, `savekit_decodes_total{kind="save",status="success"} 1`)
	assert.Contains(t, text, `savekit_writes_total{kind="save"} 1`)
	assert.Contains(t, text, "savekit_changed_bytes_count 1")
}

func TestMetrics_WriteTextfileBadPath(t *testing.T) {
	m := New()
	err := m.WriteTextfile(filepath.Join(t.TempDir(), "missing", "savekit.prom"))
	assert.Error(t, err)
}
