package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grimm.is/icewall/internal/osal"
)

func TestRegistryCounters(t *testing.T) {
	r := NewRegistry()
	boom := errors.New("boom")

	r.CommandRun(StageInterface, nil)
	r.CommandRun(StageInterface, nil)
	r.CommandRun(StageRule, boom)
	r.LayerWrite(nil)
	r.RuleApplied(boom)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.CommandsTotal.WithLabelValues(StageInterface, "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.CommandsTotal.WithLabelValues(StageRule, "failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.LayerWritesTotal.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.RulesTotal.WithLabelValues("failure")))
}

func TestObserveExit(t *testing.T) {
	r := NewRegistry()
	r.ObserveExit("/bin/true", osal.ExitStatus{})
	r.ObserveExit("/bin/false", osal.ExitStatus{Code: 1})
	r.ObserveExit("/bin/sleep", osal.ExitStatus{Signaled: true, Signal: syscall.SIGTERM})

	assert.Equal(t, 1.0, testutil.ToFloat64(r.ChildExitTotal.WithLabelValues("0")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.ChildExitTotal.WithLabelValues("1")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.ChildExitTotal.WithLabelValues("signal_15")))
}

func TestRunFinished(t *testing.T) {
	r := NewRegistry()
	end := time.Unix(1_700_000_000, 0)

	r.RunFinished(end, 1500*time.Millisecond, true)
	assert.Equal(t, 1.5, testutil.ToFloat64(r.RunDuration))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.LastRunOK))
	assert.Equal(t, 1.7e9, testutil.ToFloat64(r.LastRunTimeTS))

	r.RunFinished(end, time.Second, false)
	assert.Equal(t, 0.0, testutil.ToFloat64(r.LastRunOK))
}

func TestNilRegistryIsSafe(t *testing.T) {
	var r *Registry
	assert.NotPanics(t, func() {
		r.CommandRun(StageRule, nil)
		r.LayerWrite(nil)
		r.RuleApplied(nil)
		r.ObserveExit("/bin/true", osal.ExitStatus{})
		r.RunFinished(time.Now(), time.Second, true)
		require.NoError(t, r.WriteTextfile("/nonexistent/icewall.prom"))
	})
}

func TestWriteTextfile(t *testing.T) {
	r := NewRegistry()
	r.RuleApplied(nil)
	r.RunFinished(time.Unix(1_700_000_000, 0), time.Second, true)

	path := filepath.Join(t.TempDir(), "icewall.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, `icewall_rules_total{result="success"} 1`)
	assert.Contains(t, text, "icewall_last_run_success 1")
	assert.True(t, strings.Contains(text, "# TYPE icewall_run_duration_seconds gauge"))

	err = r.WriteTextfile(filepath.Join(t.TempDir(), "missing", "icewall.prom"))
	assert.Error(t, err)
}
