// Package metrics records what an apply run did as Prometheus metrics.
//
// icewall is not a daemon, so nothing is served: the registry is written
// to a node_exporter textfile once the run is over.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"grimm.is/icewall/internal/osal"
)

// Command stages.
const (
	StageInterface = "interface"
	StageRule      = "rule"
)

// Registry holds all apply metrics. A nil *Registry records nothing.
type Registry struct {
	reg *prometheus.Registry

	CommandsTotal    *prometheus.CounterVec
	LayerWritesTotal *prometheus.CounterVec
	RulesTotal       *prometheus.CounterVec
	ChildExitTotal   *prometheus.CounterVec

	RunDuration   prometheus.Gauge
	LastRunOK     prometheus.Gauge
	LastRunTimeTS prometheus.Gauge
}

// NewRegistry creates a Registry backed by its own prometheus.Registry.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Registry{
		reg: reg,

		CommandsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "icewall_commands_total",
			Help: "External commands run, by stage and result",
		}, []string{"stage", "result"}),

		LayerWritesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "icewall_layer_writes_total",
			Help: "Control file writes, by result",
		}, []string{"result"}),

		RulesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "icewall_rules_total",
			Help: "Firewall rules applied, by result",
		}, []string{"result"}),

		ChildExitTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "icewall_child_exit_status_total",
			Help: "Exit statuses collected from executed programs",
		}, []string{"status"}),

		RunDuration: factory.NewGauge(prometheus.GaugeOpts{
			Name: "icewall_run_duration_seconds",
			Help: "Wall time of the last apply run",
		}),

		LastRunOK: factory.NewGauge(prometheus.GaugeOpts{
			Name: "icewall_last_run_success",
			Help: "1 if the last apply run succeeded, 0 otherwise",
		}),

		LastRunTimeTS: factory.NewGauge(prometheus.GaugeOpts{
			Name: "icewall_last_run_timestamp_seconds",
			Help: "Unix time the last apply run finished",
		}),
	}
}

// Gatherer exposes the underlying registry.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

func result(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}

// CommandRun records one interface or rule command.
func (r *Registry) CommandRun(stage string, err error) {
	if r == nil {
		return
	}
	r.CommandsTotal.WithLabelValues(stage, result(err)).Inc()
}

// LayerWrite records one control file write.
func (r *Registry) LayerWrite(err error) {
	if r == nil {
		return
	}
	r.LayerWritesTotal.WithLabelValues(result(err)).Inc()
}

// RuleApplied records one rule.
func (r *Registry) RuleApplied(err error) {
	if r == nil {
		return
	}
	r.RulesTotal.WithLabelValues(result(err)).Inc()
}

// ObserveExit records a child exit status. Its signature matches
// executor.ExitObserver.
func (r *Registry) ObserveExit(path string, status osal.ExitStatus) {
	if r == nil {
		return
	}
	r.ChildExitTotal.WithLabelValues(statusLabel(status)).Inc()
}

func statusLabel(s osal.ExitStatus) string {
	if s.Signaled {
		return "signal_" + strconv.Itoa(int(s.Signal))
	}
	return strconv.Itoa(s.Code)
}

// RunFinished records the outcome of a whole run.
func (r *Registry) RunFinished(end time.Time, took time.Duration, ok bool) {
	if r == nil {
		return
	}
	r.RunDuration.Set(took.Seconds())
	r.LastRunTimeTS.Set(float64(end.Unix()))
	if ok {
		r.LastRunOK.Set(1)
	} else {
		r.LastRunOK.Set(0)
	}
}
