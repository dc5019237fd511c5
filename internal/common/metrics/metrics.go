package metrics

import "github.com/prometheus/client_golang/prometheus"

// TriageMetrics exposes counters/gauges for the clinic queues.
type TriageMetrics struct {
	admissions *prometheus.CounterVec
	calls      *prometheus.CounterVec
	skips      *prometheus.CounterVec
	queueDepth *prometheus.GaugeVec
}

func NewTriageMetrics(reg prometheus.Registerer) *TriageMetrics {
	m := &TriageMetrics{
		admissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "poliklinik",
			Subsystem: "triage",
			Name:      "admissions_total",
			Help:      "Admission attempts by clinic, priority and result",
		}, []string{"clinic", "priority", "result"}),
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "poliklinik",
			Subsystem: "triage",
			Name:      "calls_total",
			Help:      "Patients called for service",
		}, []string{"clinic", "priority"}),
		skips: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "poliklinik",
			Subsystem: "triage",
			Name:      "skips_total",
			Help:      "Patients moved to the back of their queue",
		}, []string{"clinic", "priority"}),
		queueDepth: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "poliklinik",
			Subsystem: "triage",
			Name:      "queue_depth",
			Help:      "Patients currently waiting per clinic queue",
		}, []string{"clinic", "priority"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.admissions, m.calls, m.skips, m.queueDepth)
	return m
}

func (m *TriageMetrics) ObserveAdmission(clinic, priority, result string) {
	if m == nil {
		return
	}
	m.admissions.WithLabelValues(clinic, priority, result).Inc()
}

func (m *TriageMetrics) ObserveCall(clinic, priority string) {
	if m == nil {
		return
	}
	m.calls.WithLabelValues(clinic, priority).Inc()
}

func (m *TriageMetrics) ObserveSkip(clinic, priority string) {
	if m == nil {
		return
	}
	m.skips.WithLabelValues(clinic, priority).Inc()
}

func (m *TriageMetrics) SetQueueDepth(clinic, priority string, depth int) {
	if m == nil {
		return
	}
	m.queueDepth.WithLabelValues(clinic, priority).Set(float64(depth))
}
