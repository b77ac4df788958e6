package feature

import "github.com/prometheus/client_golang/prometheus"

type serviceMetrics struct {
	evaluations *prometheus.CounterVec
}

func newServiceMetrics(reg prometheus.Registerer) *serviceMetrics {
	m := &serviceMetrics{
		evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flagkit",
			Subsystem: "feature",
			Name:      "evaluations_total",
			Help:      "Flag evaluations partitioned by flag key and result reason.",
		}, []string{"flag", "reason"}),
	}
	reg.MustRegister(m.evaluations)
	return m
}
