package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	connectivityTestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "notify_connectivity_tests_total",
		Help: "Total number of channel credential connectivity tests",
	}, []string{"channel", "outcome"})
	testSendsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "notify_test_sends_total",
		Help: "Total number of test message dispatches",
	}, []string{"channel", "outcome"})
	configSavesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "notify_config_saves_total",
		Help: "Total number of notification configuration saves",
	})
)

// Register registers Prometheus collectors. Call once at startup.
func Register(registry *prometheus.Registry) {
	registry.MustRegister(connectivityTestsTotal, testSendsTotal, configSavesTotal)
}

// IncConnectivityTest increments the connectivity test counter.
func IncConnectivityTest(channel, outcome string) {
	connectivityTestsTotal.WithLabelValues(channel, outcome).Inc()
}

// IncTestSend increments the test dispatch counter.
func IncTestSend(channel, outcome string) {
	testSendsTotal.WithLabelValues(channel, outcome).Inc()
}

// IncConfigSave increments the configuration save counter.
func IncConfigSave() { configSavesTotal.Inc() }
