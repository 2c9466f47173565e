package metrics

import "github.com/prometheus/client_golang/prometheus"

// Prometheus metrics for monitoring service health and usage
var (
	ScansRecordedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scans_recorded_total",
			Help: "Total number of scan events recorded, by device category",
		},
		[]string{"device"},
	)

	VCardDownloadsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "vcard_downloads_total",
			Help: "Total number of vCard downloads served",
		},
	)

	LoginFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "login_failures_total",
			Help: "Total number of failed operator login attempts",
		},
	)

	CardWritesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "card_writes_total",
			Help: "Total number of card write operations, by kind",
		},
		[]string{"kind"},
	)

	CardsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cards_total",
			Help: "Current number of cards in the directory",
		},
	)
)

// Register registers all Prometheus metrics
func Register() {
	prometheus.MustRegister(
		ScansRecordedTotal,
		VCardDownloadsTotal,
		LoginFailuresTotal,
		CardWritesTotal,
		CardsTotal,
	)
}
