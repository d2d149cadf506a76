package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	WebSocketConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "notification_websocket_connections",
		Help: "Number of live websocket connections.",
	})

	EventsConsumed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notification_events_consumed_total",
		Help: "Broker events consumed, by topic.",
	}, []string{"topic"})

	NotificationsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notification_records_created_total",
		Help: "Notifications persisted to the store.",
	})
)

// Handler returns the http.Handler for Prometheus scraping.
func Handler() http.Handler {
	return promhttp.Handler()
}
