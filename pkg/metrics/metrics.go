package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

var (
	// NotificationsWritten counts notifications persisted by the writer.
	NotificationsWritten = promauto.NewCounter(prometheus.CounterOpts{
		Name: "memoryhub_notifications_written_total",
		Help: "Number of notifications persisted.",
	})

	// NotificationsSuppressed counts self-notifications and notifications
	// with a missing party that the writer dropped.
	NotificationsSuppressed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "memoryhub_notifications_suppressed_total",
		Help: "Number of notifications dropped before persistence.",
	})

	// NotificationsFailed counts insert failures swallowed by the writer.
	NotificationsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "memoryhub_notifications_failed_total",
		Help: "Number of notification writes that failed.",
	})

	// StoriesSwept counts stories removed by the expiry sweeper.
	StoriesSwept = promauto.NewCounter(prometheus.CounterOpts{
		Name: "memoryhub_stories_swept_total",
		Help: "Number of expired stories deleted by the sweeper.",
	})
)

// Serve exposes /metrics on its own listener. Runs until the process exits.
func Serve(port string, log *logrus.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	log.WithField("port", port).Info("metrics listener starting")
	if err := http.ListenAndServe(":"+port, mux); err != nil {
		log.WithError(err).Error("metrics listener stopped")
	}
}
