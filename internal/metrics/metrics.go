package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// rsvp_admissions_total
const (
	OutcomeConfirmed  = "confirmed"
	OutcomeWaitlisted = "waitlisted"
	OutcomeDeclined   = "declined"
)

// rsvp_promotions_total
const (
	OutcomePromoted = "promoted"
	OutcomeBlocked  = "blocked"
	OutcomeFailed   = "failed"
)

// ticket_checkins_total
const (
	OutcomeSuccess   = "success"
	OutcomeDuplicate = "duplicate"
	OutcomeInvalid   = "invalid"
	OutcomeNotFound  = "not_found"
)

// notifications_total，失敗沿用 OutcomeFailed
const (
	OutcomePublished = "published"
	OutcomeDropped   = "dropped"
	OutcomeDelivered = "delivered"
)

var (
	RsvpAdmissionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rsvp_admissions_total",
			Help: "Total number of rsvp admission decisions by outcome",
		},
		[]string{"outcome"},
	)

	RsvpPromotionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rsvp_promotions_total",
			Help: "Total number of waitlist promotions by outcome",
		},
		[]string{"outcome"},
	)

	TicketCheckInsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticket_checkins_total",
			Help: "Total number of ticket check-in attempts by outcome",
		},
		[]string{"outcome"},
	)

	NotificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_total",
			Help: "Total number of notifications by outcome",
		},
		[]string{"outcome"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of http requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
)

var registerOnce sync.Once

// Register registers all Prometheus metrics
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(RsvpAdmissionsTotal)
		prometheus.MustRegister(RsvpPromotionsTotal)
		prometheus.MustRegister(TicketCheckInsTotal)
		prometheus.MustRegister(NotificationsTotal)
		prometheus.MustRegister(HTTPRequestDuration)
	})
}
